package entities

import (
	"fmt"
	"regexp"
	"strings"
)

// headingPattern matches a top-level markdown heading at the start of a line
var headingPattern = regexp.MustCompile(`(?m)^#[ \t]+(.+)$`)

// Presentation is the ordered list of slides parsed from one document.
// It is derived on every parse and never stored.
type Presentation struct {
	// Name identifies the source document (its file stem) and is the
	// title fallback
	Name string

	// Slides contains all presentation slides in order
	Slides []Slide
}

// Export is the structured form of a presentation handed to the viewer
type Export struct {
	Slides []Slide `json:"slides" yaml:"slides"`
	Total  int     `json:"total" yaml:"total"`
	Title  string  `json:"title" yaml:"title"`
}

// Title returns the text of the first top-level heading in the first slide,
// or the document name when there is none.
func (p *Presentation) Title() string {
	if len(p.Slides) == 0 {
		return p.Name
	}

	match := headingPattern.FindStringSubmatch(p.Slides[0].Body)
	if match == nil {
		return p.Name
	}

	if title := strings.TrimSpace(match[1]); title != "" {
		return title
	}
	return p.Name
}

// Total returns the total number of slides
func (p *Presentation) Total() int {
	return len(p.Slides)
}

// Export returns the presentation in its external shape. The slide list is
// copied so the result shares no state with the presentation.
func (p *Presentation) Export() *Export {
	slides := make([]Slide, len(p.Slides))
	copy(slides, p.Slides)

	return &Export{
		Slides: slides,
		Total:  len(slides),
		Title:  p.Title(),
	}
}

// GetSlide returns a slide by its position (0-based)
func (p *Presentation) GetSlide(position int) (*Slide, error) {
	if position < 0 || position >= len(p.Slides) {
		return nil, fmt.Errorf("slide position %d out of range (0-%d)", position, len(p.Slides)-1)
	}
	return &p.Slides[position], nil
}

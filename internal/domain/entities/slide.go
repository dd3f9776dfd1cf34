package entities

import (
	"errors"
	"strings"
)

// Slide represents a single slide in a presentation
type Slide struct {
	// Position is the zero-based slide position in the presentation
	Position int `json:"id" yaml:"id"`

	// Body is the renderable slide content, with notes stripped and
	// column blocks expanded into HTML
	Body string `json:"content" yaml:"content"`

	// Notes contains speaker notes for this slide
	Notes string `json:"notes" yaml:"notes"`
}

// NewSlide creates a slide at the given position
func NewSlide(position int, body, notes string) Slide {
	return Slide{
		Position: position,
		Body:     body,
		Notes:    notes,
	}
}

// Validate ensures the slide has valid content
func (s Slide) Validate() error {
	if strings.TrimSpace(s.Body) == "" {
		return errors.New("slide body cannot be empty")
	}

	if s.Position < 0 {
		return errors.New("slide position must be non-negative")
	}

	return nil
}

// HasNotes returns true if the slide has speaker notes
func (s Slide) HasNotes() bool {
	return strings.TrimSpace(s.Notes) != ""
}

package builders

import (
	"strconv"
	"strings"
)

// DeckBuilder helps build markdown presentation sources for testing
type DeckBuilder struct {
	slides   []*SlideSource
	newline  string
	bom      bool
	leading  bool
	trailing bool
}

// SlideSource is the markdown for one slide before it is joined into a deck
type SlideSource struct {
	title   string
	body    string
	notes   string
	left    string
	right   string
	columns bool
}

// NewDeckBuilder creates a deck builder producing \n separated markdown
func NewDeckBuilder() *DeckBuilder {
	return &DeckBuilder{newline: "\n"}
}

// WithSlide appends a slide with a heading and body
func (b *DeckBuilder) WithSlide(title, body string) *DeckBuilder {
	b.slides = append(b.slides, &SlideSource{title: title, body: body})
	return b
}

// WithNotes attaches speaker notes to the last slide
func (b *DeckBuilder) WithNotes(notes string) *DeckBuilder {
	b.last().notes = notes
	return b
}

// WithColumns attaches a two column block to the last slide
func (b *DeckBuilder) WithColumns(left, right string) *DeckBuilder {
	slide := b.last()
	slide.left = left
	slide.right = right
	slide.columns = true
	return b
}

// WithSlideCount appends count numbered slides
func (b *DeckBuilder) WithSlideCount(count int) *DeckBuilder {
	for i := 0; i < count; i++ {
		n := strconv.Itoa(len(b.slides) + 1)
		b.WithSlide("Slide "+n, "Content for slide "+n)
	}
	return b
}

// WithCRLF joins lines with \r\n
func (b *DeckBuilder) WithCRLF() *DeckBuilder {
	b.newline = "\r\n"
	return b
}

// WithBOM prefixes the deck with a UTF-8 byte order mark
func (b *DeckBuilder) WithBOM() *DeckBuilder {
	b.bom = true
	return b
}

// WithLeadingDelimiter starts the deck with a delimiter line
func (b *DeckBuilder) WithLeadingDelimiter() *DeckBuilder {
	b.leading = true
	return b
}

// WithTrailingDelimiter ends the deck with a delimiter line
func (b *DeckBuilder) WithTrailingDelimiter() *DeckBuilder {
	b.trailing = true
	return b
}

// SlideCount returns the number of slides added so far
func (b *DeckBuilder) SlideCount() int {
	return len(b.slides)
}

// Build renders the deck as markdown
func (b *DeckBuilder) Build() string {
	parts := make([]string, 0, len(b.slides))
	for _, slide := range b.slides {
		parts = append(parts, slide.markdown())
	}

	deck := strings.Join(parts, "\n\n---\n\n")
	if b.leading {
		deck = "---\n" + deck
	}
	if b.trailing {
		deck += "\n---\n"
	}

	if b.newline != "\n" {
		deck = strings.ReplaceAll(deck, "\n", b.newline)
	}
	if b.bom {
		deck = "\ufeff" + deck
	}

	return deck
}

// last returns the most recent slide, creating an empty one if needed
func (b *DeckBuilder) last() *SlideSource {
	if len(b.slides) == 0 {
		b.slides = append(b.slides, &SlideSource{})
	}
	return b.slides[len(b.slides)-1]
}

// markdown renders one slide
func (s *SlideSource) markdown() string {
	var sections []string

	if s.title != "" {
		sections = append(sections, "# "+s.title)
	}
	if s.body != "" {
		sections = append(sections, s.body)
	}
	if s.columns {
		sections = append(sections, ":::columns\n"+s.left+"\n|||\n"+s.right+"\n:::")
	}
	if s.notes != "" {
		sections = append(sections, "<!-- NOTES:\n"+s.notes+"\n-->")
	}

	return strings.Join(sections, "\n\n")
}

// Common decks for testing

// MinimalDeck creates a single slide deck
func MinimalDeck() string {
	return NewDeckBuilder().WithSlide("Minimal", "Only slide").Build()
}

// LargeDeck creates a deck with many slides for performance tests
func LargeDeck() string {
	return NewDeckBuilder().WithSlideCount(50).Build()
}

// FeatureDeck creates a deck exercising notes and columns
func FeatureDeck() string {
	return NewDeckBuilder().
		WithSlide("Feature Tour", "Welcome").
		WithNotes("Introduce yourself").
		WithSlide("Comparison", "").
		WithColumns("**Before**\n\n- slow", "**After**\n\n- fast").
		WithSlide("Code", "```go\nfmt.Println(\"hi\")\n```").
		Build()
}

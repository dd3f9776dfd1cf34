package builders

import (
	"strconv"

	"github.com/fredcamaral/markdeck/internal/domain/entities"
)

// PresentationBuilder helps build Presentation entities for testing
type PresentationBuilder struct {
	presentation *entities.Presentation
}

// NewPresentationBuilder creates a new presentation builder with sensible defaults
func NewPresentationBuilder() *PresentationBuilder {
	return &PresentationBuilder{
		presentation: &entities.Presentation{
			Name:   "test-presentation",
			Slides: []entities.Slide{},
		},
	}
}

// WithName sets the document name
func (b *PresentationBuilder) WithName(name string) *PresentationBuilder {
	b.presentation.Name = name
	return b
}

// WithSlide appends a slide at the next position
func (b *PresentationBuilder) WithSlide(body, notes string) *PresentationBuilder {
	position := len(b.presentation.Slides)
	b.presentation.Slides = append(b.presentation.Slides, entities.NewSlide(position, body, notes))
	return b
}

// WithSlideCount appends count numbered slides
func (b *PresentationBuilder) WithSlideCount(count int) *PresentationBuilder {
	for i := 0; i < count; i++ {
		n := strconv.Itoa(len(b.presentation.Slides) + 1)
		b.WithSlide("# Slide "+n+"\n\nTest content", "")
	}
	return b
}

// Build creates the final Presentation entity
func (b *PresentationBuilder) Build() *entities.Presentation {
	// Copy to prevent mutation
	return &entities.Presentation{
		Name:   b.presentation.Name,
		Slides: append([]entities.Slide{}, b.presentation.Slides...),
	}
}

// MinimalPresentation creates a minimal presentation for basic tests
func MinimalPresentation() *entities.Presentation {
	return NewPresentationBuilder().
		WithName("minimal").
		WithSlideCount(1).
		Build()
}

// LargePresentation creates a presentation with many slides for performance tests
func LargePresentation() *entities.Presentation {
	return NewPresentationBuilder().
		WithName("large").
		WithSlideCount(50).
		Build()
}

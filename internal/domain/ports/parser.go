package ports

import (
	"context"

	"github.com/fredcamaral/markdeck/internal/domain/entities"
)

// SlideParser splits document text into slides
type SlideParser interface {
	// Parse converts document text into an ordered sequence of slides.
	// It never fails: malformed blocks are left as literal text.
	Parse(content string) []entities.Slide
}

// MarkdownRenderer converts a markdown fragment to an HTML fragment.
// Implementations must not carry state from one call to the next.
type MarkdownRenderer interface {
	Render(source string) (string, error)
}

// DocumentSource reads presentation documents
type DocumentSource interface {
	// Read loads the document at path. A missing or unreadable document
	// yields an error wrapping entities.ErrDocumentNotFound.
	Read(ctx context.Context, path string) (*entities.Document, error)
}

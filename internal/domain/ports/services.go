package ports

import (
	"context"

	"github.com/fredcamaral/markdeck/internal/domain/entities"
)

// PresentationService answers queries about a presentation document.
// Every call reads and parses the document afresh.
type PresentationService interface {
	// Parse reads the document at path and splits it into slides
	Parse(ctx context.Context, path string) (*entities.Presentation, error)

	// Title returns the presentation title for the document at path
	Title(ctx context.Context, path string) (string, error)

	// Export returns slides, total and title for the document at path
	Export(ctx context.Context, path string) (*entities.Export, error)
}

// LiveReload coordinates file watching with client notifications
type LiveReload interface {
	Start(ctx context.Context, path string) error
	Stop() error
	IsWatching() bool
}

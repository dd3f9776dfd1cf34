package document

import (
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/fredcamaral/markdeck/internal/domain/entities"
	"github.com/fredcamaral/markdeck/internal/domain/ports"
)

// FileSource reads presentation documents from the local filesystem
type FileSource struct {
	decoder  func() transform.Transformer
	readFile func(name string) ([]byte, error)
}

// NewFileSource creates a document source decoding UTF-8, honouring a
// leading UTF-16 or UTF-8 byte order mark
func NewFileSource() *FileSource {
	return &FileSource{
		decoder: func() transform.Transformer {
			return unicode.BOMOverride(unicode.UTF8.NewDecoder())
		},
		readFile: os.ReadFile,
	}
}

// Read loads the document at path. Every stat or read failure wraps
// entities.ErrDocumentNotFound together with its cause.
func (s *FileSource) Read(ctx context.Context, path string) (*entities.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if strings.TrimSpace(path) == "" {
		return nil, entities.ErrNoDocument
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entities.ErrDocumentNotFound, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", entities.ErrDocumentNotFound, path)
	}

	raw, err := s.readFile(path) // #nosec G304 - path is the presentation the user asked for
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", entities.ErrDocumentNotFound, path, err)
	}

	content, _, err := transform.Bytes(s.decoder(), raw)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	return &entities.Document{
		Path:    path,
		Name:    entities.DocumentName(path),
		Content: string(content),
	}, nil
}

// Ensure FileSource implements ports.DocumentSource
var _ ports.DocumentSource = (*FileSource)(nil)

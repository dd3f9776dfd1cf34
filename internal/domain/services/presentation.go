package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/fredcamaral/markdeck/internal/domain/entities"
	"github.com/fredcamaral/markdeck/internal/domain/ports"
)

// PresentationService implements the presentation accessor. It holds no
// document state: every call reads and parses its document again.
type PresentationService struct {
	source ports.DocumentSource
	parser ports.SlideParser
	logger *slog.Logger
}

// NewPresentationService creates a new presentation service instance
func NewPresentationService(source ports.DocumentSource, parser ports.SlideParser, logger *slog.Logger) *PresentationService {
	if logger == nil {
		logger = slog.Default()
	}

	return &PresentationService{
		source: source,
		parser: parser,
		logger: logger.With("component", "presentation"),
	}
}

// ParseContent splits document text into a presentation named name
func (s *PresentationService) ParseContent(name, content string) *entities.Presentation {
	return &entities.Presentation{
		Name:   name,
		Slides: s.parser.Parse(content),
	}
}

// ParseReader reads all of reader and parses it as a presentation named name
func (s *PresentationService) ParseReader(ctx context.Context, name string, reader io.Reader) (*entities.Presentation, error) {
	if reader == nil {
		return nil, errors.New("reader cannot be nil")
	}

	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading content: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return s.ParseContent(name, string(content)), nil
}

// Parse reads the document at path and splits it into slides
func (s *PresentationService) Parse(ctx context.Context, path string) (*entities.Presentation, error) {
	doc, err := s.source.Read(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("loading presentation: %w", err)
	}

	presentation := s.ParseContent(doc.Name, doc.Content)

	s.logger.Debug("Parsed presentation",
		slog.String("path", doc.Path),
		slog.Int("slides", presentation.Total()),
	)

	return presentation, nil
}

// Title returns the presentation title for the document at path
func (s *PresentationService) Title(ctx context.Context, path string) (string, error) {
	presentation, err := s.Parse(ctx, path)
	if err != nil {
		return "", err
	}
	return presentation.Title(), nil
}

// Export returns slides, total and title for the document at path
func (s *PresentationService) Export(ctx context.Context, path string) (*entities.Export, error) {
	presentation, err := s.Parse(ctx, path)
	if err != nil {
		return nil, err
	}
	return presentation.Export(), nil
}

// Ensure PresentationService implements ports.PresentationService
var _ ports.PresentationService = (*PresentationService)(nil)

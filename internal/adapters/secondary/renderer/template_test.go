package renderer

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/markdeck/internal/adapters/secondary/parser"
	"github.com/fredcamaral/markdeck/internal/domain/entities"
	"github.com/fredcamaral/markdeck/internal/test/builders"
)

// failingMarkdown fails every render
type failingMarkdown struct{}

func (failingMarkdown) Render(string) (string, error) {
	return "", errors.New("boom")
}

func TestNewTemplateRenderer(t *testing.T) {
	_, err := NewTemplateRenderer(nil)
	assert.Error(t, err)

	r, err := NewTemplateRenderer(parser.NewDefaultRenderer())
	require.NoError(t, err)
	assert.NotNil(t, r.templates)
}

func TestTemplateRenderer_RenderSlide(t *testing.T) {
	r, err := NewTemplateRenderer(parser.NewDefaultRenderer())
	require.NoError(t, err)

	t.Run("markdown body", func(t *testing.T) {
		rendered, err := r.RenderSlide(entities.NewSlide(2, "# Heading\n\n**bold**", "notes"))

		require.NoError(t, err)
		assert.Equal(t, 2, rendered.Position)
		assert.Contains(t, string(rendered.HTML), "<h1")
		assert.Contains(t, string(rendered.HTML), "<strong>bold</strong>")
		assert.Equal(t, "notes", rendered.Notes)
	})

	t.Run("expanded columns pass through", func(t *testing.T) {
		slides := parser.Parse(":::columns\nLeft\n|||\nRight\n:::")
		require.Len(t, slides, 1)

		rendered, err := r.RenderSlide(slides[0])

		require.NoError(t, err)
		assert.Contains(t, string(rendered.HTML), `<div class="columns-container">`)
		assert.Contains(t, string(rendered.HTML), "<p>Left</p>")
	})

	t.Run("render failure", func(t *testing.T) {
		failing, err := NewTemplateRenderer(failingMarkdown{})
		require.NoError(t, err)

		_, err = failing.RenderSlide(entities.NewSlide(0, "x", ""))
		assert.ErrorContains(t, err, "rendering slide 0")
	})
}

func TestTemplateRenderer_RenderPresentation(t *testing.T) {
	r, err := NewTemplateRenderer(parser.NewDefaultRenderer())
	require.NoError(t, err)

	presentation := &entities.Presentation{Name: "feature", Slides: parser.Parse(builders.FeatureDeck())}

	t.Run("standalone page", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, r.RenderPresentation(context.Background(), &buf, presentation.Export()))

		page := buf.String()
		assert.True(t, strings.HasPrefix(page, "<!DOCTYPE html>"))
		assert.Contains(t, page, "<title>Feature Tour</title>")
		assert.Equal(t, 3, strings.Count(page, `<section class="slide"`))
		assert.Contains(t, page, `<aside class="speaker-notes">Introduce yourself</aside>`)
		assert.Contains(t, page, "<strong>Before</strong>")
		assert.Contains(t, page, "/ 3</div>")
	})

	t.Run("notes are escaped", func(t *testing.T) {
		export := &entities.Export{
			Slides: []entities.Slide{entities.NewSlide(0, "body", "<script>alert(1)</script>")},
			Total:  1,
			Title:  "<T>",
		}

		var buf bytes.Buffer
		require.NoError(t, r.RenderPresentation(context.Background(), &buf, export))

		assert.NotContains(t, buf.String(), "<script>alert(1)</script>")
		assert.Contains(t, buf.String(), "<title>&lt;T&gt;</title>")
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := r.RenderPresentation(ctx, &bytes.Buffer{}, presentation.Export())
		assert.ErrorIs(t, err, context.Canceled)
	})
}

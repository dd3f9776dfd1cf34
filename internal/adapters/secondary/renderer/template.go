package renderer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"

	"github.com/fredcamaral/markdeck/internal/domain/entities"
	"github.com/fredcamaral/markdeck/internal/domain/ports"
)

// RenderedSlide is a slide whose body has been converted to HTML
type RenderedSlide struct {
	Position int
	HTML     template.HTML
	Notes    string
}

// deckData is the template input for a standalone deck
type deckData struct {
	Title  string
	Total  int
	Slides []RenderedSlide
}

// TemplateRenderer renders a presentation into one self-contained HTML page
type TemplateRenderer struct {
	markdown  ports.MarkdownRenderer
	templates *template.Template
}

// NewTemplateRenderer creates a renderer converting slide bodies with markdown
func NewTemplateRenderer(markdown ports.MarkdownRenderer) (*TemplateRenderer, error) {
	if markdown == nil {
		return nil, errors.New("markdown renderer cannot be nil")
	}

	tmpl, err := template.New("deck").Parse(deckTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing deck template: %w", err)
	}

	return &TemplateRenderer{
		markdown:  markdown,
		templates: tmpl,
	}, nil
}

// RenderSlide converts one slide body to HTML. Column blocks in the body are
// already HTML and pass through the markdown renderer untouched.
func (r *TemplateRenderer) RenderSlide(slide entities.Slide) (RenderedSlide, error) {
	html, err := r.markdown.Render(slide.Body)
	if err != nil {
		return RenderedSlide{}, fmt.Errorf("rendering slide %d: %w", slide.Position, err)
	}

	return RenderedSlide{
		Position: slide.Position,
		HTML:     template.HTML(html), // #nosec G203 - output of the configured markdown renderer
		Notes:    slide.Notes,
	}, nil
}

// RenderPresentation writes the whole presentation as a standalone HTML page
func (r *TemplateRenderer) RenderPresentation(ctx context.Context, w io.Writer, export *entities.Export) error {
	data := deckData{
		Title:  export.Title,
		Total:  export.Total,
		Slides: make([]RenderedSlide, 0, len(export.Slides)),
	}

	for _, slide := range export.Slides {
		if err := ctx.Err(); err != nil {
			return err
		}

		rendered, err := r.RenderSlide(slide)
		if err != nil {
			return err
		}
		data.Slides = append(data.Slides, rendered)
	}

	var buf bytes.Buffer
	if err := r.templates.Execute(&buf, data); err != nil {
		return fmt.Errorf("executing deck template: %w", err)
	}

	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("writing deck: %w", err)
	}

	return nil
}

const deckTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <style>
        body { margin: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; background: #1e1e1e; color: #f0f0f0; }
        .slide { display: none; min-height: 100vh; box-sizing: border-box; padding: 4rem 8vw; font-size: 1.6rem; line-height: 1.5; }
        .slide.active { display: block; }
        .slide pre { background: #2d2d2d; padding: 1em; border-radius: 4px; overflow-x: auto; }
        .slide table { border-collapse: collapse; }
        .slide th, .slide td { border: 1px solid #555; padding: 0.4em 0.8em; }
        .columns-container { display: flex; gap: 2rem; }
        .column-left, .column-right { flex: 1; min-width: 0; }
        .speaker-notes { display: none; white-space: pre-wrap; }
        .show-notes .speaker-notes { display: block; margin-top: 2rem; padding: 1rem; background: #2b2b2b; font-size: 1rem; }
        .slide-number { position: fixed; right: 1rem; bottom: 0.6rem; color: #aaa; font-size: 0.9rem; }
    </style>
</head>
<body>
    {{range .Slides}}
    <section class="slide" data-index="{{.Position}}">
        {{.HTML}}
        {{if .Notes}}<aside class="speaker-notes">{{.Notes}}</aside>{{end}}
    </section>
    {{end}}
    <div class="slide-number"><span id="current-slide">1</span> / {{.Total}}</div>
    <script>
        (function () {
            var slides = document.querySelectorAll('.slide');
            var current = 0;
            function show(n) {
                if (slides.length === 0) { return; }
                current = Math.max(0, Math.min(n, slides.length - 1));
                slides.forEach(function (s, i) { s.classList.toggle('active', i === current); });
                document.getElementById('current-slide').textContent = current + 1;
            }
            document.addEventListener('keydown', function (e) {
                if (e.key === 'ArrowRight' || e.key === ' ' || e.key === 'PageDown') { show(current + 1); }
                if (e.key === 'ArrowLeft' || e.key === 'PageUp') { show(current - 1); }
                if (e.key === 'Home') { show(0); }
                if (e.key === 'End') { show(slides.length - 1); }
                if (e.key === 's') { document.body.classList.toggle('show-notes'); }
            });
            show(0);
        })();
    </script>
</body>
</html>
`

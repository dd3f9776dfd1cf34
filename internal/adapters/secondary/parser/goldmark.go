package parser

import (
	"bytes"
	"fmt"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/fredcamaral/markdeck/internal/domain/entities"
	"github.com/fredcamaral/markdeck/internal/domain/ports"
)

// DefaultHighlightStyle is the chroma style used when none is configured
const DefaultHighlightStyle = "github"

// GoldmarkRenderer implements the MarkdownRenderer interface using Goldmark.
// Every call to Render builds its own goldmark instance, so footnote and
// list state never carries over between columns or slides.
type GoldmarkRenderer struct {
	highlight      bool
	highlightStyle string
	sanitizer      *bluemonday.Policy
}

// NewGoldmarkRenderer creates a renderer configured from render settings
func NewGoldmarkRenderer(config entities.RenderConfig) *GoldmarkRenderer {
	r := &GoldmarkRenderer{
		highlight:      config.Highlight,
		highlightStyle: config.HighlightStyle,
	}

	if r.highlightStyle == "" {
		r.highlightStyle = DefaultHighlightStyle
	}

	if config.Sanitize {
		r.sanitizer = createColumnSanitizer()
	}

	return r
}

// NewDefaultRenderer creates a renderer with highlighting on and sanitizing off
func NewDefaultRenderer() *GoldmarkRenderer {
	return NewGoldmarkRenderer(entities.RenderConfig{
		Highlight:      true,
		HighlightStyle: DefaultHighlightStyle,
	})
}

// Render converts a markdown fragment to an HTML fragment
func (r *GoldmarkRenderer) Render(source string) (string, error) {
	var buf bytes.Buffer
	if err := r.newMarkdown().Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}

	out := strings.TrimRight(buf.String(), "\n")
	if r.sanitizer != nil {
		out = r.sanitizer.Sanitize(out)
	}

	return out, nil
}

// newMarkdown builds a fresh goldmark instance
func (r *GoldmarkRenderer) newMarkdown() goldmark.Markdown {
	extensions := []goldmark.Extender{
		extension.Table,          // Tables
		extension.Strikethrough,  // ~~strikethrough~~
		extension.Footnote,       // [^1] footnotes
		extension.DefinitionList, // Term / : definition
	}

	if r.highlight {
		extensions = append(extensions, highlighting.NewHighlighting(
			highlighting.WithStyle(r.highlightStyle),
			highlighting.WithFormatOptions(
				chromahtml.WithClasses(true),
			),
		))
	}

	return goldmark.New(
		goldmark.WithExtensions(extensions...),
		goldmark.WithRendererOptions(
			html.WithUnsafe(), // Allow raw HTML
		),
	)
}

// createColumnSanitizer creates the HTML policy applied to rendered columns
func createColumnSanitizer() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()

	// Highlighted code and nested layout rely on class names
	p.AllowAttrs("class").OnElements("div", "span", "pre", "code")

	return p
}

// Ensure GoldmarkRenderer implements ports.MarkdownRenderer
var _ ports.MarkdownRenderer = (*GoldmarkRenderer)(nil)

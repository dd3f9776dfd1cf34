package parser

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/fredcamaral/markdeck/internal/domain/ports"
)

const (
	columnsOpen  = ":::columns"
	columnsClose = ":::"

	columnsTemplate = `<div class="columns-container">
<div class="column-left">
%s
</div>
<div class="column-right">
%s
</div>
</div>`
)

// separatorPattern splits column content into left and right halves
var separatorPattern = regexp.MustCompile(`\s*\|\|\|\s*`)

// ColumnExpander replaces a :::columns block with pre-rendered HTML
type ColumnExpander struct {
	renderer ports.MarkdownRenderer
	logger   *slog.Logger
}

// NewColumnExpander creates a column expander that renders each side with renderer
func NewColumnExpander(renderer ports.MarkdownRenderer, logger *slog.Logger) *ColumnExpander {
	if logger == nil {
		logger = slog.Default()
	}

	return &ColumnExpander{
		renderer: renderer,
		logger:   logger.With("component", "columns"),
	}
}

// Expand replaces the first column block in content with its HTML form.
// Content without a complete block, or whose block has no ||| separator,
// is returned unchanged.
func (e *ColumnExpander) Expand(content string) string {
	lines := strings.Split(content, "\n")

	start, end, ok := findColumnBlock(lines)
	if !ok {
		return content
	}

	fragment, ok := e.renderBlock(strings.Join(lines[start+1:end], "\n"))
	if !ok {
		return content
	}

	expanded := make([]string, 0, len(lines)-(end-start))
	expanded = append(expanded, lines[:start]...)
	expanded = append(expanded, fragment)
	expanded = append(expanded, lines[end+1:]...)

	return strings.Join(expanded, "\n")
}

// renderBlock renders the inside of a column block. It reports false when
// the block must stay literal.
func (e *ColumnExpander) renderBlock(inner string) (string, bool) {
	parts := separatorPattern.Split(inner, 2)
	if len(parts) != 2 {
		return "", false
	}

	left, err := e.renderer.Render(strings.TrimSpace(parts[0]))
	if err != nil {
		e.logger.Warn("Column render failed, leaving block as text", slog.String("side", "left"), slog.Any("error", err))
		return "", false
	}

	right, err := e.renderer.Render(strings.TrimSpace(parts[1]))
	if err != nil {
		e.logger.Warn("Column render failed, leaving block as text", slog.String("side", "right"), slog.Any("error", err))
		return "", false
	}

	return fmt.Sprintf(columnsTemplate, left, right), true
}

// findColumnBlock locates the first :::columns line and the ::: line closing it
func findColumnBlock(lines []string) (start, end int, ok bool) {
	for i, line := range lines {
		if strings.TrimSpace(line) != columnsOpen {
			continue
		}

		if j := findColumnsClose(lines, i+1); j >= 0 {
			return i, j, true
		}
		return 0, 0, false
	}

	return 0, 0, false
}

// findColumnsClose returns the index of the first ::: line at or after from, or -1
func findColumnsClose(lines []string, from int) int {
	for j := from; j < len(lines); j++ {
		if strings.TrimSpace(lines[j]) == columnsClose {
			return j
		}
	}
	return -1
}

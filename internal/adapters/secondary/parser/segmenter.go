package parser

import (
	"log/slog"
	"strings"

	"github.com/fredcamaral/markdeck/internal/domain/entities"
	"github.com/fredcamaral/markdeck/internal/domain/ports"
)

// SlideDelimiter separates slides when it stands alone on a line
const SlideDelimiter = "---"

// Segmenter splits a markdown document into slides and builds each slide
type Segmenter struct {
	notes   *NotesExtractor
	columns *ColumnExpander
}

// NewSegmenter creates a segmenter rendering column blocks with renderer
func NewSegmenter(renderer ports.MarkdownRenderer, logger *slog.Logger) *Segmenter {
	return &Segmenter{
		notes:   NewNotesExtractor(),
		columns: NewColumnExpander(renderer, logger),
	}
}

// Parse splits content into slides using the default renderer
func Parse(content string) []entities.Slide {
	return NewSegmenter(NewDefaultRenderer(), nil).Parse(content)
}

// Parse implements the SlideParser interface
func (s *Segmenter) Parse(content string) []entities.Slide {
	segments := SplitSlides(content)

	slides := make([]entities.Slide, 0, len(segments))
	for i, segment := range segments {
		slides = append(slides, s.buildSlide(i, segment))
	}

	return slides
}

// buildSlide extracts notes before expanding columns so a notes comment is
// never captured inside a column block
func (s *Segmenter) buildSlide(position int, segment string) entities.Slide {
	body, notes := s.notes.ExtractNotes(segment)
	body = s.columns.Expand(body)

	return entities.NewSlide(position, body, notes)
}

// SplitSlides splits content on delimiter lines and returns the trimmed,
// non-empty segments in order. A delimiter line inside a closed code fence
// is code and does not split. Notes comments and column blocks get no such
// protection: a delimiter inside one splits it, leaving both halves as
// literal text in their own slides.
func SplitSlides(content string) []string {
	lines := strings.Split(normalizeLineEndings(content), "\n")
	protected := fencedLines(lines)

	var segments []string
	start := 0

	flush := func(end int) {
		segment := strings.TrimSpace(strings.Join(lines[start:end], "\n"))
		if segment != "" && segment != SlideDelimiter {
			segments = append(segments, segment)
		}
	}

	for i, line := range lines {
		if line == SlideDelimiter && !protected[i] {
			flush(i)
			start = i + 1
		}
	}
	flush(len(lines))

	return segments
}

// normalizeLineEndings converts \r\n and \r to \n and drops a leading BOM
func normalizeLineEndings(content string) string {
	content = strings.TrimPrefix(content, "\ufeff")
	content = strings.ReplaceAll(content, "\r\n", "\n")
	return strings.ReplaceAll(content, "\r", "\n")
}

// fencedLines marks the lines strictly inside closed code fences. A fence
// closes at the next fence line of the same character that is at least as
// long and carries no info string, wherever it is. An opener with no closer
// protects nothing.
func fencedLines(lines []string) []bool {
	protected := make([]bool, len(lines))

	for i := 0; i < len(lines); i++ {
		end := fenceEnd(lines, i)
		if end < 0 {
			continue
		}
		for j := i + 1; j < end; j++ {
			protected[j] = true
		}
		i = end
	}

	return protected
}

// fenceEnd returns the line closing the fence opened at line i, or -1 when
// line i opens no fence or the fence is never closed
func fenceEnd(lines []string, i int) int {
	fence := fenceMarker(lines[i])
	if fence == "" {
		return -1
	}

	for j := i + 1; j < len(lines); j++ {
		if closesFence(lines[j], fence) {
			return j
		}
	}

	return -1
}

// fenceMarker returns the backtick or tilde run opening a code fence, or ""
func fenceMarker(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 {
		return ""
	}

	for _, marker := range []string{"```", "~~~"} {
		if strings.HasPrefix(trimmed, marker) {
			rest := strings.TrimLeft(trimmed, marker[:1])
			return trimmed[:len(trimmed)-len(rest)]
		}
	}

	return ""
}

// closesFence reports whether line closes a fence opened with fence
func closesFence(line, fence string) bool {
	trimmed := strings.TrimSpace(line)
	return len(trimmed) >= len(fence) && strings.Trim(trimmed, fence[:1]) == ""
}

// Ensure Segmenter implements ports.SlideParser
var _ ports.SlideParser = (*Segmenter)(nil)

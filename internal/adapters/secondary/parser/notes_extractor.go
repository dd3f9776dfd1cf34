package parser

import (
	"regexp"
	"strings"
)

// notesPattern matches an HTML comment whose content starts with NOTES:
var notesPattern = regexp.MustCompile(`(?is)<!--\s*NOTES:\s*(.*?)\s*-->`)

// NotesExtractor handles extraction of speaker notes from slide content
type NotesExtractor struct {
	pattern *regexp.Regexp
}

// NewNotesExtractor creates a new notes extractor
func NewNotesExtractor() *NotesExtractor {
	return &NotesExtractor{
		pattern: notesPattern,
	}
}

// ExtractNotes separates the first notes comment from the slide body.
// Only the first block is removed; any later notes comments stay in the
// body untouched. Both results are trimmed.
func (e *NotesExtractor) ExtractNotes(content string) (body string, notes string) {
	loc := e.pattern.FindStringSubmatchIndex(content)
	if loc == nil {
		return strings.TrimSpace(content), ""
	}

	notes = strings.TrimSpace(content[loc[2]:loc[3]])
	body = strings.TrimSpace(content[:loc[0]] + content[loc[1]:])

	return body, notes
}

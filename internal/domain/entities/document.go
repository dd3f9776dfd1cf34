package entities

import (
	"errors"
	"path/filepath"
	"strings"
)

var (
	// ErrDocumentNotFound is returned when a source document cannot be
	// located or read
	ErrDocumentNotFound = errors.New("document not found")

	// ErrNoDocument is returned when no document path was given
	ErrNoDocument = errors.New("no presentation file specified")
)

// Document is the markdown source of a presentation
type Document struct {
	// Path is the location the document was read from
	Path string

	// Name is the identifying name of the document (file stem)
	Name string

	// Content is the decoded UTF-8 document text
	Content string
}

// DocumentName returns the file stem of path, e.g. "talk" for "/tmp/talk.md"
func DocumentName(path string) string {
	base := filepath.Base(path)
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	if stem := strings.TrimSuffix(base, filepath.Ext(base)); stem != "" {
		return stem
	}
	return base
}

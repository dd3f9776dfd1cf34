package http

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/fredcamaral/markdeck/internal/domain/entities"
)

//go:embed static
var staticFiles embed.FS

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string    `json:"error"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

// HealthResponse is the body of the health check
type HealthResponse struct {
	Status string `json:"status"`
}

// handleIndex serves the embedded viewer page
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page, err := staticFiles.ReadFile("static/index.html")
	if err != nil {
		s.handleError(w, err, "", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(page); err != nil {
		s.logger.Error("Failed to write index response: %v", err)
	}
}

// handleHealth reports that the server is up
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// handleSlides parses the requested document and returns its export.
// The file query parameter overrides the configured document.
func (s *Server) handleSlides(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimSpace(r.URL.Query().Get("file"))
	if path == "" {
		path = s.config.Document
	}

	if path == "" {
		s.handleError(w, entities.ErrNoDocument, "No presentation file specified", http.StatusBadRequest)
		return
	}

	export, err := s.presenter.Export(r.Context(), path)
	switch {
	case err == nil:
		s.writeJSON(w, http.StatusOK, export)
	case errors.Is(err, entities.ErrNoDocument):
		s.handleError(w, err, "No presentation file specified", http.StatusBadRequest)
	case errors.Is(err, entities.ErrDocumentNotFound):
		s.handleError(w, err, fmt.Sprintf("File not found: %s", path), http.StatusNotFound)
	default:
		s.handleError(w, err, "Error parsing file", http.StatusInternalServerError)
	}
}

// staticHandler serves the embedded assets under /static/
func staticHandler() http.Handler {
	assets, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("embedded static assets: %v", err))
	}

	files := http.StripPrefix("/static/", http.FileServer(http.FS(assets)))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// No directory listings
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Cache-Control", "public, max-age=3600")
		files.ServeHTTP(w, r)
	})
}

// writeJSON encodes body as the JSON response
func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("Failed to encode JSON response: %v", err)
	}
}

// handleError handles error responses with sanitized messages. The full
// error is logged; the client sees message, or a generic text when empty.
func (s *Server) handleError(w http.ResponseWriter, err error, message string, status int) {
	if message == "" {
		switch status {
		case http.StatusBadRequest:
			message = "Invalid request"
		case http.StatusNotFound:
			message = "Resource not found"
		case http.StatusMethodNotAllowed:
			message = "Method not allowed"
		default:
			message = "An internal error occurred"
		}
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error("HTTP %d: %v", status, err)
	} else {
		s.logger.Debug("HTTP %d: %v", status, err)
	}

	s.writeJSON(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Time:    time.Now(),
	})
}

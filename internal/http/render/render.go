// Package render holds the response and upload helpers shared by handlers.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
)

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// ParseUpload caps the request body at maxBytes and parses it as multipart.
func ParseUpload(w http.ResponseWriter, r *http.Request, maxBytes int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		return fmt.Errorf("failed to parse form: %w", err)
	}

	return nil
}

// OpenFile returns the named upload, or nil when the field is absent.
func OpenFile(r *http.Request, field string) (multipart.File, error) {
	file, _, err := r.FormFile(field)
	if err == http.ErrMissingFile {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("reading %s upload: %w", field, err)
	}

	return file, nil
}

// Close closes an optional upload.
func Close(c io.Closer) {
	if c == nil {
		return
	}

	if err := c.Close(); err != nil {
		slog.Warn("failed to close upload", "error", err)
	}
}

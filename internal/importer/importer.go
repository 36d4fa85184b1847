// Package importer reads the CSV exports the pipelines consume: bank
// statements, the shared-expense sheet and grocery receipts. Input is
// normalised to UTF-8 before parsing.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/MrJamesThe3rd/tally/internal/encoding"
)

var (
	ErrColumnNotFound = errors.New("required column not found")
	ErrEmptyInput     = errors.New("empty input")
)

func readRows(r io.Reader) ([][]string, error) {
	utf8r, err := encoding.ToUTF8(r)
	if err != nil {
		return nil, fmt.Errorf("detecting encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}

	return rows, nil
}

// cell returns the trimmed value at i, or "" when the row is short.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[i])
}

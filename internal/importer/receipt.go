package importer

import (
	"fmt"
	"io"
	"strings"
)

// ReceiptColumn is the header of the grocery column in store receipt exports.
const ReceiptColumn = "EPICERIE"

// ParseReceipt extracts the EPICERIE cell of every data row, in order. Rows
// too short to hold the column yield an empty line so the tokenizer sees the
// same line positions as the export.
func ParseReceipt(r io.Reader) ([]string, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("receipt: %w", ErrEmptyInput)
	}

	col := -1

	for i, h := range rows[0] {
		if strings.TrimSpace(h) == ReceiptColumn {
			col = i
			break
		}
	}

	if col == -1 {
		return nil, fmt.Errorf("receipt: %w: %q", ErrColumnNotFound, ReceiptColumn)
	}

	lines := make([]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		lines = append(lines, cell(row, col))
	}

	return lines, nil
}

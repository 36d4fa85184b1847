package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
)

// WriteCSV renders the report as RFC 4180 CSV. Cells containing a comma are
// quoted, and so are cells with a leading space, a double quote or a line
// break; embedded quotes are doubled. ReadCSV reverses it exactly.
func (r Report) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	for _, row := range r {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// CSV is WriteCSV into a string.
func (r Report) CSV() (string, error) {
	var buf bytes.Buffer
	if err := r.WriteCSV(&buf); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// ReadCSV parses a report previously rendered with WriteCSV.
func ReadCSV(rd io.Reader) (Report, error) {
	cr := csv.NewReader(rd)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv report: %w", err)
	}

	out := make(Report, len(records))
	for i, rec := range records {
		out[i] = Row(rec)
	}

	return out, nil
}

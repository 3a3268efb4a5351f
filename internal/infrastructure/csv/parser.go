// Package csv implements the line-oriented tabular text format used by the
// lead import and export boundary. Import parsing is deliberately naive:
// values are split on commas with no quote or escape handling, matching the
// documented format limitation. Export is the writer half and quotes values
// that contain commas.
package csv

import (
	"strings"
)

// Row is one parsed data row with its 1-indexed line number in the original
// payload (the header is line 1, so the first data row is line 2).
type Row struct {
	LineNumber int
	Data       map[string]string
}

// Get returns the value for a column by header name
func (r *Row) Get(header string) string {
	return r.Data[header]
}

// Has reports whether the column is present and non-empty
func (r *Row) Has(header string) bool {
	return r.Data[header] != ""
}

// IsEmpty returns true if the row has no non-empty values
func (r *Row) IsEmpty() bool {
	for _, v := range r.Data {
		if v != "" {
			return false
		}
	}
	return true
}

// Table is a parsed payload: a header row plus data rows. Columns are matched
// by header name, not position.
type Table struct {
	Headers []string
	Rows    []Row

	// RawRowCount counts every data line including blank ones, which is what
	// row limits are checked against.
	RawRowCount int
}

// HasHeader checks if a header exists
func (t *Table) HasHeader(name string) bool {
	for _, h := range t.Headers {
		if h == name {
			return true
		}
	}
	return false
}

// MissingHeaders returns the required headers absent from the table
func (t *Table) MissingHeaders(required []string) []string {
	var missing []string
	for _, h := range required {
		if !t.HasHeader(h) {
			missing = append(missing, h)
		}
	}
	return missing
}

// Parse splits a raw payload into a header-mapped table. Blank data lines are
// skipped (but still counted in RawRowCount); rows with fewer cells than
// headers leave the trailing columns empty.
func Parse(raw string) (*Table, error) {
	lines := strings.Split(strings.TrimSpace(raw), "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		return nil, ErrMissingHeader
	}

	headers := splitCells(lines[0])
	table := &Table{
		Headers:     headers,
		RawRowCount: len(lines) - 1,
	}

	for i, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		cells := splitCells(line)
		row := Row{
			// Header is line 1, so data row i sits at line i+2.
			LineNumber: i + 2,
			Data:       make(map[string]string, len(headers)),
		}
		for j, h := range headers {
			if j < len(cells) {
				row.Data[h] = cells[j]
			} else {
				row.Data[h] = ""
			}
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

func splitCells(line string) []string {
	parts := strings.Split(line, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

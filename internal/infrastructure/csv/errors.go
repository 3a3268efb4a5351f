package csv

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Common parse errors
var (
	// ErrMissingHeader is returned when the payload has no header row
	ErrMissingHeader = errors.New("CSV payload missing header row")
)

// RowErrors holds the ordered error messages for one data row, addressed by
// its line number in the original file.
type RowErrors struct {
	Row    int      `json:"row"`
	Errors []string `json:"errors"`
}

// ErrorCollection accumulates per-row errors across a full scan of the
// payload so every failing row is reported together.
type ErrorCollection struct {
	rows map[int][]string
}

// NewErrorCollection creates an empty ErrorCollection
func NewErrorCollection() *ErrorCollection {
	return &ErrorCollection{rows: make(map[int][]string)}
}

// Add appends a message to a row's error list
func (ec *ErrorCollection) Add(row int, message string) {
	ec.rows[row] = append(ec.rows[row], message)
}

// AddFieldErrors appends "field: msg, msg" entries for each failing field,
// in the order given by fields.
func (ec *ErrorCollection) AddFieldErrors(row int, fields []string, messages map[string][]string) {
	for _, f := range fields {
		ec.Add(row, fmt.Sprintf("%s: %s", f, strings.Join(messages[f], ", ")))
	}
}

// HasErrors returns true if any row failed
func (ec *ErrorCollection) HasErrors() bool {
	return len(ec.rows) > 0
}

// Rows returns the collected errors ordered by row number
func (ec *ErrorCollection) Rows() []RowErrors {
	out := make([]RowErrors, 0, len(ec.rows))
	for row, msgs := range ec.rows {
		out = append(out, RowErrors{Row: row, Errors: msgs})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Row < out[j].Row })
	return out
}

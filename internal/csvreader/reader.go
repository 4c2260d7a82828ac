// Package csvreader reads the talk spreadsheet export into ordered raw rows.
//
// The reader only checks structure: a usable header row naming every
// required column, and the same number of fields on every data row. Cell
// contents are returned verbatim; interpreting them is the validator's job.
package csvreader

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrParse marks a structurally broken CSV. It is always fatal.
var ErrParse = errors.New("malformed CSV")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseError reports a structural problem at a CSV line.
type ParseError struct {
	Path   string
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	loc := e.Path
	if loc == "" {
		loc = "csv"
	}
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", loc, e.Line, e.Reason)
	}
	return fmt.Sprintf("%s: %s", loc, e.Reason)
}

// Unwrap lets callers match ParseError with errors.Is(err, ErrParse).
func (e *ParseError) Unwrap() error { return ErrParse }

// Table is the parsed spreadsheet: header cells in declared order and the
// data rows below them.
type Table struct {
	Header []string
	Rows   []Row

	columns map[Column]int
}

// Row is one data row. Values are in header order.
type Row struct {
	Line   int
	Values []string

	table *Table
}

// Field is one named cell.
type Field struct {
	Name  string
	Value string
}

// Get returns the raw cell for a canonical column, accepting any known
// header alias. Missing optional columns read as "".
func (r Row) Get(col Column) string {
	if r.table == nil {
		return ""
	}
	idx, ok := r.table.columns[col]
	if !ok || idx >= len(r.Values) {
		return ""
	}
	return r.Values[idx]
}

// Fields returns the row as name/value pairs in header order.
func (r Row) Fields() []Field {
	if r.table == nil {
		return nil
	}
	out := make([]Field, len(r.Values))
	for i, v := range r.Values {
		out[i] = Field{Name: r.table.Header[i], Value: v}
	}
	return out
}

// Has reports whether the header declares the column under any alias.
func (t *Table) Has(col Column) bool {
	_, ok := t.columns[col]
	return ok
}

// ReadFile opens path and parses it with Read.
func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path) // #nosec G304 -- input path is user-provided
	if err != nil {
		return nil, fmt.Errorf("opening CSV: %w", err)
	}
	defer f.Close()

	table, err := Read(f)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return nil, err
	}
	return table, nil
}

// Read parses CSV from r. The first record is the header row.
func Read(r io.Reader) (*Table, error) {
	cr := csv.NewReader(skipBOM(r))
	cr.FieldsPerRecord = 0

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &ParseError{Reason: "missing header row"}
	}
	if err != nil {
		return nil, wrapCSVError(err)
	}

	header = cleanHeader(header)
	table := &Table{Header: header, columns: resolveColumns(header)}

	if missing := missingColumns(table); len(missing) > 0 {
		return nil, &ParseError{Line: 1, Reason: "header missing required columns: " + strings.Join(missing, ", ")}
	}

	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, wrapCSVError(err)
		}
		line, _ := cr.FieldPos(0)
		if isBlank(record) {
			continue
		}
		table.Rows = append(table.Rows, Row{Line: line, Values: record, table: table})
	}

	return table, nil
}

func cleanHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		out[i] = strings.TrimSpace(h)
	}
	return out
}

// skipBOM drops a leading UTF-8 byte order mark, which spreadsheet exports
// often prepend.
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}
	return br
}

func missingColumns(t *Table) []string {
	var missing []string
	for _, col := range RequiredColumns {
		if !t.Has(col) {
			missing = append(missing, string(col))
		}
	}
	return missing
}

// isBlank reports whether every cell is empty, as spreadsheet tools emit for
// trailing rows.
func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func wrapCSVError(err error) error {
	var ce *csv.ParseError
	if errors.As(err, &ce) {
		reason := ce.Err.Error()
		if errors.Is(ce.Err, csv.ErrFieldCount) {
			reason = "row has a different number of fields than the header"
		}
		return &ParseError{Line: ce.Line, Reason: reason}
	}
	return &ParseError{Reason: err.Error()}
}

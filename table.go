package tradepnl

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Table is one parsed tabular file: a header and its data rows, with cells
// addressable by column name. Exchange exports prefix the CSV with a title
// line, so the first line is always skipped and the second is the header.
type Table struct {
	Name    string
	columns []string
	index   map[string]int
	rows    [][]string
}

// NewTable builds a table directly from a header and rows. Used by tests
// and by callers that already hold parsed data.
func NewTable(name string, columns []string, rows ...[]string) *Table {
	t := &Table{Name: name, columns: columns, index: make(map[string]int, len(columns))}
	for i, c := range columns {
		t.index[strings.TrimSpace(c)] = i
	}
	t.rows = rows
	return t
}

// ReadTable reads a comma-separated export from r. Exports come UTF-8,
// UTF-8 with BOM, or UTF-16; the BOM decides, defaulting to plain UTF-8.
func ReadTable(name string, r io.Reader) (*Table, error) {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	cr := csv.NewReader(transform.NewReader(r, dec))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	// Title line.
	if _, err := cr.Read(); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("file %q is empty", name)
		}
		return nil, fmt.Errorf("cannot read title line of %q: %w", name, err)
	}

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("file %q has no header line", name)
		}
		return nil, fmt.Errorf("cannot read header of %q: %w", name, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows [][]string
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read row of %q: %w", name, err)
		}
		if blankRow(row) {
			continue
		}
		rows = append(rows, row)
	}
	return NewTable(name, header, rows...), nil
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Has reports whether the table carries the named column.
func (t *Table) Has(column string) bool {
	_, ok := t.index[column]
	return ok
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.rows) }

// Cell returns the trimmed cell at row i for the named column. The ok
// result is false when the column is not present in this table; a row too
// short for its column index yields an empty present cell.
func (t *Table) Cell(i int, column string) (string, bool) {
	j, ok := t.index[column]
	if !ok {
		return "", false
	}
	row := t.rows[i]
	if j >= len(row) {
		return "", true
	}
	return strings.TrimSpace(row[j]), true
}

// amountAt parses the cell as an Amount, returning the absent marker when
// the column does not exist in this table.
func (t *Table) amountAt(i int, column string) Amount {
	cell, ok := t.Cell(i, column)
	if !ok {
		return Absent()
	}
	return ParseAmount(cell)
}

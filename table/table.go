package table

import (
	"errors"
	"fmt"
)

// ErrNoColumn is returned when an operation names a column the table
// does not have.
var ErrNoColumn = errors.New("no such column")

// ErrColumnExists is returned when adding a column whose name is taken.
var ErrColumnExists = errors.New("column already exists")

// Row maps column names to cell values. Cells for columns the row does
// not mention read as the empty string.
type Row map[string]string

// Table is an ordered set of rows sharing an ordered set of columns.
type Table struct {
	columns []string
	index   map[string]bool
	rows    []Row
}

func New(columns ...string) *Table {
	t := &Table{
		columns: append([]string(nil), columns...),
		index:   make(map[string]bool, len(columns)),
	}
	for _, c := range columns {
		t.index[c] = true
	}
	return t
}

func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

func (t *Table) HasColumn(name string) bool {
	return t.index[name]
}

// CheckColumn returns a configuration error if the named column is
// missing from the table.
func (t *Table) CheckColumn(name string) error {
	if !t.HasColumn(name) {
		return fmt.Errorf("%w: %q", ErrNoColumn, name)
	}
	return nil
}

// AddColumn appends a new column. Existing rows read as empty in it.
func (t *Table) AddColumn(name string) error {
	if t.HasColumn(name) {
		return fmt.Errorf("%w: %q", ErrColumnExists, name)
	}
	t.columns = append(t.columns, name)
	t.index[name] = true
	return nil
}

func (t *Table) Len() int {
	return len(t.rows)
}

// Row returns the i-th row. The returned map is the table's own; mutate
// it to update the table in place.
func (t *Table) Row(i int) Row {
	return t.rows[i]
}

// Append adds a row. Values under column names the table does not have
// are kept but invisible until the column is added.
func (t *Table) Append(row Row) {
	if row == nil {
		row = Row{}
	}
	t.rows = append(t.rows, row)
}

// Clone deep-copies the table.
func (t *Table) Clone() *Table {
	out := New(t.columns...)
	for _, row := range t.rows {
		dup := make(Row, len(row))
		for k, v := range row {
			dup[k] = v
		}
		out.Append(dup)
	}
	return out
}

// Select returns a new table holding only the rows whose mask entry is
// true, in the original order. The mask must cover every row.
func (t *Table) Select(mask []bool) (*Table, error) {
	if len(mask) != len(t.rows) {
		return nil, fmt.Errorf("mask covers %d rows, table has %d", len(mask), len(t.rows))
	}
	out := New(t.columns...)
	for i, keep := range mask {
		if !keep {
			continue
		}
		dup := make(Row, len(t.rows[i]))
		for k, v := range t.rows[i] {
			dup[k] = v
		}
		out.Append(dup)
	}
	return out, nil
}

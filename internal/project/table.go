package project

import (
	"fmt"
	"slices"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/memory"

	"hdrnorm/internal/header"
	"hdrnorm/internal/keyword"
)

// Table is an ordered set of uniquely named columns of equal length.
type Table struct {
	rows int
	cols []*Column
}

// NewTable creates an empty table of the given row count.
func NewTable(rows int) (*Table, error) {
	if rows < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRows, rows)
	}

	return &Table{rows: rows}, nil
}

// Rows returns the row count.
func (t *Table) Rows() int {
	return t.rows
}

// Len returns the number of columns.
func (t *Table) Len() int {
	return len(t.cols)
}

// Add appends col.
func (t *Table) Add(col *Column) error {
	if col.Len() != t.rows {
		return fmt.Errorf("%w: column %q has %d entries, table has %d rows",
			ErrLengthMismatch, col.Name, col.Len(), t.rows)
	}

	if t.index(col.Name) >= 0 {
		return fmt.Errorf("%w: %q", ErrDuplicateColumn, col.Name)
	}

	t.cols = append(t.cols, col)

	return nil
}

// Rename renames a column in place, keeping its position.
func (t *Table) Rename(old, name string) error {
	i := t.index(old)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrNoColumn, old)
	}

	if old == name {
		return nil
	}

	if t.index(name) >= 0 {
		return fmt.Errorf("%w: %q", ErrDuplicateColumn, name)
	}

	t.cols[i] = t.cols[i].withName(name)

	return nil
}

// Drop removes a column. It reports whether the column existed.
func (t *Table) Drop(name string) bool {
	i := t.index(name)
	if i < 0 {
		return false
	}

	t.cols = slices.Delete(t.cols, i, i+1)

	return true
}

// Column returns the named column.
func (t *Table) Column(name string) (*Column, bool) {
	i := t.index(name)
	if i < 0 {
		return nil, false
	}

	return t.cols[i], true
}

// Columns returns the columns in order.
func (t *Table) Columns() []*Column {
	return slices.Clone(t.cols)
}

// Names returns the column names in order.
func (t *Table) Names() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.Name
	}

	return names
}

func (t *Table) index(name string) int {
	return slices.IndexFunc(t.cols, func(c *Column) bool { return c.Name == name })
}

// Schema returns the arrow schema of the table.
func (t *Table) Schema() (*arrow.Schema, error) {
	fields := make([]arrow.Field, len(t.cols))

	for i, c := range t.cols {
		f, err := c.Field()
		if err != nil {
			return nil, err
		}

		fields[i] = f
	}

	return arrow.NewSchema(fields, nil), nil
}

// Record builds an arrow record batch from the table. The caller must
// Release the record.
func (t *Table) Record(mem memory.Allocator) (arrow.Record, error) {
	schema, err := t.Schema()
	if err != nil {
		return nil, err
	}

	arrs := make([]arrow.Array, 0, len(t.cols))

	defer func() {
		for _, a := range arrs {
			a.Release()
		}
	}()

	for _, c := range t.cols {
		a, err := c.Arrow(mem)
		if err != nil {
			return nil, err
		}

		arrs = append(arrs, a)
	}

	return array.NewRecord(schema, arrs, int64(t.rows)), nil
}

// AddHeaderColumn projects spec from h over the table rows and adds the
// resulting column.
func AddHeaderColumn(t *Table, h *header.Header, spec keyword.Spec, unit string, opts ...Option) error {
	col, err := Project(h, spec, t.rows, unit, opts...)
	if err != nil {
		return err
	}

	return t.Add(col)
}

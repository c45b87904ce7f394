package project

import (
	"fmt"
	"slices"

	"hdrnorm/internal/header"
	"hdrnorm/internal/keyword"
)

// Column is a named, unit-tagged sequence of header values.
type Column struct {
	Name   string
	Unit   string
	Kind   header.Kind
	Values []header.Value
}

// Len returns the number of entries.
func (c *Column) Len() int {
	return len(c.Values)
}

// At returns entry i.
func (c *Column) At(i int) header.Value {
	return c.Values[i]
}

// withName returns a copy of c under another name. Values are shared.
func (c *Column) withName(name string) *Column {
	renamed := *c
	renamed.Name = name

	return &renamed
}

type options struct {
	joinSep string
}

// Option configures Project.
type Option func(*options)

// WithJoinSeparator sets the separator joining the matched keys of a keyword
// sequence. Defaults to keyword.DefaultJoinSeparator.
func WithJoinSeparator(sep string) Option {
	return func(o *options) {
		o.joinSep = sep
	}
}

// Project resolves spec in h and returns a column of rows entries, each equal
// to the resolved value. The column is named after the resolved key and
// tagged with unit, or with the resolved unit when unit is empty.
//
// Resolution errors, including *keyword.NotFoundError, are returned as is.
// h is not modified.
func Project(h *header.Header, spec keyword.Spec, rows int, unit string, opts ...Option) (*Column, error) {
	o := options{joinSep: keyword.DefaultJoinSeparator}
	for _, opt := range opts {
		opt(&o)
	}

	if rows < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRows, rows)
	}

	r, err := keyword.Resolve(h, spec, o.joinSep)
	if err != nil {
		return nil, err
	}

	if !r.Value.Kind().IsScalar() {
		return nil, fmt.Errorf("%w: %q holds a %v", ErrNotScalar, r.Name, r.Value.Kind())
	}

	if unit == "" {
		unit = r.Unit
	}

	return &Column{
		Name:   r.Name,
		Unit:   unit,
		Kind:   r.Value.Kind(),
		Values: slices.Repeat([]header.Value{r.Value}, rows),
	}, nil
}

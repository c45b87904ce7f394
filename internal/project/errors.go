package project

import "errors"

var (
	// ErrInvalidRows reports a negative row count.
	ErrInvalidRows = errors.New("row count must not be negative")

	// ErrNotScalar reports a nested header where a column value was expected.
	ErrNotScalar = errors.New("value is not a scalar")

	// ErrKindMismatch reports a column value whose kind differs from the column kind.
	ErrKindMismatch = errors.New("value kind does not match column kind")

	// ErrLengthMismatch reports a column whose length differs from the table row count.
	ErrLengthMismatch = errors.New("column length does not match table rows")

	// ErrDuplicateColumn reports a column name already present in the table.
	ErrDuplicateColumn = errors.New("duplicate column")

	// ErrNoColumn reports a column name missing from the table.
	ErrNoColumn = errors.New("no such column")
)

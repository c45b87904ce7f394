package project

import (
	"fmt"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/memory"

	"hdrnorm/internal/header"
)

// UnitMetadataKey is the arrow field metadata key holding a column unit.
const UnitMetadataKey = "unit"

// DataType returns the arrow type of the column kind. Nested and invalid
// kinds have no arrow type.
func (c *Column) DataType() (arrow.DataType, error) {
	switch c.Kind {
	case header.KindString:
		return arrow.BinaryTypes.String, nil
	case header.KindInt:
		return arrow.PrimitiveTypes.Int64, nil
	case header.KindFloat:
		return arrow.PrimitiveTypes.Float64, nil
	case header.KindBool:
		return arrow.FixedWidthTypes.Boolean, nil
	case header.KindNull:
		return arrow.Null, nil
	default:
		return nil, fmt.Errorf("%w: column %q has kind %v", ErrNotScalar, c.Name, c.Kind)
	}
}

// Field describes the column as an arrow field. A non-empty unit is stored
// under UnitMetadataKey.
func (c *Column) Field() (arrow.Field, error) {
	dt, err := c.DataType()
	if err != nil {
		return arrow.Field{}, err
	}

	f := arrow.Field{Name: c.Name, Type: dt, Nullable: true}
	if c.Unit != "" {
		f.Metadata = arrow.NewMetadata([]string{UnitMetadataKey}, []string{c.Unit})
	}

	return f, nil
}

// Arrow builds an arrow array holding the column values. Null entries become
// arrow nulls. The caller must Release the array.
func (c *Column) Arrow(mem memory.Allocator) (arrow.Array, error) {
	switch c.Kind {
	case header.KindString:
		return build(c, array.NewStringBuilder(mem), header.Value.AsString)
	case header.KindInt:
		return build(c, array.NewInt64Builder(mem), header.Value.AsInt)
	case header.KindFloat:
		return build(c, array.NewFloat64Builder(mem), header.Value.AsFloat)
	case header.KindBool:
		return build(c, array.NewBooleanBuilder(mem), header.Value.AsBool)
	case header.KindNull:
		for i, v := range c.Values {
			if v.Kind() != header.KindNull {
				return nil, mismatch(c, i, v)
			}
		}

		return array.NewNull(c.Len()), nil
	default:
		_, err := c.DataType()

		return nil, err
	}
}

type builder[T any] interface {
	Append(v T)
	AppendNull()
	Reserve(n int)
	NewArray() arrow.Array
	Release()
}

func build[T any](c *Column, b builder[T], get func(header.Value) (T, bool)) (arrow.Array, error) {
	defer b.Release()

	b.Reserve(c.Len())

	for i, v := range c.Values {
		if v.Kind() == header.KindNull {
			b.AppendNull()
			continue
		}

		x, ok := get(v)
		if !ok {
			return nil, mismatch(c, i, v)
		}

		b.Append(x)
	}

	return b.NewArray(), nil
}

func mismatch(c *Column, i int, v header.Value) error {
	return fmt.Errorf("%w: column %q is %v, entry %d is %v", ErrKindMismatch, c.Name, c.Kind, i, v.Kind())
}

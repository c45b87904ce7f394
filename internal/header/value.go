package header

import (
	"fmt"
	"math"
	"strconv"
)

// Value is a header value: a scalar or a nested Header.
// The zero Value is invalid; use the constructors.
type Value struct {
	kind   Kind
	scalar any
	nested *Header
}

// String returns a string scalar.
func String(s string) Value {
	return Value{kind: KindString, scalar: s}
}

// Int returns an integer scalar.
func Int(i int64) Value {
	return Value{kind: KindInt, scalar: i}
}

// Float returns a floating-point scalar.
func Float(f float64) Value {
	return Value{kind: KindFloat, scalar: f}
}

// Bool returns a boolean scalar.
func Bool(b bool) Value {
	return Value{kind: KindBool, scalar: b}
}

// Null returns the null scalar.
func Null() Value {
	return Value{kind: KindNull}
}

// Nested wraps h as a value. A nil h is treated as an empty header.
func Nested(h *Header) Value {
	if h == nil {
		h = New()
	}

	return Value{kind: KindNested, nested: h}
}

// ScalarOf classifies a Go value into a Value.
// Signed and unsigned integers of every width become KindInt, float32 and
// float64 become KindFloat. A *Header or map[string]any becomes a nested value.
func ScalarOf(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case Value:
		return x, nil
	case string:
		return String(x), nil
	case bool:
		return Bool(x), nil
	case int:
		return Int(int64(x)), nil
	case int8:
		return Int(int64(x)), nil
	case int16:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case uint:
		return uintValue(uint64(x))
	case uint8:
		return Int(int64(x)), nil
	case uint16:
		return Int(int64(x)), nil
	case uint32:
		return Int(int64(x)), nil
	case uint64:
		return uintValue(x)
	case float32:
		return Float(float64(x)), nil
	case float64:
		return Float(x), nil
	case *Header:
		return Nested(x), nil
	case map[string]any:
		h, err := FromMap(x)
		if err != nil {
			return Value{}, err
		}

		return Nested(h), nil
	default:
		return Value{}, fmt.Errorf("unsupported header value type %T", v)
	}
}

func uintValue(u uint64) (Value, error) {
	if u > math.MaxInt64 {
		return Value{}, fmt.Errorf("integer %d overflows int64", u)
	}

	return Int(int64(u)), nil
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind {
	return v.kind
}

// IsValid reports whether v was built by a constructor.
func (v Value) IsValid() bool {
	return v.kind != 0
}

// IsNested reports whether v holds a nested Header.
func (v Value) IsNested() bool {
	return v.kind == KindNested
}

// Header returns the nested header, or nil for scalars.
func (v Value) Header() *Header {
	return v.nested
}

// Scalar returns the underlying Go value of a scalar: string, int64,
// float64, bool or nil. Nested values return nil.
func (v Value) Scalar() any {
	return v.scalar
}

// AsString returns the string held by v, if any.
func (v Value) AsString() (string, bool) {
	s, ok := v.scalar.(string)
	return s, ok && v.kind == KindString
}

// AsInt returns the integer held by v, if any.
func (v Value) AsInt() (int64, bool) {
	i, ok := v.scalar.(int64)
	return i, ok && v.kind == KindInt
}

// AsFloat returns v as a float64. Integers are converted.
func (v Value) AsFloat() (float64, bool) {
	switch v.kind {
	case KindFloat:
		return v.scalar.(float64), true
	case KindInt:
		return float64(v.scalar.(int64)), true
	default:
		return 0, false
	}
}

// AsBool returns the boolean held by v, if any.
func (v Value) AsBool() (bool, bool) {
	b, ok := v.scalar.(bool)
	return b, ok && v.kind == KindBool
}

// Equal reports whether v and o hold the same variant and content.
// Nested headers are compared with Header.Equal.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}

	if v.kind == KindNested {
		return v.nested.Equal(o.nested)
	}

	return v.scalar == o.scalar
}

// clone deep-copies nested values; scalars are immutable.
func (v Value) clone() Value {
	if v.kind == KindNested {
		return Nested(v.nested.Clone())
	}

	return v
}

// String renders v for humans (CLI output, error messages).
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.scalar.(string)
	case KindInt:
		return strconv.FormatInt(v.scalar.(int64), 10)
	case KindFloat:
		return strconv.FormatFloat(v.scalar.(float64), 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.scalar.(bool))
	case KindNull:
		return "null"
	case KindNested:
		return fmt.Sprintf("{%d keys}", v.nested.Len())
	default:
		return "<invalid>"
	}
}

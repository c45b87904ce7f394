package header

//go:generate go tool stringer -type=Kind -output=kind_string.go

// Kind identifies the variant held by a Value.
type Kind int

const (
	_ Kind = iota // skip zero value, use it as a default (invalid) value for Kind

	KindString
	KindInt
	KindFloat
	KindBool
	KindNull
	KindNested
)

// IsScalar reports whether k is one of the scalar kinds.
func (k Kind) IsScalar() bool {
	switch k {
	default:
		return false
	case KindString, KindInt, KindFloat, KindBool, KindNull:
		return true
	}
}

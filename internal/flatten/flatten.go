// Package flatten collapses nested header mappings into a single level.
//
// Every nested key is replaced by its leaves, each named by the chain of
// ancestor keys joined with a separator:
//
//	{INSTR: {CCD: {GAIN: 1.5}}, OBJECT: M31}
//	-> {OBJECT: M31, INSTR-CCD-GAIN: 1.5}
//
// Scalars stay where they are; flattened leaves are appended after the
// existing keys. No uniqueness check blocks the operation: a leaf whose
// qualified name already exists overwrites the earlier value, and the
// overwrite is reported as a diagnostic warning.
package flatten

import (
	"hdrnorm/internal/diagnostic"
	"hdrnorm/internal/header"
)

// DefaultSeparator joins ancestor and child keys.
const DefaultSeparator = "-"

type options struct {
	separator string
}

// Option configures Flatten.
type Option func(*options)

// WithSeparator sets the string placed between ancestor and child keys.
func WithSeparator(sep string) Option {
	return func(o *options) {
		o.separator = sep
	}
}

type leaf struct {
	root  string
	key   string
	value header.Value
}

// Flatten rewrites h in place so that no top-level value is a nested header,
// and returns h. Running it on a flat header changes nothing.
//
// A nested mapping with no leaves is dropped and reported as an info
// diagnostic.
func Flatten(h *header.Header, opts ...Option) (*header.Header, diagnostic.Diagnostics) {
	o := options{separator: DefaultSeparator}
	for _, opt := range opts {
		opt(&o)
	}

	var (
		diags  diagnostic.Diagnostics
		nested []string
		leaves []leaf
	)

	// Leaves come from the header as it was on entry; a leaf may share its
	// name with a nested key that has not been replaced yet.
	for k, v := range h.All() {
		if !v.IsNested() {
			continue
		}

		nested = append(nested, k)
		for _, l := range collect(k, v.Header(), o.separator, &diags) {
			l.root = k
			leaves = append(leaves, l)
		}
	}

	for _, k := range nested {
		h.Delete(k)
	}

	for _, l := range leaves {
		if h.Has(l.key) {
			diags.AddWarning(diagnostic.CodeFlattenOverwrite, l.key,
				"flattened value from %q overwrites an existing value", l.root)
		}

		h.Set(l.key, l.value)
	}

	return h, diags
}

// collect returns the leaves below nested, qualified by prefix, depth first
// in header order.
func collect(prefix string, nested *header.Header, sep string, diags *diagnostic.Diagnostics) []leaf {
	if nested.Len() == 0 {
		diags.AddInfo(diagnostic.CodeFlattenEmpty, prefix, "empty mapping dropped")
		return nil
	}

	var out []leaf

	for k, v := range nested.All() {
		key := prefix + sep + k

		if v.IsNested() {
			out = append(out, collect(key, v.Header(), sep, diags)...)
			continue
		}

		out = append(out, leaf{key: key, value: v})
	}

	return out
}

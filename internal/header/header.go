package header

import (
	"fmt"
	"iter"
	"slices"
	"sort"
)

// Header is an insertion-ordered mapping of metadata keys to values.
// The zero value is an empty header ready to use.
//
// A Header is not safe for concurrent use; callers that share one between
// goroutines must serialize access.
type Header struct {
	keys   []string
	values map[string]Value
}

// New returns an empty header.
func New() *Header {
	return &Header{values: make(map[string]Value)}
}

// FromMap builds a header from a Go map. Keys are inserted in sorted order
// since map iteration order is random. Nested map[string]any values become
// nested headers.
func FromMap(m map[string]any) (*Header, error) {
	h := New()

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	for _, k := range keys {
		v, err := ScalarOf(m[k])
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}

		h.Set(k, v)
	}

	return h, nil
}

// Len returns the number of top-level keys.
func (h *Header) Len() int {
	if h == nil {
		return 0
	}

	return len(h.keys)
}

// Get returns the value stored under key.
func (h *Header) Get(key string) (Value, bool) {
	if h == nil || h.values == nil {
		return Value{}, false
	}

	v, ok := h.values[key]

	return v, ok
}

// Has reports whether key is present.
func (h *Header) Has(key string) bool {
	_, ok := h.Get(key)
	return ok
}

// Set stores v under key. An existing key keeps its position.
func (h *Header) Set(key string, v Value) {
	if h.values == nil {
		h.values = make(map[string]Value)
	}

	if _, ok := h.values[key]; !ok {
		h.keys = append(h.keys, key)
	}

	h.values[key] = v
}

// Delete removes key and reports whether it was present.
// Deleting an absent key is a no-op.
func (h *Header) Delete(key string) bool {
	if _, ok := h.Get(key); !ok {
		return false
	}

	delete(h.values, key)

	if i := slices.Index(h.keys, key); i >= 0 {
		h.keys = slices.Delete(h.keys, i, i+1)
	}

	return true
}

// Keys returns a snapshot of the keys in insertion order.
// Mutating the header afterwards does not affect the returned slice.
func (h *Header) Keys() []string {
	if h == nil {
		return nil
	}

	return slices.Clone(h.keys)
}

// All iterates over the entries in insertion order. The iteration works on a
// key snapshot, so the header may be modified inside the loop; entries
// deleted before they are reached are skipped.
func (h *Header) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, k := range h.Keys() {
			v, ok := h.Get(k)
			if !ok {
				continue
			}

			if !yield(k, v) {
				return
			}
		}
	}
}

// Clone returns a deep copy of h.
func (h *Header) Clone() *Header {
	c := New()
	if h == nil {
		return c
	}

	for _, k := range h.keys {
		c.Set(k, h.values[k].clone())
	}

	return c
}

// Equal reports whether h and o hold the same keys and values, recursively.
// Key order is not compared.
func (h *Header) Equal(o *Header) bool {
	if h.Len() != o.Len() {
		return false
	}

	for _, k := range h.Keys() {
		ov, ok := o.Get(k)
		if !ok {
			return false
		}

		if !h.values[k].Equal(ov) {
			return false
		}
	}

	return true
}

// IsFlat reports whether no top-level value is a nested header.
func (h *Header) IsFlat() bool {
	for _, v := range h.All() {
		if v.IsNested() {
			return false
		}
	}

	return true
}

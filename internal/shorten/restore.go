package shorten

import (
	"fmt"
	"strings"

	"hdrnorm/internal/header"
)

// Original returns the key that short replaced, read from its substitution
// record.
func Original(h *header.Header, prefix, short string) (string, bool) {
	v, ok := h.Get(prefix + short)
	if !ok {
		return "", false
	}

	return v.AsString()
}

type restoration struct {
	record   string
	short    string
	original string
}

// Restore undoes Shorten: every substitution record moves the value of its
// shortened key back under the original key, and the record is removed.
// Restored keys are appended in record order. It returns the number of keys
// restored.
//
// All records are checked before anything changes; a record that does not
// hold a string or points at a missing key fails with ErrBrokenRecord and
// leaves h unmodified.
func Restore(h *header.Header, prefix string) (int, error) {
	if prefix == "" {
		return 0, fmt.Errorf("%w: empty substitution prefix", ErrInvalidOption)
	}

	var (
		todo   []restoration
		values []header.Value
	)

	for k, v := range h.All() {
		short, ok := strings.CutPrefix(k, prefix)
		if !ok {
			continue
		}

		original, ok := v.AsString()
		if !ok {
			return 0, fmt.Errorf("%w: %q holds a %v, not a key name", ErrBrokenRecord, k, v.Kind())
		}

		sv, ok := h.Get(short)
		if !ok {
			return 0, fmt.Errorf("%w: %q points at missing key %q", ErrBrokenRecord, k, short)
		}

		todo = append(todo, restoration{record: k, short: short, original: original})
		values = append(values, sv)
	}

	// An original may carry the name of another record, so nothing is set
	// until every shortened key and record is gone.
	for _, r := range todo {
		h.Delete(r.short)
		h.Delete(r.record)
	}

	for i, r := range todo {
		h.Set(r.original, values[i])
	}

	return len(todo), nil
}

package keyword

import (
	"regexp"
	"strings"

	"hdrnorm/internal/common"
	"hdrnorm/internal/header"
	"hdrnorm/internal/match"
)

// DefaultJoinSeparator joins the matched keys of a sequence.
const DefaultJoinSeparator = "_"

// maxSuggestions caps the "did you mean" list of a NotFoundError.
const maxSuggestions = 3

// unitPattern is greedy: "A(x)B(y)" has unit "xBy".
var unitPattern = regexp.MustCompile(`\(.*\)`)

// Resolved is the result of a lookup.
type Resolved struct {
	// Name is the composite key with any unit annotation removed.
	Name string
	// Value is the value stored under the matched key.
	Value header.Value
	// Unit is the annotation found in the key, without parentheses.
	Unit string
	// HasUnit is false when the key carried no annotation.
	HasUnit bool
}

// Resolve looks spec up in h. Matched keys of a sequence are joined with
// sep; an empty sep joins them without separator. h is not modified.
//
// It returns a *NotFoundError when a keyword has no match and an error
// wrapping ErrInvalidSpec when spec is unusable.
func Resolve(h *header.Header, spec Spec, sep string) (Resolved, error) {
	err := spec.Validate()
	if err != nil {
		return Resolved{}, err
	}

	var (
		composite string
		value     header.Value
	)

	if spec.IsSequence() {
		composite, value, err = resolveSequence(h, spec, sep)
	} else {
		composite, value, err = resolveSingle(h, spec)
	}

	if err != nil {
		return Resolved{}, err
	}

	name, unit, ok := SplitUnit(composite)

	return Resolved{Name: name, Value: value, Unit: unit, HasUnit: ok}, nil
}

// resolveSingle returns the LAST top-level key starting with the keyword.
// Do not change this to first-match: sequences use first-match, single
// keywords never have.
func resolveSingle(h *header.Header, spec Spec) (string, header.Value, error) {
	kw := spec.keywords[0]

	key, ok := common.Last(common.Filter(h.Keys(), func(k string) bool {
		return strings.HasPrefix(k, kw)
	}))
	if !ok {
		return "", header.Value{}, notFound(h, spec, kw, "")
	}

	v, _ := h.Get(key)

	return key, v, nil
}

// resolveSequence walks the keywords left to right, taking the FIRST match
// at each level.
func resolveSequence(h *header.Header, spec Spec, sep string) (string, header.Value, error) {
	var (
		current = h
		value   header.Value
		matched = make([]string, 0, len(spec.keywords))
	)

	for i, kw := range spec.keywords {
		rest := spec.keywords[i:]

		key, v, ok := firstMatch(current, rest, sep)
		if !ok {
			return "", header.Value{}, notFound(current, spec, kw, strings.Join(matched, sep))
		}

		matched = append(matched, key)
		value = v

		if len(rest) == 1 || !v.IsNested() {
			// Either the last keyword, or a flattened key that already
			// carries the remaining ones.
			break
		}

		current = v.Header()
	}

	return strings.Join(matched, sep), value, nil
}

// firstMatch returns the first key of h starting with rest[0]. While more
// keywords follow, a key only matches if it can be continued: it holds a
// nested header, or it starts with all remaining keywords joined by sep.
func firstMatch(h *header.Header, rest []string, sep string) (string, header.Value, bool) {
	joined := strings.Join(rest, sep)

	for k, v := range h.All() {
		if !strings.HasPrefix(k, rest[0]) {
			continue
		}

		if len(rest) == 1 || v.IsNested() || strings.HasPrefix(k, joined) {
			return k, v, true
		}
	}

	return "", header.Value{}, false
}

func notFound(searched *header.Header, spec Spec, kw, parent string) *NotFoundError {
	return &NotFoundError{
		Keyword:     kw,
		Spec:        spec,
		Parent:      parent,
		Suggestions: match.Suggest(kw, searched.Keys(), maxSuggestions),
	}
}

// SplitUnit separates a parenthesized unit annotation from a key.
// The unit is the annotation with every parenthesis removed; the name is the
// key without the annotation. ok is false when there is no annotation.
func SplitUnit(key string) (name, unit string, ok bool) {
	loc := unitPattern.FindStringIndex(key)
	if loc == nil {
		return key, "", false
	}

	unit = strings.NewReplacer("(", "", ")", "").Replace(key[loc[0]:loc[1]])
	name = key[:loc[0]] + key[loc[1]:]

	return name, unit, true
}

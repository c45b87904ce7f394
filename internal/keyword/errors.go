package keyword

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound matches every *NotFoundError via errors.Is.
	ErrNotFound = errors.New("keyword not found")

	// ErrInvalidSpec reports a keyword specification Resolve cannot use.
	ErrInvalidSpec = errors.New("invalid keyword specification")
)

// NotFoundError reports a keyword, or one step of a keyword sequence, that
// matched no header key.
type NotFoundError struct {
	// Keyword is the prefix that had no match.
	Keyword string
	// Spec is the full specification being resolved.
	Spec Spec
	// Parent is the composite of the keys matched before the failing step.
	Parent string
	// Suggestions are existing keys that look like Keyword.
	Suggestions []string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "keyword %q not found in header", e.Keyword)

	if e.Parent != "" {
		fmt.Fprintf(&b, " under %q", e.Parent)
	}

	if len(e.Suggestions) > 0 {
		quoted := make([]string, len(e.Suggestions))
		for i, s := range e.Suggestions {
			quoted[i] = fmt.Sprintf("%q", s)
		}

		fmt.Fprintf(&b, "; did you mean %s?", strings.Join(quoted, ", "))
	}

	return b.String()
}

// Is reports whether target is ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

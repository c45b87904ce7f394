package keyword

import (
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// PathSeparator separates the keywords of a sequence in textual form,
// e.g. "MJD/START".
const PathSeparator = "/"

// Spec is a keyword specification: one keyword, or an ordered sequence of
// keyword prefixes. The zero Spec is invalid.
type Spec struct {
	keywords []string
	sequence bool
}

// Single returns a single-keyword spec.
func Single(kw string) Spec {
	return Spec{keywords: []string{kw}}
}

// Sequence returns a multi-part spec. A sequence of one keyword still
// resolves in sequence mode (first match wins).
func Sequence(kws ...string) Spec {
	return Spec{keywords: slices.Clone(kws), sequence: true}
}

// Parse reads the textual form used on the command line: "OBJECT" is a
// single keyword, "MJD/START" a sequence.
func Parse(s string) Spec {
	if !strings.Contains(s, PathSeparator) {
		return Single(s)
	}

	return Sequence(strings.Split(s, PathSeparator)...)
}

// Keywords returns a copy of the keywords.
func (s Spec) Keywords() []string {
	return slices.Clone(s.keywords)
}

// IsSequence reports whether s resolves in sequence mode.
func (s Spec) IsSequence() bool {
	return s.sequence
}

// IsZero reports whether s holds no keywords.
func (s Spec) IsZero() bool {
	return len(s.keywords) == 0
}

// Validate checks the preconditions of Resolve.
func (s Spec) Validate() error {
	if s.IsZero() {
		return fmt.Errorf("%w: no keywords", ErrInvalidSpec)
	}

	if s.sequence {
		for i, kw := range s.keywords {
			if kw == "" {
				return fmt.Errorf("%w: empty keyword at position %d", ErrInvalidSpec, i)
			}
		}
	}

	return nil
}

// String returns the textual form accepted by Parse.
func (s Spec) String() string {
	return strings.Join(s.keywords, PathSeparator)
}

// --- Spec YAML methods ---

// UnmarshalYAML implements custom YAML unmarshaling for Spec.
// Accepts either a single string or an array of strings.
func (s *Spec) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string

		err := node.Decode(&str)
		if err != nil {
			return err
		}

		*s = Single(str)

		return nil

	case yaml.SequenceNode:
		var arr []string

		err := node.Decode(&arr)
		if err != nil {
			return err
		}

		if len(arr) == 0 {
			return fmt.Errorf("line %d: %w: empty keyword list", node.Line, ErrInvalidSpec)
		}

		*s = Sequence(arr...)

		return nil

	default:
		return fmt.Errorf("line %d: %w: expected string or array", node.Line, ErrInvalidSpec)
	}
}

// MarshalYAML implements custom YAML marshaling for Spec.
// Outputs a string for a single keyword, otherwise an array.
func (s Spec) MarshalYAML() (any, error) {
	if !s.sequence && len(s.keywords) == 1 {
		return s.keywords[0], nil
	}

	return s.keywords, nil
}

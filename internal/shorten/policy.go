package shorten

import (
	"fmt"
	"strings"

	"hdrnorm/internal/common"
)

// Policy selects how key collisions are handled.
type Policy int

const (
	PolicyError Policy = iota
	PolicyOverwrite
	PolicySuffix
)

// String returns the name accepted by ParsePolicy.
func (p Policy) String() string {
	switch p {
	case PolicyError:
		return "error"
	case PolicyOverwrite:
		return "overwrite"
	case PolicySuffix:
		return "suffix"
	default:
		return common.UnknownStr
	}
}

// ParsePolicy parses "error", "overwrite" or "suffix" (case-insensitive).
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error", "":
		return PolicyError, nil
	case "overwrite":
		return PolicyOverwrite, nil
	case "suffix":
		return PolicySuffix, nil
	default:
		return 0, fmt.Errorf("%w: unknown collision policy %q (expected error, overwrite or suffix)", ErrInvalidOption, s)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler, so a Policy can be read
// from YAML and environment variables.
func (p *Policy) UnmarshalText(text []byte) error {
	parsed, err := ParsePolicy(string(text))
	if err != nil {
		return err
	}

	*p = parsed

	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (p Policy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

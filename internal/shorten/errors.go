package shorten

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCollision matches every *CollisionError via errors.Is.
	ErrCollision = errors.New("shortened key collision")

	// ErrInvalidOption reports an unusable limit, prefix or policy.
	ErrInvalidOption = errors.New("invalid shorten option")

	// ErrBrokenRecord reports a substitution record Restore cannot apply.
	ErrBrokenRecord = errors.New("broken substitution record")
)

// CollisionError reports keys competing for the same shortened key.
type CollisionError struct {
	// Key is the contested key: a shortened key or its substitution record.
	Key string
	// Claimants are the keys that would all end up under Key, in header
	// order. A claimant that is not overlong is a key already present.
	Claimants []string
}

// Error implements the error interface.
func (e *CollisionError) Error() string {
	quoted := make([]string, len(e.Claimants))
	for i, c := range e.Claimants {
		quoted[i] = fmt.Sprintf("%q", c)
	}

	return fmt.Sprintf("keys %s collide on shortened key %q", strings.Join(quoted, " and "), e.Key)
}

// Is reports whether target is ErrCollision.
func (e *CollisionError) Is(target error) bool {
	return target == ErrCollision
}

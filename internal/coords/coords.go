// Package coords resolves the observed object of a header to sky
// coordinates and records them in the header.
package coords

import (
	"context"
	"errors"
	"fmt"

	"hdrnorm/internal/header"
)

const (
	// ObjectKey holds the name of the observed object.
	ObjectKey = "OBJECT"
	// RAKey receives the right ascension, in degrees.
	RAKey = "RA"
	// DecKey receives the declination, in degrees.
	DecKey = "DEC"
)

// ErrNoObject reports a header without a usable OBJECT entry.
var ErrNoObject = errors.New("header has no OBJECT name")

// Position is an equatorial position in degrees.
type Position struct {
	RA  float64 `yaml:"ra"`
	Dec float64 `yaml:"dec"`
}

// Resolver maps an object name to its position.
type Resolver interface {
	Resolve(ctx context.Context, name string) (Position, error)
}

// AddRADec resolves the OBJECT entry of h and sets RA and DEC. h is only
// modified on success.
func AddRADec(ctx context.Context, h *header.Header, r Resolver) (Position, error) {
	v, ok := h.Get(ObjectKey)
	if !ok {
		return Position{}, ErrNoObject
	}

	name, ok := v.AsString()
	if !ok || name == "" {
		return Position{}, fmt.Errorf("%w: OBJECT holds %v", ErrNoObject, v)
	}

	pos, err := r.Resolve(ctx, name)
	if err != nil {
		return Position{}, fmt.Errorf("resolve object %q: %w", name, err)
	}

	h.Set(RAKey, header.Float(pos.RA))
	h.Set(DecKey, header.Float(pos.Dec))

	return pos, nil
}

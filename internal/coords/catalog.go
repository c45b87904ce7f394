package coords

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"hdrnorm/internal/common"
	"hdrnorm/internal/match"
)

var (
	// ErrUnknownObject matches every *UnknownObjectError via errors.Is.
	ErrUnknownObject = errors.New("unknown object")

	// ErrInvalidPosition reports a catalog entry outside the sky.
	ErrInvalidPosition = errors.New("invalid position")
)

// UnknownObjectError reports a name missing from a Catalog.
type UnknownObjectError struct {
	Name        string
	Suggestions []string
}

func (e *UnknownObjectError) Error() string {
	msg := fmt.Sprintf("object %q not in catalog", e.Name)
	if len(e.Suggestions) > 0 {
		quoted := make([]string, len(e.Suggestions))
		for i, s := range e.Suggestions {
			quoted[i] = strconv.Quote(s)
		}

		msg += "; did you mean " + strings.Join(quoted, ", ") + "?"
	}

	return msg
}

// Is reports whether target is ErrUnknownObject.
func (e *UnknownObjectError) Is(target error) bool {
	return target == ErrUnknownObject
}

// Catalog is an offline Resolver backed by a name to position table.
// Names compare case-insensitively, ignoring spaces, underscores, dashes and
// dots, so "M 31" finds "m31".
type Catalog struct {
	names   []string
	entries map[string]Position
}

// NewCatalog builds a catalog from entries.
func NewCatalog(entries map[string]Position) (*Catalog, error) {
	c := &Catalog{entries: make(map[string]Position, len(entries))}

	for name, pos := range entries {
		if pos.RA < 0 || pos.RA >= 360 || !common.IsInRange(-90, pos.Dec, 90) {
			return nil, fmt.Errorf("%w: %q at ra=%g dec=%g", ErrInvalidPosition, name, pos.RA, pos.Dec)
		}

		key := match.NormalizeKey(name)
		if _, dup := c.entries[key]; dup {
			return nil, fmt.Errorf("catalog lists %q twice", name)
		}

		c.entries[key] = pos
		c.names = append(c.names, name)
	}

	sort.Strings(c.names)

	return c, nil
}

// ParseCatalog parses a YAML mapping of object names to {ra, dec}.
func ParseCatalog(data []byte) (*Catalog, error) {
	var entries map[string]Position

	err := yaml.Unmarshal(data, &entries)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
	}

	return NewCatalog(entries)
}

// LoadCatalog reads a YAML catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}

	return ParseCatalog(data)
}

// Len returns the number of objects.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Resolve implements Resolver.
func (c *Catalog) Resolve(ctx context.Context, name string) (Position, error) {
	if err := ctx.Err(); err != nil {
		return Position{}, err
	}

	pos, ok := c.entries[match.NormalizeKey(name)]
	if !ok {
		return Position{}, &UnknownObjectError{Name: name, Suggestions: match.Suggest(name, c.names, 3)}
	}

	return pos, nil
}

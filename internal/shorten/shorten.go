package shorten

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"hdrnorm/internal/diagnostic"
	"hdrnorm/internal/header"
)

const (
	// DefaultLimit is the longest key most fixed-width header formats accept.
	DefaultLimit = 8
	// DefaultVowels are dropped first when a key is too long.
	DefaultVowels = "aeiou"
	// DefaultPrefix marks substitution records.
	DefaultPrefix = "SUBS_"
)

type options struct {
	limit  int
	vowels string
	prefix string
	policy Policy
}

// Option configures Shorten.
type Option func(*options)

// WithLimit sets the maximum key length, in characters.
func WithLimit(n int) Option {
	return func(o *options) {
		o.limit = n
	}
}

// WithVowels sets the characters removed from overlong keys. Matching is
// done on the lowercase form of each key character.
func WithVowels(v string) Option {
	return func(o *options) {
		o.vowels = v
	}
}

// WithPrefix sets the prefix of substitution records.
func WithPrefix(p string) Option {
	return func(o *options) {
		o.prefix = p
	}
}

// WithCollisionPolicy selects how collisions are handled.
func WithCollisionPolicy(p Policy) Option {
	return func(o *options) {
		o.policy = p
	}
}

func (o options) validate() error {
	if o.limit < 1 {
		return fmt.Errorf("%w: limit must be positive, got %d", ErrInvalidOption, o.limit)
	}

	if o.prefix == "" {
		return fmt.Errorf("%w: empty substitution prefix", ErrInvalidOption)
	}

	switch o.policy {
	case PolicyError, PolicyOverwrite, PolicySuffix:
		return nil
	default:
		return fmt.Errorf("%w: unknown collision policy %d", ErrInvalidOption, o.policy)
	}
}

// Key compresses key: characters whose lowercase form appears in vowels are
// removed, then the result is truncated to limit characters.
func Key(key string, limit int, vowels string) string {
	var b strings.Builder

	b.Grow(len(key))

	for _, r := range key {
		if strings.ContainsRune(vowels, unicode.ToLower(r)) {
			continue
		}

		b.WriteRune(r)
	}

	return truncate(b.String(), limit)
}

// substitution is one planned replacement. value is captured before any
// mutation, so later writes cannot leak into it.
type substitution struct {
	original string
	short    string
	value    header.Value
}

// Shorten replaces every top-level key longer than the limit by its
// shortened form plus a substitution record, and returns h.
//
// Which keys are too long is decided on a snapshot taken before any change.
// On error h is left unmodified.
func Shorten(h *header.Header, opts ...Option) (*header.Header, diagnostic.Diagnostics, error) {
	o := options{
		limit:  DefaultLimit,
		vowels: DefaultVowels,
		prefix: DefaultPrefix,
		policy: PolicyError,
	}
	for _, opt := range opts {
		opt(&o)
	}

	var diags diagnostic.Diagnostics

	err := o.validate()
	if err != nil {
		return h, diags, err
	}

	subs, err := plan(h, o, &diags)
	if err != nil {
		return h, diags, err
	}

	// Originals go first: an overlong key may share its name with a record
	// written below.
	for _, s := range subs {
		h.Delete(s.original)
	}

	for _, s := range subs {
		set(h, s.short, s.value, &diags)
		set(h, o.prefix+s.short, header.String(s.original), &diags)
	}

	return h, diags, nil
}

func plan(h *header.Header, o options, diags *diagnostic.Diagnostics) ([]substitution, error) {
	keys := h.Keys()

	var subs []substitution

	overlong := make(map[string]bool)

	for _, k := range keys {
		if utf8.RuneCountInString(k) <= o.limit {
			continue
		}

		v, _ := h.Get(k)
		subs = append(subs, substitution{original: k, short: Key(k, o.limit, o.vowels), value: v})
		overlong[k] = true
	}

	if o.policy == PolicyOverwrite {
		return subs, nil
	}

	// owners maps every key that will exist afterwards to the key it came from.
	owners := make(map[string]string, len(keys)+2*len(subs))

	for _, k := range keys {
		if !overlong[k] {
			owners[k] = k
		}
	}

	for i := range subs {
		s := &subs[i]

		if o.policy == PolicySuffix {
			short, ok := disambiguate(s.short, o, owners)
			if !ok {
				k, owner := blocker(s.short, o, owners)
				return nil, &CollisionError{Key: k, Claimants: []string{owner, s.original}}
			}

			if short != s.short {
				k, owner := blocker(s.short, o, owners)
				diags.AddWarning(diagnostic.CodeShortenSuffix, s.original,
					"shortened to %q because %q is taken by %q", short, k, owner)
				s.short = short
			}
		}

		if k, owner := blocker(s.short, o, owners); k != "" {
			return nil, &CollisionError{Key: k, Claimants: []string{owner, s.original}}
		}

		owners[s.short] = s.original
		owners[o.prefix+s.short] = s.original
	}

	return subs, nil
}

// blocker returns the first of short and its record key that is already
// owned, together with its owner. Both are empty when neither is taken.
func blocker(short string, o options, owners map[string]string) (string, string) {
	for _, k := range []string{short, o.prefix + short} {
		if owner, taken := owners[k]; taken {
			return k, owner
		}
	}

	return "", ""
}

// disambiguate returns short, or short with its tail replaced by the
// smallest counter that makes both it and its record free. It fails when
// every counter that fits in the limit is taken.
func disambiguate(short string, o options, owners map[string]string) (string, bool) {
	free := func(k string) bool {
		taken, _ := blocker(k, o, owners)
		return taken == ""
	}

	if free(short) {
		return short, true
	}

	for n := 1; ; n++ {
		suffix := strconv.Itoa(n)
		if len(suffix) > o.limit {
			return "", false
		}

		candidate := truncate(short, o.limit-len(suffix)) + suffix
		if free(candidate) {
			return candidate, true
		}
	}
}

func set(h *header.Header, key string, v header.Value, diags *diagnostic.Diagnostics) {
	if h.Has(key) {
		diags.AddWarning(diagnostic.CodeShortenOverwrite, key, "existing value overwritten while shortening")
	}

	h.Set(key, v)
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}

	return string([]rune(s)[:n])
}

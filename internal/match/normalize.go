package match

import (
	"strings"
	"unicode"
)

// NormalizeKey folds a header key for fuzzy comparison:
//  1. Drop a parenthesized unit annotation ("MJD_START(day)" -> "MJD_START").
//  2. Case-fold to lower.
//  3. Strip separators (_, -, spaces, dots).
func NormalizeKey(s string) string {
	if open := strings.IndexByte(s, '('); open >= 0 {
		if end := strings.LastIndexByte(s, ')'); end > open {
			s = s[:open] + s[end+1:]
		}
	}

	var b strings.Builder

	b.Grow(len(s))

	for _, r := range s {
		if isSeparator(r) {
			continue
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '.'
}

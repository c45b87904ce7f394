package match

import (
	"slices"
	"testing"
)

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"MJD_START(day)", "mjdstart"},
		{"MJD-START", "mjdstart"},
		{"exp time", "exptime"},
		{"OBJECT", "object"},
		{"A(b", "a(b"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if result := NormalizeKey(tt.input); result != tt.expected {
				t.Errorf("NormalizeKey(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestSuggest(t *testing.T) {
	keys := []string{"OBJECT", "OBSERVER", "EXPTIME", "MJD_START(day)", "MJD_END(day)", "RA", "DEC"}

	tests := []struct {
		keyword  string
		n        int
		expected []string
	}{
		{"OBJCT", 3, []string{"OBJECT"}},
		{"EXPTIM", 3, []string{"EXPTIME"}},
		{"mjd_start", 1, []string{"MJD_START(day)"}},
		{"ZZZZZZ", 3, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			result := Suggest(tt.keyword, keys, tt.n)
			if !slices.Equal(result, tt.expected) {
				t.Errorf("Suggest(%q) = %v, want %v", tt.keyword, result, tt.expected)
			}
		})
	}
}

func TestRank_OrderAndDedup(t *testing.T) {
	ranked := Rank("MJD", []string{"MJD_END", "MJD_START", "MJD_END", "XYZ"})

	var keys []string
	for _, s := range ranked {
		keys = append(keys, s.Key)
	}

	// Both prefixes score 1.0; ties break alphabetically.
	if !slices.Equal(keys, []string{"MJD_END", "MJD_START"}) {
		t.Errorf("Rank order = %v", keys)
	}
}

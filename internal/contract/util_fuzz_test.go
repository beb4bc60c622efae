package contract

import (
	"testing"
)

// FuzzParseBoolString fuzzes the boolean flag parser with random strings.
func FuzzParseBoolString(f *testing.F) {
	seeds := []string{
		"yes",
		"no",
		"true",
		"false",
		"1",
		"0",
		"YES",
		"maybe",
		"", // edge case
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(_ *testing.T, input string) {
		_, err := ParseBoolString(input)
		_ = err // ignore error, we're testing for crashes
	})
}

// FuzzTruncateText fuzzes the rune-aware truncation helper.
func FuzzTruncateText(f *testing.F) {
	seeds := []struct {
		text     string
		maxWidth int
	}{
		{"short", 10},
		{"a very long username that should get truncated", 20},
		{"héllö wörld", 8},
		{"", 5},
		{"a", 1},
	}
	for _, seed := range seeds {
		f.Add(seed.text, seed.maxWidth)
	}

	f.Fuzz(func(_ *testing.T, text string, maxWidth int) {
		_ = TruncateText(text, maxWidth)
	})
}

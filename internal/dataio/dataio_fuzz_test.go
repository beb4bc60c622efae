package dataio

import (
	"testing"
)

// FuzzParseTimestamp fuzzes the lenient timestamp parser with random inputs.
func FuzzParseTimestamp(f *testing.F) {
	// Add some seed inputs
	seeds := []string{
		"2026-03-01T00:00:00.123456789Z",
		"2026-03-01T00:00:00Z",
		"2026-03-01T00:00:00",
		"2026-03-01 00:00:00",
		"2026-03-01",
		"not a timestamp",
		"", // edge case
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(_ *testing.T, input string) {
		_, err := parseTimestamp(input)
		// We don't assert on the result, just that it doesn't panic
		_ = err // ignore error, we're testing for crashes
	})
}

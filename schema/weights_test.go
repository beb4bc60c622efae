package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestClamp verifies per-field clamp bounds.
func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		input    EnsembleWeights
		expected EnsembleWeights
	}{
		{
			name:     "in range untouched",
			input:    EnsembleWeights{Heuristic: 0.5, Model: 0.4, Threshold: 0.45},
			expected: EnsembleWeights{Heuristic: 0.5, Model: 0.4, Threshold: 0.45},
		},
		{
			name:     "above bounds",
			input:    EnsembleWeights{Heuristic: 1.3, Model: 1.01, Threshold: 0.95},
			expected: EnsembleWeights{Heuristic: 1, Model: 1, Threshold: MaxThreshold},
		},
		{
			name:     "below bounds",
			input:    EnsembleWeights{Heuristic: -0.2, Model: -1, Threshold: 0.02},
			expected: EnsembleWeights{Heuristic: 0, Model: 0, Threshold: MinThreshold},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.input.Clamp())
		})
	}
}

// TestSignalWeightsIndependentCopies verifies each call returns a fresh map so
// per-config overrides never leak into the defaults.
func TestSignalWeightsIndependentCopies(t *testing.T) {
	first := GetDefaultSignalWeights()
	first[SignalTemporal] = 0.99

	second := GetDefaultSignalWeights()

	assert.InDelta(t, 0.2931, second[SignalTemporal], 0.0001)
	assert.Len(t, second, 7)
}

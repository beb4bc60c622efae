package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"botspot/schema"
)

func idSet(ids ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// TestTally verifies the asymmetric competition arithmetic.
func TestTally(t *testing.T) {
	tests := []struct {
		name      string
		predicted map[string]struct{}
		truth     map[string]struct{}
		expected  schema.ScoreTally
	}{
		{
			name:      "mixed outcome",
			predicted: idSet("a", "b", "c", "d", "e", "f", "x"),
			truth:     idSet("a", "b", "c", "d", "e", "f", "g", "h"),
			expected:  schema.ScoreTally{TruePositives: 6, FalseNegatives: 2, FalsePositives: 1, Score: 20},
		},
		{
			name:      "perfect detection",
			predicted: idSet("a", "b"),
			truth:     idSet("a", "b"),
			expected:  schema.ScoreTally{TruePositives: 2, Score: 8},
		},
		{
			name:      "flags nothing",
			predicted: idSet(),
			truth:     idSet("a", "b", "c"),
			expected:  schema.ScoreTally{FalseNegatives: 3, Score: -3},
		},
		{
			name:      "flags only humans",
			predicted: idSet("x", "y"),
			truth:     idSet("a"),
			expected:  schema.ScoreTally{FalseNegatives: 1, FalsePositives: 2, Score: -5},
		},
		{
			name:      "both empty",
			predicted: idSet(),
			truth:     idSet(),
			expected:  schema.ScoreTally{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Tally(tt.predicted, tt.truth))
		})
	}
}

// TestFlaggedSet verifies only flagged verdicts are collected.
func TestFlaggedSet(t *testing.T) {
	verdicts := map[string]*schema.Verdict{
		"a": {UserID: "a", IsBot: true},
		"b": {UserID: "b", IsBot: false},
		"c": {UserID: "c", IsBot: true},
	}

	assert.Equal(t, idSet("a", "c"), FlaggedSet(verdicts))
}

// TestResolveWeightsSource covers the three-way calibration branch.
func TestResolveWeightsSource(t *testing.T) {
	tests := []struct {
		name           string
		hasGroundTruth bool
		hasPersisted   bool
		expected       schema.WeightsSource
	}{
		{name: "ground truth wins", hasGroundTruth: true, hasPersisted: true, expected: schema.OptimizeFresh},
		{name: "ground truth alone", hasGroundTruth: true, hasPersisted: false, expected: schema.OptimizeFresh},
		{name: "persisted fallback", hasGroundTruth: false, hasPersisted: true, expected: schema.ReusePersisted},
		{name: "nothing available", hasGroundTruth: false, hasPersisted: false, expected: schema.HeuristicDefaults},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResolveWeightsSource(tt.hasGroundTruth, tt.hasPersisted))
		})
	}
}

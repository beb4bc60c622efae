package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"botspot/schema"
)

// TestRankVerdictsOrdering verifies flagged-first, confidence-descending
// ordering with deterministic tiebreaks.
func TestRankVerdictsOrdering(t *testing.T) {
	verdicts := map[string]*schema.Verdict{
		"human-high": {UserID: "human-high", IsBot: false, Confidence: 0.95, Hybrid: 0.85},
		"bot-low":    {UserID: "bot-low", IsBot: true, Confidence: 0.55, Hybrid: 0.50},
		"bot-high":   {UserID: "bot-high", IsBot: true, Confidence: 0.90, Hybrid: 0.81},
		"tie-b":      {UserID: "tie-b", IsBot: true, Confidence: 0.70, Hybrid: 0.63},
		"tie-a":      {UserID: "tie-a", IsBot: true, Confidence: 0.70, Hybrid: 0.63},
		"human-low":  {UserID: "human-low", IsBot: false, Confidence: 0.10, Hybrid: 0.09},
	}

	ranked := rankVerdicts(verdicts, 100)

	ids := make([]string, 0, len(ranked))
	for _, v := range ranked {
		ids = append(ids, v.UserID)
	}
	assert.Equal(t, []string{"bot-high", "tie-a", "tie-b", "bot-low", "human-high", "human-low"}, ids)
}

// TestRankVerdictsHybridTiebreak verifies equal confidence falls back to the
// hybrid score.
func TestRankVerdictsHybridTiebreak(t *testing.T) {
	verdicts := map[string]*schema.Verdict{
		"a": {UserID: "a", IsBot: true, Confidence: 0.70, Hybrid: 0.60},
		"b": {UserID: "b", IsBot: true, Confidence: 0.70, Hybrid: 0.68},
	}

	ranked := rankVerdicts(verdicts, 10)

	assert.Equal(t, "b", ranked[0].UserID)
	assert.Equal(t, "a", ranked[1].UserID)
}

// TestRankVerdictsLimit verifies the result is truncated to the limit.
func TestRankVerdictsLimit(t *testing.T) {
	verdicts := map[string]*schema.Verdict{
		"a": {UserID: "a", IsBot: true, Confidence: 0.9},
		"b": {UserID: "b", IsBot: true, Confidence: 0.8},
		"c": {UserID: "c", IsBot: false, Confidence: 0.7},
	}

	ranked := rankVerdicts(verdicts, 2)

	assert.Len(t, ranked, 2)
	assert.Equal(t, "a", ranked[0].UserID)
	assert.Equal(t, "b", ranked[1].UserID)
}

// TestSortedFlaggedIDs verifies submission ids come out flagged-only and in
// ascending order.
func TestSortedFlaggedIDs(t *testing.T) {
	verdicts := map[string]*schema.Verdict{
		"zulu":  {UserID: "zulu", IsBot: true},
		"alpha": {UserID: "alpha", IsBot: true},
		"mike":  {UserID: "mike", IsBot: false},
		"echo":  {UserID: "echo", IsBot: true},
	}

	assert.Equal(t, []string{"alpha", "echo", "zulu"}, sortedFlaggedIDs(verdicts))
}

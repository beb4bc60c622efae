package core

import "botspot/schema"

// Competition scoring: catching a bot earns 4, missing one costs 1, and
// wrongly flagging a human costs 2. The optimizer fitness must encode this
// exact asymmetry, not a symmetric accuracy measure.
const (
	truePositiveReward = 4
	falseNegativeCost  = 1
	falsePositiveCost  = 2
)

// Tally computes the competition tallies from a predicted-bot set and a
// ground-truth set. Pure set arithmetic, independent of iteration order.
func Tally(predicted, truth map[string]struct{}) schema.ScoreTally {
	var t schema.ScoreTally
	for id := range truth {
		if _, ok := predicted[id]; ok {
			t.TruePositives++
		} else {
			t.FalseNegatives++
		}
	}
	for id := range predicted {
		if _, ok := truth[id]; !ok {
			t.FalsePositives++
		}
	}
	t.Score = truePositiveReward*t.TruePositives -
		falseNegativeCost*t.FalseNegatives -
		falsePositiveCost*t.FalsePositives
	return t
}

// FlaggedSet extracts the set of flagged user ids from a verdict mapping.
func FlaggedSet(verdicts map[string]*schema.Verdict) map[string]struct{} {
	flagged := make(map[string]struct{})
	for id, v := range verdicts {
		if v.IsBot {
			flagged[id] = struct{}{}
		}
	}
	return flagged
}

// ResolveWeightsSource names the three-way branch taken at scan start:
// calibrate fresh when ground truth is on hand, otherwise reuse previously
// persisted weights if any exist, otherwise fall back to data-free defaults.
func ResolveWeightsSource(hasGroundTruth, hasPersisted bool) schema.WeightsSource {
	switch {
	case hasGroundTruth:
		return schema.OptimizeFresh
	case hasPersisted:
		return schema.ReusePersisted
	default:
		return schema.HeuristicDefaults
	}
}

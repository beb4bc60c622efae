package core

import (
	"sort"

	"botspot/schema"
)

// rankVerdicts sorts verdicts with flagged users first, then by confidence in
// descending order, and returns the top 'limit' entries. Ties fall back to
// hybrid score and finally user id so the ordering is deterministic.
func rankVerdicts(verdicts map[string]*schema.Verdict, limit int) []*schema.Verdict {
	ranked := make([]*schema.Verdict, 0, len(verdicts))
	for _, v := range verdicts {
		ranked = append(ranked, v)
	}
	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.IsBot != b.IsBot {
			return a.IsBot
		}
		if a.Confidence != b.Confidence {
			return a.Confidence > b.Confidence
		}
		if a.Hybrid != b.Hybrid {
			return a.Hybrid > b.Hybrid
		}
		return a.UserID < b.UserID
	})
	if len(ranked) > limit {
		return ranked[:limit]
	}
	return ranked
}

// sortedFlaggedIDs returns the ids of flagged users in ascending order,
// the layout required by submission artifacts.
func sortedFlaggedIDs(verdicts map[string]*schema.Verdict) []string {
	ids := make([]string, 0, len(verdicts))
	for id, v := range verdicts {
		if v.IsBot {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

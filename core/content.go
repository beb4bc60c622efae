package core

import (
	"strings"

	"botspot/schema"
)

// Pairwise comparison budget and acceptance threshold for near-duplicate
// detection. Exact duplicates always count; partial similarity only counts
// once the pair average crosses similarityFloor, which keeps noisy
// low-similarity averages from inflating the score.
const (
	maxSimilarityPairs = 50
	similarityFloor    = 0.5
)

// analyzeContent measures duplicate and near-duplicate content in a user's
// posts. Fewer than 2 posts yields the neutral zero-filled result.
func analyzeContent(posts []schema.Post) schema.ContentSignals {
	if len(posts) < 2 {
		return schema.ContentSignals{}
	}

	normalized := make([]string, len(posts))
	unique := make(map[string]struct{}, len(posts))
	for i, p := range posts {
		normalized[i] = strings.ToLower(strings.TrimSpace(p.Text))
		unique[normalized[i]] = struct{}{}
	}
	duplicateRatio := 1 - float64(len(unique))/float64(len(normalized))

	// Sample unordered pairs in original index order, not randomized, so the
	// extractor stays a pure function of its input.
	tokenSets := make([]map[string]struct{}, len(normalized))
	for i, text := range normalized {
		tokenSets[i] = tokenSet(text)
	}

	var simSum float64
	pairs := 0
sample:
	for i := 0; i < len(tokenSets); i++ {
		for j := i + 1; j < len(tokenSets); j++ {
			simSum += jaccard(tokenSets[i], tokenSets[j])
			pairs++
			if pairs >= maxSimilarityPairs {
				break sample
			}
		}
	}

	var avgSim float64
	if pairs > 0 {
		avgSim = simSum / float64(pairs)
	}

	score := duplicateRatio
	if avgSim > similarityFloor && avgSim > score {
		score = avgSim
	}

	return schema.ContentSignals{
		DuplicateRatio:    duplicateRatio,
		AvgPairSimilarity: avgSim,
		SimilarityScore:   score,
	}
}

// tokenSet splits normalized text on whitespace into a set of tokens.
func tokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(text) {
		set[tok] = struct{}{}
	}
	return set
}

package core

import (
	"sort"

	"botspot/schema"
)

// regularitySaturation is the coefficient-of-variation divisor at which the
// regularity score bottoms out. Tuned against the practice datasets.
const regularitySaturation = 2.5

// analyzeTemporal measures how machine-like a user's posting cadence is.
// A low coefficient of variation across inter-post gaps means the account
// posts on a schedule, which reads bot-like. Fewer than 2 posts yields the
// neutral zero-filled result.
func analyzeTemporal(posts []schema.Post) schema.TemporalSignals {
	if len(posts) < 2 {
		return schema.TemporalSignals{}
	}

	sorted := make([]schema.Post, len(posts))
	copy(sorted, posts)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	intervals := make([]float64, 0, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		intervals = append(intervals, sorted[i].CreatedAt.Sub(sorted[i-1].CreatedAt).Seconds())
	}

	avg := mean(intervals)
	cov := coefficientOfVariation(intervals)

	regularity := 1 - cov/regularitySaturation
	if regularity < 0 {
		regularity = 0
	}

	// Exposed for inspection; not weighted into the final score.
	night := 0
	for _, p := range sorted {
		h := p.CreatedAt.UTC().Hour()
		if h >= 1 && h <= 5 {
			night++
		}
	}

	return schema.TemporalSignals{
		RegularityScore:   regularity,
		AverageInterval:   avg,
		IntervalVariation: cov,
		NighttimeRatio:    float64(night) / float64(len(sorted)),
	}
}

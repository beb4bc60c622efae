package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"botspot/schema"
)

// postsAt builds posts with the given offsets from a fixed base time.
func postsAt(author, text string, offsets ...time.Duration) []schema.Post {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	posts := make([]schema.Post, 0, len(offsets))
	for i, off := range offsets {
		posts = append(posts, schema.Post{
			ID:        author + "-" + string(rune('a'+i)),
			Text:      text,
			CreatedAt: base.Add(off),
			AuthorID:  author,
		})
	}
	return posts
}

// TestAnalyzeTemporalFewPosts ensures fewer than 2 posts yields the neutral result.
func TestAnalyzeTemporalFewPosts(t *testing.T) {
	assert.Equal(t, schema.TemporalSignals{}, analyzeTemporal(nil))
	assert.Equal(t, schema.TemporalSignals{}, analyzeTemporal(postsAt("u1", "hi", 0)))
}

// TestAnalyzeTemporalRegularCadence verifies perfectly spaced posts score as
// maximally regular.
func TestAnalyzeTemporalRegularCadence(t *testing.T) {
	posts := postsAt("u1", "hi",
		0, 10*time.Minute, 20*time.Minute, 30*time.Minute, 40*time.Minute)

	sig := analyzeTemporal(posts)

	assert.InDelta(t, 1.0, sig.RegularityScore, 0.001)
	assert.InDelta(t, 600, sig.AverageInterval, 0.001)
	assert.InDelta(t, 0, sig.IntervalVariation, 0.001)
}

// TestAnalyzeTemporalIrregularCadence verifies bursty gaps lower the score.
func TestAnalyzeTemporalIrregularCadence(t *testing.T) {
	posts := postsAt("u1", "hi",
		0, time.Minute, 2*time.Minute, 48*time.Hour, 49*time.Hour)

	sig := analyzeTemporal(posts)

	assert.Greater(t, sig.IntervalVariation, 1.0)
	assert.Less(t, sig.RegularityScore, 0.6)
}

// TestAnalyzeTemporalUnsortedInput verifies input order does not matter.
func TestAnalyzeTemporalUnsortedInput(t *testing.T) {
	ordered := postsAt("u1", "hi", 0, 10*time.Minute, 20*time.Minute)
	shuffled := []schema.Post{ordered[2], ordered[0], ordered[1]}

	assert.Equal(t, analyzeTemporal(ordered), analyzeTemporal(shuffled))
}

// TestAnalyzeTemporalNighttimeRatio verifies the 01:00-05:59 UTC window.
func TestAnalyzeTemporalNighttimeRatio(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	posts := []schema.Post{
		{ID: "a", AuthorID: "u1", CreatedAt: base.Add(2 * time.Hour)},  // 02:00, night
		{ID: "b", AuthorID: "u1", CreatedAt: base.Add(5 * time.Hour)},  // 05:00, night
		{ID: "c", AuthorID: "u1", CreatedAt: base.Add(12 * time.Hour)}, // noon
		{ID: "d", AuthorID: "u1", CreatedAt: base.Add(23 * time.Hour)}, // 23:00
	}

	sig := analyzeTemporal(posts)

	assert.InDelta(t, 0.5, sig.NighttimeRatio, 0.001)
}

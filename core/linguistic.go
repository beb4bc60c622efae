package core

import (
	"regexp"

	"botspot/schema"
)

var (
	hashtagPattern = regexp.MustCompile(`#\w+`)
	urlPattern     = regexp.MustCompile(`https?://\S+`)
)

// Linguistic tuning constants. Bots favor uniform post lengths, lean on
// hashtags, and in these datasets post fewer links than humans do.
const (
	lengthConsistencySaturation = 0.6
	hashtagDensitySaturation    = 2.0
)

// analyzeLinguistic scores text-structure patterns across a user's posts.
// No posts yields the neutral zero-filled result.
func analyzeLinguistic(posts []schema.Post) schema.LinguisticSignals {
	if len(posts) == 0 {
		return schema.LinguisticSignals{}
	}

	lengths := make([]float64, len(posts))
	hashtags := 0
	urls := 0
	for i, p := range posts {
		lengths[i] = float64(len([]rune(p.Text)))
		hashtags += len(hashtagPattern.FindAllString(p.Text, -1))
		urls += len(urlPattern.FindAllString(p.Text, -1))
	}

	lengthCov := coefficientOfVariation(lengths)
	lengthConsistency := 1 - lengthCov/lengthConsistencySaturation
	if lengthConsistency < 0 {
		lengthConsistency = 0
	}

	n := float64(len(posts))
	hashtagDensity := float64(hashtags) / n
	urlDensity := float64(urls) / n

	hashtagScore := clamp01(hashtagDensity / hashtagDensitySaturation)
	lowURLScore := 1 - urlDensity
	if lowURLScore < 0 {
		lowURLScore = 0
	}

	return schema.LinguisticSignals{
		LengthConsistencyScore: lengthConsistency,
		HashtagDensity:         hashtagDensity,
		URLDensity:             urlDensity,
		HashtagScore:           hashtagScore,
		LowURLScore:            lowURLScore,
		Score:                  clamp01(0.4*hashtagScore + 0.4*lengthConsistency + 0.2*lowURLScore),
	}
}

package core

import (
	"botspot/schema"
)

// Normalization divisors for the profile-derived heuristic terms.
const (
	tweetVolumeSaturation    = 60.0
	mentionDensitySaturation = 0.5
	zScoreSaturation         = 3.0
)

// Reason thresholds per signal. Reasons are emitted in extractor evaluation
// order (temporal, content, profile, linguistic, activity), not by magnitude.
const reasonThreshold = 0.7

// heuristicResult carries everything a single heuristic evaluation produced.
type heuristicResult struct {
	Raw     float64 // weighted sum; NOT guaranteed to sit in [0,1]
	Bundle  schema.FeatureBundle
	Reasons []string

	Temporal   schema.TemporalSignals
	Content    schema.ContentSignals
	Profile    schema.ProfileSignals
	Linguistic schema.LinguisticSignals
	Activity   schema.ActivitySignals
}

// scoreHeuristic combines the extractor outputs into a single raw score using
// the fixed signal weights. The mention term is subtractive, so the raw value
// can land slightly outside [0,1]; callers must clamp before blending.
func scoreHeuristic(user schema.UserProfile, posts []schema.Post, weights map[schema.SignalKey]float64) heuristicResult {
	temporal := analyzeTemporal(posts)
	content := analyzeContent(posts)
	profile := analyzeProfile(user)
	linguistic := analyzeLinguistic(posts)
	activity := analyzeActivity(posts)

	tweetCount := user.TweetCount
	if tweetCount == 0 {
		tweetCount = len(posts)
	}
	tweetVolume := clamp01(float64(tweetCount) / tweetVolumeSaturation)
	mentionTerm := clamp01(activity.MentionDensity / mentionDensitySaturation)

	raw := weights[schema.SignalHashtag]*linguistic.HashtagScore +
		weights[schema.SignalLengthCons]*linguistic.LengthConsistencyScore +
		weights[schema.SignalTemporal]*temporal.RegularityScore +
		weights[schema.SignalTweetVolume]*tweetVolume +
		weights[schema.SignalLowURL]*linguistic.LowURLScore +
		weights[schema.SignalMentions]*mentionTerm +
		weights[schema.SignalHourSpread]*activity.HourEntropyScore

	var zNorm float64
	if user.ZScore != nil && *user.ZScore > 0 {
		zNorm = clamp01(*user.ZScore / zScoreSaturation)
	}

	bundle := schema.FeatureBundle{
		Temporal:   temporal.RegularityScore,
		Content:    content.SimilarityScore,
		Profile:    profile.SuspiciousScore,
		Linguistic: linguistic.Score,
		ZScore:     zNorm,
	}

	var reasons []string
	if temporal.RegularityScore > reasonThreshold {
		reasons = append(reasons, "highly regular posting intervals")
	}
	if content.SimilarityScore > similarityFloor {
		reasons = append(reasons, "repetitive or duplicated post content")
	}
	if profile.SuspiciousScore >= genericUsernameWeight {
		reasons = append(reasons, "generic or sparse profile metadata")
	}
	if linguistic.HashtagScore > reasonThreshold {
		reasons = append(reasons, "heavy hashtag usage")
	}
	if linguistic.LengthConsistencyScore > reasonThreshold {
		reasons = append(reasons, "uniform post lengths")
	}
	if activity.HourEntropyScore > reasonThreshold {
		reasons = append(reasons, "posts spread across many hours")
	}

	return heuristicResult{
		Raw:        raw,
		Bundle:     bundle,
		Reasons:    reasons,
		Temporal:   temporal,
		Content:    content,
		Profile:    profile,
		Linguistic: linguistic,
		Activity:   activity,
	}
}

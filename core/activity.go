package core

import (
	"regexp"

	"botspot/schema"
)

var mentionPattern = regexp.MustCompile(`@\w+`)

// hourEntropySaturation normalizes Shannon entropy over 24 hour-of-day bins.
// Counter to naive intuition, high spread is the bot signal here: bots in the
// practice data averaged 3.57 bits of hour entropy against 2.75 for humans.
const hourEntropySaturation = 4.5

// analyzeActivity measures mention usage and hour-of-day spread.
// Mention density is a penalty signal, not a bot indicator by itself.
func analyzeActivity(posts []schema.Post) schema.ActivitySignals {
	if len(posts) == 0 {
		return schema.ActivitySignals{}
	}

	mentions := 0
	var hourBins [24]int
	for _, p := range posts {
		mentions += len(mentionPattern.FindAllString(p.Text, -1))
		hourBins[p.CreatedAt.UTC().Hour()]++
	}

	var entropy float64
	if len(posts) >= 2 {
		entropy = shannonEntropy(hourBins[:], len(posts))
	}

	return schema.ActivitySignals{
		MentionDensity:   float64(mentions) / float64(len(posts)),
		HourEntropy:      entropy,
		HourEntropyScore: clamp01(entropy / hourEntropySaturation),
	}
}

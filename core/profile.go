package core

import (
	"regexp"
	"strings"

	"botspot/schema"
)

// genericUsernamePatterns match the auto-generated username shapes seen in
// the practice datasets: letters with a long digit suffix, short letter
// prefixes with digits, digit sandwiches, and literal bot/user/account names.
var genericUsernamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^[A-Za-z]+\d{4,}$`),
	regexp.MustCompile(`^[A-Za-z]{1,3}\d+$`),
	regexp.MustCompile(`^\d+[A-Za-z]+\d+$`),
	regexp.MustCompile(`(?i)^(bot|user|account)\d+`),
}

// Profile score contributions. Additive and independent, capped at 1.0.
const (
	genericUsernameWeight = 0.5
	emptyDescWeight       = 0.3
	emptyLocationWeight   = 0.2
	minDescriptionLen     = 10
)

// analyzeProfile scores account metadata for bot-typical sparseness.
func analyzeProfile(user schema.UserProfile) schema.ProfileSignals {
	var sig schema.ProfileSignals

	for _, pat := range genericUsernamePatterns {
		if pat.MatchString(user.Username) {
			sig.HasGenericUsername = true
			break
		}
	}

	desc := strings.TrimSpace(user.Description)
	sig.EmptyDescription = len(desc) < minDescriptionLen

	sig.EmptyLocation = strings.TrimSpace(user.Location) == ""

	score := 0.0
	if sig.HasGenericUsername {
		score += genericUsernameWeight
	}
	if sig.EmptyDescription {
		score += emptyDescWeight
	}
	if sig.EmptyLocation {
		score += emptyLocationWeight
	}
	sig.SuspiciousScore = clamp01(score)
	return sig
}

package core

import (
	"fmt"
	"strings"

	"botspot/schema"
)

// Confidence rescaling: hybrid scores are divided by confidenceScale so that
// values near the decision boundary read as moderate confidence, then capped
// at confidenceCap. Confidence is NOT a calibrated probability.
const (
	confidenceScale = 0.9
	confidenceCap   = 0.99
)

// blendResult is the output of one ensemble blend.
type blendResult struct {
	IsBot      bool
	Confidence float64
	Hybrid     float64
	Reasoning  string
	Weights    schema.EnsembleWeights
}

// blend combines a clamped heuristic score with an optional secondary-model
// probability. When weights is nil the data-free defaults apply: an even
// blend at threshold 0.45 if a probability is present, otherwise the
// heuristic-only weights. The threshold comparison is >= on purpose; a
// hybrid score exactly at the threshold flags the user.
func blend(heuristic float64, modelProb *float64, weights *schema.EnsembleWeights, reasons []string) blendResult {
	var w schema.EnsembleWeights
	switch {
	case weights != nil:
		w = *weights
	case modelProb != nil:
		w = schema.DefaultEnsembleWeights()
	default:
		w = schema.HeuristicOnlyWeights()
	}

	var prob float64
	if modelProb != nil {
		prob = *modelProb
	}

	hybrid := w.Heuristic*heuristic + w.Model*prob
	isBot := hybrid >= w.Threshold

	confidence := hybrid
	if confidence < 0 {
		confidence = 0
	}
	confidence /= confidenceScale
	if confidence > confidenceCap {
		confidence = confidenceCap
	}

	return blendResult{
		IsBot:      isBot,
		Confidence: confidence,
		Hybrid:     hybrid,
		Reasoning:  buildReasoning(isBot, modelProb, reasons),
		Weights:    w,
	}
}

// buildReasoning renders the human-readable explanation for a verdict.
func buildReasoning(isBot bool, modelProb *float64, reasons []string) string {
	if !isBot {
		return "normal activity patterns"
	}

	parts := make([]string, 0, len(reasons)+1)
	parts = append(parts, reasons...)
	if modelProb != nil && *modelProb > 0.5 {
		parts = append(parts, fmt.Sprintf("secondary model probability %.2f", *modelProb))
	}
	if len(parts) == 0 {
		return "multiple weak indicators"
	}
	return strings.Join(parts, "; ")
}

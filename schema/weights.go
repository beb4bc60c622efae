package schema

// EnsembleWeights holds the tunable blend weights and decision threshold.
// Heuristic and Model may drift outside [0,1] during optimizer proposals but
// are clamped back after every mutation; Threshold stays in [0.1, 0.9].
type EnsembleWeights struct {
	Heuristic float64 `json:"weightHeuristic"`
	Model     float64 `json:"weightPython"`
	Threshold float64 `json:"threshold"`
}

// Threshold clamp bounds for optimizer proposals.
const (
	MinThreshold = 0.1
	MaxThreshold = 0.9
)

// Clamp returns a copy with Heuristic and Model clamped to [0,1]
// and Threshold clamped to [MinThreshold, MaxThreshold].
func (w EnsembleWeights) Clamp() EnsembleWeights {
	clamp := func(v, lo, hi float64) float64 {
		if v < lo {
			return lo
		}
		if v > hi {
			return hi
		}
		return v
	}
	return EnsembleWeights{
		Heuristic: clamp(w.Heuristic, 0, 1),
		Model:     clamp(w.Model, 0, 1),
		Threshold: clamp(w.Threshold, MinThreshold, MaxThreshold),
	}
}

// DefaultEnsembleWeights is the data-free blend used when a secondary-model
// probability is available but no calibrated weights exist.
func DefaultEnsembleWeights() EnsembleWeights {
	return EnsembleWeights{Heuristic: 0.5, Model: 0.5, Threshold: 0.45}
}

// HeuristicOnlyWeights is the fallback when no secondary-model probability is
// available. The threshold was tuned against the practice datasets.
func HeuristicOnlyWeights() EnsembleWeights {
	return EnsembleWeights{Heuristic: 1, Model: 0, Threshold: 0.4586}
}

// OptimizerSeedWeights is the starting point for every hill-climbing search.
func OptimizerSeedWeights() EnsembleWeights {
	return EnsembleWeights{Heuristic: 0.5, Model: 0.5, Threshold: 0.45}
}

// GetDefaultSignalWeights returns the empirically tuned heuristic signal
// weights. These are fixed configuration, not re-derived at runtime; the
// mentions weight is negative on purpose (heavy mention use reads human).
func GetDefaultSignalWeights() map[SignalKey]float64 {
	return map[SignalKey]float64{
		SignalHashtag:     0.1829,
		SignalLengthCons:  0.1412,
		SignalTemporal:    0.2931,
		SignalTweetVolume: 0.0679,
		SignalLowURL:      0.0453,
		SignalMentions:    -0.0111,
		SignalHourSpread:  0.2686,
	}
}

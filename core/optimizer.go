package core

import (
	"errors"
	"math/rand"

	"botspot/schema"
)

// Step sizes for the four coarse-to-fine search phases. Phase boundaries are
// evenly spaced across the iteration budget.
var optimizerSteps = [4]float64{0.05, 0.02, 0.01, 0.005}

// progressInterval is how often the optional progress callback fires.
const progressInterval = 10000

// ErrEmptyGroundTruth is returned when the optimizer is invoked without any
// labeled bots; a zero-user fitness evaluation is degenerate and the caller
// should fall back to persisted or default weights instead.
var ErrEmptyGroundTruth = errors.New("ground truth is empty")

// ProgressFunc receives the running best at fixed iteration intervals.
type ProgressFunc func(iteration int, best schema.EnsembleWeights, bestScore int)

// Optimizer tunes ensemble weights and threshold against a labeled scoring
// function via greedy hill climbing. Heuristic scores are computed once at
// construction and reused across all iterations; extraction is the expensive
// step, so this memoization is what makes large iteration budgets viable.
type Optimizer struct {
	heuristics map[string]float64 // userID -> clamped heuristic score
	probs      map[string]float64 // userID -> secondary model probability
	truth      map[string]struct{}
	rng        *rand.Rand
}

// NewOptimizer precomputes the per-user clamped heuristic scores.
// rng must not be nil; seed it for deterministic tests.
func NewOptimizer(
	users []schema.UserProfile,
	postsByAuthor map[string][]schema.Post,
	probs map[string]float64,
	truth map[string]struct{},
	signalWeights map[schema.SignalKey]float64,
	rng *rand.Rand,
) *Optimizer {
	heuristics := make(map[string]float64, len(users))
	for _, u := range users {
		res := scoreHeuristic(u, postsByAuthor[u.ID], signalWeights)
		heuristics[u.ID] = clamp01(res.Raw)
	}
	return &Optimizer{
		heuristics: heuristics,
		probs:      probs,
		truth:      truth,
		rng:        rng,
	}
}

// Fitness evaluates candidate weights against the ground truth using the
// competition's asymmetric scoring.
func (o *Optimizer) Fitness(w schema.EnsembleWeights) int {
	predicted := make(map[string]struct{})
	for id, h := range o.heuristics {
		hybrid := w.Heuristic*h + w.Model*o.probs[id]
		if hybrid >= w.Threshold {
			predicted[id] = struct{}{}
		}
	}
	return Tally(predicted, o.truth).Score
}

// Run performs the hill-climbing search: perturb each weight field with
// uniform noise, clamp, and accept only strict improvements. No downhill
// acceptance and no restarts; the result is a best-of-N local optimum, not a
// global one.
func (o *Optimizer) Run(iterations int, progress ProgressFunc) (*schema.OptimizeOutput, error) {
	if len(o.truth) == 0 {
		return nil, ErrEmptyGroundTruth
	}
	if iterations < 1 {
		return nil, errors.New("iterations must be at least 1")
	}

	best := schema.OptimizerSeedWeights()
	bestScore := o.Fitness(best)

	for i := 0; i < iterations; i++ {
		phase := i * len(optimizerSteps) / iterations
		if phase >= len(optimizerSteps) {
			phase = len(optimizerSteps) - 1
		}
		step := optimizerSteps[phase]

		candidate := schema.EnsembleWeights{
			Heuristic: best.Heuristic + o.perturb(step),
			Model:     best.Model + o.perturb(step),
			Threshold: best.Threshold + o.perturb(step),
		}.Clamp()

		if score := o.Fitness(candidate); score > bestScore {
			best = candidate
			bestScore = score
		}

		if progress != nil && (i+1)%progressInterval == 0 {
			progress(i+1, best, bestScore)
		}
	}

	return &schema.OptimizeOutput{
		Weights:    best,
		Score:      bestScore,
		Iterations: iterations,
	}, nil
}

// perturb draws uniform noise in [-step, step].
func (o *Optimizer) perturb(step float64) float64 {
	return (o.rng.Float64()*2 - 1) * step
}

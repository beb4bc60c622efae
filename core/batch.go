package core

import (
	"context"
	"sync"

	"botspot/internal/contract"
	"botspot/schema"
)

// minProbCoverage is the minimum fraction of dataset users that must have a
// secondary-model probability before the ensemble path is trusted. Below this
// the probability map is considered stale for the dataset and the scan runs
// heuristic-only.
const minProbCoverage = 0.5

// probCoverage returns the fraction of users with a probability entry.
func probCoverage(users []schema.UserProfile, probs map[string]float64) float64 {
	if len(users) == 0 || len(probs) == 0 {
		return 0
	}
	matched := 0
	for _, u := range users {
		if _, ok := probs[u.ID]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(users))
}

// scanDataset processes all users in parallel using a worker pool.
// It spawns cfg.Workers goroutines to score users concurrently and aggregates
// their verdicts into a single map keyed by user id.
func scanDataset(
	ctx context.Context,
	cfg *contract.Config,
	ds *schema.Dataset,
	probs map[string]float64,
	weights *schema.EnsembleWeights,
	useModel bool,
) map[string]*schema.Verdict {
	grouped := ds.PostsByAuthor()

	userCh := make(chan schema.UserProfile, len(ds.Users))
	verdictCh := make(chan *schema.Verdict, len(ds.Users))
	var wg sync.WaitGroup

	// Start worker pool
	for range cfg.Workers {
		wg.Go(func() {
			for u := range userCh {
				verdictCh <- scoreUser(u, grouped[u.ID], probs, cfg.SignalWeights, weights, useModel)
			}
		})
	}

	// Send users to worker channel, honoring cancellation
	for _, u := range ds.Users {
		select {
		case <-ctx.Done():
		case userCh <- u:
			continue
		}
		break
	}
	close(userCh)

	// Wait for all workers to finish processing
	wg.Wait()
	close(verdictCh)

	verdicts := make(map[string]*schema.Verdict, len(ds.Users))
	for v := range verdictCh {
		verdicts[v.UserID] = v
	}
	return verdicts
}

// scoreUser computes the full verdict for a single user: feature extraction,
// heuristic scoring, and the ensemble blend. Each call is independent, which
// is what makes the worker-pool fan-out safe.
func scoreUser(
	user schema.UserProfile,
	posts []schema.Post,
	probs map[string]float64,
	signalWeights map[schema.SignalKey]float64,
	weights *schema.EnsembleWeights,
	useModel bool,
) *schema.Verdict {
	res := scoreHeuristic(user, posts, signalWeights)
	heuristic := clamp01(res.Raw)

	var modelProb *float64
	if useModel {
		if p, ok := probs[user.ID]; ok {
			modelProb = &p
		}
	}

	blended := blend(heuristic, modelProb, weights, res.Reasons)

	method := schema.HeuristicMethod
	if useModel {
		method = schema.EnsembleMethod
	}

	bundle := res.Bundle
	bundle.ModelProb = modelProb

	return &schema.Verdict{
		UserID:     user.ID,
		Username:   user.Username,
		IsBot:      blended.IsBot,
		Confidence: blended.Confidence,
		Heuristic:  heuristic,
		Hybrid:     blended.Hybrid,
		Reasoning:  blended.Reasoning,
		Method:     method,
		Features:   bundle,
	}
}

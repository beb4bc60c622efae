// Package core has core logic for feature extraction, scoring and calibration.
package core

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"botspot/internal/contract"
	"botspot/internal/dataio"
	"botspot/internal/outwriter"
	"botspot/schema"
)

// ExecutorFunc defines the function signature for executing different detection modes.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error

// suppressHeaderKey marks contexts whose callers do their own output framing,
// such as the MCP server speaking a protocol over stdio.
type suppressHeaderKey struct{}

// WithSuppressHeader returns a context that disables the scan header log.
func WithSuppressHeader(ctx context.Context) context.Context {
	return context.WithValue(ctx, suppressHeaderKey{}, true)
}

func headerSuppressed(ctx context.Context) bool {
	v, _ := ctx.Value(suppressHeaderKey{}).(bool)
	return v
}

// ExecuteScan runs the full detection pipeline and prints results to stdout.
// It serves as the main entry point for the 'scan' command.
func ExecuteScan(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()
	output, ranked, err := GetScanResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.PrintScanResults(output, ranked, cfg, duration)
}

// GetScanResults runs the detection pipeline and returns the full output plus
// the ranked verdict slice, without printing. Exposed for the MCP server.
func GetScanResults(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) (*schema.ScanOutput, []*schema.Verdict, error) {
	output, err := runScanCore(ctx, cfg, mgr, "scan")
	if err != nil {
		return nil, nil, err
	}
	return output, rankVerdicts(output.Verdicts, cfg.ResultLimit), nil
}

// ExecuteOptimize runs the weight calibration alone and prints the calibrated
// weights. It serves as the main entry point for the 'optimize' command.
func ExecuteOptimize(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()
	result, err := GetOptimizeResults(ctx, cfg, mgr, func(iteration int, best schema.EnsembleWeights, bestScore int) {
		fmt.Printf("Iteration %d: best score %d (threshold %.4f)\n", iteration, bestScore, best.Threshold)
	})
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.PrintOptimizeResults(result, cfg, duration)
}

// GetOptimizeResults runs the hill-climbing calibration and persists the
// winning weights. Exposed for the MCP server, which passes a nil progress
// callback to keep stdio clean.
func GetOptimizeResults(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, progress ProgressFunc) (*schema.OptimizeOutput, error) {
	ds, err := dataio.LoadDataset(cfg.DatasetPath())
	if err != nil {
		return nil, err
	}
	if cfg.BotsPath == "" {
		return nil, errors.New("--bots is required for optimization")
	}
	truth, err := dataio.LoadGroundTruth(cfg.BotsPath)
	if err != nil {
		return nil, err
	}
	probs, err := loadProbabilities(cfg)
	if err != nil {
		return nil, err
	}

	if !headerSuppressed(ctx) {
		outwriter.LogScanHeader(cfg, ds)
	}

	runStore := mgr.GetRunStore()
	runID := beginRunTracking(runStore, ds, "optimize", cfg)

	opt := NewOptimizer(ds.Users, ds.PostsByAuthor(), probs, truth, cfg.SignalWeights, newRand(cfg.Seed))
	result, err := opt.Run(cfg.Iterations, progress)
	if err != nil {
		return nil, err
	}

	persistWeights(mgr.GetWeightsStore(), calibrationKey(cfg, ds), result)
	endRunTracking(runStore, runID, ds, 0, "optimize", result.Weights, &result.Score)

	return result, nil
}

// ExecuteEvaluate scores a labeled dataset with the current weights and prints
// the competition tallies. No calibration happens here; this is the command
// for measuring how persisted or default weights hold up on fresh data.
func ExecuteEvaluate(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()
	tally, weights, err := GetEvaluateResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.PrintEvaluationResults(tally, weights, cfg, duration)
}

// GetEvaluateResults scores a labeled dataset with the current weights and
// returns the competition tallies. Exposed for the MCP server.
func GetEvaluateResults(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) (schema.ScoreTally, schema.EnsembleWeights, error) {
	if cfg.BotsPath == "" {
		return schema.ScoreTally{}, schema.EnsembleWeights{}, errors.New("--bots is required for evaluation")
	}

	ds, err := dataio.LoadDataset(cfg.DatasetPath())
	if err != nil {
		return schema.ScoreTally{}, schema.EnsembleWeights{}, err
	}
	truth, err := dataio.LoadGroundTruth(cfg.BotsPath)
	if err != nil {
		return schema.ScoreTally{}, schema.EnsembleWeights{}, err
	}
	probs, err := loadProbabilities(cfg)
	if err != nil {
		return schema.ScoreTally{}, schema.EnsembleWeights{}, err
	}

	if !headerSuppressed(ctx) {
		outwriter.LogScanHeader(cfg, ds)
	}

	runStore := mgr.GetRunStore()
	runID := beginRunTracking(runStore, ds, "evaluate", cfg)

	useModel := probCoverage(ds.Users, probs) >= minProbCoverage
	weights := resolveStoredWeights(cfg, mgr.GetWeightsStore(), calibrationKey(cfg, ds), useModel)

	verdicts := scanDataset(ctx, cfg, ds, probs, &weights, useModel)
	tally := Tally(FlaggedSet(verdicts), truth)

	endRunTracking(runStore, runID, ds, len(sortedFlaggedIDs(verdicts)), "evaluate", weights, &tally.Score)

	return tally, weights, nil
}

// ExecuteSubmit runs a scan and writes the flagged user ids to the
// competition submission artifact "<team>.detections.<lang>.txt".
func ExecuteSubmit(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()
	output, err := runScanCore(ctx, cfg, mgr, "submit")
	if err != nil {
		return err
	}

	path := cfg.OutputFile
	if path == "" {
		path = contract.DetectionsFileName(cfg.Team, output.Lang)
	}
	flagged := sortedFlaggedIDs(output.Verdicts)
	if err := dataio.WriteDetections(path, flagged); err != nil {
		return err
	}

	duration := time.Since(start)
	return outwriter.PrintSubmissionResults(path, len(flagged), len(output.Verdicts), cfg, duration)
}

// ExecuteMerge combines multiple dataset files into one, deduplicating users
// by id, and writes the merged dataset as JSON.
func ExecuteMerge(_ context.Context, cfg *contract.Config, _ contract.StoreManager) error {
	start := time.Now()

	if len(cfg.DatasetPaths) < 2 {
		return errors.New("merge requires at least two dataset files")
	}

	datasets := make([]*schema.Dataset, 0, len(cfg.DatasetPaths))
	for _, path := range cfg.DatasetPaths {
		ds, err := dataio.LoadDataset(path)
		if err != nil {
			return err
		}
		datasets = append(datasets, ds)
	}
	merged := dataio.MergeDatasets(datasets)

	path := cfg.OutputFile
	if path == "" {
		path = "merged.json"
	}
	if err := dataio.WriteDataset(path, merged); err != nil {
		return err
	}

	// Union the ground-truth files alongside, when provided.
	if len(cfg.MergeBotsPaths) > 0 {
		truth := make(map[string]struct{})
		for _, botsPath := range cfg.MergeBotsPaths {
			ids, err := dataio.LoadGroundTruth(botsPath)
			if err != nil {
				return err
			}
			for id := range ids {
				truth[id] = struct{}{}
			}
		}
		botsOut := strings.TrimSuffix(path, ".json") + ".bots.txt"
		if err := dataio.WriteGroundTruth(botsOut, truth); err != nil {
			return err
		}
	}

	duration := time.Since(start)
	return outwriter.PrintMergeResults(merged, len(datasets), path, cfg, duration)
}

// runScanCore performs the common Loading, Calibration, and Scoring steps.
func runScanCore(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, command string) (*schema.ScanOutput, error) {
	// --- 1. Load inputs ---
	ds, err := dataio.LoadDataset(cfg.DatasetPath())
	if err != nil {
		return nil, err
	}
	if len(ds.Users) == 0 {
		return nil, errors.New("no users found in dataset")
	}

	var truth map[string]struct{}
	if cfg.BotsPath != "" {
		truth, err = dataio.LoadGroundTruth(cfg.BotsPath)
		if err != nil {
			return nil, err
		}
	}
	probs, err := loadProbabilities(cfg)
	if err != nil {
		return nil, err
	}

	if !headerSuppressed(ctx) {
		outwriter.LogScanHeader(cfg, ds)
	}

	// --- 2. Begin Run Tracking (if configured) ---
	runStore := mgr.GetRunStore()
	runID := beginRunTracking(runStore, ds, command, cfg)

	// --- 3. Coverage gate and weight resolution ---
	useModel := probCoverage(ds.Users, probs) >= minProbCoverage
	key := calibrationKey(cfg, ds)
	weightsStore := mgr.GetWeightsStore()

	var weights schema.EnsembleWeights
	switch ResolveWeightsSource(len(truth) > 0, hasPersistedWeights(weightsStore, key)) {
	case schema.OptimizeFresh:
		opt := NewOptimizer(ds.Users, ds.PostsByAuthor(), probs, truth, cfg.SignalWeights, newRand(cfg.Seed))
		result, err := opt.Run(cfg.Iterations, nil)
		if err != nil {
			return nil, err
		}
		weights = result.Weights
		persistWeights(weightsStore, key, result)
	case schema.ReusePersisted:
		weights = resolveStoredWeights(cfg, weightsStore, key, useModel)
	default:
		weights = defaultWeights(useModel)
	}
	if cfg.ThresholdOverride != nil {
		weights.Threshold = *cfg.ThresholdOverride
	}

	// --- 4. Core Scoring ---
	verdicts := scanDataset(ctx, cfg, ds, probs, &weights, useModel)

	method := schema.HeuristicMethod
	if useModel {
		method = schema.EnsembleMethod
	}

	var tally *schema.ScoreTally
	if len(truth) > 0 {
		t := Tally(FlaggedSet(verdicts), truth)
		tally = &t
	}

	// --- 5. End Run Tracking ---
	var score *int
	if tally != nil {
		score = &tally.Score
	}
	endRunTracking(runStore, runID, ds, len(sortedFlaggedIDs(verdicts)), string(method), weights, score)

	return &schema.ScanOutput{
		Verdicts: verdicts,
		Method:   method,
		Weights:  weights,
		Lang:     ds.Lang,
		Tally:    tally,
	}, nil
}

// loadProbabilities loads the optional secondary-model probability map.
func loadProbabilities(cfg *contract.Config) (map[string]float64, error) {
	if cfg.ProbsPath == "" {
		return nil, nil
	}
	return dataio.LoadModelProbabilities(cfg.ProbsPath)
}

// calibrationKey resolves the weights-store key: explicit --key flag first,
// then the dataset language, then a catch-all.
func calibrationKey(cfg *contract.Config, ds *schema.Dataset) string {
	if cfg.CalibrationKey != "" {
		return cfg.CalibrationKey
	}
	if ds.Lang != "" {
		return ds.Lang
	}
	return "default"
}

// defaultWeights returns the data-free weights for the given mode.
func defaultWeights(useModel bool) schema.EnsembleWeights {
	if useModel {
		return schema.DefaultEnsembleWeights()
	}
	return schema.HeuristicOnlyWeights()
}

// hasPersistedWeights reports whether the store holds weights for the key.
// Store failures degrade to "no" with a warning; persistence is best-effort.
func hasPersistedWeights(store contract.WeightsStore, key string) bool {
	if store == nil {
		return false
	}
	persisted, err := store.GetWeights(key)
	if err != nil {
		contract.LogWarn("Weights lookup failed", err)
		return false
	}
	return persisted != nil
}

// resolveStoredWeights returns persisted weights for the key, falling back to
// the data-free defaults, and applies the threshold override last.
func resolveStoredWeights(cfg *contract.Config, store contract.WeightsStore, key string, useModel bool) schema.EnsembleWeights {
	weights := defaultWeights(useModel)
	if store != nil {
		if persisted, err := store.GetWeights(key); err != nil {
			contract.LogWarn("Weights lookup failed", err)
		} else if persisted != nil {
			weights = persisted.Weights
		}
	}
	if cfg.ThresholdOverride != nil {
		weights.Threshold = *cfg.ThresholdOverride
	}
	return weights
}

// persistWeights writes calibrated weights back to the store. Failures are
// logged, not returned; a missed write never fails the scan itself.
func persistWeights(store contract.WeightsStore, key string, result *schema.OptimizeOutput) {
	if store == nil {
		return
	}
	if err := store.PutWeights(key, result.Weights, &result.Score); err != nil {
		contract.LogWarn("Weights persistence failed", err)
	}
}

// beginRunTracking starts run tracking and returns the run id, or 0 when
// tracking is disabled or failed.
func beginRunTracking(store contract.RunStore, ds *schema.Dataset, command string, cfg *contract.Config) int64 {
	if store == nil {
		return 0
	}
	configParams := map[string]any{
		"workers":    cfg.Workers,
		"iterations": cfg.Iterations,
		"lang":       ds.Lang,
		"bots":       cfg.BotsPath != "",
		"probs":      cfg.ProbsPath != "",
	}
	runID, err := store.BeginRun(time.Now(), ds.ID, command, configParams)
	if err != nil {
		contract.LogWarn("Run tracking initialization failed", err)
		return 0
	}
	return runID
}

// endRunTracking finalizes run tracking for a run started by beginRunTracking.
func endRunTracking(store contract.RunStore, runID int64, ds *schema.Dataset, flagged int, method string, weights schema.EnsembleWeights, score *int) {
	if store == nil || runID == 0 {
		return
	}
	if err := store.EndRun(runID, time.Now(), len(ds.Users), len(ds.Posts), flagged, method, weights, score); err != nil {
		contract.LogWarn("Failed to finalize run tracking", err)
	}
}

// newRand builds the optimizer's random source. A zero seed means
// time-seeded; any other value gives reproducible searches.
func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

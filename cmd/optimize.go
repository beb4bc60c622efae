package cmd

import (
	"github.com/spf13/cobra"

	"botspot/core"
	"botspot/internal/contract"
)

// optimizeCmd calibrates ensemble weights against labeled data.
var optimizeCmd = &cobra.Command{
	Use:   "optimize <dataset.json>",
	Short: "Calibrate ensemble weights against a labeled dataset.",
	Long: `Search for the ensemble weights and decision threshold that maximize the
competition score on a labeled dataset.

The search is a randomized hill climb: starting from the default weights, it
perturbs the heuristic weight, model weight and threshold in shrinking steps,
keeping only strict improvements. Fitness is the competition score, which
rewards each caught bot with +4 and charges -1 per missed bot and -2 per
wrongly flagged human.

The winning weights are persisted under the dataset's calibration key
(--key, falling back to the dataset language) so later scans without ground
truth can reuse them.

Requires: --bots with the ground-truth bot ids

Examples:
  # Calibrate with the default 100k iterations
  botspot optimize dataset.en.json --bots bots.en.txt

  # Longer, reproducible search with model probabilities
  botspot optimize dataset.en.json --bots bots.en.txt --probs scores.json --iterations 500000 --seed 42

  # Store the result under an explicit key
  botspot optimize dataset.en.json --bots bots.en.txt --key campaign-2026`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteOptimize(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot run calibration", err)
		}
	},
}

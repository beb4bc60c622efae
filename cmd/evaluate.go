package cmd

import (
	"github.com/spf13/cobra"

	"botspot/core"
	"botspot/internal/contract"
)

// evaluateCmd scores a labeled dataset with the current weights.
var evaluateCmd = &cobra.Command{
	Use:   "evaluate <dataset.json>",
	Short: "Measure detection quality on a labeled dataset without recalibrating.",
	Long: `Score a labeled dataset with the currently persisted (or default) weights
and report the competition tallies.

Unlike 'scan', no calibration happens even though ground truth is provided.
This is the held-out check: calibrate on one dataset with 'optimize', then
evaluate on another to see whether the weights generalize.

Reports true positives (+4 each), false negatives (-1 each), false positives
(-2 each) and the resulting competition score.

Requires: --bots with the ground-truth bot ids

Examples:
  # Evaluate persisted weights on a held-out dataset
  botspot evaluate dataset.es.json --bots bots.es.txt

  # Evaluate a specific stored calibration
  botspot evaluate dataset.es.json --bots bots.es.txt --key campaign-2026

  # Check how a forced threshold would have scored
  botspot evaluate dataset.es.json --bots bots.es.txt --threshold 0.5`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteEvaluate(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot run evaluation", err)
		}
	},
}

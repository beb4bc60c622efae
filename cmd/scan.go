package cmd

import (
	"github.com/spf13/cobra"

	"botspot/core"
	"botspot/internal/contract"
)

// scanCmd performs bot detection on a dataset.
var scanCmd = &cobra.Command{
	Use:   "scan <dataset.json>",
	Short: "Score every account in a dataset and rank the likely bots.",
	Long: `Run the full detection pipeline over a dataset of users and posts.

Every account is scored by five behavioral feature extractors (temporal
cadence, content repetition, profile metadata, linguistic patterns, activity
rhythm), combined into a heuristic score, and optionally blended with an
external model's bot probabilities into an ensemble verdict.

Weight resolution is automatic:
- With --bots, weights are calibrated fresh against the ground truth
- Without --bots, previously calibrated weights for the dataset language
  are reused when available
- Otherwise data-free default weights apply

Examples:
  # Scan with defaults, show the top 25 suspects
  botspot scan dataset.en.json

  # Blend in model probabilities and show per-feature detail
  botspot scan dataset.en.json --probs scores.json --detail

  # Calibrate against ground truth while scanning
  botspot scan dataset.en.json --bots bots.en.txt

  # Force a decision threshold and export to CSV
  botspot scan dataset.en.json --threshold 0.5 --output csv --output-file verdicts.csv`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteScan(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot run scan", err)
		}
	},
}

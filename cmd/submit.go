package cmd

import (
	"github.com/spf13/cobra"

	"botspot/core"
	"botspot/internal/contract"
)

// submitCmd writes the flagged user ids as a competition submission artifact.
var submitCmd = &cobra.Command{
	Use:   "submit <dataset.json>",
	Short: "Scan a dataset and write the flagged ids as a submission file.",
	Long: `Run the full detection pipeline and write the flagged user ids, one per
line in sorted order, to the competition submission artifact.

The artifact is named "<team>.detections.<lang>.txt" from --team and the
dataset's language, unless --output-file overrides the path entirely.

Examples:
  # Produce team-red.detections.en.txt
  botspot submit dataset.en.json --team team-red

  # Calibrate on the way and write to an explicit path
  botspot submit dataset.en.json --bots bots.en.txt --output-file detections.txt`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSubmit(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot write submission", err)
		}
	},
}

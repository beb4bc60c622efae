package cmd

import (
	"github.com/spf13/cobra"

	"botspot/core"
	"botspot/internal/contract"
)

// mergeCmd combines multiple datasets into one.
var mergeCmd = &cobra.Command{
	Use:   "merge <dataset.json> <dataset.json> [more...]",
	Short: "Combine multiple dataset files into a single dataset.",
	Long: `Merge two or more dataset files into one, concatenating posts and
deduplicating users by id (first occurrence wins).

The merged dataset keeps a language tag only when all sources agree on one.
With --merge-bots, the listed ground-truth files are unioned and written
next to the merged dataset as "<output>.bots.txt".

Examples:
  # Merge two language dumps into merged.json
  botspot merge dataset.en.json dataset.es.json

  # Merge with ground truth for a combined calibration run
  botspot merge dataset.en.json dataset.es.json \
    --merge-bots bots.en.txt,bots.es.txt --output-file combined.json`,
	Args:    cobra.MinimumNArgs(2),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteMerge(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot merge datasets", err)
		}
	},
}

package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"botspot/internal/contract"
	"botspot/schema"
)

// PrintEvaluationResults outputs the evaluation tallies, dispatching based on
// the output format configured.
func PrintEvaluationResults(tally schema.ScoreTally, weights schema.EnsembleWeights, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(4)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			out := struct {
				Tally   schema.ScoreTally      `json:"tally"`
				Weights schema.EnsembleWeights `json:"weights"`
			}{Tally: tally, Weights: weights}
			return writeJSON(w, out)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			csvWriter := csv.NewWriter(w)
			defer csvWriter.Flush()
			header := []string{"true_positives", "false_negatives", "false_positives", "score", "threshold"}
			if err := csvWriter.Write(header); err != nil {
				return err
			}
			rec := []string{
				strconv.Itoa(tally.TruePositives),
				strconv.Itoa(tally.FalseNegatives),
				strconv.Itoa(tally.FalsePositives),
				strconv.Itoa(tally.Score),
				fmtFloat(weights.Threshold),
			}
			return csvWriter.Write(rec)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeEvaluationText(w, tally, weights, cfg, fmtFloat, duration)
		}, "Wrote results")
	}
}

// writeEvaluationText writes the human-readable evaluation summary.
func writeEvaluationText(w io.Writer, tally schema.ScoreTally, weights schema.EnsembleWeights, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	if cfg.UseEmojis {
		if _, err := fmt.Fprintln(w, "📊 Evaluation complete"); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintln(w, "Evaluation complete"); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Score: %d\n", tally.Score); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "True positives:  %d (+%d each)\n", tally.TruePositives, 4); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "False negatives: %d (-%d each)\n", tally.FalseNegatives, 1); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "False positives: %d (-%d each)\n", tally.FalsePositives, 2); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Threshold: %s\n", fmtFloat(weights.Threshold)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Evaluation completed in %v with %d workers\n", duration, cfg.Workers); err != nil {
		return err
	}
	return nil
}

// PrintSubmissionResults prints a short summary after writing a submission artifact.
func PrintSubmissionResults(path string, flagged, total int, cfg *contract.Config, duration time.Duration) error {
	if cfg.UseEmojis {
		fmt.Printf("📝 Submission written to %s\n", path)
	} else {
		fmt.Printf("Submission written to %s\n", path)
	}
	fmt.Printf("Flagged %d of %d users in %v\n", flagged, total, duration)
	return nil
}

// PrintMergeResults prints a short summary after writing a merged dataset.
func PrintMergeResults(merged *schema.Dataset, sources int, path string, cfg *contract.Config, duration time.Duration) error {
	if cfg.UseEmojis {
		fmt.Printf("🔀 Merged %d datasets to %s\n", sources, path)
	} else {
		fmt.Printf("Merged %d datasets to %s\n", sources, path)
	}
	fmt.Printf("Users: %d, Posts: %d, completed in %v\n", len(merged.Users), len(merged.Posts), duration)
	return nil
}

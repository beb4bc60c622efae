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

// PrintOptimizeResults outputs the calibration results, dispatching based on
// the output format configured.
func PrintOptimizeResults(result *schema.OptimizeOutput, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(4) // weights deserve full precision

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			csvWriter := csv.NewWriter(w)
			defer csvWriter.Flush()
			return writeCSVResultsForOptimize(csvWriter, result, fmtFloat)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeOptimizeText(w, result, cfg, fmtFloat, duration)
		}, "Wrote results")
	}
}

// writeOptimizeText writes the human-readable calibration summary.
func writeOptimizeText(w io.Writer, result *schema.OptimizeOutput, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	if cfg.UseEmojis {
		if _, err := fmt.Fprintln(w, "🎯 Calibration complete"); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintln(w, "Calibration complete"); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Best score: %d after %d iterations\n", result.Score, result.Iterations); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Weight (heuristic): %s\n", fmtFloat(result.Weights.Heuristic)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Weight (model):     %s\n", fmtFloat(result.Weights.Model)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Threshold:          %s\n", fmtFloat(result.Weights.Threshold)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Calibration completed in %v\n", duration); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForOptimize writes the calibration results in CSV format.
func writeCSVResultsForOptimize(w *csv.Writer, result *schema.OptimizeOutput, fmtFloat func(float64) string) error {
	header := []string{"weight_heuristic", "weight_model", "threshold", "score", "iterations"}
	if err := w.Write(header); err != nil {
		return err
	}
	rec := []string{
		fmtFloat(result.Weights.Heuristic),
		fmtFloat(result.Weights.Model),
		fmtFloat(result.Weights.Threshold),
		strconv.Itoa(result.Score),
		strconv.Itoa(result.Iterations),
	}
	return w.Write(rec)
}

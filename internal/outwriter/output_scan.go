package outwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"botspot/internal/contract"
	"botspot/internal/parquet"
	"botspot/schema"
)

// LogScanHeader prints a concise, 2-line header for each detection phase.
func LogScanHeader(cfg *contract.Config, ds *schema.Dataset) {
	lang := ds.Lang
	if lang == "" {
		lang = "unknown"
	}
	if cfg.UseEmojis {
		fmt.Printf("🔎 Scanning dataset %s (lang: %s)\n", ds.ID, lang)
	} else {
		fmt.Printf("Scanning dataset %s (lang: %s)\n", ds.ID, lang)
	}
	fmt.Printf("Users: %d, Posts: %d, Workers: %d\n", len(ds.Users), len(ds.Posts), cfg.Workers)
}

// PrintScanResults outputs the scan results, dispatching based on the output format configured.
func PrintScanResults(output *schema.ScanOutput, ranked []*schema.Verdict, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, _ := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeScanJSONResults(output, ranked, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeScanCSVResults(ranked, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return errors.New("--output-file is required for parquet output")
		}
		if err := parquet.WriteVerdictsParquet(parquet.ConvertVerdicts(ranked), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeScanTable(output, ranked, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeScanJSONResults handles opening the file and calling the JSON writer.
func writeScanJSONResults(output *schema.ScanOutput, ranked []*schema.Verdict, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForScan(w, output, ranked)
	}, "Wrote JSON")
}

// writeScanCSVResults handles opening the file and calling the CSV writer.
func writeScanCSVResults(ranked []*schema.Verdict, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVResultsForScan(csvWriter, ranked, fmtFloat)
	}, "Wrote CSV")
}

// writeScanTable generates and writes the human-readable table.
func writeScanTable(output *schema.ScanOutput, ranked []*schema.Verdict, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	headers := []string{"Rank", "User", "Verdict", "Confidence", "Label"}
	if cfg.Detail {
		headers = append(headers, "Heuristic", "Hybrid", "Temporal", "Content", "Profile", "Reasoning")
	}
	table.Header(headers)

	// 2. Configure Separators/Borders to match a minimal look
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	var data [][]string
	for i, v := range ranked {
		row := []string{
			strconv.Itoa(i + 1), // Rank
			contract.TruncateText(displayName(v), getMaxTableNameWidth(cfg)), // User
			verdictText(v.IsBot),           // Verdict
			fmtFloat(v.Confidence),         // Confidence
			verdictLabel(v, cfg.UseColors), // Label
		}
		if cfg.Detail {
			row = append(
				row,
				fmtFloat(v.Heuristic),                  // Heuristic
				fmtFloat(v.Hybrid),                     // Hybrid
				fmtFloat(v.Features.Temporal),          // Temporal
				fmtFloat(v.Features.Content),           // Content
				fmtFloat(v.Features.Profile),           // Profile
				contract.TruncateText(v.Reasoning, 48), // Reasoning
			)
		}
		data = append(data, row)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	// Compute summary stats
	flagged := 0
	for _, v := range output.Verdicts {
		if v.IsBot {
			flagged++
		}
	}
	if _, err := fmt.Fprintf(writer, "Flagged %d of %d users (method: %s, threshold: %s)\n",
		flagged, len(output.Verdicts), output.Method, fmtFloat(output.Weights.Threshold)); err != nil {
		return err
	}
	if output.Tally != nil {
		if _, err := fmt.Fprintf(writer, "Score: %d (TP: %d, FN: %d, FP: %d)\n",
			output.Tally.Score, output.Tally.TruePositives, output.Tally.FalseNegatives, output.Tally.FalsePositives); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(writer, "Scan completed in %v with %d workers. Weights backend: %s\n",
		duration, cfg.Workers, cfg.WeightsBackend); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForScan writes the scan results in CSV format.
func writeCSVResultsForScan(w *csv.Writer, ranked []*schema.Verdict, fmtFloat func(float64) string) error {
	// CSV header
	header := []string{
		"rank",
		"user_id",
		"username",
		"is_bot",
		"confidence",
		"label",
		"heuristic",
		"hybrid",
		"method",
		"reasoning",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for i, v := range ranked {
		rec := []string{
			strconv.Itoa(i + 1),                  // Rank
			v.UserID,                             // User ID
			v.Username,                           // Username
			strconv.FormatBool(v.IsBot),          // Verdict
			fmtFloat(v.Confidence),               // Confidence
			contract.GetPlainLabel(v.Confidence), // Label
			fmtFloat(v.Heuristic),                // Heuristic
			fmtFloat(v.Hybrid),                   // Hybrid
			string(v.Method),                     // Method
			v.Reasoning,                          // Reasoning
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// writeJSONResultsForScan writes the scan results in JSON format.
func writeJSONResultsForScan(w io.Writer, output *schema.ScanOutput, ranked []*schema.Verdict) error {
	// 1. Prepare the data structure for JSON with rank and label added
	type JSONVerdict struct {
		Rank  int    `json:"rank"`
		Label string `json:"label"`
		schema.Verdict
	}

	verdicts := make([]JSONVerdict, len(ranked))
	for i, v := range ranked {
		verdicts[i] = JSONVerdict{
			Rank:    i + 1,
			Label:   contract.GetPlainLabel(v.Confidence),
			Verdict: *v,
		}
	}

	// 2. Wrap with scan-level metadata
	out := struct {
		Method   schema.Method          `json:"method"`
		Weights  schema.EnsembleWeights `json:"weights"`
		Tally    *schema.ScoreTally     `json:"tally,omitempty"`
		Verdicts []JSONVerdict          `json:"verdicts"`
	}{
		Method:   output.Method,
		Weights:  output.Weights,
		Tally:    output.Tally,
		Verdicts: verdicts,
	}

	return writeJSON(w, out)
}

// displayName prefers the username for tables, falling back to the raw id.
func displayName(v *schema.Verdict) string {
	if v.Username != "" {
		return v.Username
	}
	return v.UserID
}

// verdictText renders the boolean verdict for tables.
func verdictText(isBot bool) string {
	if isBot {
		return "BOT"
	}
	return "human"
}

// verdictLabel renders the confidence label, colored when enabled.
func verdictLabel(v *schema.Verdict, useColors bool) string {
	if useColors {
		return contract.GetColorLabel(v.Confidence)
	}
	return contract.GetPlainLabel(v.Confidence)
}

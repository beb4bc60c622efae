package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"botspot/internal/contract"
	"botspot/schema"
)

// PrintWeightsEntries outputs the persisted weights entries, dispatching based
// on the output format configured.
func PrintWeightsEntries(entries []schema.PersistedWeights, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(4)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, entries)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			csvWriter := csv.NewWriter(w)
			defer csvWriter.Flush()
			return writeCSVResultsForWeights(csvWriter, entries, fmtFloat)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeWeightsTable(w, entries, fmtFloat)
		}, "Wrote table")
	}
}

// writeWeightsTable generates and writes the human-readable table.
func writeWeightsTable(w io.Writer, entries []schema.PersistedWeights, fmtFloat func(float64) string) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No calibrated weights stored")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Key", "Heuristic", "Model", "Threshold", "Score", "Updated"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, e := range entries {
		score := "-"
		if e.Score != nil {
			score = strconv.Itoa(*e.Score)
		}
		data = append(data, []string{
			e.Key,
			fmtFloat(e.Weights.Heuristic),
			fmtFloat(e.Weights.Model),
			fmtFloat(e.Weights.Threshold),
			score,
			e.UpdatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeCSVResultsForWeights writes the weights entries in CSV format.
func writeCSVResultsForWeights(w *csv.Writer, entries []schema.PersistedWeights, fmtFloat func(float64) string) error {
	header := []string{"key", "weight_heuristic", "weight_model", "threshold", "score", "updated_at"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, e := range entries {
		score := ""
		if e.Score != nil {
			score = strconv.Itoa(*e.Score)
		}
		rec := []string{
			e.Key,
			fmtFloat(e.Weights.Heuristic),
			fmtFloat(e.Weights.Model),
			fmtFloat(e.Weights.Threshold),
			score,
			e.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

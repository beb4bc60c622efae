// Package parquet provides data structures and functions for exporting
// detection data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"botspot/schema"
)

// Run represents a single detection or calibration run with metadata.
// This struct maps to the botspot_runs database table.
type Run struct {
	// RunID is the unique identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// DatasetID identifies the dataset that was processed
	DatasetID string `parquet:"dataset_id,snappy"`

	// Command is the CLI command that produced this run
	Command string `parquet:"command,snappy"`

	// TotalUsers is the number of users in the dataset
	TotalUsers int32 `parquet:"total_users,snappy"`

	// TotalPosts is the number of posts in the dataset
	TotalPosts int32 `parquet:"total_posts,snappy"`

	// Flagged is the number of users flagged as bots
	Flagged int32 `parquet:"flagged,snappy"`

	// Method records whether the run was heuristic-only or ensemble
	Method string `parquet:"method,snappy"`

	// Weights contains the JSON-encoded ensemble weights (nullable)
	Weights *string `parquet:"weights,optional,snappy"`

	// Score is the competition score, when ground truth was available (nullable)
	Score *int32 `parquet:"score,optional,snappy"`
}

// Verdict represents one per-user classification for columnar export.
type Verdict struct {
	// UserID is the dataset user id
	UserID string `parquet:"user_id,snappy"`

	// Username is the account handle
	Username string `parquet:"username,snappy"`

	// IsBot is the final classification
	IsBot bool `parquet:"is_bot,snappy"`

	// Confidence is the rescaled confidence value
	Confidence float64 `parquet:"confidence,snappy"`

	// Heuristic is the clamped heuristic score
	Heuristic float64 `parquet:"heuristic,snappy"`

	// Hybrid is the blended score that was thresholded
	Hybrid float64 `parquet:"hybrid,snappy"`

	// Reasoning is the human-readable explanation
	Reasoning string `parquet:"reasoning,snappy"`

	// Method records whether the verdict came from heuristic or ensemble scoring
	Method string `parquet:"method,snappy"`

	// ModelProb is the secondary model's probability (nullable)
	ModelProb *float64 `parquet:"model_prob,optional,snappy"`
}

// WriteRunsParquet writes a slice of Run structs to a Parquet file.
func WriteRunsParquet(data []Run, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the Run struct tags
	writer := parquet.NewGenericWriter[Run](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteVerdictsParquet writes a slice of Verdict structs to a Parquet file.
func WriteVerdictsParquet(data []Verdict, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the Verdict struct tags
	writer := parquet.NewGenericWriter[Verdict](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertRunRecords converts schema.RunRecord to Run for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []Run {
	result := make([]Run, len(records))
	for i, record := range records {
		result[i] = Run{
			RunID:      record.RunID,
			StartTime:  record.StartTime,
			EndTime:    record.EndTime,
			DatasetID:  record.DatasetID,
			Command:    record.Command,
			TotalUsers: record.TotalUsers,
			TotalPosts: record.TotalPosts,
			Flagged:    record.Flagged,
			Method:     record.Method,
			Weights:    record.Weights,
			Score:      record.Score,
		}
	}
	return result
}

// ConvertVerdicts converts ranked schema verdicts to Verdict for Parquet export.
func ConvertVerdicts(verdicts []*schema.Verdict) []Verdict {
	result := make([]Verdict, len(verdicts))
	for i, v := range verdicts {
		result[i] = Verdict{
			UserID:     v.UserID,
			Username:   v.Username,
			IsBot:      v.IsBot,
			Confidence: v.Confidence,
			Heuristic:  v.Heuristic,
			Hybrid:     v.Hybrid,
			Reasoning:  v.Reasoning,
			Method:     string(v.Method),
			ModelProb:  v.Features.ModelProb,
		}
	}
	return result
}

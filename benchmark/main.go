// Package main provides a performance benchmarking tool for the Botspot CLI.
// It measures scan times across synthetic datasets of different sizes and
// worker counts, running each configuration multiple times, treating the first
// successful run as cold and averaging the rest as warm, generating CSV output
// for performance analysis and documentation.
//
// Prerequisites:
// - botspot binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory where synthetic datasets are generated
package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (cold run and average of warm runs).
type BenchmarkResult struct {
	Dataset  string
	Workers  int
	ColdTime string
	WarmTime string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir      string
	Timeout      time.Duration
	Runs         int
	DatasetSizes map[string]int // dataset label -> user count
	WorkerCounts []int
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		WorkDir: os.Args[1],
		Timeout: 5 * time.Minute,
		Runs:    4,
		DatasetSizes: map[string]int{
			"small":  500,
			"medium": 5000,
			"large":  50000,
		},
		WorkerCounts: []int{1, 4, 14},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	datasets, err := generateDatasets(config)
	if err != nil {
		fmt.Printf("Dataset generation failed: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config, datasets)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the botspot binary and work dir exist.
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("botspot"); err != nil {
		return fmt.Errorf("botspot binary not found in PATH")
	}
	if err := os.MkdirAll(config.WorkDir, 0o755); err != nil {
		return fmt.Errorf("cannot create work dir %s: %w", config.WorkDir, err)
	}
	return nil
}

// generateDatasets writes one synthetic dataset JSON file per configured size
// and returns label -> path.
func generateDatasets(config BenchmarkConfig) (map[string]string, error) {
	rng := rand.New(rand.NewSource(1))
	paths := make(map[string]string, len(config.DatasetSizes))

	for label, users := range config.DatasetSizes {
		path := filepath.Join(config.WorkDir, fmt.Sprintf("bench_%s.json", label))
		fmt.Printf("Generating %s dataset (%d users) at %s\n", label, users, path)
		if err := writeSyntheticDataset(path, label, users, rng); err != nil {
			return nil, err
		}
		paths[label] = path
	}
	return paths, nil
}

// writeSyntheticDataset emits a dataset where one user in ten behaves like a
// scripted account, eight posts per user.
func writeSyntheticDataset(path, label string, userCount int, rng *rand.Rand) error {
	type post struct {
		ID        string `json:"id"`
		Text      string `json:"text"`
		CreatedAt string `json:"created_at"`
		AuthorID  string `json:"author_id"`
	}
	type user struct {
		ID         string `json:"id"`
		Username   string `json:"username"`
		TweetCount int    `json:"tweet_count"`
	}

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	users := make([]user, 0, userCount)
	posts := make([]post, 0, userCount*8)

	for i := range userCount {
		id := fmt.Sprintf("u%d", i)
		isBot := i%10 == 0
		name := fmt.Sprintf("member_%d", i)
		if isBot {
			name = fmt.Sprintf("bot%d", i)
		}
		users = append(users, user{ID: id, Username: name, TweetCount: 50 + rng.Intn(400)})

		for j := range 8 {
			text := fmt.Sprintf("thinking about topic %d today", rng.Intn(1000))
			gap := time.Duration(30+rng.Intn(600)) * time.Minute
			if isBot {
				text = "#win #crypto amazing deal today"
				gap = 73 * time.Minute
			}
			posts = append(posts, post{
				ID:        fmt.Sprintf("%s-p%d", id, j),
				Text:      text,
				CreatedAt: base.Add(time.Duration(j) * gap).Format(time.RFC3339),
				AuthorID:  id,
			})
		}
	}

	data, err := json.Marshal(map[string]any{
		"id":    "bench-" + label,
		"lang":  "en",
		"posts": posts,
		"users": users,
	})
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// runBenchmarks executes all benchmark tests across configured datasets.
func runBenchmarks(config BenchmarkConfig, datasets map[string]string) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d datasets, %v timeout, %d runs each\n",
		len(datasets), config.Timeout, config.Runs)

	for label, path := range datasets {
		for _, workers := range config.WorkerCounts {
			fmt.Printf("Running scan on %s with %d workers\n", label, workers)

			cold, times := runBenchmark(config, path, workers)

			warmAvg := "TIMEOUT"
			if len(times) > 0 {
				var sum float64
				for _, t := range times {
					sum += t
				}
				warmAvg = fmt.Sprintf("%.3fs", sum/float64(len(times)))
			}
			coldStr := "TIMEOUT"
			if cold > 0 {
				coldStr = fmt.Sprintf("%.3fs", cold)
			}
			fmt.Printf("  Cold time: %s, Warm average: %s\n", coldStr, warmAvg)

			results = append(results, BenchmarkResult{
				Dataset:  label,
				Workers:  workers,
				ColdTime: coldStr,
				WarmTime: warmAvg,
			})
		}
	}

	return results
}

// runBenchmark executes a botspot scan multiple times and returns the cold
// time and warm times.
func runBenchmark(config BenchmarkConfig, datasetPath string, workers int) (coldTime float64, warmTimes []float64) {
	args := []string{
		"scan", datasetPath,
		"--workers", strconv.Itoa(workers),
		"--weights-backend", "none",
	}

	var times []float64
	for run := 1; run <= config.Runs; run++ {
		start := time.Now()

		cmd := exec.Command("botspot", args...)

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if command output indicates successful completion.
func isSuccess(output []byte) bool {
	outputStr := string(output)
	return strings.Contains(outputStr, "Scan completed in") &&
		strings.Contains(outputStr, "workers")
}

// saveResults writes benchmark results to a timestamped CSV file.
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/botspot_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"dataset", "workers", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{result.Dataset, strconv.Itoa(result.Workers), result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary.
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, result := range results {
		fmt.Printf("  %-8s workers=%-3d Cold: %s, Warm: %s\n",
			result.Dataset, result.Workers, result.ColdTime, result.WarmTime)
	}
	fmt.Printf("Benchmark script completed successfully\n")
}

package dataio

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// LoadGroundTruth reads a newline-delimited file of known bot ids.
// Blank lines and surrounding whitespace are ignored.
func LoadGroundTruth(path string) (map[string]struct{}, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ground truth %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	ids := make(map[string]struct{})
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		id := strings.TrimSpace(scanner.Text())
		if id != "" {
			ids[id] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ground truth %s: %w", path, err)
	}
	return ids, nil
}

// WriteGroundTruth writes a bot id set as a newline-delimited file, sorted.
func WriteGroundTruth(path string, ids map[string]struct{}) error {
	sorted := make([]string, 0, len(ids))
	for id := range ids {
		sorted = append(sorted, id)
	}
	sort.Strings(sorted)
	return writeLines(path, sorted)
}

// WriteDetections writes the submission artifact: one flagged user id per
// line. The caller supplies the ids already sorted.
func WriteDetections(path string, ids []string) error {
	return writeLines(path, ids)
}

// LoadModelProbabilities reads a JSON object mapping user id to the secondary
// model's bot probability. Probabilities outside [0,1] are rejected.
func LoadModelProbabilities(path string) (map[string]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read probability map %s: %w", path, err)
	}

	probs := make(map[string]float64)
	if err := json.Unmarshal(data, &probs); err != nil {
		return nil, fmt.Errorf("failed to parse probability map %s: %w", path, err)
	}
	for id, p := range probs {
		if p < 0 || p > 1 {
			return nil, fmt.Errorf("probability map %s: user %s has probability %.4f outside [0,1]", path, id, p)
		}
	}
	return probs, nil
}

// writeLines writes values newline-delimited with a trailing newline.
func writeLines(path string, values []string) error {
	var sb strings.Builder
	for _, v := range values {
		sb.WriteString(v)
		sb.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

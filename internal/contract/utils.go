package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Confidence label constants.
const (
	HighValue     = "High"     // High confidence
	ElevatedValue = "Elevated" // Elevated confidence
	ModerateValue = "Moderate" // Moderate confidence
	LowValue      = "Low"      // Low confidence
)

// Color variables for console output.
var (
	HighColor     = color.New(color.FgRed, color.Bold)     // highColor represents standard danger.
	ElevatedColor = color.New(color.FgMagenta, color.Bold) // elevatedColor represents strong, distinct warning.
	ModerateColor = color.New(color.FgYellow)              // moderateColor represents standard caution, not bold.
	LowColor      = color.New(color.FgCyan)                // lowColor represents informational / low-priority signal.
)

// GetPlainLabel returns a plain text label for a verdict confidence value.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainLabel(confidence float64) string {
	switch {
	case confidence >= 0.75:
		return HighValue
	case confidence >= 0.55:
		return ElevatedValue
	case confidence >= 0.4:
		return ModerateValue
	default:
		return LowValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(confidence float64) string {
	text := GetPlainLabel(confidence)

	switch text {
	case HighValue:
		return HighColor.Sprint(text)
	case ElevatedValue:
		return ElevatedColor.Sprint(text)
	case ModerateValue:
		return ModerateColor.Sprint(text)
	default: // "Low"
		return LowColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// DetectionsFileName returns the competition submission artifact name for a
// team and dataset language: "<team>.detections.<lang>.txt".
func DetectionsFileName(team, lang string) string {
	if team == "" {
		team = "botspot"
	}
	if lang == "" {
		lang = "any"
	}
	return fmt.Sprintf("%s.detections.%s.txt", team, lang)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetWeightsDBFilePath returns the path to the SQLite DB file for weights storage.
func GetWeightsDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".botspot_weights.db"
	}
	return filepath.Join(homeDir, ".botspot_weights.db")
}

// GetRunsDBFilePath returns the path to the SQLite DB file for run-history storage.
func GetRunsDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".botspot_runs.db"
	}
	return filepath.Join(homeDir, ".botspot_runs.db")
}

// TruncateText truncates a string to a maximum width with ellipsis suffix.
// Requires maxWidth > 3 so there is room for both content and the ellipsis.
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

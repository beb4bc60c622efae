// Package dataio loads and writes competition data files: datasets,
// ground-truth bot lists, probability maps and submission artifacts.
package dataio

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"botspot/schema"
)

// Accepted timestamp layouts for post created_at values. Datasets in the wild
// mix RFC3339 with space-separated variants.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// rawPost mirrors schema.Post with a string timestamp for lenient parsing.
type rawPost struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
	AuthorID  string `json:"author_id"`
	Lang      string `json:"lang,omitempty"`
}

// rawDataset mirrors schema.Dataset at the decoding boundary.
type rawDataset struct {
	ID         string               `json:"id"`
	Lang       string               `json:"lang,omitempty"`
	TotalUsers int                  `json:"total_users,omitempty"`
	TotalPosts int                  `json:"total_posts,omitempty"`
	Posts      []rawPost            `json:"posts"`
	Users      []schema.UserProfile `json:"users"`
}

// LoadDataset reads and decodes one dataset JSON file.
func LoadDataset(path string) (*schema.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", path, err)
	}

	var raw rawDataset
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse dataset %s: %w", path, err)
	}

	ds := &schema.Dataset{
		ID:         raw.ID,
		Lang:       raw.Lang,
		TotalUsers: raw.TotalUsers,
		TotalPosts: raw.TotalPosts,
		Users:      raw.Users,
		Posts:      make([]schema.Post, 0, len(raw.Posts)),
	}
	for _, rp := range raw.Posts {
		createdAt, err := parseTimestamp(rp.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("dataset %s: post %s: %w", path, rp.ID, err)
		}
		ds.Posts = append(ds.Posts, schema.Post{
			ID:        rp.ID,
			Text:      rp.Text,
			CreatedAt: createdAt,
			AuthorID:  rp.AuthorID,
			Lang:      rp.Lang,
		})
	}

	// The declared counts are descriptive metadata; refresh when absent.
	if ds.TotalUsers == 0 {
		ds.TotalUsers = len(ds.Users)
	}
	if ds.TotalPosts == 0 {
		ds.TotalPosts = len(ds.Posts)
	}

	return ds, nil
}

// WriteDataset encodes a dataset as JSON to the given path.
func WriteDataset(path string, ds *schema.Dataset) error {
	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode dataset: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write dataset %s: %w", path, err)
	}
	return nil
}

// parseTimestamp parses a created_at value using the accepted layouts.
func parseTimestamp(value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", value)
}

package dataio

import (
	"strings"

	"botspot/schema"
)

// MergeDatasets combines multiple datasets into one. Posts are concatenated;
// users are deduplicated by id with the first occurrence winning, so per-user
// profile fields from the earliest dataset are kept. The merged language is
// carried over only when every source agrees.
func MergeDatasets(datasets []*schema.Dataset) *schema.Dataset {
	merged := &schema.Dataset{}

	sourceIDs := make([]string, 0, len(datasets))
	seen := make(map[string]struct{})
	lang := ""
	langConsistent := true

	for i, ds := range datasets {
		sourceIDs = append(sourceIDs, ds.ID)
		merged.Posts = append(merged.Posts, ds.Posts...)
		for _, u := range ds.Users {
			if _, ok := seen[u.ID]; ok {
				continue
			}
			seen[u.ID] = struct{}{}
			merged.Users = append(merged.Users, u)
		}
		if i == 0 {
			lang = ds.Lang
		} else if ds.Lang != lang {
			langConsistent = false
		}
	}

	merged.ID = "merged:" + strings.Join(sourceIDs, "+")
	if langConsistent {
		merged.Lang = lang
	}
	merged.TotalUsers = len(merged.Users)
	merged.TotalPosts = len(merged.Posts)
	return merged
}

// ABOUTME: Data migration between nutrition storage backends.
// ABOUTME: Copies profiles, food entries, and cached insights from source to destination.
package storage

import (
	"fmt"
	"os"
)

// MigrateSummary holds counts of migrated entities.
type MigrateSummary struct {
	Profiles int
	Entries  int
	Insights int
}

// MigrateData copies all data from src to dst storage.
// Profiles are created first so their entries can reference them.
// The destination should be empty before calling this function.
func MigrateData(src, dst Repository) (*MigrateSummary, error) {
	summary := &MigrateSummary{}

	data, err := src.GetAllData()
	if err != nil {
		return nil, fmt.Errorf("read source data: %w", err)
	}

	for _, p := range data.Profiles {
		if err := dst.CreateProfile(p); err != nil {
			return nil, fmt.Errorf("create profile %s: %w", p.ID, err)
		}
		summary.Profiles++
	}

	for _, e := range data.Entries {
		if err := dst.CreateEntry(e); err != nil {
			return nil, fmt.Errorf("create entry %s: %w", e.ID, err)
		}
		summary.Entries++
	}

	for _, in := range data.Insights {
		if err := dst.SaveInsight(in); err != nil {
			return nil, fmt.Errorf("save insight %s: %w", in.ID, err)
		}
		summary.Insights++
	}

	return summary, nil
}

// IsDirNonEmpty checks whether a directory exists and contains any files or subdirectories.
// Returns false if the directory does not exist or is empty.
func IsDirNonEmpty(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read directory %q: %w", path, err)
	}
	return len(entries) > 0, nil
}

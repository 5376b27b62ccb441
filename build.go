package guidecorpus

import (
	"context"
	"sort"
	"time"
)

// Build records one corpus build in the build ledger.
type Build struct {
	ID            string       `json:"id"`
	SourceDir     string       `json:"sourceDir"`
	OutputPath    string       `json:"outputPath"`
	DocumentCount int          `json:"documentCount"`
	SkippedCount  int          `json:"skippedCount"`
	TokenCount    int          `json:"tokenCount"`
	CreatedAt     time.Time    `json:"createdAt"`
	Entries       []BuildEntry `json:"entries,omitempty"`
}

// BuildEntry records a single document written by a build.
type BuildEntry struct {
	DocumentID   string `json:"documentId"`
	Title        string `json:"title"`
	OriginalFile string `json:"originalFile"`
	ContentHash  string `json:"contentHash"`
	Tokens       int    `json:"tokens"`
	Position     int    `json:"position"`
}

// Validate returns an error if the build contains invalid fields.
func (b *Build) Validate() error {
	if b.SourceDir == "" {
		return Errorf(EINVALID, "build source directory required")
	}
	if b.OutputPath == "" {
		return Errorf(EINVALID, "build output path required")
	}
	if b.DocumentCount != len(b.Entries) {
		return Errorf(EINVALID, "build document count %d does not match %d entries", b.DocumentCount, len(b.Entries))
	}
	for _, e := range b.Entries {
		if e.DocumentID == "" {
			return Errorf(EINVALID, "build entry document ID required")
		}
	}
	return nil
}

// BuildService represents a service for managing the build ledger.
type BuildService interface {
	// CreateBuild records a new build and its entries.
	CreateBuild(ctx context.Context, build *Build) error

	// FindBuildByID retrieves a build and its entries by ID.
	// Returns ENOTFOUND if build does not exist.
	FindBuildByID(ctx context.Context, id string) (*Build, error)

	// FindBuilds retrieves builds matching the filter, newest first.
	// Entries are not populated.
	FindBuilds(ctx context.Context, filter BuildFilter) ([]*Build, error)

	// DeleteBuild permanently removes a build and its entries.
	// Returns ENOTFOUND if build does not exist.
	DeleteBuild(ctx context.Context, id string) error
}

// BuildFilter represents a filter for FindBuilds.
type BuildFilter struct {
	ID         *string `json:"id"`
	OutputPath *string `json:"outputPath"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// BuildDiff summarizes document changes between two builds.
type BuildDiff struct {
	Added   []string `json:"added"`
	Removed []string `json:"removed"`
	Changed []string `json:"changed"`
}

// Empty reports whether the two builds contain the same documents.
func (d *BuildDiff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0
}

// CompareBuilds reports which document IDs were added, removed, or had
// their content change between prev and cur. Timestamps are ignored, so
// rebuilding an unchanged source yields an empty diff. A nil prev treats
// every document in cur as added.
func CompareBuilds(prev, cur *Build) *BuildDiff {
	diff := &BuildDiff{}

	before := make(map[string]string)
	if prev != nil {
		for _, e := range prev.Entries {
			before[e.DocumentID] = e.ContentHash
		}
	}

	seen := make(map[string]bool)
	if cur != nil {
		for _, e := range cur.Entries {
			seen[e.DocumentID] = true
			hash, ok := before[e.DocumentID]
			switch {
			case !ok:
				diff.Added = append(diff.Added, e.DocumentID)
			case hash != e.ContentHash:
				diff.Changed = append(diff.Changed, e.DocumentID)
			}
		}
	}

	for id := range before {
		if !seen[id] {
			diff.Removed = append(diff.Removed, id)
		}
	}

	sort.Strings(diff.Added)
	sort.Strings(diff.Removed)
	sort.Strings(diff.Changed)
	return diff
}

package main

import (
	"fmt"

	"github.com/fwojciec/guidecorpus"
	"github.com/fwojciec/guidecorpus/build"
	"github.com/fwojciec/guidecorpus/fs"
	gcslog "github.com/fwojciec/guidecorpus/slog"
)

// Run executes the build command.
func (c *BuildCmd) Run(deps *Dependencies) error {
	opts := guidecorpus.DefaultOptions()
	opts.SourceDir = c.SourceDir
	opts.OutputPath = c.Output

	builder := &build.Builder{
		Source:       gcslog.NewLoggingSource(fs.NewDirSource(opts.SourceDir, opts.Extension), deps.Logger),
		Store:        gcslog.NewLoggingStore(fs.NewJSONLStore(opts.OutputPath), deps.Logger),
		Builds:       deps.Builds,
		TokenCounter: deps.TokenCounter,
		Options:      opts,
	}

	progress := func(e build.ProgressEvent) {
		if e.Type == build.ProgressSkipped {
			deps.Logger.Info("skip empty file", "path", e.Path)
		}
	}

	result, err := builder.Build(deps.Ctx, progress)
	if result == nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Wrote %d guidance documents to %s\n", result.Documents, opts.OutputPath)

	// The corpus is committed; ledger failures only lose history.
	if err != nil {
		fmt.Fprintf(deps.Stderr, "warning: %s\n", errorText(err))
	}

	if result.Skipped > 0 {
		fmt.Fprintf(deps.Stderr, "Skipped %d empty guidance files\n", result.Skipped)
	}
	for _, id := range result.Duplicates {
		fmt.Fprintf(deps.Stderr, "warning: document ID %q is produced by more than one file\n", id)
	}
	if deps.TokenCounter != nil {
		fmt.Fprintf(deps.Stderr, "Corpus size: %d tokens\n", result.Tokens)
	}
	if result.Build != nil {
		fmt.Fprintf(deps.Stderr, "Recorded build %s\n", result.Build.ID)
	}
	if result.Diff != nil {
		fmt.Fprintln(deps.Stderr, formatDiff(result.Diff))
	}

	fmt.Fprintln(deps.Stderr, "Upload the JSONL file using `gcloud discovery-engine` or the console import workflow.")
	return nil
}

func formatDiff(d *guidecorpus.BuildDiff) string {
	if d.Empty() {
		return "No document changes since the previous build"
	}
	return fmt.Sprintf("Since the previous build: %d added, %d changed, %d removed",
		len(d.Added), len(d.Changed), len(d.Removed))
}

// Package build provides corpus build orchestration.
// It coordinates discovery of guidance files, transformation into
// documents, corpus storage, token counting, and the build ledger.
package build

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"iter"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/guidecorpus"
)

// Builder orchestrates a corpus build. Source, Store, and Options are
// required; Builds and TokenCounter are optional.
type Builder struct {
	Source       guidecorpus.GuidanceSource
	Store        guidecorpus.CorpusStore
	Builds       guidecorpus.BuildService
	TokenCounter guidecorpus.TokenCounter
	Options      guidecorpus.Options

	// Now returns the generation timestamp for each document.
	// Defaults to time.Now.
	Now func() time.Time
}

// Result holds the outcome of a build.
type Result struct {
	Documents int
	Skipped   int
	Tokens    int

	// Duplicates lists document IDs produced by more than one file.
	// File stems that differ only in case or in '_' versus '-' collide.
	Duplicates []string

	// Build is the ledger record; nil when no ledger is configured.
	Build *guidecorpus.Build

	// Diff compares against the previous build of the same output path.
	// Nil when no ledger is configured or the output was never built.
	Diff *guidecorpus.BuildDiff
}

// ProgressEvent reports progress for a single guidance file.
type ProgressEvent struct {
	Type       ProgressType
	Path       string
	DocumentID string
	Completed  int
	Total      int
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressTransformed ProgressType = iota
	ProgressSkipped
)

// ProgressFunc is a callback for reporting build progress.
type ProgressFunc func(event ProgressEvent)

// Documents returns the documents derived from the source, in discovery
// order. The sequence is lazy and restartable: each iteration rediscovers
// the source. Files that are empty after trimming are skipped and reported
// to progress, if non-nil. The first error ends the sequence.
func (b *Builder) Documents(ctx context.Context, progress ProgressFunc) iter.Seq2[*guidecorpus.Document, error] {
	return func(yield func(*guidecorpus.Document, error) bool) {
		paths, err := b.Source.Discover(ctx)
		if err != nil {
			yield(nil, err)
			return
		}

		for i, path := range paths {
			file, err := b.Source.Read(ctx, path)
			if err != nil {
				yield(nil, err)
				return
			}

			doc := guidecorpus.NewDocument(file, b.Options, b.now())
			event := ProgressEvent{Path: path, Completed: i + 1, Total: len(paths)}
			if doc == nil {
				event.Type = ProgressSkipped
				if progress != nil {
					progress(event)
				}
				continue
			}

			event.Type = ProgressTransformed
			event.DocumentID = doc.ID
			if progress != nil {
				progress(event)
			}

			if !yield(doc, nil) {
				return
			}
		}
	}
}

// Build writes the corpus and records it in the ledger. Nothing is
// committed to the store if any file fails or no document is produced.
func (b *Builder) Build(ctx context.Context, progress ProgressFunc) (*Result, error) {
	if err := b.Options.Validate(); err != nil {
		return nil, err
	}

	result := &Result{}
	var entries []guidecorpus.BuildEntry
	seen := make(map[string]int)

	track := func(e ProgressEvent) {
		if e.Type == ProgressSkipped {
			result.Skipped++
		}
		if progress != nil {
			progress(e)
		}
	}

	for doc, err := range b.Documents(ctx, track) {
		if err != nil {
			_ = b.Store.Abort()
			return nil, err
		}

		tokens, err := b.countTokens(ctx, doc)
		if err != nil {
			_ = b.Store.Abort()
			return nil, fmt.Errorf("count tokens for %q: %w", doc.ID, err)
		}

		if err := b.Store.Save(ctx, doc); err != nil {
			_ = b.Store.Abort()
			return nil, err
		}

		seen[doc.ID]++
		if seen[doc.ID] == 2 {
			result.Duplicates = append(result.Duplicates, doc.ID)
		}

		entries = append(entries, guidecorpus.BuildEntry{
			DocumentID:   doc.ID,
			Title:        doc.StructData.Title,
			OriginalFile: doc.StructData.Metadata.OriginalFile,
			ContentHash:  HashContent(doc.StructData.RawText),
			Tokens:       tokens,
			Position:     len(entries),
		})
		result.Documents++
		result.Tokens += tokens
	}

	if result.Documents == 0 {
		_ = b.Store.Abort()
		return nil, guidecorpus.Errorf(guidecorpus.EEMPTY, "no guidance documents found in %s", b.Options.SourceDir)
	}

	if err := b.Store.Commit(); err != nil {
		return nil, err
	}

	if b.Builds == nil {
		return result, nil
	}

	build := &guidecorpus.Build{
		SourceDir:     b.Options.SourceDir,
		OutputPath:    b.Options.OutputPath,
		DocumentCount: result.Documents,
		SkippedCount:  result.Skipped,
		TokenCount:    result.Tokens,
		Entries:       entries,
	}

	prev, err := b.previousBuild(ctx)
	if err != nil {
		return result, fmt.Errorf("find previous build: %w", err)
	}

	if err := b.Builds.CreateBuild(ctx, build); err != nil {
		return result, fmt.Errorf("record build: %w", err)
	}

	result.Build = build
	if prev != nil {
		result.Diff = guidecorpus.CompareBuilds(prev, build)
	}
	return result, nil
}

// previousBuild returns the latest recorded build of the same output path
// with its entries, or nil if there is none.
func (b *Builder) previousBuild(ctx context.Context) (*guidecorpus.Build, error) {
	output := b.Options.OutputPath
	builds, err := b.Builds.FindBuilds(ctx, guidecorpus.BuildFilter{OutputPath: &output, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(builds) == 0 {
		return nil, nil
	}
	return b.Builds.FindBuildByID(ctx, builds[0].ID)
}

func (b *Builder) countTokens(ctx context.Context, doc *guidecorpus.Document) (int, error) {
	if b.TokenCounter == nil {
		return 0, nil
	}
	return b.TokenCounter.CountTokens(ctx, doc.StructData.RawText)
}

func (b *Builder) now() time.Time {
	if b.Now != nil {
		return b.Now()
	}
	return time.Now()
}

// HashContent computes the xxHash of content and returns it as hex.
func HashContent(content string) string {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, xxhash.Sum64String(content))
	return hex.EncodeToString(b)
}

package guidecorpus_test

import (
	"testing"

	"github.com/fwojciec/guidecorpus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(id, hash string) guidecorpus.BuildEntry {
	return guidecorpus.BuildEntry{DocumentID: id, ContentHash: hash}
}

func TestCompareBuilds(t *testing.T) {
	t.Parallel()

	t.Run("identical builds produce empty diff", func(t *testing.T) {
		t.Parallel()

		prev := &guidecorpus.Build{Entries: []guidecorpus.BuildEntry{entry("a", "1"), entry("b", "2")}}
		cur := &guidecorpus.Build{Entries: []guidecorpus.BuildEntry{entry("a", "1"), entry("b", "2")}}

		diff := guidecorpus.CompareBuilds(prev, cur)

		assert.True(t, diff.Empty())
	})

	t.Run("reports added, removed, and changed documents", func(t *testing.T) {
		t.Parallel()

		prev := &guidecorpus.Build{Entries: []guidecorpus.BuildEntry{
			entry("fatigue", "1"),
			entry("headache", "2"),
			entry("nausea", "3"),
		}}
		cur := &guidecorpus.Build{Entries: []guidecorpus.BuildEntry{
			entry("dizziness", "9"),
			entry("fatigue", "1"),
			entry("headache", "7"),
		}}

		diff := guidecorpus.CompareBuilds(prev, cur)

		assert.False(t, diff.Empty())
		assert.Equal(t, []string{"dizziness"}, diff.Added)
		assert.Equal(t, []string{"headache"}, diff.Changed)
		assert.Equal(t, []string{"nausea"}, diff.Removed)
	})

	t.Run("nil previous build marks everything added", func(t *testing.T) {
		t.Parallel()

		cur := &guidecorpus.Build{Entries: []guidecorpus.BuildEntry{entry("b", "1"), entry("a", "2")}}

		diff := guidecorpus.CompareBuilds(nil, cur)

		assert.Equal(t, []string{"a", "b"}, diff.Added)
		assert.Empty(t, diff.Removed)
		assert.Empty(t, diff.Changed)
	})
}

func TestBuild_Validate(t *testing.T) {
	t.Parallel()

	valid := func() *guidecorpus.Build {
		return &guidecorpus.Build{
			SourceDir:     "guidelines",
			OutputPath:    "artifacts/corpus.jsonl",
			DocumentCount: 1,
			Entries:       []guidecorpus.BuildEntry{entry("fatigue", "1")},
		}
	}

	t.Run("accepts valid build", func(t *testing.T) {
		t.Parallel()

		require.NoError(t, valid().Validate())
	})

	t.Run("requires source directory", func(t *testing.T) {
		t.Parallel()

		b := valid()
		b.SourceDir = ""

		assert.Equal(t, guidecorpus.EINVALID, guidecorpus.ErrorCode(b.Validate()))
	})

	t.Run("requires output path", func(t *testing.T) {
		t.Parallel()

		b := valid()
		b.OutputPath = ""

		assert.Equal(t, guidecorpus.EINVALID, guidecorpus.ErrorCode(b.Validate()))
	})

	t.Run("document count must match entries", func(t *testing.T) {
		t.Parallel()

		b := valid()
		b.DocumentCount = 2

		assert.Equal(t, guidecorpus.EINVALID, guidecorpus.ErrorCode(b.Validate()))
	})

	t.Run("entries require document ID", func(t *testing.T) {
		t.Parallel()

		b := valid()
		b.Entries[0].DocumentID = ""

		assert.Equal(t, guidecorpus.EINVALID, guidecorpus.ErrorCode(b.Validate()))
	})
}

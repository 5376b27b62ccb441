package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/guidecorpus"
	main "github.com/fwojciec/guidecorpus/cmd/guidecorpus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testContext returns a background context for tests.
func testContext() context.Context {
	return context.Background()
}

// writeGuidance creates a guidelines directory with the given files.
func writeGuidance(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "guidelines")
	require.NoError(t, os.MkdirAll(dir, 0755))
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func newTestMain(t *testing.T) *main.Main {
	t.Helper()
	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "ledger.db")
	return m
}

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	helpOutput := stdout.String()
	for _, cmd := range []string{"build", "history", "show"} {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
}

func TestMain_Run_Help(t *testing.T) {
	t.Parallel()

	for _, args := range [][]string{{"--help"}, {"-h"}, {"help"}} {
		t.Run(args[0], func(t *testing.T) {
			t.Parallel()

			m := newTestMain(t)
			stdout := &bytes.Buffer{}
			stderr := &bytes.Buffer{}

			err := m.Run(testContext(), args, stdout, stderr)

			require.NoError(t, err)
			assert.Contains(t, stdout.String(), "Usage:")
			assert.Contains(t, stdout.String(), "history")

			_, err = os.Stat(m.DBPath)
			assert.ErrorIs(t, err, os.ErrNotExist, "help should not create the ledger")
		})
	}
}

func TestMain_Run_Build(t *testing.T) {
	t.Parallel()

	t.Run("writes corpus and records build", func(t *testing.T) {
		t.Parallel()

		// Given: two guidance files and one blank file
		dir := writeGuidance(t, map[string]string{
			"headache_red_flags.txt": "Thunderclap headache requires emergency care.\r\n",
			"fatigue.txt":            "Persistent fatigue warrants blood work.",
			"empty.txt":              " \n\t",
		})
		output := filepath.Join(t.TempDir(), "artifacts", "corpus.jsonl")
		m := newTestMain(t)
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		// When: running without a subcommand
		err := m.Run(testContext(), []string{"--source-dir", dir, "--output", output}, stdout, stderr)

		// Then: the build command writes one line per non-empty file
		require.NoError(t, err)
		assert.Equal(t, "Wrote 2 guidance documents to "+output+"\n", stdout.String())
		assert.Contains(t, stderr.String(), "Skipped 1 empty guidance files")
		assert.Contains(t, stderr.String(), "Recorded build")
		assert.Contains(t, stderr.String(), "discovery-engine")

		data, err := os.ReadFile(output)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
		require.Len(t, lines, 2)

		var doc guidecorpus.Document
		require.NoError(t, json.Unmarshal([]byte(lines[0]), &doc))
		assert.Equal(t, "fatigue", doc.ID)
		require.NoError(t, json.Unmarshal([]byte(lines[1]), &doc))
		assert.Equal(t, "headache-red-flags", doc.ID)
		assert.Equal(t, "Headache Red Flags", doc.StructData.Title)
		assert.Equal(t, "Thunderclap headache requires emergency care.", doc.StructData.RawText)
	})

	t.Run("build subcommand is explicit alias", func(t *testing.T) {
		t.Parallel()

		dir := writeGuidance(t, map[string]string{"nausea.txt": "Hydrate."})
		output := filepath.Join(t.TempDir(), "corpus.jsonl")
		m := newTestMain(t)
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(testContext(), []string{"build", "-s", dir, "-o", output, "--no-ledger"}, stdout, stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Wrote 1 guidance documents")
		assert.NotContains(t, stderr.String(), "Recorded build")

		_, err = os.Stat(m.DBPath)
		assert.ErrorIs(t, err, os.ErrNotExist, "--no-ledger should not create the ledger")
	})

	t.Run("second build reports changes", func(t *testing.T) {
		t.Parallel()

		// Given: a recorded build
		dir := writeGuidance(t, map[string]string{
			"fatigue.txt":  "Rest.",
			"headache.txt": "Hydrate.",
		})
		output := filepath.Join(t.TempDir(), "corpus.jsonl")
		m := newTestMain(t)
		args := []string{"--source-dir", dir, "--output", output}

		require.NoError(t, m.Run(testContext(), args, &bytes.Buffer{}, &bytes.Buffer{}))

		// When: one file changes and another is added
		require.NoError(t, os.WriteFile(filepath.Join(dir, "headache.txt"), []byte("Hydrate and rest."), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "dizziness.txt"), []byte("Sit down."), 0644))

		stderr := &bytes.Buffer{}
		require.NoError(t, m.Run(testContext(), args, &bytes.Buffer{}, stderr))

		// Then: the diff against the previous build is reported
		assert.Contains(t, stderr.String(), "1 added, 1 changed, 0 removed")
	})

	t.Run("unchanged rebuild reports no changes", func(t *testing.T) {
		t.Parallel()

		dir := writeGuidance(t, map[string]string{"fatigue.txt": "Rest."})
		output := filepath.Join(t.TempDir(), "corpus.jsonl")
		m := newTestMain(t)
		args := []string{"--source-dir", dir, "--output", output}

		require.NoError(t, m.Run(testContext(), args, &bytes.Buffer{}, &bytes.Buffer{}))
		stderr := &bytes.Buffer{}
		require.NoError(t, m.Run(testContext(), args, &bytes.Buffer{}, stderr))

		assert.Contains(t, stderr.String(), "No document changes since the previous build")
	})

	t.Run("missing source directory fails without creating output", func(t *testing.T) {
		t.Parallel()

		// Given: a source directory that does not exist
		root := t.TempDir()
		output := filepath.Join(root, "artifacts", "corpus.jsonl")
		m := newTestMain(t)
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(testContext(), []string{"--source-dir", filepath.Join(root, "guidelines"), "--output", output}, stdout, stderr)

		// Then: the run fails and nothing is created
		require.Error(t, err)
		assert.Equal(t, guidecorpus.ENOSOURCE, guidecorpus.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error: source directory not found")
		assert.Empty(t, stdout.String())

		_, statErr := os.Stat(filepath.Join(root, "artifacts"))
		assert.ErrorIs(t, statErr, os.ErrNotExist)
	})

	t.Run("empty corpus fails and keeps previous output", func(t *testing.T) {
		t.Parallel()

		dir := writeGuidance(t, map[string]string{"blank.txt": "\n\n"})
		output := filepath.Join(t.TempDir(), "corpus.jsonl")
		require.NoError(t, os.WriteFile(output, []byte("previous\n"), 0644))
		m := newTestMain(t)
		stderr := &bytes.Buffer{}

		err := m.Run(testContext(), []string{"--source-dir", dir, "--output", output}, &bytes.Buffer{}, stderr)

		require.Error(t, err)
		assert.Equal(t, guidecorpus.EEMPTY, guidecorpus.ErrorCode(err))
		assert.Contains(t, stderr.String(), "no guidance documents found")

		data, readErr := os.ReadFile(output)
		require.NoError(t, readErr)
		assert.Equal(t, "previous\n", string(data))
	})

	t.Run("unusable ledger only warns", func(t *testing.T) {
		t.Parallel()

		dir := writeGuidance(t, map[string]string{"fatigue.txt": "Rest."})
		output := filepath.Join(t.TempDir(), "corpus.jsonl")
		m := main.NewMain()
		m.DBPath = filepath.Join(t.TempDir(), "missing", "dir", "ledger.db")
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(testContext(), []string{"--source-dir", dir, "--output", output}, stdout, stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Wrote 1 guidance documents")
		assert.Contains(t, stderr.String(), "warning: build ledger disabled")
	})
}

func TestMain_Run_HistoryAndShow(t *testing.T) {
	t.Parallel()

	dir := writeGuidance(t, map[string]string{
		"fatigue.txt":  "Rest.",
		"headache.txt": "Hydrate.",
	})
	output := filepath.Join(t.TempDir(), "corpus.jsonl")
	m := newTestMain(t)

	require.NoError(t, m.Run(testContext(), []string{"--source-dir", dir, "--output", output}, &bytes.Buffer{}, &bytes.Buffer{}))

	stdout := &bytes.Buffer{}
	require.NoError(t, m.Run(testContext(), []string{"history"}, stdout, &bytes.Buffer{}))
	assert.Contains(t, stdout.String(), "2 docs")
	assert.Contains(t, stdout.String(), output)

	id := strings.Fields(stdout.String())[0]
	stdout.Reset()
	require.NoError(t, m.Run(testContext(), []string{"show", id}, stdout, &bytes.Buffer{}))
	assert.Contains(t, stdout.String(), "Build "+id)
	assert.Contains(t, stdout.String(), "Documents (2 total)")
	assert.Contains(t, stdout.String(), "1. fatigue")
	assert.Contains(t, stdout.String(), "2. headache")
}

package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/guidecorpus"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx          context.Context
	Stdout       io.Writer
	Stderr       io.Writer
	Logger       *slog.Logger
	Builds       guidecorpus.BuildService
	TokenCounter guidecorpus.TokenCounter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log each step to stderr"`

	Build   BuildCmd   `cmd:"" default:"withargs" help:"Build the corpus (default command)"`
	History HistoryCmd `cmd:"" help:"List recorded corpus builds"`
	Show    ShowCmd    `cmd:"" help:"Show the documents of a recorded build"`
}

// BuildCmd is the "build" subcommand.
type BuildCmd struct {
	SourceDir   string `name:"source-dir" short:"s" default:"guidelines" env:"GUIDECORPUS_SOURCE_DIR" help:"Directory containing guidance text files"`
	Output      string `short:"o" default:"artifacts/vertex_search_corpus.jsonl" env:"GUIDECORPUS_OUTPUT" help:"Output JSONL path for datastore import"`
	CountTokens bool   `name:"count-tokens" help:"Count document tokens with the Gemini tokenizer"`
	NoLedger    bool   `name:"no-ledger" help:"Do not record the build in the ledger"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Output string `short:"o" help:"Only list builds of this output path"`
	Limit  int    `short:"n" default:"20" help:"Maximum number of builds to list"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID string `arg:"" name:"build-id" help:"Build ID"`
}

// errorText returns the message shown to users for err. Application
// errors show their message; anything else shows the full error chain.
func errorText(err error) string {
	if guidecorpus.ErrorCode(err) == guidecorpus.EINTERNAL {
		return err.Error()
	}
	return guidecorpus.ErrorMessage(err)
}

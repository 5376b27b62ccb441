package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/guidecorpus/gemini"
	gcslog "github.com/fwojciec/guidecorpus/slog"
	"github.com/fwojciec/guidecorpus/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Ledger database path. Set before calling Run().
	DBPath string

	// SQLite database backing the build ledger.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("guidecorpus"),
		kong.Description("Prepare a search datastore corpus from plain-text guidance files"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if isHelp(args) {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", err)
		return err
	}

	deps.Logger = newLogger(stderr, cli.Verbose)

	cmd := commandName(kongCtx)

	// Build keeps working without a ledger; history and show need one.
	if cmd != "build" || !cli.Build.NoLedger {
		if err := m.openLedger(deps); err != nil {
			if cmd != "build" {
				fmt.Fprintf(stderr, "error: %s\n", err)
				fmt.Fprintln(stderr, "Hint: Set GUIDECORPUS_DB to use a different ledger path")
				return err
			}
			fmt.Fprintf(stderr, "warning: build ledger disabled: %s\n", err)
		}
	}
	defer m.Close()

	if cmd == "build" && cli.Build.CountTokens {
		tc, err := gemini.NewTokenCounter(gemini.DefaultModel)
		if err != nil {
			fmt.Fprintf(stderr, "error: failed to create token counter: %s\n", err)
			return fmt.Errorf("failed to create token counter: %w", err)
		}
		deps.TokenCounter = gcslog.NewLoggingTokenCounter(tc, deps.Logger)
	}

	return kongCtx.Run(deps)
}

func (m *Main) openLedger(deps *Dependencies) error {
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		m.DB = nil
		return fmt.Errorf("failed to open ledger at %q: %w", m.DBPath, err)
	}
	deps.Builds = gcslog.NewLoggingBuildService(sqlite.NewBuildService(m.DB), deps.Logger)
	return nil
}

func isHelp(args []string) bool {
	return len(args) == 1 && (args[0] == "help" || args[0] == "--help" || args[0] == "-h")
}

// commandName returns the selected command without its arguments.
func commandName(kongCtx *kong.Context) string {
	fields := strings.Fields(kongCtx.Command())
	if len(fields) == 0 {
		return "build"
	}
	return fields[0]
}

// newLogger logs to stderr; verbose lowers the level from warn to debug.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func defaultDBPath() string {
	if path := os.Getenv("GUIDECORPUS_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "guidecorpus.db"
	}
	dir := filepath.Join(home, ".guidecorpus")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "ledger.db")
}

package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/guidecorpus"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	b, err := deps.Builds.FindBuildByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		if guidecorpus.ErrorCode(err) == guidecorpus.ENOTFOUND {
			fmt.Fprintln(deps.Stderr, "Use 'guidecorpus history' to see recorded builds.")
		}
		return err
	}

	fmt.Fprintf(deps.Stdout, "Build %s (%s)\n", b.ID, b.CreatedAt.Local().Format(time.DateTime))
	fmt.Fprintf(deps.Stdout, "  source:  %s\n", b.SourceDir)
	fmt.Fprintf(deps.Stdout, "  output:  %s\n", b.OutputPath)
	fmt.Fprintf(deps.Stdout, "  skipped: %d\n", b.SkippedCount)
	if b.TokenCount > 0 {
		fmt.Fprintf(deps.Stdout, "  tokens:  %d\n", b.TokenCount)
	}
	fmt.Fprintf(deps.Stdout, "\nDocuments (%d total):\n\n", b.DocumentCount)

	for _, e := range b.Entries {
		fmt.Fprintf(deps.Stdout, "  %d. %s  %s\n     %s  %s\n", e.Position+1, e.DocumentID, e.Title, e.OriginalFile, e.ContentHash)
	}

	return nil
}

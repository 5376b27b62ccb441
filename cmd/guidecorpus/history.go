package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/guidecorpus"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := guidecorpus.BuildFilter{Limit: c.Limit}
	if c.Output != "" {
		filter.OutputPath = &c.Output
	}

	builds, err := deps.Builds.FindBuilds(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	if len(builds) == 0 {
		fmt.Fprintln(deps.Stdout, "No builds recorded. Run 'guidecorpus build' to create one.")
		return nil
	}

	for _, b := range builds {
		fmt.Fprintf(deps.Stdout, "%s  %s  %d docs  %d skipped  %s\n",
			b.ID, b.CreatedAt.Local().Format(time.DateTime), b.DocumentCount, b.SkippedCount, b.OutputPath)
	}

	return nil
}

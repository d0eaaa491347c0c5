package main

import (
	"fmt"

	"github.com/czl314159/webclip"
	"github.com/czl314159/webclip/batch"
)

// Run executes the clip command.
func (c *ClipCmd) Run(deps *Dependencies) error {
	progress := func(event batch.ProgressEvent) {
		switch event.Type {
		case batch.ProgressStarted:
			if event.Total > 1 {
				fmt.Fprintf(deps.Stdout, "Clipping %d URLs\n", event.Total)
			}
		case batch.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  %s -> %s\n", event.URL, event.Path)
		case batch.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", event.URL, webclip.ErrorMessage(event.Error))
		case batch.ProgressFinished:
			// Summary printed below.
		}
	}

	outcomes, err := deps.Runner.Run(deps.Ctx, c.Input, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webclip.ErrorMessage(err))
		return err
	}

	saved, failed := 0, 0
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
		} else {
			saved++
		}
	}

	fmt.Fprintf(deps.Stdout, "Saved %d notes", saved)
	if failed > 0 {
		fmt.Fprintf(deps.Stdout, ", %d failed", failed)
	}
	fmt.Fprintln(deps.Stdout)

	return nil
}

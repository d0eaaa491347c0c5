package main

import (
	"fmt"

	"github.com/czl314159/webclip"
)

// Run executes the login command.
func (c *LoginCmd) Run(deps *Dependencies) error {
	profile, ok := deps.Config.Profile(c.Profile)
	if !ok {
		err := webclip.Errorf(webclip.ENOTFOUND, "no profile named %q in the config file", c.Profile)
		fmt.Fprintf(deps.Stderr, "error: %s\n", webclip.ErrorMessage(err))
		return err
	}

	if err := profile.Validate(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webclip.ErrorMessage(err))
		return err
	}

	if err := deps.Capturer.CaptureLogin(deps.Ctx, profile); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webclip.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Session for %q saved to %s\n", c.Profile, profile.SnapshotPath)
	return nil
}

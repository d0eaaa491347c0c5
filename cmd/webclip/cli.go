package main

import (
	"context"
	"io"

	"github.com/czl314159/webclip"
	"github.com/czl314159/webclip/batch"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Config   webclip.Config
	Runner   *batch.Runner
	Capturer webclip.LoginCapturer
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Clip  ClipCmd  `cmd:"" help:"Convert one URL or a batch file of URLs to Markdown notes"`
	Login LoginCmd `cmd:"" help:"Capture an authenticated browser session for a site profile"`

	Verbose bool `short:"v" help:"Log pipeline stages to stderr"`
}

// ClipCmd is the "clip" subcommand.
type ClipCmd struct {
	Input    string `arg:"" help:"URL to clip, or a text file containing URLs"`
	Output   string `short:"o" help:"Output directory for notes, or a .md file path for a single URL"`
	Selector string `short:"s" help:"CSS selector overriding content detection"`
}

// LoginCmd is the "login" subcommand.
type LoginCmd struct {
	Profile string `arg:"" help:"Site profile name from the config file"`
}

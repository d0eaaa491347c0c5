package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/czl314159/webclip"
	"github.com/czl314159/webclip/batch"
	"github.com/czl314159/webclip/fs"
	"github.com/czl314159/webclip/goquery"
	"github.com/czl314159/webclip/htmltomarkdown"
	"github.com/czl314159/webclip/rod"
	wslog "github.com/czl314159/webclip/slog"
	"github.com/czl314159/webclip/trafilatura"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Config file path. Set before calling Run().
	ConfigPath string
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		ConfigPath: defaultConfigPath(),
	}
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
		kong.Name("webclip"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'webclip --help' to see available commands")
	}

	if first := args[0]; first == "help" || first == "--help" || first == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Dispatch on the parsed command, not args[0]: global flags may
	// precede the subcommand (webclip --verbose clip <url>).
	cmd := strings.Fields(kongCtx.Command())[0]

	cfg, err := webclip.LoadConfig(m.ConfigPath)
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Set WEBCLIP_CONFIG to use a different config path")
		return err
	}
	deps.Config = cfg

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, nil))
	}

	if cmd == "clip" {
		fetcher, err := rod.NewFetcher(cfg)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		defer fetcher.Close()

		rules := goquery.DefaultRegistry()

		opts := []goquery.ExtractorOption{
			goquery.WithFallback(trafilatura.NewExtractor()),
		}
		if cli.Clip.Selector != "" {
			opts = append(opts, goquery.WithUserSelector(cli.Clip.Selector))
		}

		var pipelineFetcher webclip.Fetcher = fetcher
		var extractor webclip.Extractor = goquery.NewExtractor(rules, opts...)
		var writer webclip.NoteWriter = fs.NewWriter(cli.Clip.Output, cfg.NoteType, cfg.ContentType)
		if cli.Verbose {
			pipelineFetcher = rod.NewLoggingFetcher(fetcher, logger)
			extractor = wslog.NewLoggingExtractor(extractor, logger)
			writer = wslog.NewLoggingWriter(writer, logger)
		}

		deps.Runner = &batch.Runner{
			Fetcher:   pipelineFetcher,
			Extractor: extractor,
			Harvester: goquery.NewHarvester(rules),
			Converter: htmltomarkdown.NewConverter(),
			Writer:    writer,
			Limiter:   batch.NewDomainLimiter(1.0),
			PauseMin:  time.Duration(cfg.PauseMin),
			PauseMax:  time.Duration(cfg.PauseMax),
		}
	}

	if cmd == "login" {
		deps.Capturer = rod.NewCapturer()
	}

	return kongCtx.Run(deps)
}

func defaultConfigPath() string {
	if path := os.Getenv("WEBCLIP_CONFIG"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "webclip.yaml"
	}
	return filepath.Join(home, ".webclip", "config.yaml")
}

package rod

import (
	"context"
	"log/slog"
	"time"

	"github.com/czl314159/webclip"
)

// Ensure LoggingFetcher implements webclip.Fetcher at compile time.
var _ webclip.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with structured logging.
type LoggingFetcher struct {
	fetcher webclip.Fetcher
	logger  *slog.Logger
}

// NewLoggingFetcher creates a Fetcher decorator that logs each fetch.
func NewLoggingFetcher(fetcher webclip.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{
		fetcher: fetcher,
		logger:  logger,
	}
}

func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.fetcher.Fetch(ctx, url)
}

func (f *LoggingFetcher) Close() error {
	return f.fetcher.Close()
}

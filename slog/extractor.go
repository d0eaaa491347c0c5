// Package slog provides logging decorators for the pipeline interfaces.
package slog

import (
	"log/slog"
	"time"

	"github.com/czl314159/webclip"
)

// Ensure LoggingExtractor implements webclip.Extractor.
var _ webclip.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor and logs which cascade stage produced
// the content for each page.
type LoggingExtractor struct {
	next   webclip.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next webclip.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

func (e *LoggingExtractor) Extract(html, pageURL string) (match *webclip.ContentMatch, err error) {
	defer func(begin time.Time) {
		strategy := ""
		if match != nil {
			strategy = string(match.Strategy)
		}
		e.logger.Info("extract",
			"url", pageURL,
			"strategy", strategy,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(html, pageURL)
}

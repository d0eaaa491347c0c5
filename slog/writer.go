package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/czl314159/webclip"
)

// Ensure LoggingWriter implements webclip.NoteWriter.
var _ webclip.NoteWriter = (*LoggingWriter)(nil)

// LoggingWriter wraps a NoteWriter and logs where each note lands.
type LoggingWriter struct {
	next   webclip.NoteWriter
	logger *slog.Logger
}

// NewLoggingWriter creates a new LoggingWriter.
func NewLoggingWriter(next webclip.NoteWriter, logger *slog.Logger) *LoggingWriter {
	return &LoggingWriter{next: next, logger: logger}
}

func (w *LoggingWriter) WriteNote(ctx context.Context, doc *webclip.Document) (path string, err error) {
	defer func(begin time.Time) {
		w.logger.Info("write note",
			"source", doc.SourceURL,
			"path", path,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.WriteNote(ctx, doc)
}

package mock

import (
	"context"

	"github.com/czl314159/webclip"
)

var _ webclip.NoteWriter = (*Writer)(nil)

// Writer is a mock implementation of webclip.NoteWriter.
type Writer struct {
	WriteNoteFn func(ctx context.Context, doc *webclip.Document) (string, error)
}

func (w *Writer) WriteNote(ctx context.Context, doc *webclip.Document) (string, error) {
	return w.WriteNoteFn(ctx, doc)
}

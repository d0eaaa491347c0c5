package webclip

import (
	"context"
	"time"
)

// SummaryHeading is the fixed placeholder section inserted between the
// front matter and the body. An external summarization pass locates this
// marker to fill in the summary, so the text must stay byte-stable.
const SummaryHeading = "# Summary"

// Document represents one converted page, ready to be written as a
// Markdown note with YAML front matter.
type Document struct {
	// SourceURL is the original page URL.
	SourceURL string

	// Title is the harvested page title, also the default filename stem.
	Title string

	// Metadata holds the remaining harvested fields.
	Metadata Metadata

	// Body is the Markdown body, image references already absolute.
	Body string

	// ContentHash is a hash of Body, recorded for idempotence checks.
	ContentHash string

	// Strategy records which cascade stage produced the content.
	Strategy Strategy

	// CreatedAt is the assembly timestamp written to the front matter.
	CreatedAt time.Time
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.SourceURL == "" {
		return Errorf(EINVALID, "document source URL required")
	}
	if d.Body == "" {
		return Errorf(EINVALID, "document body required")
	}
	return nil
}

// NoteWriter persists documents as Markdown notes.
type NoteWriter interface {
	// WriteNote writes the document and returns the path it was written to.
	WriteNote(ctx context.Context, doc *Document) (path string, err error)
}

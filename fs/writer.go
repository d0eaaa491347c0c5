// Package fs writes converted pages to disk as Markdown notes.
package fs

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/czl314159/webclip"
	"gopkg.in/yaml.v3"
)

// Ensure Writer implements webclip.NoteWriter at compile time.
var _ webclip.NoteWriter = (*Writer)(nil)

// illegalFilenameChars are characters rejected by at least one common
// filesystem.
const illegalFilenameChars = `\/*?:"<>|`

// SanitizeTitle strips characters that are illegal in filenames and trims
// surrounding whitespace. An empty result becomes "untitled".
func SanitizeTitle(title string) string {
	var b strings.Builder
	for _, r := range title {
		if strings.ContainsRune(illegalFilenameChars, r) {
			continue
		}
		b.WriteRune(r)
	}
	clean := strings.TrimSpace(b.String())
	if clean == "" {
		return "untitled"
	}
	return clean
}

// FormatDocument renders the document as front matter, the summary
// placeholder section, and the Markdown body. The front matter key set and
// order are fixed; missing fields serialize as empty strings so downstream
// tooling can rely on a stable layout.
func FormatDocument(doc *webclip.Document, noteType, contentType string) string {
	var b strings.Builder
	b.WriteString("---\n")
	writeField(&b, "note_type", noteType)
	writeField(&b, "content_type", contentType)
	writeField(&b, "created", doc.CreatedAt.Format(time.RFC3339))
	writeField(&b, "published", doc.Metadata.Published)
	writeField(&b, "source", doc.SourceURL)
	writeField(&b, "author", doc.Metadata.Author)
	writeField(&b, "description", doc.Metadata.Description)
	writeField(&b, "site_name", doc.Metadata.SiteName)
	b.WriteString("---\n\n")
	b.WriteString(webclip.SummaryHeading)
	b.WriteString("\n\n---\n\n")
	b.WriteString(doc.Body)
	if !strings.HasSuffix(doc.Body, "\n") {
		b.WriteString("\n")
	}
	return b.String()
}

// writeField writes one front matter line, quoting the value through the
// YAML encoder so titles with special characters stay parseable.
func writeField(b *strings.Builder, key, value string) {
	b.WriteString(key)
	b.WriteString(": ")
	b.WriteString(yamlScalar(value))
	b.WriteString("\n")
}

// yamlScalar encodes a single string value as a YAML scalar.
func yamlScalar(value string) string {
	if value == "" {
		return `""`
	}
	out, err := yaml.Marshal(value)
	if err != nil {
		return `""`
	}
	return strings.TrimRight(string(out), "\n")
}

// Writer writes documents as Markdown notes.
//
// The target controls path resolution: a directory (existing, ending with
// a separator, or not yet existing and without a file extension) places
// sanitized-title filenames inside it; any other non-empty target is used
// verbatim as the output file; an empty target places sanitized-title
// filenames in the current directory.
type Writer struct {
	target      string
	noteType    string
	contentType string
}

// NewWriter creates a new Writer.
func NewWriter(target, noteType, contentType string) *Writer {
	return &Writer{target: target, noteType: noteType, contentType: contentType}
}

// WriteNote writes the document and returns the path it was written to.
func (w *Writer) WriteNote(ctx context.Context, doc *webclip.Document) (string, error) {
	if err := doc.Validate(); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path, err := w.resolvePath(doc)
	if err != nil {
		return "", err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", err
		}
	}

	content := FormatDocument(doc, w.noteType, w.contentType)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", err
	}
	return path, nil
}

// resolvePath applies the output path rules.
func (w *Writer) resolvePath(doc *webclip.Document) (string, error) {
	filename := SanitizeTitle(doc.Title) + ".md"

	if w.target == "" {
		return filename, nil
	}

	if strings.HasSuffix(w.target, string(os.PathSeparator)) {
		return filepath.Join(w.target, filename), nil
	}

	info, err := os.Stat(w.target)
	if err == nil && info.IsDir() {
		return filepath.Join(w.target, filename), nil
	}

	// A target that does not exist yet and has no file extension is a
	// directory to create. Taking it as a file would make a batch run
	// into a fresh directory overwrite one note per URL.
	if os.IsNotExist(err) && filepath.Ext(w.target) == "" {
		return filepath.Join(w.target, filename), nil
	}

	// Explicit file path, used verbatim.
	return w.target, nil
}

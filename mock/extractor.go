package mock

import "github.com/czl314159/webclip"

var _ webclip.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of webclip.Extractor.
type Extractor struct {
	ExtractFn func(html string, pageURL string) (*webclip.ContentMatch, error)
}

func (e *Extractor) Extract(html string, pageURL string) (*webclip.ContentMatch, error) {
	return e.ExtractFn(html, pageURL)
}

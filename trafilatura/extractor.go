// Package trafilatura implements the text-density fallback stage of the
// content extraction cascade.
package trafilatura

import (
	"bytes"
	"net/url"
	"strings"

	gq "github.com/PuerkitoBio/goquery"
	"github.com/czl314159/webclip"
	"github.com/czl314159/webclip/goquery"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements webclip.Extractor at compile time.
var _ webclip.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to locate the main article when no
// structural selector matched. It approximates "the subtree with the best
// text density" and is always the last cascade stage.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract analyzes the page and returns the densest content subtree.
func (e *Extractor) Extract(rawHTML string, pageURL string) (*webclip.ContentMatch, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, webclip.Errorf(webclip.EINVALID, "empty HTML input")
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, webclip.Errorf(webclip.EINVALID, "invalid page URL %q: %v", pageURL, err)
	}

	opts := trafilatura.Options{
		EnableFallback: true,
		OriginalURL:    base,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, webclip.Errorf(webclip.ENOTFOUND, "text density analysis found no content for %q: %v", pageURL, err)
	}
	if result.ContentNode == nil {
		return nil, webclip.Errorf(webclip.ENOTFOUND, "text density analysis found no content for %q", pageURL)
	}

	// Normalize image references in place before rendering the subtree.
	doc := gq.NewDocumentFromNode(result.ContentNode)
	goquery.NormalizeImages(doc.Selection, base)

	contentHTML, err := renderNode(result.ContentNode)
	if err != nil {
		return nil, webclip.Errorf(webclip.EINTERNAL, "rendering content subtree: %v", err)
	}

	return &webclip.ContentMatch{
		ContentHTML: contentHTML,
		Strategy:    webclip.StrategyDensity,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Package goquery implements content extraction and metadata harvesting
// over parsed HTML documents.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/czl314159/webclip"
)

// Ensure Extractor implements webclip.Extractor at compile time.
var _ webclip.Extractor = (*Extractor)(nil)

// candidateSelectors is the generic selector cascade, ordered from most to
// least likely to contain the article body. The first match wins.
var candidateSelectors = []string{
	"article",
	"main",
	"#content",
	"#main-content",
	"#main",
	".post-body",
	".entry-content",
	".article-body",
}

// Extractor locates the primary article content using a deterministic
// priority cascade: operator selector, then site-specific rule, then the
// generic candidate list, then an optional text-density fallback. Earlier
// stages always win, even when a later stage would also match.
type Extractor struct {
	rules        *Registry
	fallback     webclip.Extractor
	userSelector string
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithFallback sets the extractor used when no structural selector
// matches, typically a text-density analyzer.
func WithFallback(fallback webclip.Extractor) ExtractorOption {
	return func(e *Extractor) {
		e.fallback = fallback
	}
}

// WithUserSelector sets an operator-supplied CSS selector. When set it is
// the only stage tried: a miss fails extraction instead of falling
// through, so the operator learns the selector is wrong.
func WithUserSelector(selector string) ExtractorOption {
	return func(e *Extractor) {
		e.userSelector = selector
	}
}

// NewExtractor creates a new Extractor with the given site-rule registry.
func NewExtractor(rules *Registry, opts ...ExtractorOption) *Extractor {
	e := &Extractor{rules: rules}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns the content match for the page, or ENOTFOUND when no
// cascade stage matches.
func (e *Extractor) Extract(rawHTML string, pageURL string) (*webclip.ContentMatch, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, webclip.Errorf(webclip.EINVALID, "empty HTML input")
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, webclip.Errorf(webclip.EINVALID, "invalid page URL %q: %v", pageURL, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, webclip.Errorf(webclip.EINVALID, "failed to parse HTML: %v", err)
	}

	if e.userSelector != "" {
		sel := doc.Find(e.userSelector).First()
		if sel.Length() == 0 {
			return nil, webclip.Errorf(webclip.ENOTFOUND, "no element matched selector %q", e.userSelector)
		}
		return render(sel, webclip.StrategyUserSelector, base)
	}

	if rule, ok := e.rules.ForURL(pageURL); ok && rule.ContentSelector != "" {
		if sel := doc.Find(rule.ContentSelector).First(); sel.Length() > 0 {
			return render(sel, webclip.StrategySiteRule, base)
		}
	}

	for _, candidate := range candidateSelectors {
		if sel := doc.Find(candidate).First(); sel.Length() > 0 {
			return render(sel, webclip.StrategyCandidate, base)
		}
	}

	if e.fallback != nil {
		return e.fallback.Extract(rawHTML, pageURL)
	}

	return nil, webclip.Errorf(webclip.ENOTFOUND, "no content matched for %q", pageURL)
}

// render normalizes image references in the matched subtree and serializes
// it back to HTML.
func render(sel *goquery.Selection, strategy webclip.Strategy, base *url.URL) (*webclip.ContentMatch, error) {
	NormalizeImages(sel, base)

	contentHTML, err := goquery.OuterHtml(sel)
	if err != nil {
		return nil, webclip.Errorf(webclip.EINTERNAL, "rendering content subtree: %v", err)
	}

	return &webclip.ContentMatch{
		ContentHTML: contentHTML,
		Strategy:    strategy,
	}, nil
}

package goquery

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/czl314159/webclip"
)

// Ensure Harvester implements webclip.Harvester at compile time.
var _ webclip.Harvester = (*Harvester)(nil)

// Harvester extracts page metadata from rendered HTML. Sources are merged
// in strict priority order: site-specific DOM landmarks, JSON-LD blocks,
// head meta tags, then the <title> tag. A field populated by a
// higher-priority source is never overwritten.
type Harvester struct {
	rules *Registry
}

// NewHarvester creates a new Harvester with the given site-rule registry.
func NewHarvester(rules *Registry) *Harvester {
	return &Harvester{rules: rules}
}

// Harvest collects metadata for the page.
func (h *Harvester) Harvest(rawHTML string, pageURL string) (*webclip.Metadata, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, webclip.Errorf(webclip.EINVALID, "failed to parse HTML: %v", err)
	}

	var meta webclip.Metadata

	if rule, ok := h.rules.ForURL(pageURL); ok {
		meta.Merge(harvestLandmarks(doc, rule))
	}
	meta.Merge(harvestStructuredData(doc))
	meta.Merge(harvestMetaTags(doc))
	meta.Merge(webclip.Metadata{
		Title: strings.TrimSpace(doc.Find("head title").First().Text()),
	})

	return &meta, nil
}

// harvestLandmarks reads the site rule's fixed DOM landmarks.
func harvestLandmarks(doc *goquery.Document, rule SiteRule) webclip.Metadata {
	text := func(selector string) string {
		if selector == "" {
			return ""
		}
		return strings.TrimSpace(doc.Find(selector).First().Text())
	}

	return webclip.Metadata{
		Title:     text(rule.TitleSelector),
		Author:    text(rule.AuthorSelector),
		Published: text(rule.PublishedSelector),
	}
}

// harvestStructuredData reads JSON-LD blocks. Blocks that fail to parse
// are skipped; harvesting never aborts on malformed structured data.
func harvestStructuredData(doc *goquery.Document) webclip.Metadata {
	var meta webclip.Metadata

	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		var raw interface{}
		if err := json.Unmarshal([]byte(s.Text()), &raw); err != nil {
			return
		}
		for _, obj := range flattenStructuredData(raw) {
			meta.Merge(structuredDataFields(obj))
		}
	})

	return meta
}

// flattenStructuredData expands a parsed JSON-LD value into the objects it
// contains: top-level objects, arrays of objects, and @graph members.
func flattenStructuredData(raw interface{}) []map[string]interface{} {
	var objs []map[string]interface{}

	switch v := raw.(type) {
	case map[string]interface{}:
		objs = append(objs, v)
		if graph, ok := v["@graph"].([]interface{}); ok {
			for _, item := range graph {
				if obj, ok := item.(map[string]interface{}); ok {
					objs = append(objs, obj)
				}
			}
		}
	case []interface{}:
		for _, item := range v {
			if obj, ok := item.(map[string]interface{}); ok {
				objs = append(objs, obj)
			}
		}
	}

	return objs
}

// structuredDataFields maps one JSON-LD object to metadata fields.
func structuredDataFields(obj map[string]interface{}) webclip.Metadata {
	meta := webclip.Metadata{
		Title:       stringField(obj, "headline"),
		Author:      personName(obj["author"]),
		Published:   stringField(obj, "datePublished"),
		Description: stringField(obj, "description"),
	}
	if meta.Title == "" {
		meta.Title = stringField(obj, "name")
	}
	if publisher, ok := obj["publisher"].(map[string]interface{}); ok {
		meta.SiteName = stringField(publisher, "name")
	}
	return meta
}

// personName extracts a name from a JSON-LD author value, which may be a
// plain string, an object, or a list. For lists the first entry wins.
func personName(v interface{}) string {
	switch author := v.(type) {
	case string:
		return strings.TrimSpace(author)
	case map[string]interface{}:
		return stringField(author, "name")
	case []interface{}:
		if len(author) > 0 {
			return personName(author[0])
		}
	}
	return ""
}

func stringField(obj map[string]interface{}, key string) string {
	s, _ := obj[key].(string)
	return strings.TrimSpace(s)
}

// harvestMetaTags reads generic head metadata. Open Graph properties are
// preferred over plain name= variants through merge order.
func harvestMetaTags(doc *goquery.Document) webclip.Metadata {
	content := func(selector string) string {
		v, _ := doc.Find(selector).First().Attr("content")
		return strings.TrimSpace(v)
	}

	meta := webclip.Metadata{
		Title:       content(`meta[property="og:title"]`),
		Author:      content(`meta[name="author"]`),
		Published:   content(`meta[property="article:published_time"]`),
		Description: content(`meta[property="og:description"]`),
		SiteName:    content(`meta[property="og:site_name"]`),
	}
	meta.Merge(webclip.Metadata{
		Title:       content(`meta[name="twitter:title"]`),
		Description: content(`meta[name="description"]`),
		Published:   content(`meta[name="date"]`),
	})

	return meta
}

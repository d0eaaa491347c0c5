package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// lazyAttrs are the non-standard attributes that hold the real image URL
// before JavaScript swaps it into src. Checked in order; the first
// non-empty one wins.
var lazyAttrs = []string{"data-src", "data-original", "data-lazy-src", "data-echo"}

// NormalizeImages rewrites every image reference under sel, in place, so
// that src is an absolute, non-lazy URL resolvable outside the original
// page. Lazy-load attributes are promoted into src and removed; relative,
// path-relative, and protocol-relative values are resolved against base.
func NormalizeImages(sel *goquery.Selection, base *url.URL) {
	sel.Find("img").Each(func(_ int, img *goquery.Selection) {
		for _, attr := range lazyAttrs {
			if v, ok := img.Attr(attr); ok && strings.TrimSpace(v) != "" {
				img.SetAttr("src", strings.TrimSpace(v))
				img.RemoveAttr(attr)
				break
			}
		}

		src, ok := img.Attr("src")
		if !ok || strings.TrimSpace(src) == "" {
			return
		}
		src = strings.TrimSpace(src)

		if isAbsolute(src) {
			return
		}

		ref, err := url.Parse(src)
		if err != nil {
			return
		}
		img.SetAttr("src", base.ResolveReference(ref).String())
	})
}

// isAbsolute reports whether src is already a full http(s) URL.
func isAbsolute(src string) bool {
	lower := strings.ToLower(src)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

package goquery_test

import (
	"net/url"
	"strings"
	"testing"

	gq "github.com/PuerkitoBio/goquery"
	"github.com/czl314159/webclip/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// normalize parses a fragment, runs NormalizeImages against the page URL,
// and returns the resulting src attribute of the first image.
func normalize(t *testing.T, fragment string, pageURL string) (string, *gq.Selection) {
	t.Helper()

	doc, err := gq.NewDocumentFromReader(strings.NewReader("<html><body>" + fragment + "</body></html>"))
	require.NoError(t, err)
	base, err := url.Parse(pageURL)
	require.NoError(t, err)

	sel := doc.Find("body")
	goquery.NormalizeImages(sel, base)

	src, _ := sel.Find("img").First().Attr("src")
	return src, sel
}

func TestNormalizeImages(t *testing.T) {
	t.Parallel()

	t.Run("promotes lazy attribute and resolves against page URL", func(t *testing.T) {
		t.Parallel()

		src, sel := normalize(t, `<img data-src="/img/a.png">`, "https://ex.com/post")

		assert.Equal(t, "https://ex.com/img/a.png", src)
		_, exists := sel.Find("img").First().Attr("data-src")
		assert.False(t, exists, "placeholder attribute should be removed")
	})

	t.Run("lazy attribute wins over placeholder src", func(t *testing.T) {
		t.Parallel()

		src, _ := normalize(t, `<img src="data:image/gif;base64,R0lGOD" data-original="https://cdn.ex.com/real.jpg">`, "https://ex.com/post")

		assert.Equal(t, "https://cdn.ex.com/real.jpg", src)
	})

	t.Run("resolves protocol-relative URLs", func(t *testing.T) {
		t.Parallel()

		src, _ := normalize(t, `<img src="//cdn.ex.com/a.png">`, "https://ex.com/post")

		assert.Equal(t, "https://cdn.ex.com/a.png", src)
	})

	t.Run("resolves path-relative URLs", func(t *testing.T) {
		t.Parallel()

		src, _ := normalize(t, `<img src="a.png">`, "https://ex.com/blog/post")

		assert.Equal(t, "https://ex.com/blog/a.png", src)
	})

	t.Run("leaves absolute URLs untouched", func(t *testing.T) {
		t.Parallel()

		src, _ := normalize(t, `<img src="https://other.com/a.png">`, "https://ex.com/post")

		assert.Equal(t, "https://other.com/a.png", src)
	})

	t.Run("ignores images without any source", func(t *testing.T) {
		t.Parallel()

		src, _ := normalize(t, `<img alt="decorative">`, "https://ex.com/post")

		assert.Empty(t, src)
	})

	t.Run("normalizes every image in the subtree", func(t *testing.T) {
		t.Parallel()

		_, sel := normalize(t, `<p><img src="/a.png"></p><p><img data-lazy-src="/b.png"></p>`, "https://ex.com/post")

		var srcs []string
		sel.Find("img").Each(func(_ int, img *gq.Selection) {
			src, _ := img.Attr("src")
			srcs = append(srcs, src)
		})

		assert.Equal(t, []string{"https://ex.com/a.png", "https://ex.com/b.png"}, srcs)
	})
}

package htmltomarkdown_test

import (
	"testing"

	"github.com/czl314159/webclip"
	"github.com/czl314159/webclip/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConverterConvert(t *testing.T) {
	t.Parallel()

	t.Run("produces ATX headings", func(t *testing.T) {
		t.Parallel()

		c := htmltomarkdown.NewConverter()

		result, err := c.Convert("<h1>Title</h1><h2>Section</h2><p>Body.</p>")

		require.NoError(t, err)
		assert.Contains(t, result, "# Title")
		assert.Contains(t, result, "## Section")
	})

	t.Run("strips hyperlink markup but keeps the text", func(t *testing.T) {
		t.Parallel()

		c := htmltomarkdown.NewConverter()

		result, err := c.Convert(`<p>Read <a href="https://example.com/more">the full story</a> today.</p>`)

		require.NoError(t, err)
		assert.Contains(t, result, "the full story")
		assert.NotContains(t, result, "https://example.com/more")
		assert.NotContains(t, result, "](")
	})

	t.Run("preserves image references", func(t *testing.T) {
		t.Parallel()

		c := htmltomarkdown.NewConverter()

		result, err := c.Convert(`<p><img src="https://ex.com/img/a.png" alt="diagram"></p>`)

		require.NoError(t, err)
		assert.Contains(t, result, "![diagram](https://ex.com/img/a.png)")
	})

	t.Run("converts lists and emphasis", func(t *testing.T) {
		t.Parallel()

		c := htmltomarkdown.NewConverter()

		result, err := c.Convert("<ul><li><strong>bold</strong> item</li><li>plain item</li></ul>")

		require.NoError(t, err)
		assert.Contains(t, result, "- **bold** item")
		assert.Contains(t, result, "- plain item")
	})

	t.Run("empty input returns EINVALID", func(t *testing.T) {
		t.Parallel()

		c := htmltomarkdown.NewConverter()

		_, err := c.Convert("   ")

		assert.Equal(t, webclip.EINVALID, webclip.ErrorCode(err))
	})

	t.Run("conversion is deterministic", func(t *testing.T) {
		t.Parallel()

		c := htmltomarkdown.NewConverter()
		input := "<h1>T</h1><p>Some <em>styled</em> text with <a href=\"/x\">a link</a>.</p>"

		first, err := c.Convert(input)
		require.NoError(t, err)
		second, err := c.Convert(input)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})
}

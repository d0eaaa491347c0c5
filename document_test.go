package webclip_test

import (
	"testing"

	"github.com/czl314159/webclip"
	"github.com/stretchr/testify/assert"
)

func TestDocumentValidate(t *testing.T) {
	t.Parallel()

	t.Run("valid document passes", func(t *testing.T) {
		t.Parallel()

		doc := &webclip.Document{
			SourceURL: "https://example.com/post",
			Body:      "# Hello",
		}

		assert.NoError(t, doc.Validate())
	})

	t.Run("requires source URL", func(t *testing.T) {
		t.Parallel()

		doc := &webclip.Document{Body: "# Hello"}

		err := doc.Validate()
		assert.Equal(t, webclip.EINVALID, webclip.ErrorCode(err))
	})

	t.Run("requires body", func(t *testing.T) {
		t.Parallel()

		doc := &webclip.Document{SourceURL: "https://example.com/post"}

		err := doc.Validate()
		assert.Equal(t, webclip.EINVALID, webclip.ErrorCode(err))
	})
}

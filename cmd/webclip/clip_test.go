package main_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/czl314159/webclip"
	"github.com/czl314159/webclip/batch"
	main "github.com/czl314159/webclip/cmd/webclip"
	"github.com/czl314159/webclip/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newRunner wires a Runner whose pipeline succeeds for every URL.
func newRunner() *batch.Runner {
	return &batch.Runner{
		Fetcher: &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				return "<html><article><p>hi</p></article></html>", nil
			},
		},
		Extractor: &mock.Extractor{
			ExtractFn: func(html, pageURL string) (*webclip.ContentMatch, error) {
				return &webclip.ContentMatch{ContentHTML: "<p>hi</p>", Strategy: webclip.StrategyCandidate}, nil
			},
		},
		Harvester: &mock.Harvester{
			HarvestFn: func(html, pageURL string) (*webclip.Metadata, error) {
				return &webclip.Metadata{Title: "Post"}, nil
			},
		},
		Converter: &mock.Converter{
			ConvertFn: func(html string) (string, error) { return "hi", nil },
		},
		Writer: &mock.Writer{
			WriteNoteFn: func(_ context.Context, doc *webclip.Document) (string, error) {
				return doc.Title + ".md", nil
			},
		},
		Sleep: func(ctx context.Context, d time.Duration) error { return nil },
	}
}

func TestClipCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("reports the note path for a clipped URL", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
			Runner: newRunner(),
		}

		cmd := &main.ClipCmd{Input: "https://example.com/post"}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Post.md")
		assert.Contains(t, stdout.String(), "Saved 1 notes")
		assert.Empty(t, stderr.String())
	})

	t.Run("failed URLs are reported and counted", func(t *testing.T) {
		t.Parallel()

		runner := newRunner()
		runner.Fetcher = &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				return "", webclip.Errorf(webclip.EUNAVAILABLE, "navigation timed out")
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
			Runner: runner,
		}

		cmd := &main.ClipCmd{Input: "https://example.com/post"}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stderr.String(), "skip https://example.com/post")
		assert.Contains(t, stderr.String(), "navigation timed out")
		assert.Contains(t, stdout.String(), "Saved 0 notes, 1 failed")
	})

	t.Run("returns error for input without URLs", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
			Runner: newRunner(),
		}

		cmd := &main.ClipCmd{Input: ""}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, webclip.EINVALID, webclip.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error:")
	})
}

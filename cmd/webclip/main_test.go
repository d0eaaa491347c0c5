package main_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/czl314159/webclip"
	main "github.com/czl314159/webclip/cmd/webclip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("no arguments prints help and errors", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), nil, stdout, stderr)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no command specified")
		assert.Contains(t, stdout.String(), "clip")
		assert.Contains(t, stdout.String(), "login")
	})

	t.Run("help flag succeeds", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"--help"}, stdout, stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "webclip")
	})

	t.Run("global flags before the command still wire its dependencies", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.ConfigPath = filepath.Join(t.TempDir(), "missing.yaml")
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"--verbose", "login", "nope"}, stdout, stderr)

		require.Error(t, err)
		assert.Equal(t, webclip.ENOTFOUND, webclip.ErrorCode(err))
	})

	t.Run("login with an unknown profile fails before any browser starts", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.ConfigPath = filepath.Join(t.TempDir(), "missing.yaml")
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"login", "nope"}, stdout, stderr)

		require.Error(t, err)
		assert.Equal(t, webclip.ENOTFOUND, webclip.ErrorCode(err))
	})
}

package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/czl314159/webclip"
	main "github.com/czl314159/webclip/cmd/webclip"
	"github.com/czl314159/webclip/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginCmd_Run(t *testing.T) {
	t.Parallel()

	validConfig := webclip.Config{
		Profiles: map[string]webclip.SiteProfile{
			"nytimes": {
				Name:         "nytimes",
				Domain:       "nytimes.com",
				LoginURL:     "https://myaccount.nytimes.com/auth/login",
				SnapshotPath: "snapshots/nytimes.json",
			},
		},
	}

	t.Run("captures the session for a configured profile", func(t *testing.T) {
		t.Parallel()

		var captured webclip.SiteProfile
		capturer := &mock.LoginCapturer{
			CaptureLoginFn: func(_ context.Context, profile webclip.SiteProfile) error {
				captured = profile
				return nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   stderr,
			Config:   validConfig,
			Capturer: capturer,
		}

		cmd := &main.LoginCmd{Profile: "nytimes"}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "nytimes", captured.Name)
		assert.Contains(t, stdout.String(), "snapshots/nytimes.json")
	})

	t.Run("unknown profile returns ENOTFOUND", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
			Config: validConfig,
			Capturer: &mock.LoginCapturer{
				CaptureLoginFn: func(_ context.Context, _ webclip.SiteProfile) error {
					t.Fatal("capture should not run for an unknown profile")
					return nil
				},
			},
		}

		cmd := &main.LoginCmd{Profile: "missing"}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, webclip.ENOTFOUND, webclip.ErrorCode(err))
		assert.Contains(t, stderr.String(), "missing")
	})

	t.Run("incomplete profile aborts before capture", func(t *testing.T) {
		t.Parallel()

		cfg := webclip.Config{
			Profiles: map[string]webclip.SiteProfile{
				"broken": {Name: "broken", Domain: "example.com"},
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
			Config: cfg,
			Capturer: &mock.LoginCapturer{
				CaptureLoginFn: func(_ context.Context, _ webclip.SiteProfile) error {
					t.Fatal("capture should not run for an invalid profile")
					return nil
				},
			},
		}

		cmd := &main.LoginCmd{Profile: "broken"}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, webclip.EINVALID, webclip.ErrorCode(err))
	})

	t.Run("capture failure is surfaced", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
			Config: validConfig,
			Capturer: &mock.LoginCapturer{
				CaptureLoginFn: func(_ context.Context, _ webclip.SiteProfile) error {
					return webclip.Errorf(webclip.EUNAVAILABLE, "login page did not load")
				},
			},
		}

		cmd := &main.LoginCmd{Profile: "nytimes"}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "login page did not load")
		assert.NotContains(t, stdout.String(), "saved")
	})
}

package mock

import (
	"context"

	"github.com/czl314159/webclip"
)

var _ webclip.LoginCapturer = (*LoginCapturer)(nil)

// LoginCapturer is a mock implementation of webclip.LoginCapturer.
type LoginCapturer struct {
	CaptureLoginFn func(ctx context.Context, profile webclip.SiteProfile) error
}

func (l *LoginCapturer) CaptureLogin(ctx context.Context, profile webclip.SiteProfile) error {
	return l.CaptureLoginFn(ctx, profile)
}

package webclip

import "context"

// Fetcher retrieves rendered HTML from URLs.
// Implementations may use browser automation to handle JavaScript-rendered
// content, consent overlays, and lazy-loaded media.
type Fetcher interface {
	// Fetch navigates to the URL, waits for the page to render,
	// and returns the rendered HTML.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases browser resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// LoginCapturer runs an interactive, operator-in-the-loop login flow and
// persists the resulting browser storage state for later fetches.
type LoginCapturer interface {
	// CaptureLogin opens a visible browser at the profile's login URL,
	// blocks until the operator confirms the login is complete, and writes
	// the session snapshot to the profile's snapshot path.
	CaptureLogin(ctx context.Context, profile SiteProfile) error
}

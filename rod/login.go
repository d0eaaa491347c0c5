package rod

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"

	"github.com/czl314159/webclip"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Capturer implements webclip.LoginCapturer at compile time.
var _ webclip.LoginCapturer = (*Capturer)(nil)

// Capturer walks an operator through logging in to a site in a visible
// browser window, then snapshots the authenticated session to the profile's
// snapshot path. The operator completes the login manually; Capturer only
// opens the door and records the result.
type Capturer struct {
	// Confirm blocks until the operator signals that login is complete.
	// It defaults to waiting for Enter on stdin.
	Confirm func() error

	// Out receives operator-facing prompts. Defaults to stdout.
	Out *os.File
}

// NewCapturer returns a Capturer using stdin/stdout for the operator dialog.
func NewCapturer() *Capturer {
	return &Capturer{
		Confirm: confirmOnStdin,
		Out:     os.Stdout,
	}
}

// CaptureLogin opens the profile's login URL in a visible browser, waits for
// the operator to finish logging in, and saves the session snapshot. The
// profile is validated before any browser is launched.
func (c *Capturer) CaptureLogin(ctx context.Context, profile webclip.SiteProfile) error {
	if err := profile.Validate(); err != nil {
		return err
	}

	manager, err := NewBrowserManager(WithVisible())
	if err != nil {
		return err
	}
	defer manager.Close()

	page, err := manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return fmt.Errorf("creating page: %w", err)
	}
	defer page.Close()

	page = page.Context(ctx)

	if _, err := page.EvalOnNewDocument(stealthJS); err != nil {
		return fmt.Errorf("installing init script: %w", err)
	}

	if err := page.Navigate(profile.LoginURL); err != nil {
		return webclip.Errorf(webclip.EUNAVAILABLE, "opening login page %s: %v", profile.LoginURL, err)
	}
	if err := page.WaitLoad(); err != nil {
		return webclip.Errorf(webclip.EUNAVAILABLE, "loading login page %s: %v", profile.LoginURL, err)
	}

	if c.Out != nil {
		fmt.Fprintf(c.Out, "Log in to %s in the browser window, then press Enter here.\n", profile.Name)
	}
	if err := c.confirm(); err != nil {
		return err
	}

	snapshot, err := captureSnapshot(page, profile.LoginURL)
	if err != nil {
		return fmt.Errorf("capturing session: %w", err)
	}

	return snapshot.Save(profile.SnapshotPath)
}

func (c *Capturer) confirm() error {
	if c.Confirm != nil {
		return c.Confirm()
	}
	return confirmOnStdin()
}

func confirmOnStdin() error {
	reader := bufio.NewReader(os.Stdin)
	_, err := reader.ReadString('\n')
	return err
}

// captureSnapshot reads the browser's cookie jar and the login origin's
// localStorage out of the live page.
func captureSnapshot(page *rod.Page, loginURL string) (*SessionSnapshot, error) {
	cookies, err := page.Browser().GetCookies()
	if err != nil {
		return nil, fmt.Errorf("reading cookies: %w", err)
	}

	snapshot := &SessionSnapshot{Cookies: cookieParams(cookies)}

	u, err := url.Parse(loginURL)
	if err != nil {
		return snapshot, nil
	}
	origin := u.Scheme + "://" + u.Host

	res, err := page.Eval(`() => JSON.stringify(localStorage)`)
	if err != nil {
		return nil, fmt.Errorf("reading localStorage: %w", err)
	}

	storage := map[string]string{}
	if err := json.Unmarshal([]byte(res.Value.Str()), &storage); err != nil {
		return nil, fmt.Errorf("decoding localStorage: %w", err)
	}
	if len(storage) > 0 {
		snapshot.Origins = append(snapshot.Origins, OriginState{
			Origin:       origin,
			LocalStorage: storage,
		})
	}

	return snapshot, nil
}

package rod

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/czl314159/webclip"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Fetcher implements webclip.Fetcher at compile time.
var _ webclip.Fetcher = (*Fetcher)(nil)

// desktopUserAgent is presented on anonymous fetches. Headless Chrome's
// default UA string advertises HeadlessChrome, which many sites reject.
const desktopUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0.0.0 Safari/537.36"

const acceptLanguage = "en-US,en;q=0.9"

// stealthJS runs before any page script and hides the automation marker.
const stealthJS = `Object.defineProperty(navigator, 'webdriver', {get: () => undefined})`

// consentSelectors cover the consent-manager buttons seen most often in the
// wild (OneTrust, Funding Choices, Amazon, Sourcepoint).
var consentSelectors = []string{
	"#onetrust-accept-btn-handler",
	"button[aria-label='Accept all']",
	".fc-cta-consent",
	"#sp-cc-accept",
	"button[mode='primary']",
}

// consentTextPattern matches accept-button labels by text when no known
// selector hits.
const consentTextPattern = `/^\s*(accept( all)?( cookies)?|i agree|agree|allow all|got it|同意|接受|允许)\s*$/i`

const scrollStepInterval = 500 * time.Millisecond

// Fetcher retrieves fully rendered HTML using Chrome browser automation.
// Each fetch runs in a fresh page: a matching site profile's session
// snapshot is replayed when one exists, anti-automation friction (consent
// dialogs, lazy loading) is worked through, and the page is always closed.
//
// Fetcher is safe for concurrent use, though callers are expected to fetch
// sequentially.
type Fetcher struct {
	manager *BrowserManager
	config  webclip.Config
}

// NewFetcher launches a headless browser and returns a Fetcher bound to cfg.
// Close must be called when the Fetcher is no longer needed.
func NewFetcher(cfg webclip.Config, opts ...ManagerOption) (*Fetcher, error) {
	manager, err := NewBrowserManager(opts...)
	if err != nil {
		return nil, err
	}
	return &Fetcher{manager: manager, config: cfg}, nil
}

// Fetch navigates to the URL and returns the rendered HTML after the page
// has settled. A session snapshot that fails to load degrades silently to an
// anonymous fetch rather than failing the URL.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	browser := f.manager.Browser()
	if browser == nil {
		return "", webclip.Errorf(webclip.EINVALID, "fetcher is closed")
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", fmt.Errorf("creating page: %w", err)
	}
	defer page.Close()

	page = page.Context(ctx)

	if _, err := page.EvalOnNewDocument(stealthJS); err != nil {
		return "", fmt.Errorf("installing init script: %w", err)
	}

	if err := f.prepareSession(page, url); err != nil {
		return "", err
	}

	if err := f.navigate(page, url); err != nil {
		return "", webclip.Errorf(webclip.EUNAVAILABLE, "navigating to %s: %v", url, err)
	}

	f.dismissConsent(page)
	f.scrollToBottom(ctx, page)

	if err := f.dwell(ctx); err != nil {
		return "", err
	}

	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("reading rendered HTML: %w", err)
	}

	f.manager.IncrementPageCount()
	return html, nil
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.manager.Close()
}

// prepareSession restores the site's session snapshot when the URL matches a
// configured profile, and otherwise dresses the page as a plain desktop
// browser. A snapshot that is missing or unreadable is not an error; the
// fetch proceeds anonymously.
func (f *Fetcher) prepareSession(page *rod.Page, url string) error {
	if profile, ok := f.config.ProfileForURL(url); ok && profile.SnapshotPath != "" {
		if snapshot, err := LoadSnapshot(profile.SnapshotPath); err == nil {
			if err := snapshot.Apply(page); err == nil {
				return nil
			}
		}
	}

	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
		UserAgent:      desktopUserAgent,
		AcceptLanguage: acceptLanguage,
	}); err != nil {
		return fmt.Errorf("setting user agent: %w", err)
	}
	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             1920,
		Height:            1080,
		DeviceScaleFactor: 1,
	}); err != nil {
		return fmt.Errorf("setting viewport: %w", err)
	}
	return nil
}

// navigate loads the URL, bounded by the configured navigation timeout.
func (f *Fetcher) navigate(page *rod.Page, url string) error {
	bounded := page.Timeout(time.Duration(f.config.NavTimeout))
	if err := bounded.Navigate(url); err != nil {
		return err
	}
	return bounded.WaitLoad()
}

// dismissConsent clicks a cookie-consent accept button if one is present.
// Known selectors are checked without waiting; the text-pattern probe is the
// only blocking step and is bounded by ConsentWait. Failures are ignored,
// since most pages have no dialog at all.
func (f *Fetcher) dismissConsent(page *rod.Page) {
	probe := page.Timeout(time.Duration(f.config.ConsentWait))

	for _, sel := range consentSelectors {
		has, el, err := probe.Has(sel)
		if err != nil || !has {
			continue
		}
		if el.Click(proto.InputMouseButtonLeft, 1) == nil {
			return
		}
	}

	if el, err := probe.ElementR("button", consentTextPattern); err == nil {
		_ = el.Click(proto.InputMouseButtonLeft, 1)
	}
}

// scrollToBottom pages through the document to trigger lazy-loaded content.
// It stops at the bottom, after MaxScrollIterations steps, or once the
// scroll position has stalled ScrollStallLimit times in a row.
func (f *Fetcher) scrollToBottom(ctx context.Context, page *rod.Page) {
	stalls := 0
	lastY := -1

	for i := 0; i < f.config.MaxScrollIterations; i++ {
		res, err := page.Eval(`() => { window.scrollBy(0, window.innerHeight); return window.scrollY; }`)
		if err != nil {
			return
		}

		y := res.Value.Int()
		if y == lastY {
			stalls++
			if stalls >= f.config.ScrollStallLimit {
				return
			}
		} else {
			stalls = 0
			lastY = y
		}

		done, err := page.Eval(`() => window.scrollY + window.innerHeight >= document.body.scrollHeight`)
		if err == nil && done.Value.Bool() {
			return
		}

		if sleepContext(ctx, scrollStepInterval) != nil {
			return
		}
	}
}

// dwell waits a randomized interval so the fetch cadence does not look
// mechanical, and gives late scripts a chance to finish.
func (f *Fetcher) dwell(ctx context.Context) error {
	min := time.Duration(f.config.DwellMin)
	max := time.Duration(f.config.DwellMax)

	d := min
	if max > min {
		d += rand.N(max - min)
	}
	return sleepContext(ctx, d)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

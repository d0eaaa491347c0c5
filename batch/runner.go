// Package batch orchestrates the per-URL pipeline: fetch, extract,
// harvest, convert, write. URLs are processed strictly sequentially with
// randomized pauses in between; concurrent fetches would multiply the
// anti-scraping fingerprint and defeat the politeness delays.
package batch

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/url"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/czl314159/webclip"
	"github.com/google/uuid"
)

// Runner drives the conversion pipeline for a batch of URLs.
type Runner struct {
	Fetcher   webclip.Fetcher
	Extractor webclip.Extractor
	Harvester webclip.Harvester
	Converter webclip.Converter
	Writer    webclip.NoteWriter

	// Limiter, when set, enforces a per-domain request-rate floor.
	Limiter *DomainLimiter

	// PauseMin and PauseMax bound the randomized pause between URLs.
	PauseMin time.Duration
	PauseMax time.Duration

	// Now and Sleep exist for tests; nil means time.Now and a
	// context-aware timer sleep.
	Now   func() time.Time
	Sleep func(ctx context.Context, d time.Duration) error
}

// Outcome records the result of processing one URL.
type Outcome struct {
	URL      string
	Path     string
	Strategy webclip.Strategy
	Err      error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressEvent reports progress as the batch proceeds.
type ProgressEvent struct {
	Type      ProgressType
	RunID     string
	URL       string
	Path      string
	Completed int
	Total     int
	Error     error
}

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

// Run resolves the input into a URL batch and processes it sequentially.
// Per-URL failures are isolated: they are reported through progress and
// recorded in the outcomes, and the batch continues. Run itself only
// returns an error for input resolution failures or context cancellation.
func (r *Runner) Run(ctx context.Context, input string, progress ProgressFunc) ([]Outcome, error) {
	urls, err := ResolveInput(input)
	if err != nil {
		return nil, err
	}
	if len(urls) == 0 {
		return nil, webclip.Errorf(webclip.EINVALID, "no URLs found in %q", input)
	}

	runID := uuid.NewString()
	total := len(urls)
	emit(progress, ProgressEvent{Type: ProgressStarted, RunID: runID, Total: total})

	outcomes := make([]Outcome, 0, total)
	for i, pageURL := range urls {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}

		outcome := r.processURL(ctx, pageURL)
		outcomes = append(outcomes, outcome)

		event := ProgressEvent{
			RunID:     runID,
			URL:       pageURL,
			Completed: i + 1,
			Total:     total,
		}
		if outcome.Err != nil {
			event.Type = ProgressFailed
			event.Error = outcome.Err
		} else {
			event.Type = ProgressCompleted
			event.Path = outcome.Path
		}
		emit(progress, event)

		// Randomized pause between URLs, skipped after the last one.
		if i < total-1 {
			if err := r.pause(ctx); err != nil {
				return outcomes, err
			}
		}
	}

	emit(progress, ProgressEvent{Type: ProgressFinished, RunID: runID, Completed: total, Total: total})
	return outcomes, nil
}

// processURL runs the full pipeline for one URL. Any stage failure aborts
// processing for this URL only; no partial file is written.
func (r *Runner) processURL(ctx context.Context, pageURL string) Outcome {
	outcome := Outcome{URL: pageURL}

	if r.Limiter != nil {
		if u, err := url.Parse(pageURL); err == nil {
			if err := r.Limiter.Wait(ctx, u.Host); err != nil {
				outcome.Err = err
				return outcome
			}
		}
	}

	html, err := r.Fetcher.Fetch(ctx, pageURL)
	if err != nil {
		outcome.Err = fmt.Errorf("fetching %s: %w", pageURL, err)
		return outcome
	}

	match, err := r.Extractor.Extract(html, pageURL)
	if err != nil {
		outcome.Err = fmt.Errorf("extracting content from %s: %w", pageURL, err)
		return outcome
	}
	outcome.Strategy = match.Strategy

	meta, err := r.Harvester.Harvest(html, pageURL)
	if err != nil {
		outcome.Err = fmt.Errorf("harvesting metadata from %s: %w", pageURL, err)
		return outcome
	}

	body, err := r.Converter.Convert(match.ContentHTML)
	if err != nil {
		outcome.Err = fmt.Errorf("converting %s: %w", pageURL, err)
		return outcome
	}

	doc := &webclip.Document{
		SourceURL:   pageURL,
		Title:       meta.Title,
		Metadata:    *meta,
		Body:        body,
		ContentHash: contentHash(body),
		Strategy:    match.Strategy,
		CreatedAt:   r.now(),
	}

	path, err := r.Writer.WriteNote(ctx, doc)
	if err != nil {
		outcome.Err = fmt.Errorf("writing note for %s: %w", pageURL, err)
		return outcome
	}

	outcome.Path = path
	return outcome
}

// pause sleeps for a random duration within the configured bounds.
func (r *Runner) pause(ctx context.Context) error {
	d := r.PauseMin
	if r.PauseMax > r.PauseMin {
		d += rand.N(r.PauseMax - r.PauseMin)
	}
	if d <= 0 {
		return nil
	}
	return r.sleep(ctx, d)
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func (r *Runner) sleep(ctx context.Context, d time.Duration) error {
	if r.Sleep != nil {
		return r.Sleep(ctx, d)
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

func emit(progress ProgressFunc, event ProgressEvent) {
	if progress != nil {
		progress(event)
	}
}

// contentHash computes a hash of the content using xxhash.
func contentHash(content string) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(content))
}

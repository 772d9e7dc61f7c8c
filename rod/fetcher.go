// Package rod provides a browser-based implementation of hemnet.Fetcher.
// Hemnet hydrates the for-sale result cards with JavaScript, so a plain
// HTTP fetch sees skeleton cards without attributes; rendering the page
// in headless Chrome first does not.
package rod

import (
	"context"
	"time"

	"github.com/bombsimon/hemnet"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout is the default timeout for a single page fetch.
const DefaultFetchTimeout = 30 * time.Second

// DefaultWaitSelector is the element the fetcher waits for before
// reading the page, giving client-side hydration time to finish.
const DefaultWaitSelector = ".listing-card"

// renderWait bounds the hydration wait. An empty result page never gets
// a listing card, so the wait has to give up on its own.
const renderWait = 2 * time.Second

// Ensure Fetcher implements hemnet.Fetcher at compile time.
var _ hemnet.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered result-page HTML using Chrome browser
// automation. Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager      *BrowserManager
	timeout      time.Duration
	waitSelector string
	maxPages     int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for a single fetch.
// Defaults to DefaultFetchTimeout (30s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithWaitSelector overrides the element waited for after navigation.
// An empty selector disables the wait.
func WithWaitSelector(selector string) Option {
	return func(f *Fetcher) {
		f.waitSelector = selector
	}
}

// WithMaxPagesPerBrowser sets how many pages are fetched before the
// browser is recycled. Defaults to DefaultMaxPages.
func WithMaxPagesPerBrowser(n int64) Option {
	return func(f *Fetcher) {
		f.maxPages = n
	}
}

// NewFetcher creates a new Fetcher backed by a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout:      DefaultFetchTimeout,
		waitSelector: DefaultWaitSelector,
		maxPages:     DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(f)
	}

	manager, err := NewBrowserManager(WithMaxPages(f.maxPages))
	if err != nil {
		return nil, hemnet.Errorf(hemnet.EUNAVAILABLE, "failed to launch browser: %v", err)
	}
	f.manager = manager

	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, err := f.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", hemnet.Errorf(hemnet.EUNAVAILABLE, "failed to open page: %v", err)
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", hemnet.Errorf(hemnet.EUNAVAILABLE, "failed to navigate to %s: %v", url, err)
	}

	if err := page.WaitLoad(); err != nil {
		return "", hemnet.Errorf(hemnet.EUNAVAILABLE, "failed to load %s: %v", url, err)
	}

	if f.waitSelector != "" {
		// Best effort. A timeout here just means the page has no listing
		// cards, which is a valid empty result.
		_, _ = page.Timeout(renderWait).Element(f.waitSelector)
	}

	html, err := page.HTML()
	if err != nil {
		return "", hemnet.Errorf(hemnet.EUNAVAILABLE, "failed to read %s: %v", url, err)
	}

	f.manager.IncrementPageCount()

	return html, nil
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}

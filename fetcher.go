package hemnet

import "context"

// Fetcher retrieves rendered HTML from URLs.
// Implementations may use browser automation to handle the
// JavaScript-rendered markup generations.
type Fetcher interface {
	// Fetch retrieves the page at url and returns its HTML.
	// The context controls timeout and cancellation. Failures are
	// reported as EUNAVAILABLE, never as partial data.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

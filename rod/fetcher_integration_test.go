//go:build integration

package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bombsimon/hemnet"
	"github.com/bombsimon/hemnet/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Fetcher implements hemnet.Fetcher.
var _ hemnet.Fetcher = (*rod.Fetcher)(nil)

const hydratedPage = `<!DOCTYPE html>
<html>
<body>
	<ul id="results"></ul>
	<script>
		document.getElementById("results").innerHTML =
			'<li class="listing-card">' +
			'<a class="listing-card__link" href="/bostad/lagenhet-1">' +
			'<div class="listing-card__address">Storgatan 1</div>' +
			'</a></li>';
	</script>
</body>
</html>`

func TestFetcher_Fetch_RendersHydratedCards(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(hydratedPage))
	}))
	defer srv.Close()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)
	defer fetcher.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	html, err := fetcher.Fetch(ctx, srv.URL)

	require.NoError(t, err)
	// The card only exists after the inline script ran.
	assert.Contains(t, html, `listing-card__address`)
	assert.Contains(t, html, "Storgatan 1")
}

func TestFetcher_Fetch_EmptyResultPage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><body><div class="empty-state">Inga resultat</div></body></html>`))
	}))
	defer srv.Close()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)
	defer fetcher.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// No listing card ever appears; the hydration wait must give up on
	// its own instead of failing the fetch.
	html, err := fetcher.Fetch(ctx, srv.URL)

	require.NoError(t, err)
	assert.Contains(t, html, "Inga resultat")
}

func TestFetcher_Fetch_ContextCancellation(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {}
	}))
	defer srv.Close()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)
	defer fetcher.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	_, err = fetcher.Fetch(ctx, srv.URL)

	require.Error(t, err)
}

func TestBrowserManager_RecyclesBrowserAfterMaxPages(t *testing.T) {
	t.Parallel()

	manager, err := rod.NewBrowserManager(rod.WithMaxPages(2))
	require.NoError(t, err)
	defer manager.Close()

	first := manager.Browser()
	require.NotNil(t, first)

	manager.IncrementPageCount()
	manager.IncrementPageCount()

	second := manager.Browser()
	require.NotNil(t, second)
	assert.NotSame(t, first, second)
}

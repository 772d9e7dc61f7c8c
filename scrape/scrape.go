// Package scrape provides listing scrape orchestration.
// It coordinates result-page URL composition, fetching, card scanning
// and listing construction for Hemnet searches.
package scrape

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/bombsimon/hemnet"
)

// DefaultBaseURL is the origin the result-page URLs are composed
// against.
const DefaultBaseURL = "https://www.hemnet.se"

// DebugEnv is the environment variable that, when set, makes the
// scraper dump each fetched page to the debug log.
const DebugEnv = "HEMNET_DEBUG"

// ItemType is a Hemnet property category used in search URLs.
type ItemType string

// The property categories Hemnet knows about.
const (
	ItemTypeVilla       ItemType = "villa"
	ItemTypeRadhus      ItemType = "radhus"
	ItemTypeBostadsratt ItemType = "bostadsratt"
	ItemTypeFritidshus  ItemType = "fritidshus"
)

// DefaultItemTypes returns all property categories, the default search
// scope.
func DefaultItemTypes() []ItemType {
	return []ItemType{ItemTypeVilla, ItemTypeRadhus, ItemTypeBostadsratt, ItemTypeFritidshus}
}

// Search narrows a scrape to specific locations and property
// categories. The zero value searches every category with no location
// restriction.
type Search struct {
	LocationIDs []int
	ItemTypes   []ItemType
}

// Scraper orchestrates the scraping of Hemnet result pages.
type Scraper struct {
	Fetcher hemnet.Fetcher
	Scanner hemnet.Scanner
	Cache   *Cache
	Logger  *slog.Logger

	// BaseURL overrides the Hemnet origin, for tests and fixtures.
	BaseURL string

	// Strict makes any missing required field or unparsable value abort
	// the scrape instead of skipping the affected listing.
	Strict bool

	// RetryDelays overrides the backoff schedule for fetch retries.
	RetryDelays []time.Duration
}

// Listings fetches the result page for the search and returns its
// listings in page order. Pages are served from the cache when a fresh
// enough copy exists. A fetch failure never yields partial data; the
// previously cached page, if any, stays untouched for the next run.
func (s *Scraper) Listings(ctx context.Context, typ hemnet.ListingType, search Search) ([]*hemnet.Listing, error) {
	if err := typ.Validate(); err != nil {
		return nil, err
	}

	pageURL, err := s.ResultURL(typ, search)
	if err != nil {
		return nil, err
	}

	var (
		html   string
		cached bool
	)
	if s.Cache != nil {
		html, cached = s.Cache.Get(pageURL)
	}

	if !cached {
		delays := s.RetryDelays
		if delays == nil {
			delays = DefaultRetryDelays()
		}

		html, err = fetchWithRetry(ctx, pageURL, s.Fetcher.Fetch, s.logger(), delays)
		if err != nil {
			return nil, err
		}

		if s.Cache != nil {
			s.Cache.Put(pageURL, html)
		}
	}

	s.logger().Debug("result page",
		"url", pageURL,
		"bytes", len(html),
		"cached", cached,
	)
	if os.Getenv(DebugEnv) != "" {
		s.logger().Debug("result page dump", "url", pageURL, "html", html)
	}

	raws, err := s.Scanner.Scan(html, typ, s.Strict)
	if err != nil {
		return nil, err
	}

	listings := make([]*hemnet.Listing, 0, len(raws))
	for _, raw := range raws {
		listing, err := hemnet.NewListing(raw[hemnet.FieldURL], raw)
		if err != nil {
			if s.Strict {
				return nil, err
			}
			// Lenient mode keeps listings with recoverable defects (a
			// malformed sold date) and drops the rest.
			if listing == nil {
				s.logger().Debug("skipping listing", "err", err)
				continue
			}
		}

		listings = append(listings, listing)
	}

	return listings, nil
}

// ListingsForSale returns the for-sale listings for the search.
func (s *Scraper) ListingsForSale(ctx context.Context, search Search) ([]*hemnet.Listing, error) {
	return s.Listings(ctx, hemnet.ListingTypeForSale, search)
}

// ListingsSold returns the sold listings for the search.
func (s *Scraper) ListingsSold(ctx context.Context, search Search) ([]*hemnet.Listing, error) {
	return s.Listings(ctx, hemnet.ListingTypeSold, search)
}

// ResultURL composes the result-page URL for a listing type and search.
func (s *Scraper) ResultURL(typ hemnet.ListingType, search Search) (string, error) {
	base := s.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}

	u, err := url.Parse(base)
	if err != nil {
		return "", hemnet.Errorf(hemnet.EINVALID, "invalid base URL %q: %v", base, err)
	}

	if typ == hemnet.ListingTypeSold {
		u.Path = "/salda/bostader"
	} else {
		u.Path = "/bostader"
	}

	items := search.ItemTypes
	if len(items) == 0 {
		items = DefaultItemTypes()
	}

	q := url.Values{}
	for _, item := range items {
		q.Add("item_types[]", string(item))
	}
	for _, id := range search.LocationIDs {
		q.Add("location_ids[]", strconv.Itoa(id))
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}

func (s *Scraper) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.New(slog.DiscardHandler)
}

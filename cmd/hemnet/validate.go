package main

import (
	"fmt"
	"sync"

	"github.com/bombsimon/hemnet"
	"golang.org/x/sync/errgroup"
)

// Run executes the validate command. Both listing types are scraped in
// strict mode so any missing field, unparsable value or implausible
// listing fails the run.
func (c *ValidateCmd) Run(deps *Dependencies) error {
	scraper := *deps.Scraper
	scraper.Strict = true

	search := c.search(deps.Config)

	var (
		mu     sync.Mutex
		counts = make(map[hemnet.ListingType]int, 2)
	)

	g, ctx := errgroup.WithContext(deps.Ctx)
	for _, typ := range []hemnet.ListingType{hemnet.ListingTypeForSale, hemnet.ListingTypeSold} {
		g.Go(func() error {
			listings, err := scraper.Listings(ctx, typ, search)
			if err != nil {
				return fmt.Errorf("%s: %w", typ, err)
			}

			for _, l := range listings {
				if err := l.Validate(); err != nil {
					return fmt.Errorf("%s %q: %w", typ, l.Address(), err)
				}
			}

			mu.Lock()
			counts[typ] = len(listings)
			mu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", hemnet.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "OK: %d for-sale and %d sold listings extracted and validated\n",
		counts[hemnet.ListingTypeForSale], counts[hemnet.ListingTypeSold])

	return nil
}

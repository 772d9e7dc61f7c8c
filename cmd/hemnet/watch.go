package main

import (
	"fmt"

	"github.com/bombsimon/hemnet"
	"github.com/bombsimon/hemnet/scrape"
	"github.com/robfig/cron/v3"
)

// defaultSchedule is used when neither the flag nor the config sets one.
const defaultSchedule = "@every 10m"

// Run executes the watch command: scrape on a schedule, persist a
// snapshot per listing and report new and changed listings.
func (c *WatchCmd) Run(deps *Dependencies) error {
	search := c.search(deps.Config)

	schedule := c.Schedule
	if schedule == "" {
		schedule = deps.Config.Watch.Schedule
	}
	if schedule == "" {
		schedule = defaultSchedule
	}

	if c.Once {
		return c.scrapeOnce(deps, search)
	}

	cr := cron.New()
	if _, err := cr.AddFunc(schedule, func() {
		if err := c.scrapeOnce(deps, search); err != nil {
			deps.Logger.Error("scrape run failed", "err", err)
		}
	}); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", schedule, err)
	}

	deps.Logger.Info("watching", "schedule", schedule)
	cr.Start()

	<-deps.Ctx.Done()
	<-cr.Stop().Done()

	return nil
}

// scrapeOnce scrapes both listing types and persists one snapshot per
// listing that is new or has changed since its last snapshot. A failed
// scrape leaves the stored snapshots untouched.
func (c *WatchCmd) scrapeOnce(deps *Dependencies, search scrape.Search) error {
	for _, typ := range []hemnet.ListingType{hemnet.ListingTypeForSale, hemnet.ListingTypeSold} {
		listings, err := deps.Scraper.Listings(deps.Ctx, typ, search)
		if err != nil {
			return err
		}

		var created, changed int
		for _, l := range listings {
			snapshot := hemnet.SnapshotFromListing(typ, l)

			prev, err := deps.Snapshots.FindSnapshots(deps.Ctx, hemnet.SnapshotFilter{ListingType: &typ, URL: &l.URL, Limit: 1})
			if err != nil {
				return err
			}

			if len(prev) > 0 && sameState(prev[0], snapshot) {
				continue
			}

			if err := deps.Snapshots.CreateSnapshot(deps.Ctx, snapshot); err != nil {
				return err
			}

			if len(prev) == 0 {
				created++
				deps.Logger.Info("new listing", "type", typ, "address", snapshot.Address, "url", snapshot.URL)
				fmt.Fprintf(deps.Stdout, "new: %s\n", snapshot.Address)
			} else {
				changed++
				deps.Logger.Info("changed listing", "type", typ, "address", snapshot.Address, "url", snapshot.URL)
				fmt.Fprintf(deps.Stdout, "changed: %s\n", snapshot.Address)
			}
		}

		deps.Logger.Info("scrape run",
			"type", typ,
			"listings", len(listings),
			"new", created,
			"changed", changed,
		)
	}

	return nil
}

// sameState reports whether two snapshots describe the same observable
// listing state, ignoring the bookkeeping fields assigned on create.
func sameState(a, b *hemnet.Snapshot) bool {
	if a.ListingType != b.ListingType || a.URL != b.URL || a.Address != b.Address {
		return false
	}
	if (a.Price == nil) != (b.Price == nil) {
		return false
	}
	if a.Price != nil && *a.Price != *b.Price {
		return false
	}
	return a.LivingArea == b.LivingArea && a.Rooms == b.Rooms
}

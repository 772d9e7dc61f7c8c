package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/bombsimon/hemnet"
	"github.com/bombsimon/hemnet/scrape"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Config    *Config
	Scraper   *scrape.Scraper
	Snapshots hemnet.SnapshotService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config   string        `short:"c" type:"path" help:"Path to a YAML search config"`
	BaseURL  string        `help:"Hemnet origin override" default:"https://www.hemnet.se"`
	Browser  bool          `short:"b" help:"Render pages in headless Chrome instead of plain HTTP"`
	Strict   bool          `help:"Abort on any missing field or unparsable value"`
	CacheTTL time.Duration `name:"cache-ttl" default:"10m" help:"How long fetched result pages are reused"`
	Timeout  time.Duration `default:"30s" help:"Timeout for a single page fetch"`
	Verbose  bool          `short:"v" help:"Enable debug logging"`

	List     ListCmd     `cmd:"" help:"List listings for a search"`
	Validate ValidateCmd `cmd:"" help:"Scrape both listing types strictly and sanity check every listing"`
	Watch    WatchCmd    `cmd:"" help:"Periodically scrape and persist listing snapshots"`
}

// searchFlags are the shared search narrowing flags.
type searchFlags struct {
	LocationIDs []int    `name:"location" help:"Hemnet location ID (repeatable)"`
	ItemTypes   []string `name:"item-type" enum:"villa,radhus,bostadsratt,fritidshus" help:"Property category (repeatable)"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	searchFlags
	Type    string `short:"t" enum:"for-sale,sold" default:"for-sale" help:"Listing type"`
	Numbers []int  `short:"n" help:"Only keep these exact street numbers (repeatable)"`
	Max     int    `short:"m" help:"Maximum number of listings to print, 0 for all"`
}

// ValidateCmd is the "validate" subcommand.
type ValidateCmd struct {
	searchFlags
}

// WatchCmd is the "watch" subcommand.
type WatchCmd struct {
	searchFlags
	Schedule string `help:"Cron schedule for scrape runs (default @every 10m)"`
	Once     bool   `help:"Run a single scrape and exit"`
}

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/bombsimon/hemnet"
	"github.com/bombsimon/hemnet/goquery"
	hemhttp "github.com/bombsimon/hemnet/http"
	"github.com/bombsimon/hemnet/rod"
	"github.com/bombsimon/hemnet/scrape"
	hemslog "github.com/bombsimon/hemnet/slog"
	"github.com/bombsimon/hemnet/sqlite"
	"github.com/joho/godotenv"
)

func main() {
	// Pick up HEMNET_DB, HEMNET_DEBUG and friends from a local .env.
	_ = godotenv.Load()

	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path used by the watch command. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	SnapshotService hemnet.SnapshotService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("hemnet"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'hemnet --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger

	config, err := LoadConfig(cli.Config)
	if err != nil {
		return err
	}
	deps.Config = config

	// Sold pages render server side so plain HTTP is the default; the
	// for-sale pages sometimes need a real browser.
	var fetcher hemnet.Fetcher
	if cli.Browser {
		fetcher, err = rod.NewFetcher(rod.WithTimeout(cli.Timeout))
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
	} else {
		fetcher = hemhttp.NewFetcher(
			hemhttp.WithTimeout(cli.Timeout),
			hemhttp.WithRateLimit(1),
			hemhttp.WithReferer(cli.BaseURL+"/"),
		)
	}
	defer fetcher.Close()

	scanner, err := goquery.NewScanner(goquery.WithBaseURL(cli.BaseURL))
	if err != nil {
		return err
	}

	deps.Scraper = &scrape.Scraper{
		Fetcher: hemslog.NewLoggingFetcher(fetcher, logger),
		Scanner: hemslog.NewLoggingScanner(scanner, logger),
		Cache:   scrape.NewCache(cli.CacheTTL),
		Logger:  logger,
		BaseURL: cli.BaseURL,
		Strict:  cli.Strict,
	}

	// Only the watch command persists snapshots.
	if strings.HasPrefix(kongCtx.Command(), "watch") {
		if config.Watch.Database != "" {
			m.DBPath = config.Watch.Database
		}

		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set HEMNET_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()

		m.SnapshotService = sqlite.NewSnapshotService(m.DB)
		deps.Snapshots = m.SnapshotService
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("HEMNET_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "hemnet.db"
	}
	dir := filepath.Join(home, ".hemnet")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "hemnet.db")
}

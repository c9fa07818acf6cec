package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"
	seatsync "github.com/elliotttmiller/seatsync"
	"github.com/elliotttmiller/seatsync/disguise"
	"github.com/elliotttmiller/seatsync/goquery"
	seatshttp "github.com/elliotttmiller/seatsync/http"
	"github.com/elliotttmiller/seatsync/marketplace"
	"github.com/elliotttmiller/seatsync/rod"
	"github.com/elliotttmiller/seatsync/scrape"
	seatslog "github.com/elliotttmiller/seatsync/slog"
	"github.com/elliotttmiller/seatsync/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Query       string        `arg:"" required:"" help:"Event search query."`
	Sources     []string      `short:"s" help:"Marketplaces to scrape (default: all known)."`
	Concurrency int           `short:"c" help:"Concurrent scraper limit (default: number of sources, capped at 4)."`
	Attempts    int           `short:"a" default:"5" help:"Retry budget per source."`
	Timeout     time.Duration `short:"t" default:"15s" help:"Fetch timeout per attempt."`
	Deadline    time.Duration `short:"d" help:"Overall deadline (0 = wait for natural completion)."`
	RPS         float64       `default:"0.5" help:"Requests per second per source."`
	Sequential  bool          `help:"Scrape sources one at a time."`
	HTTPOnly    bool          `name:"http-only" help:"Skip browser automation and use the HTTP strategy."`
	DB          string        `help:"SQLite path for persisting runs (empty = no persistence)."`
	Verbose     bool          `short:"v" help:"Enable debug logging."`
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("seatsync"),
		kong.Description("Scrape ticket listings from resale marketplaces"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle no arguments
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	var sources []seatsync.Source
	for _, s := range cli.Sources {
		src, err := seatsync.ParseSource(s)
		if err != nil {
			return err
		}
		sources = append(sources, src)
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// Startup probe: prefer browser automation, fall back to the HTTP
	// strategy for the remainder of the process when it cannot
	// initialize. The outcome is captured once in Capabilities and
	// injected; no call re-probes.
	caps := seatsync.Capabilities{BrowserAutomation: !cli.HTTPOnly}
	var fetcher seatsync.Fetcher
	if caps.BrowserAutomation {
		rodFetcher, err := rod.NewFetcher(rod.WithFetchTimeout(cli.Timeout))
		if err != nil {
			logger.Warn("browser automation unavailable, using HTTP strategy",
				"err", seatsync.ErrorMessage(err))
			caps.BrowserAutomation = false
		} else {
			fetcher = rodFetcher
		}
	}
	if fetcher == nil {
		fetcher = seatshttp.NewFetcher(seatshttp.WithTimeout(cli.Timeout))
	}
	defer fetcher.Close()

	orchestrator := &scrape.Orchestrator{
		Fetcher:      seatslog.NewLoggingFetcher(fetcher, logger),
		Rotator:      disguise.NewRotator(nil),
		Detector:     scrape.NewDetector(),
		Locator:      goquery.NewLocator(),
		Normalizer:   &scrape.Normalizer{Logger: logger},
		Limiter:      scrape.NewSourceLimiter(cli.RPS),
		Sources:      marketplace.All(),
		Capabilities: caps,
		MaxAttempts:  cli.Attempts,
		FetchTimeout: cli.Timeout,
		Logger:       logger,
	}

	req := &scrape.ScrapeRequest{
		Query:       cli.Query,
		Sources:     sources,
		Concurrency: cli.Concurrency,
	}
	if cli.Sequential {
		req.Concurrency = 1
	}
	if cli.Deadline > 0 {
		req.Deadline = time.Now().Add(cli.Deadline)
	}

	result, err := orchestrator.ScrapeSources(ctx, req)
	if err != nil {
		return err
	}

	if cli.DB != "" {
		if err := m.persist(ctx, cli.DB, cli.Query, result); err != nil {
			return err
		}
	}

	printSummary(stdout, result)
	return nil
}

// persist saves the run to the given SQLite database.
func (m *Main) persist(ctx context.Context, path, query string, result *seatsync.AggregateResult) error {
	db := sqlite.NewDB(path)
	if err := db.Open(); err != nil {
		return err
	}
	defer db.Close()

	return sqlite.NewRunStore(db).SaveRun(ctx, query, result)
}

func printSummary(w io.Writer, result *seatsync.AggregateResult) {
	fmt.Fprintf(w, "run %s: %s (%d listings in %s)\n",
		result.RunID, result.Status, result.TotalListings, result.Duration.Round(time.Millisecond))
	for _, src := range seatsync.KnownSources() {
		r, ok := result.Results[src]
		if !ok {
			continue
		}
		line := fmt.Sprintf("  %-14s %-8s listings=%d attempts=%d", r.Source, r.Status, len(r.Listings), r.Attempts)
		if r.Detail != nil {
			line += " detail=" + r.Detail.Message
		}
		fmt.Fprintln(w, line)
	}
}

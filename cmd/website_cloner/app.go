package main

import (
	"fmt"
	"os"
	"time"

	"github.com/jonathan/website-cloner/internal/clone"
	"github.com/jonathan/website-cloner/internal/config"
	"github.com/jonathan/website-cloner/internal/scrape"
	"github.com/jonathan/website-cloner/internal/screenshot"
	"github.com/jonathan/website-cloner/internal/store"
)

// publicPrefix is the URL path prefix screenshots are served under and
// recorded with.
const publicPrefix = "/public/screenshots"

// app bundles the wired application components shared by the subcommands.
type app struct {
	cfg     *config.Config
	repo    store.Repository
	scraper *scrape.Orchestrator
	builder *clone.Builder
}

// newApp loads configuration, initializes logging, and wires the store and
// pipeline components.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := config.InitLogger(cfg.Log); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cfg.Scrape.ScreenshotsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create screenshots directory: %w", err)
	}

	var repo store.Repository
	switch cfg.Store.Driver {
	case store.DriverSQLite:
		repo, err = store.NewSQLite(cfg.Store.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
	default:
		repo = store.NewJSON(cfg.Store.Path)
	}

	capturer := screenshot.NewChromeCapturer(time.Duration(cfg.Scrape.ScreenshotTimeoutSecs) * time.Second)
	scraper := scrape.NewOrchestrator(repo, capturer, scrape.Options{
		FetchTimeout:   time.Duration(cfg.Scrape.FetchTimeoutSecs) * time.Second,
		ScreenshotsDir: cfg.Scrape.ScreenshotsDir,
		PublicPrefix:   publicPrefix,
	})

	// Recorded public paths resolve against the working directory.
	builder := clone.NewBuilder(repo, ".")

	return &app{
		cfg:     cfg,
		repo:    repo,
		scraper: scraper,
		builder: builder,
	}, nil
}

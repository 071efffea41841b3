// Package scrape coordinates markup fetch, asset resolution, and screenshot
// capture into one stored record per URL.
package scrape

import (
	"context"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/jonathan/website-cloner/internal/assets"
	"github.com/jonathan/website-cloner/internal/fetch"
	"github.com/jonathan/website-cloner/internal/screenshot"
	"github.com/jonathan/website-cloner/internal/store"
	"github.com/jonathan/website-cloner/internal/urlkey"
)

// Options configures one Orchestrator.
type Options struct {
	// FetchTimeout bounds the markup fetch. Zero means fetch.DefaultTimeout.
	FetchTimeout time.Duration
	// ScreenshotsDir is the filesystem directory screenshots are written to.
	ScreenshotsDir string
	// PublicPrefix is the URL path prefix under which screenshots are served.
	PublicPrefix string
}

// AssetCounts summarizes resolved asset URLs per category. Links is a legacy
// field kept for response compatibility; nothing populates it.
type AssetCounts struct {
	Images      int `json:"images"`
	Stylesheets int `json:"stylesheets"`
	Scripts     int `json:"scripts"`
	Links       int `json:"links"`
}

// Summary reports the outcome of a successful scrape.
type Summary struct {
	Success           bool        `json:"success"`
	URL               string      `json:"url"`
	Title             string      `json:"title"`
	ID                string      `json:"id"`
	HTMLContentLength int         `json:"html_content_length"`
	ScreenshotURL     *string     `json:"screenshot_url"`
	AssetsCount       AssetCounts `json:"assets_count"`
}

// Orchestrator runs the scrape pipeline and writes the resulting record to
// the store.
type Orchestrator struct {
	store    store.Repository
	capturer screenshot.Capturer
	opts     Options
}

// NewOrchestrator wires an Orchestrator from its collaborators.
func NewOrchestrator(repo store.Repository, capturer screenshot.Capturer, opts Options) *Orchestrator {
	return &Orchestrator{
		store:    repo,
		capturer: capturer,
		opts:     opts,
	}
}

// Scrape fetches rawURL, extracts its title and asset URLs, captures a
// best-effort screenshot, and overwrites the record under the normalized id.
// Fetch and parse failures abort the scrape with no record written;
// screenshot failures are logged and recorded as absence.
func (o *Orchestrator) Scrape(ctx context.Context, rawURL string) (*Summary, error) {
	id := urlkey.Normalize(rawURL)

	fetchOpts := fetch.DefaultOptions()
	if o.opts.FetchTimeout > 0 {
		fetchOpts.Timeout = o.opts.FetchTimeout
	}

	result, err := fetch.URL(ctx, rawURL, fetchOpts)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(result.HTML))
	if err != nil {
		return nil, &ParseError{URL: rawURL, Message: "failed to parse HTML", Cause: err}
	}

	title := store.TitleNotFound
	if sel := doc.Find("title").First(); sel.Length() > 0 {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			title = text
		}
	}

	base, err := url.Parse(rawURL)
	if err != nil {
		return nil, &ParseError{URL: rawURL, Message: "failed to parse base URL", Cause: err}
	}
	resolved := assets.Resolve(doc, base)

	screenshotPath := o.captureScreenshot(ctx, rawURL, id)

	rec := &store.Record{
		ID:             id,
		URL:            rawURL,
		Title:          title,
		HTMLContent:    &result.HTML,
		ScreenshotPath: screenshotPath,
		Assets:         resolved,
	}
	if err := o.store.Put(ctx, rec); err != nil {
		return nil, eris.Wrapf(err, "scrape: store record %s", id)
	}

	zap.L().Info("scrape complete",
		zap.String("id", id),
		zap.String("url", rawURL),
		zap.Int("html_bytes", len(result.HTML)),
		zap.Bool("screenshot", screenshotPath != nil),
	)

	return &Summary{
		Success:           true,
		URL:               rawURL,
		Title:             title,
		ID:                id,
		HTMLContentLength: len(result.HTML),
		ScreenshotURL:     screenshotPath,
		AssetsCount: AssetCounts{
			Images:      len(resolved[assets.CategoryImages]),
			Stylesheets: len(resolved[assets.CategoryStylesheets]),
			Scripts:     len(resolved[assets.CategoryScripts]),
		},
	}, nil
}

// captureScreenshot takes a best-effort full-page screenshot. Any failure is
// logged and reported as absence; it never fails the scrape.
func (o *Orchestrator) captureScreenshot(ctx context.Context, rawURL, id string) *string {
	filename := id + ".png"
	outPath := filepath.Join(o.opts.ScreenshotsDir, filename)

	if err := o.capturer.Capture(ctx, rawURL, outPath); err != nil {
		zap.L().Warn("screenshot capture failed, continuing without it",
			zap.String("url", rawURL),
			zap.Error(err),
		)
		return nil
	}

	publicPath := strings.TrimSuffix(o.opts.PublicPrefix, "/") + "/" + filename
	return &publicPath
}

// Package screenshot captures full-page images of rendered web pages using a
// headless browser. Capture is best-effort from the caller's point of view:
// the orchestrator tolerates any failure here.
package screenshot

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

// DefaultTimeout bounds navigation plus rendering for one capture.
const DefaultTimeout = 90 * time.Second

// pngQuality is passed to chromedp.FullScreenshot. It must stay 100: chromedp
// emits JPEG bytes for any other value, and the capture path records a .png
// file that downstream consumers label image/png.
const pngQuality = 100

// networkQuiet is how long the network must stay silent before the page is
// considered settled.
const networkQuiet = 500 * time.Millisecond

// Capturer renders a URL and writes a full-page image to outPath.
type Capturer interface {
	Capture(ctx context.Context, url, outPath string) error
}

// ChromeCapturer implements Capturer with a disposable headless Chrome
// instance per call. Requires Chrome/Chromium to be installed on the system.
type ChromeCapturer struct {
	Timeout time.Duration
}

// NewChromeCapturer returns a ChromeCapturer with the given timeout, or
// DefaultTimeout when zero.
func NewChromeCapturer(timeout time.Duration) *ChromeCapturer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &ChromeCapturer{Timeout: timeout}
}

// Capture launches an isolated browser, navigates to url, waits for the page
// to settle, and writes a full-page PNG to outPath. The browser is released
// on every exit path; it is never shared across calls.
func (c *ChromeCapturer) Capture(ctx context.Context, url, outPath string) error {
	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, c.Timeout)
	defer cancel()

	var buf []byte
	err := chromedp.Run(browserCtx,
		network.Enable(),
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		waitNetworkIdle(networkQuiet),
		chromedp.FullScreenshot(&buf, pngQuality),
	)
	if err != nil {
		return fmt.Errorf("browser capture failed: %w", err)
	}

	if err := os.WriteFile(outPath, buf, 0644); err != nil {
		return fmt.Errorf("failed to write screenshot %s: %w", outPath, err)
	}

	return nil
}

// waitNetworkIdle blocks until no network request has been in flight for the
// quiet period, or the context expires. Requests already running when the
// listener attaches resolve through their finished/failed events like any
// other.
func waitNetworkIdle(quiet time.Duration) chromedp.ActionFunc {
	return func(ctx context.Context) error {
		lctx, cancel := context.WithCancel(ctx)
		defer cancel()

		var (
			mu       sync.Mutex
			inflight = make(map[network.RequestID]struct{})
			idle     = make(chan struct{})
			once     sync.Once
			timer    *time.Timer
		)

		restart := func() {
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(quiet, func() {
				once.Do(func() { close(idle) })
			})
		}

		chromedp.ListenTarget(lctx, func(ev interface{}) {
			mu.Lock()
			defer mu.Unlock()
			switch e := ev.(type) {
			case *network.EventRequestWillBeSent:
				inflight[e.RequestID] = struct{}{}
				if timer != nil {
					timer.Stop()
				}
			case *network.EventLoadingFinished:
				delete(inflight, e.RequestID)
				if len(inflight) == 0 {
					restart()
				}
			case *network.EventLoadingFailed:
				delete(inflight, e.RequestID)
				if len(inflight) == 0 {
					restart()
				}
			}
		})

		mu.Lock()
		restart()
		mu.Unlock()

		select {
		case <-idle:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

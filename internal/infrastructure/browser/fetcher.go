// Package browser renders product pages in headless Chromium via go-rod.
// Daraz assembles the product title client-side, so a plain GET is not
// enough; the pipeline treats this as an opaque page-fetch capability.
package browser

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"ReviewScanner/internal/domain"
	"ReviewScanner/internal/ports"
)

// Fetcher owns one browser process for the process lifetime and opens a
// fresh page per call.
type Fetcher struct {
	headless    bool
	navTimeout  time.Duration
	logger      *slog.Logger
	mu          sync.Mutex
	browser     *rod.Browser
	cleanupFunc func()
}

var _ ports.PageFetcher = (*Fetcher)(nil)

// NewFetcher configures the fetcher; the browser launches lazily on first use.
func NewFetcher(headless bool, navTimeout time.Duration, log *slog.Logger) *Fetcher {
	if navTimeout <= 0 {
		navTimeout = 30 * time.Second
	}
	return &Fetcher{headless: headless, navTimeout: navTimeout, logger: log}
}

// FetchHTML navigates to pageURL, waits for the load event, and returns the
// rendered document. Every failure wraps domain.ErrFetchUnavailable so the
// caller can degrade instead of aborting.
func (f *Fetcher) FetchHTML(ctx context.Context, pageURL string) (html string, err error) {
	browser, err := f.ensureBrowser()
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrFetchUnavailable, err)
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: render %s: %v", domain.ErrFetchUnavailable, pageURL, r)
		}
	}()

	navCtx, cancel := context.WithTimeout(ctx, f.navTimeout)
	defer cancel()

	page, err := browser.Context(navCtx).Page(proto.TargetCreateTarget{URL: pageURL})
	if err != nil {
		return "", fmt.Errorf("%w: open page %s: %w", domain.ErrFetchUnavailable, pageURL, err)
	}
	defer func() { _ = page.Close() }()

	if err := page.WaitLoad(); err != nil {
		return "", fmt.Errorf("%w: wait load %s: %w", domain.ErrFetchUnavailable, pageURL, err)
	}

	html, err = page.HTML()
	if err != nil {
		return "", fmt.Errorf("%w: read html %s: %w", domain.ErrFetchUnavailable, pageURL, err)
	}

	return html, nil
}

func (f *Fetcher) ensureBrowser() (*rod.Browser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.browser != nil {
		return f.browser, nil
	}

	l := launcher.New().Headless(f.headless)
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Cleanup()
		return nil, fmt.Errorf("connect browser: %w", err)
	}

	if f.logger != nil {
		f.logger.Info("headless browser launched", "headless", f.headless)
	}

	f.browser = browser
	f.cleanupFunc = l.Cleanup
	return browser, nil
}

// Close tears down the browser process. Safe to call without a prior launch.
func (f *Fetcher) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.browser != nil {
		_ = f.browser.Close()
		f.browser = nil
	}
	if f.cleanupFunc != nil {
		f.cleanupFunc()
		f.cleanupFunc = nil
	}
}

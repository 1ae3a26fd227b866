// ABOUTME: Headless Chrome fetcher that renders JavaScript-driven pages
// ABOUTME: Bounds concurrent sessions and salvages partial content on slow loads

package chrome

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"golang.org/x/sync/singleflight"

	coreerrors "link-extractor-api/core/errors"
	"link-extractor-api/core/interfaces"
)

// Defaults applied when Options fields are zero.
const (
	DefaultMaxSessions  = 2
	DefaultWindowWidth  = 1920
	DefaultWindowHeight = 1080

	settleInterval    = time.Second
	settleStableTicks = 3
	salvageGrace      = 3 * time.Second
)

const chromeNotFoundMessage = "Chrome or Chromium was not found. Install Google Chrome " +
	"or set BROWSER_CHROME_PATH to a Chromium binary."

// Options configures the headless browser pool
type Options struct {
	// MaxSessions caps how many Chrome instances run at once. Each
	// session holds a full browser process, so this stays small.
	MaxSessions int

	// UserAgent overrides the browser's default user agent when set
	UserAgent string

	// WindowWidth and WindowHeight set the viewport; some sites render
	// different link sets for mobile-sized windows.
	WindowWidth  int
	WindowHeight int

	// ChromePath points at the Chrome binary when it is not on PATH
	ChromePath string
}

func (o Options) withDefaults() Options {
	if o.MaxSessions <= 0 {
		o.MaxSessions = DefaultMaxSessions
	}
	if o.WindowWidth <= 0 {
		o.WindowWidth = DefaultWindowWidth
	}
	if o.WindowHeight <= 0 {
		o.WindowHeight = DefaultWindowHeight
	}
	return o
}

// Fetcher implements the BrowserFetcher interface with headless Chrome
type Fetcher struct {
	opts     Options
	sessions chan struct{}
	flight   singleflight.Group
}

// NewFetcher creates a headless browser fetcher with the given options
func NewFetcher(opts Options) *Fetcher {
	opts = opts.withDefaults()
	return &Fetcher{
		opts:     opts,
		sessions: make(chan struct{}, opts.MaxSessions),
	}
}

// FetchRendered navigates to the URL in headless Chrome, waits up to
// waitTime seconds for dynamically inserted links to settle, and returns
// the rendered markup. Concurrent requests for the same URL and wait
// share a single render.
func (f *Fetcher) FetchRendered(ctx context.Context, url string, waitTime int) (*interfaces.RenderedPage, error) {
	key := fmt.Sprintf("%s|%d", url, waitTime)
	v, err, _ := f.flight.Do(key, func() (interface{}, error) {
		return f.render(ctx, url, waitTime)
	})
	if err != nil {
		return nil, err
	}
	return v.(*interfaces.RenderedPage), nil
}

func (f *Fetcher) render(ctx context.Context, url string, waitTime int) (*interfaces.RenderedPage, error) {
	select {
	case f.sessions <- struct{}{}:
	case <-ctx.Done():
		return nil, &coreerrors.AutomationError{
			URL:     url,
			Stage:   coreerrors.StageLaunch,
			Message: "Timed out waiting for a free browser session",
			Err:     ctx.Err(),
		}
	}
	defer func() { <-f.sessions }()

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, f.chromeOptions()...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	// Navigation gets whatever the settle phase leaves over, so a page
	// that loads slowly still has time for its scripts to run.
	navBudget := navigationBudget(ctx, waitTime)
	navCtx, cancelNav := context.WithTimeout(browserCtx, navBudget)
	defer cancelNav()

	err := chromedp.Run(navCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
	)
	if err != nil {
		if isChromeMissing(err) {
			return nil, &coreerrors.AutomationError{
				URL:     url,
				Stage:   coreerrors.StageLaunch,
				Message: chromeNotFoundMessage,
				Err:     err,
			}
		}
		if errors.Is(err, context.DeadlineExceeded) {
			if page, ok := f.salvage(browserCtx, navBudget); ok {
				return page, nil
			}
		}
		return nil, &coreerrors.AutomationError{
			URL:     url,
			Stage:   coreerrors.StageNavigate,
			Message: "Failed to load the page in the browser",
			Err:     err,
		}
	}

	f.waitForSettle(browserCtx, waitTime)

	page, err := capturePage(browserCtx)
	if err != nil {
		return nil, &coreerrors.AutomationError{
			URL:     url,
			Stage:   coreerrors.StageExtract,
			Message: "Failed to extract content from the rendered page",
			Err:     err,
		}
	}
	return page, nil
}

// waitForSettle polls the rendered anchor count once a second and returns
// when it holds steady, so single-page apps get credit for links their
// scripts insert after load. Bounded by waitTime; polling errors end the
// wait rather than the fetch.
func (f *Fetcher) waitForSettle(browserCtx context.Context, waitTime int) {
	if waitTime <= 0 {
		return
	}
	settleCtx, cancel := context.WithTimeout(browserCtx, time.Duration(waitTime)*time.Second)
	defer cancel()

	ticker := time.NewTicker(settleInterval)
	defer ticker.Stop()

	last := -1
	stable := 0
	for {
		select {
		case <-settleCtx.Done():
			return
		case <-ticker.C:
			var count int
			err := chromedp.Run(settleCtx,
				chromedp.Evaluate(`document.querySelectorAll("a[href]").length`, &count))
			if err != nil {
				return
			}
			if count == last {
				stable++
				if stable >= settleStableTicks {
					return
				}
			} else {
				last = count
				stable = 0
			}
		}
	}
}

// salvage grabs whatever markup the page managed to produce before the
// navigation budget ran out. Partial content still yields links.
func (f *Fetcher) salvage(browserCtx context.Context, navBudget time.Duration) (*interfaces.RenderedPage, bool) {
	graceCtx, cancel := context.WithTimeout(browserCtx, salvageGrace)
	defer cancel()

	page, err := capturePage(graceCtx)
	if err != nil || strings.TrimSpace(page.HTML) == "" {
		return nil, false
	}
	page.Warning = partialWarning(int(navBudget.Round(time.Second).Seconds()))
	return page, true
}

func capturePage(ctx context.Context) (*interfaces.RenderedPage, error) {
	var page interfaces.RenderedPage
	err := chromedp.Run(ctx,
		chromedp.Title(&page.Title),
		chromedp.Location(&page.FinalURL),
		chromedp.OuterHTML("html", &page.HTML),
	)
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (f *Fetcher) chromeOptions() []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.WindowSize(f.opts.WindowWidth, f.opts.WindowHeight),
	)
	if f.opts.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(f.opts.UserAgent))
	}
	if f.opts.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(f.opts.ChromePath))
	}
	return opts
}

// navigationBudget reports how long navigation may take before the settle
// phase must start. Without a deadline, navigation gets a flat 30 seconds.
func navigationBudget(ctx context.Context, waitTime int) time.Duration {
	budget := 30 * time.Second
	if deadline, ok := ctx.Deadline(); ok {
		budget = time.Until(deadline) - time.Duration(waitTime)*time.Second
	}
	if budget < time.Second {
		budget = time.Second
	}
	return budget
}

func partialWarning(seconds int) string {
	return fmt.Sprintf("Page load timed out after %ds; extracting from partial content", seconds)
}

// isChromeMissing reports whether the error came from a missing Chrome
// binary rather than the page itself.
func isChromeMissing(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "executable file not found") ||
		strings.Contains(msg, "no such file or directory")
}

// ABOUTME: Extraction service orchestrates fetching, parsing and normalization
// ABOUTME: Provides single-page link extraction independent of the HTTP layer

package extraction

import (
	"bytes"
	"context"
	"io"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html/charset"

	"link-extractor-api/core/domain"
	coreerrors "link-extractor-api/core/errors"
	"link-extractor-api/core/interfaces"
	"link-extractor-api/pkg/featureflags"
)

// Service limits applied when Options leaves them zero.
const (
	DefaultTimeoutSeconds = 10
	DefaultWaitSeconds    = 10
	MaxTimeoutSeconds     = 120
	MaxWaitSeconds        = 60
	DefaultMaxBodyBytes   = 10 << 20
)

// Options bounds per-request settings
type Options struct {
	// DefaultTimeout is the fetch budget in seconds when a request leaves
	// Timeout zero
	DefaultTimeout int

	// MaxTimeout caps the per-request fetch budget
	MaxTimeout int

	// DefaultWait is the browser settle budget when a request leaves
	// WaitTime zero
	DefaultWait int

	// MaxWait caps the browser settle budget
	MaxWait int

	// MaxBodyBytes caps how much of a response body is read
	MaxBodyBytes int64
}

func (o Options) withDefaults() Options {
	if o.DefaultTimeout <= 0 {
		o.DefaultTimeout = DefaultTimeoutSeconds
	}
	if o.MaxTimeout <= 0 {
		o.MaxTimeout = MaxTimeoutSeconds
	}
	if o.DefaultWait <= 0 {
		o.DefaultWait = DefaultWaitSeconds
	}
	if o.MaxWait <= 0 {
		o.MaxWait = MaxWaitSeconds
	}
	if o.MaxBodyBytes <= 0 {
		o.MaxBodyBytes = DefaultMaxBodyBytes
	}
	return o
}

// ExtractionService extracts the links from a single page
type ExtractionService struct {
	deps    interfaces.Dependencies
	browser interfaces.BrowserFetcher
	opts    Options
}

// NewExtractionService creates a new extraction service instance
func NewExtractionService(deps interfaces.Dependencies, opts Options) *ExtractionService {
	if deps.Logger == nil {
		deps.Logger = nopLogger{}
	}
	return &ExtractionService{
		deps: deps,
		opts: opts.withDefaults(),
	}
}

// SetBrowserFetcher sets the headless-browser fetcher used for UseBrowser
// requests. Without one, browser requests fail with an AutomationError.
func (s *ExtractionService) SetBrowserFetcher(fetcher interfaces.BrowserFetcher) {
	s.browser = fetcher
}

// Extract fetches the requested page, parses out link candidates, and
// returns the normalized links in first-occurrence document order. The
// returned result carries diagnostics even when the error is non-nil, so
// callers can report what the fetch saw before it failed.
func (s *ExtractionService) Extract(ctx context.Context, req domain.ExtractionRequest) (*domain.ExtractionResult, error) {
	start := time.Now()
	result := &domain.ExtractionResult{
		SourceURL:   req.URL,
		Links:       []string{},
		Diagnostics: domain.Diagnostics{},
	}

	if err := s.validateRequest(&req); err != nil {
		return result, err
	}
	result.SourceURL = req.URL
	s.applyLimits(&req)
	result.Diagnostics[domain.DiagMethod] = req.Method()

	s.deps.Logger.Debug("Starting extraction", map[string]interface{}{
		"url":       req.URL,
		"method":    req.Method(),
		"timeout":   req.Timeout,
		"wait_time": req.WaitTime,
	})

	var (
		markup io.Reader
		base   *url.URL
		err    error
	)
	if req.UseBrowser {
		markup, base, err = s.fetchBrowser(ctx, req, result.Diagnostics)
	} else {
		markup, base, err = s.fetchStatic(ctx, req, result.Diagnostics)
	}
	if err != nil {
		s.deps.Logger.Error("Fetch failed", map[string]interface{}{
			"url":    req.URL,
			"method": req.Method(),
			"error":  err.Error(),
		})
		return result, err
	}

	parseOpts := ParseOptions{
		DeepSources: featureflags.IsEnabled(ctx, featureflags.DeepLinkSources),
	}
	page, err := ParsePage(markup, parseOpts)
	if err != nil {
		if parseErr, ok := err.(*coreerrors.ParseError); ok {
			parseErr.URL = req.URL
		}
		s.deps.Logger.Error("Parse failed", map[string]interface{}{
			"url":   req.URL,
			"error": err.Error(),
		})
		return result, err
	}

	if page.Title != "" {
		if _, ok := result.Diagnostics[domain.DiagPageTitle]; !ok {
			result.Diagnostics[domain.DiagPageTitle] = page.Title
		}
	}
	result.Diagnostics[domain.DiagAnchorTags] = page.AnchorCount
	result.Diagnostics[domain.DiagCandidates] = len(page.Candidates)

	links, tally := FilterAndDedupe(page.Candidates, base, req.FilterDomain, req.IncludeExternal)
	result.Links = links
	result.Diagnostics[domain.DiagUniqueLinks] = len(links)
	result.Diagnostics[domain.DiagRejectedLinks] = tally.Rejected
	result.Diagnostics[domain.DiagDuplicateLinks] = tally.Duplicates

	fields := map[string]interface{}{
		"url":         req.URL,
		"method":      req.Method(),
		"anchors":     page.AnchorCount,
		"candidates":  tally.Candidates,
		"unique":      tally.Unique,
		"rejected":    tally.Rejected,
		"duplicates":  tally.Duplicates,
		"filtered":    tally.Filtered,
		"duration_ms": time.Since(start).Milliseconds(),
	}
	for reason, n := range tally.Reasons {
		fields["rejected_"+strings.ReplaceAll(string(reason), "-", "_")] = n
	}
	s.deps.Logger.Info("Extraction complete", fields)

	return result, nil
}

// validateRequest checks the request before any I/O happens
func (s *ExtractionService) validateRequest(req *domain.ExtractionRequest) error {
	req.URL = strings.TrimSpace(req.URL)
	if req.URL == "" {
		return &coreerrors.ValidationError{Field: "url", Message: "URL is required"}
	}

	parsed, err := url.Parse(req.URL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return &coreerrors.ValidationError{
			Field:   "url",
			Message: "Invalid URL format. Include http:// or https://",
		}
	}
	return nil
}

// applyLimits fills defaults and clamps the per-request budgets
func (s *ExtractionService) applyLimits(req *domain.ExtractionRequest) {
	if req.Timeout <= 0 {
		req.Timeout = s.opts.DefaultTimeout
	}
	if req.Timeout > s.opts.MaxTimeout {
		req.Timeout = s.opts.MaxTimeout
	}
	if req.WaitTime <= 0 {
		req.WaitTime = s.opts.DefaultWait
	}
	if req.WaitTime > s.opts.MaxWait {
		req.WaitTime = s.opts.MaxWait
	}
}

// fetchStatic performs the plain HTTP fetch and fills fetch diagnostics
func (s *ExtractionService) fetchStatic(ctx context.Context, req domain.ExtractionRequest, diags domain.Diagnostics) (io.Reader, *url.URL, error) {
	if s.deps.HTTPClient == nil {
		return nil, nil, &coreerrors.NetworkError{
			URL:     req.URL,
			Message: "HTTP client not configured",
		}
	}

	fetchCtx, cancel := context.WithTimeout(ctx, time.Duration(req.Timeout)*time.Second)
	defer cancel()

	resp, err := s.deps.HTTPClient.Get(fetchCtx, req.URL)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body().Close()

	finalURL := resp.FinalURL()
	if finalURL == "" {
		finalURL = req.URL
	}
	diags[domain.DiagStatusCode] = resp.StatusCode()
	diags[domain.DiagFinalURL] = finalURL
	diags[domain.DiagRedirected] = finalURL != req.URL
	if ct := resp.Header("Content-Type"); ct != "" {
		diags[domain.DiagContentType] = ct
	}

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return nil, nil, &coreerrors.HTTPStatusError{URL: req.URL, StatusCode: resp.StatusCode()}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body(), s.opts.MaxBodyBytes))
	if err != nil {
		return nil, nil, &coreerrors.NetworkError{
			URL:     req.URL,
			Message: "Failed to read page content",
			Err:     err,
		}
	}
	diags[domain.DiagContentLength] = len(body)

	// Links resolve against where the page actually lives, not where the
	// request started.
	base, err := url.Parse(finalURL)
	if err != nil {
		base, _ = url.Parse(req.URL)
	}

	// Normalize legacy charsets to UTF-8 before parsing.
	reader, err := charset.NewReader(bytes.NewReader(body), resp.Header("Content-Type"))
	if err != nil {
		reader = bytes.NewReader(body)
	}
	return reader, base, nil
}

// fetchBrowser renders the page in a headless browser and fills diagnostics
func (s *ExtractionService) fetchBrowser(ctx context.Context, req domain.ExtractionRequest, diags domain.Diagnostics) (io.Reader, *url.URL, error) {
	if !featureflags.IsEnabled(ctx, featureflags.BrowserAutomation) {
		return nil, nil, &coreerrors.ValidationError{
			Field:   "use_browser",
			Message: "Browser automation is disabled on this deployment",
		}
	}
	if s.browser == nil {
		return nil, nil, &coreerrors.AutomationError{
			URL:     req.URL,
			Stage:   coreerrors.StageLaunch,
			Message: "Browser automation is not available in this deployment",
		}
	}

	// The deadline covers navigation plus settle; the fetcher budgets
	// navigation as whatever the settle phase leaves over.
	total := time.Duration(req.Timeout+req.WaitTime) * time.Second
	browserCtx, cancel := context.WithTimeout(ctx, total)
	defer cancel()

	page, err := s.browser.FetchRendered(browserCtx, req.URL, req.WaitTime)
	if err != nil {
		return nil, nil, err
	}

	finalURL := page.FinalURL
	if finalURL == "" {
		finalURL = req.URL
	}
	diags[domain.DiagFinalURL] = finalURL
	diags[domain.DiagRedirected] = finalURL != req.URL
	diags[domain.DiagContentLength] = len(page.HTML)
	if page.Title != "" {
		diags[domain.DiagPageTitle] = page.Title
	}
	if page.Warning != "" {
		diags[domain.DiagPageLoadWarning] = page.Warning
		s.deps.Logger.Warn("Browser returned partial content", map[string]interface{}{
			"url":     req.URL,
			"warning": page.Warning,
		})
	}

	base, err := url.Parse(finalURL)
	if err != nil {
		base, _ = url.Parse(req.URL)
	}
	return strings.NewReader(page.HTML), base, nil
}

// nopLogger keeps the service's logging calls nil-safe when no logger is
// injected.
type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{}) {}
func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Warn(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}

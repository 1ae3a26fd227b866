// ABOUTME: Standard HTTP client implementation with browser-like request headers
// ABOUTME: Performs single-attempt fetches and maps failures to friendly errors

package standard

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	coreerrors "link-extractor-api/core/errors"
	"link-extractor-api/core/interfaces"
)

const (
	maxRedirects = 10

	// Many sites serve bot-facing stubs (or block outright) to generic
	// Go user agents, so requests identify as a desktop browser.
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	acceptHeader = "text/html,application/xhtml+xml,application/xml;q=0.9," +
		"image/avif,image/webp,*/*;q=0.8"
	acceptLanguage = "en-US,en;q=0.9"
)

var errTooManyRedirects = errors.New("too many redirects")

// StandardHTTPClient implements the HTTPClient interface using standard library
type StandardHTTPClient struct {
	client    *http.Client
	userAgent string
}

// NewStandardHTTPClient creates a new HTTP client with the specified timeout.
// Fetches are single-attempt: a page that fails is reported immediately
// rather than retried, since the caller is an interactive request.
func NewStandardHTTPClient(timeout time.Duration) *StandardHTTPClient {
	return &StandardHTTPClient{
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return errTooManyRedirects
				}
				return nil
			},
		},
		userAgent: defaultUserAgent,
	}
}

// SetUserAgent overrides the built-in user agent. Empty values are ignored.
func (c *StandardHTTPClient) SetUserAgent(ua string) {
	if ua != "" {
		c.userAgent = ua
	}
}

// Get performs an HTTP GET request
func (c *StandardHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, &coreerrors.NetworkError{
			URL:     url,
			Message: "Invalid URL format. Include http:// or https://",
			Err:     err,
		}
	}

	// Leaving Accept-Encoding unset lets the transport negotiate gzip
	// and decompress transparently.
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("Accept-Language", acceptLanguage)
	req.Header.Set("Upgrade-Insecure-Requests", "1")

	budget := budgetSeconds(ctx, c.client.Timeout)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, classifyError(url, budget, err)
	}

	finalURL := url
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	return &httpResponse{
		statusCode: resp.StatusCode,
		body:       resp.Body,
		headers:    resp.Header,
		finalURL:   finalURL,
	}, nil
}

// budgetSeconds reports the effective fetch budget for error messages,
// preferring the context deadline over the client-wide timeout.
func budgetSeconds(ctx context.Context, fallback time.Duration) int {
	if deadline, ok := ctx.Deadline(); ok {
		return int(time.Until(deadline).Round(time.Second).Seconds())
	}
	return int(fallback.Round(time.Second).Seconds())
}

// classifyError maps transport failures onto the friendly error types the
// rest of the system reports to users.
func classifyError(url string, budget int, err error) error {
	if errors.Is(err, errTooManyRedirects) {
		return &coreerrors.NetworkError{
			URL:     url,
			Message: coreerrors.RedirectLoopMessage,
			Err:     err,
		}
	}

	var netErr net.Error
	timedOut := errors.Is(err, context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout())
	if timedOut {
		return &coreerrors.NetworkError{
			URL:      url,
			Message:  coreerrors.TimeoutMessage(budget),
			TimedOut: true,
			Err:      err,
		}
	}

	return &coreerrors.NetworkError{
		URL:     url,
		Message: coreerrors.ConnectionMessage,
		Err:     err,
	}
}

// httpResponse implements the Response interface
type httpResponse struct {
	statusCode int
	body       io.ReadCloser
	headers    http.Header
	finalURL   string
}

// StatusCode returns the HTTP status code
func (r *httpResponse) StatusCode() int {
	return r.statusCode
}

// Body returns the response body
func (r *httpResponse) Body() io.ReadCloser {
	return r.body
}

// Header returns the value of the specified header
func (r *httpResponse) Header(key string) string {
	return r.headers.Get(key)
}

// FinalURL returns the URL the response was served from after redirects
func (r *httpResponse) FinalURL() string {
	return r.finalURL
}

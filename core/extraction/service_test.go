package extraction

import (
	"context"
	"testing"

	"link-extractor-api/core/domain"
	coreerrors "link-extractor-api/core/errors"
	"link-extractor-api/core/interfaces"
	"link-extractor-api/pkg/featureflags"
)

func newTestService(client *mockHTTPClient) *ExtractionService {
	return NewExtractionService(interfaces.Dependencies{
		HTTPClient: client,
		Logger:     &mockLogger{},
	}, Options{})
}

func TestExtract_EmptyURL(t *testing.T) {
	called := false
	client := &mockHTTPClient{
		getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
			called = true
			return nil, nil
		},
	}
	svc := newTestService(client)

	result, err := svc.Extract(context.Background(), domain.ExtractionRequest{URL: ""})
	if err == nil {
		t.Fatal("Extract with empty URL should fail")
	}
	if !coreerrors.IsValidation(err) {
		t.Errorf("error should be a ValidationError, got %T", err)
	}
	if called {
		t.Error("no fetch should happen for an invalid request")
	}
	if result == nil || result.Links == nil || len(result.Links) != 0 {
		t.Error("result should carry an empty non-nil link slice")
	}
}

func TestExtract_InvalidURLFormat(t *testing.T) {
	svc := newTestService(&mockHTTPClient{})

	tests := []string{
		"example.com",
		"ftp://example.com/files",
		"https://",
		"not a url",
	}
	for _, u := range tests {
		_, err := svc.Extract(context.Background(), domain.ExtractionRequest{URL: u})
		if !coreerrors.IsValidation(err) {
			t.Errorf("Extract(%q) error = %v, want ValidationError", u, err)
		}
	}
}

func TestExtract_HTTPSuccess(t *testing.T) {
	page := `<html><head><title>Demo</title></head><body>
<a href="/b">B</a>
<a href="/a">A</a>
<a href="/b">B again</a>
<a href="mailto:someone@example.com">mail</a>
<a href="/c">C</a>
</body></html>`

	client := &mockHTTPClient{
		getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
			return &mockResponse{
				statusCode: 200,
				body:       page,
				headers:    map[string]string{"Content-Type": "text/html; charset=utf-8"},
			}, nil
		},
	}
	svc := newTestService(client)

	result, err := svc.Extract(context.Background(), domain.ExtractionRequest{URL: "https://example.com"})
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}

	expected := []string{
		"https://example.com/b",
		"https://example.com/a",
		"https://example.com/c",
	}
	if len(result.Links) != len(expected) {
		t.Fatalf("got links %v, want %v", result.Links, expected)
	}
	for i := range expected {
		if result.Links[i] != expected[i] {
			t.Errorf("links[%d] = %q, want %q", i, result.Links[i], expected[i])
		}
	}

	d := result.Diagnostics
	if d[domain.DiagMethod] != domain.MethodHTTP {
		t.Errorf("method = %v, want %q", d[domain.DiagMethod], domain.MethodHTTP)
	}
	if d[domain.DiagStatusCode] != 200 {
		t.Errorf("status_code = %v, want 200", d[domain.DiagStatusCode])
	}
	if d[domain.DiagContentType] != "text/html; charset=utf-8" {
		t.Errorf("content_type = %v", d[domain.DiagContentType])
	}
	if d[domain.DiagAnchorTags] != 5 {
		t.Errorf("anchor_tags_found = %v, want 5", d[domain.DiagAnchorTags])
	}
	if d[domain.DiagUniqueLinks] != 3 {
		t.Errorf("unique_links_found = %v, want 3", d[domain.DiagUniqueLinks])
	}
	if d[domain.DiagRejectedLinks] != 1 {
		t.Errorf("rejected_links = %v, want 1", d[domain.DiagRejectedLinks])
	}
	if d[domain.DiagDuplicateLinks] != 1 {
		t.Errorf("duplicate_links = %v, want 1", d[domain.DiagDuplicateLinks])
	}
	if d[domain.DiagPageTitle] != "Demo" {
		t.Errorf("page_title = %v, want Demo", d[domain.DiagPageTitle])
	}
	if d[domain.DiagRedirected] != false {
		t.Errorf("redirected = %v, want false", d[domain.DiagRedirected])
	}
}

func TestExtract_404KeepsDiagnostics(t *testing.T) {
	client := &mockHTTPClient{
		getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
			return &mockResponse{
				statusCode: 404,
				body:       "<html>gone</html>",
				headers:    map[string]string{"Content-Type": "text/html"},
			}, nil
		},
	}
	svc := newTestService(client)

	result, err := svc.Extract(context.Background(), domain.ExtractionRequest{URL: "https://example.com/missing"})
	if err == nil {
		t.Fatal("404 fetch should fail extraction")
	}
	if !coreerrors.IsHTTPStatus(err) {
		t.Fatalf("error should be HTTPStatusError, got %T", err)
	}
	if err.Error() != "Page not found (404). Please check the URL is correct." {
		t.Errorf("unexpected message: %q", err.Error())
	}
	if result.Diagnostics[domain.DiagStatusCode] != 404 {
		t.Errorf("status_code diagnostic = %v, want 404", result.Diagnostics[domain.DiagStatusCode])
	}
	if len(result.Links) != 0 {
		t.Errorf("failed extraction should carry no links, got %v", result.Links)
	}
}

func TestExtract_NetworkErrorPassesThrough(t *testing.T) {
	netErr := &coreerrors.NetworkError{
		URL:      "https://example.com",
		Message:  coreerrors.TimeoutMessage(10),
		TimedOut: true,
	}
	client := &mockHTTPClient{
		getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
			return nil, netErr
		},
	}
	svc := newTestService(client)

	result, err := svc.Extract(context.Background(), domain.ExtractionRequest{URL: "https://example.com"})
	if !coreerrors.IsNetwork(err) {
		t.Fatalf("error should be NetworkError, got %v", err)
	}
	if result.Diagnostics[domain.DiagMethod] != domain.MethodHTTP {
		t.Error("diagnostics should record the attempted method")
	}
}

func TestExtract_ResolvesAgainstFinalURL(t *testing.T) {
	client := &mockHTTPClient{
		getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
			return &mockResponse{
				statusCode: 200,
				body:       `<html><body><a href="post1">first post</a></body></html>`,
				finalURL:   "https://example.com/blog/",
			}, nil
		},
	}
	svc := newTestService(client)

	result, err := svc.Extract(context.Background(), domain.ExtractionRequest{URL: "https://example.com"})
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}

	if len(result.Links) != 1 || result.Links[0] != "https://example.com/blog/post1" {
		t.Errorf("relative links should resolve against the redirect target, got %v", result.Links)
	}
	if result.Diagnostics[domain.DiagRedirected] != true {
		t.Error("redirected diagnostic should be true")
	}
	if result.Diagnostics[domain.DiagFinalURL] != "https://example.com/blog/" {
		t.Errorf("final_url = %v", result.Diagnostics[domain.DiagFinalURL])
	}
}

func TestExtract_DomainFilterPropagates(t *testing.T) {
	client := &mockHTTPClient{
		getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
			return &mockResponse{
				statusCode: 200,
				body: `<html><body>
<a href="/internal">in</a>
<a href="https://other.com/external">out</a>
</body></html>`,
			}, nil
		},
	}
	svc := newTestService(client)

	result, err := svc.Extract(context.Background(), domain.ExtractionRequest{
		URL:             "https://example.com",
		FilterDomain:    true,
		IncludeExternal: false,
	})
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}

	if len(result.Links) != 1 || result.Links[0] != "https://example.com/internal" {
		t.Errorf("domain filter should drop externals, got %v", result.Links)
	}
}

func TestExtract_BrowserModeUsesFetcher(t *testing.T) {
	var gotWait int
	browser := &mockBrowserFetcher{
		fetchFunc: func(ctx context.Context, url string, waitTime int) (*interfaces.RenderedPage, error) {
			gotWait = waitTime
			return &interfaces.RenderedPage{
				HTML:     `<html><body><a href="/rendered">r</a></body></html>`,
				FinalURL: "https://example.com/app",
				Title:    "App Shell",
			}, nil
		},
	}
	svc := newTestService(&mockHTTPClient{})
	svc.SetBrowserFetcher(browser)

	result, err := svc.Extract(context.Background(), domain.ExtractionRequest{
		URL:        "https://example.com",
		UseBrowser: true,
		WaitTime:   7,
	})
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}

	if gotWait != 7 {
		t.Errorf("wait time passed to fetcher = %d, want 7", gotWait)
	}
	if result.Diagnostics[domain.DiagMethod] != domain.MethodBrowser {
		t.Errorf("method = %v, want %q", result.Diagnostics[domain.DiagMethod], domain.MethodBrowser)
	}
	if result.Diagnostics[domain.DiagPageTitle] != "App Shell" {
		t.Errorf("page_title = %v, want browser-reported title", result.Diagnostics[domain.DiagPageTitle])
	}
	if len(result.Links) != 1 || result.Links[0] != "https://example.com/rendered" {
		t.Errorf("links = %v", result.Links)
	}
}

func TestExtract_BrowserPartialContentWarns(t *testing.T) {
	browser := &mockBrowserFetcher{
		fetchFunc: func(ctx context.Context, url string, waitTime int) (*interfaces.RenderedPage, error) {
			return &interfaces.RenderedPage{
				HTML:     `<html><body><a href="/partial">p</a></body></html>`,
				FinalURL: url,
				Warning:  "Page load timed out after 5s; extracting from partial content",
			}, nil
		},
	}
	svc := newTestService(&mockHTTPClient{})
	svc.SetBrowserFetcher(browser)

	result, err := svc.Extract(context.Background(), domain.ExtractionRequest{
		URL:        "https://example.com",
		UseBrowser: true,
	})
	if err != nil {
		t.Fatalf("partial content should still extract, got %v", err)
	}

	if result.Diagnostics[domain.DiagPageLoadWarning] == nil {
		t.Error("page_load_warning diagnostic should be set")
	}
	if len(result.Links) != 1 {
		t.Errorf("links should come from partial markup, got %v", result.Links)
	}
}

func TestExtract_BrowserWithoutFetcher(t *testing.T) {
	svc := newTestService(&mockHTTPClient{})

	_, err := svc.Extract(context.Background(), domain.ExtractionRequest{
		URL:        "https://example.com",
		UseBrowser: true,
	})
	if !coreerrors.IsAutomation(err) {
		t.Errorf("error should be AutomationError, got %v", err)
	}
}

func TestExtract_BrowserFlagDisabled(t *testing.T) {
	browser := &mockBrowserFetcher{
		fetchFunc: func(ctx context.Context, url string, waitTime int) (*interfaces.RenderedPage, error) {
			t.Error("fetcher should not run when the flag is off")
			return nil, nil
		},
	}
	svc := newTestService(&mockHTTPClient{})
	svc.SetBrowserFetcher(browser)

	flags := featureflags.NewStaticManager(map[featureflags.FeatureFlag]bool{
		featureflags.BrowserAutomation: false,
	})
	ctx := featureflags.WithManager(context.Background(), flags)

	_, err := svc.Extract(ctx, domain.ExtractionRequest{
		URL:        "https://example.com",
		UseBrowser: true,
	})
	if !coreerrors.IsValidation(err) {
		t.Errorf("disabled browser mode should be a ValidationError, got %v", err)
	}
}

func TestExtract_DeepSourcesFlagDisabled(t *testing.T) {
	client := &mockHTTPClient{
		getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
			return &mockResponse{
				statusCode: 200,
				body: `<html><body>
<a href="/plain">plain</a>
<script>var u = "https://api.example.com/feed";</script>
</body></html>`,
			}, nil
		},
	}
	svc := newTestService(client)

	flags := featureflags.NewStaticManager(map[featureflags.FeatureFlag]bool{
		featureflags.DeepLinkSources: false,
	})
	ctx := featureflags.WithManager(context.Background(), flags)

	result, err := svc.Extract(ctx, domain.ExtractionRequest{URL: "https://example.com"})
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}

	if len(result.Links) != 1 || result.Links[0] != "https://example.com/plain" {
		t.Errorf("script URLs should be skipped with deep sources off, got %v", result.Links)
	}
}

func TestApplyLimits_DefaultsAndClamps(t *testing.T) {
	svc := NewExtractionService(interfaces.Dependencies{
		HTTPClient: &mockHTTPClient{},
	}, Options{DefaultTimeout: 10, MaxTimeout: 30, DefaultWait: 5, MaxWait: 20})

	req := domain.ExtractionRequest{URL: "https://example.com"}
	svc.applyLimits(&req)
	if req.Timeout != 10 || req.WaitTime != 5 {
		t.Errorf("defaults not applied: timeout=%d wait=%d", req.Timeout, req.WaitTime)
	}

	req = domain.ExtractionRequest{URL: "https://example.com", Timeout: 500, WaitTime: 99}
	svc.applyLimits(&req)
	if req.Timeout != 30 {
		t.Errorf("timeout clamp = %d, want 30", req.Timeout)
	}
	if req.WaitTime != 20 {
		t.Errorf("wait clamp = %d, want 20", req.WaitTime)
	}
}

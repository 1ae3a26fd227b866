// ABOUTME: Front-end for the link extractor: an embedded static SPA under /ui/
// ABOUTME: and a server-rendered html/template page at /app that needs no JavaScript.
package ui

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"sort"
	"strconv"

	"github.com/go-chi/chi/v5"

	"link-extractor-api/core/domain"
	"link-extractor-api/core/interfaces"
)

//go:embed static
var staticFS embed.FS

//go:embed templates
var templatesFS embed.FS

var appTemplate = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

const (
	defaultTimeout  = 10
	defaultWaitTime = 15
)

// Handler serves the server-rendered /app page and its export form.
type Handler struct {
	extractor interfaces.LinkExtractor
	exporter  interfaces.LinkExporter
	logger    interfaces.Logger
}

// NewHandler creates a front-end handler backed by the core services.
func NewHandler(extractor interfaces.LinkExtractor, exporter interfaces.LinkExporter, logger interfaces.Logger) *Handler {
	return &Handler{
		extractor: extractor,
		exporter:  exporter,
		logger:    logger,
	}
}

// Register mounts the static assets and the server-rendered pages on the router.
func Register(router chi.Router, h *Handler) {
	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(fmt.Sprintf("ui: embedded assets missing: %v", err))
	}

	router.Get("/ui", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/ui/", http.StatusMovedPermanently)
	})
	router.Handle("/ui/*", http.StripPrefix("/ui/", http.FileServer(http.FS(static))))

	router.Get("/app", h.ShowForm)
	router.Post("/app", h.Extract)
	router.Post("/app/export", h.Export)
}

// appLink is one row in the rendered results table.
type appLink struct {
	Index    int
	URL      string
	Internal bool
}

// diagRow is one diagnostics entry, sorted by key for stable rendering.
type diagRow struct {
	Key   string
	Value interface{}
}

// appView is the template model for the /app page.
type appView struct {
	URL             string
	UseBrowser      bool
	FilterDomain    bool
	IncludeExternal bool
	Timeout         int
	WaitTime        int

	Submitted bool
	Success   bool
	Error     string

	Links         []appLink
	Total         int
	Internal      int
	External      int
	UniqueDomains int

	Diagnostics []diagRow
}

// ShowForm renders the empty extraction form.
func (h *Handler) ShowForm(w http.ResponseWriter, r *http.Request) {
	view := appView{
		IncludeExternal: true,
		Timeout:         defaultTimeout,
		WaitTime:        defaultWaitTime,
	}
	h.render(w, view)
}

// Extract runs an extraction from the submitted form and renders the results.
func (h *Handler) Extract(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	view := appView{
		URL:             r.FormValue("url"),
		UseBrowser:      r.FormValue("use_browser") != "",
		FilterDomain:    r.FormValue("filter_domain") != "",
		IncludeExternal: r.FormValue("include_external") != "",
		Timeout:         formInt(r, "timeout", defaultTimeout),
		WaitTime:        formInt(r, "wait_time", defaultWaitTime),
		Submitted:       true,
	}

	result, err := h.extractor.Extract(r.Context(), domain.ExtractionRequest{
		URL:             view.URL,
		UseBrowser:      view.UseBrowser,
		FilterDomain:    view.FilterDomain,
		IncludeExternal: view.IncludeExternal,
		Timeout:         view.Timeout,
		WaitTime:        view.WaitTime,
	})
	if err != nil {
		view.Error = err.Error()
	} else {
		view.Success = true
	}
	if result != nil {
		view.Diagnostics = diagRows(result.Diagnostics)
		if err == nil {
			view.Links, view.Total, view.Internal, view.External, view.UniqueDomains = linkStats(result.SourceURL, result.Links)
		}
	}

	h.render(w, view)
}

// Export turns the posted link list into a downloadable file.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	links := r.Form["links"]
	format := r.FormValue("format")
	sourceURL := r.FormValue("source_url")

	data, contentType, filename, err := h.exporter.Export(links, sourceURL, format)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := w.Write(data); err != nil && h.logger != nil {
		h.logger.Error("Failed to write export download", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (h *Handler) render(w http.ResponseWriter, view appView) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := appTemplate.ExecuteTemplate(w, "app.html", view); err != nil && h.logger != nil {
		h.logger.Error("Failed to render app page", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func formInt(r *http.Request, key string, fallback int) int {
	value, err := strconv.Atoi(r.FormValue(key))
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

// linkStats classifies links against the source host and counts distinct domains.
func linkStats(sourceURL string, links []string) ([]appLink, int, int, int, int) {
	sourceHost := hostOf(sourceURL)
	rows := make([]appLink, 0, len(links))
	domains := make(map[string]struct{})
	internal := 0

	for i, link := range links {
		host := hostOf(link)
		if host != "" {
			domains[host] = struct{}{}
		}
		isInternal := host != "" && host == sourceHost
		if isInternal {
			internal++
		}
		rows = append(rows, appLink{Index: i + 1, URL: link, Internal: isInternal})
	}

	total := len(links)
	return rows, total, internal, total - internal, len(domains)
}

func hostOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return parsed.Host
}

func diagRows(diagnostics map[string]interface{}) []diagRow {
	if len(diagnostics) == 0 {
		return nil
	}
	keys := make([]string, 0, len(diagnostics))
	for key := range diagnostics {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	rows := make([]diagRow, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, diagRow{Key: key, Value: diagnostics[key]})
	}
	return rows
}

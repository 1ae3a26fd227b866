// ABOUTME: Request DTOs for link extraction API endpoints
// ABOUTME: Provides validation and default values for incoming requests

package requests

// ExtractLinksRequest represents the request body for extracting links
// from a single page. URL presence is checked by the handler rather than
// the schema so missing URLs produce the standard error envelope.
type ExtractLinksRequest struct {
	// URL is the page to extract links from
	URL string `json:"url" required:"false" doc:"Page URL to extract links from (http or https)"`

	// UseBrowser renders the page in headless Chrome before extracting
	UseBrowser bool `json:"use_browser,omitempty" default:"false" doc:"Render the page in a headless browser before extracting"`

	// FilterDomain keeps only links on the source page's host
	FilterDomain bool `json:"filter_domain,omitempty" default:"false" doc:"Keep only links on the source page's exact host"`

	// IncludeExternal keeps links pointing off the source host (default: true)
	IncludeExternal *bool `json:"include_external,omitempty" default:"true" doc:"Keep links pointing to other hosts"`

	// Timeout is the fetch budget in seconds
	Timeout int `json:"timeout,omitempty" minimum:"1" maximum:"120" default:"10" doc:"Fetch budget in seconds"`

	// WaitTime is the browser settle budget in seconds
	WaitTime int `json:"wait_time,omitempty" minimum:"1" maximum:"60" default:"15" doc:"How long the browser waits for scripts to finish inserting links"`
}

// ApplyDefaults sets default values for optional fields
func (r *ExtractLinksRequest) ApplyDefaults() {
	if r.Timeout == 0 {
		r.Timeout = 10
	}
	if r.WaitTime == 0 {
		r.WaitTime = 15
	}
	if r.IncludeExternal == nil {
		enabled := true
		r.IncludeExternal = &enabled
	}
}

// External reports the include-external setting after defaults
func (r *ExtractLinksRequest) External() bool {
	return r.IncludeExternal == nil || *r.IncludeExternal
}

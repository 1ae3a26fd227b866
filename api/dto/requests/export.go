// ABOUTME: Request DTOs for the link export endpoint
// ABOUTME: Validates format and carries caller-supplied links

package requests

// ExportLinksRequest represents the request body for downloading a link
// list as a file
type ExportLinksRequest struct {
	// Format selects the file format
	Format string `json:"format" required:"true" enum:"txt,csv" doc:"File format for the download"`

	// Links is the list of URLs to export
	Links []string `json:"links" required:"true" maxItems:"10000" doc:"Links to write into the file"`

	// SourceURL names the page the links came from; its host names the file
	SourceURL string `json:"source_url,omitempty" doc:"Page the links were extracted from"`
}

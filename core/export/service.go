// ABOUTME: Export service renders extracted link lists as downloadable files
// ABOUTME: Supports plain-text and CSV output with a host-derived filename

package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	coreerrors "link-extractor-api/core/errors"
)

// Supported export formats.
const (
	FormatTXT = "txt"
	FormatCSV = "csv"
)

// ExportService renders link lists into downloadable formats
type ExportService struct{}

// NewExportService creates a new export service instance
func NewExportService() *ExportService {
	return &ExportService{}
}

// Export renders links in the requested format and returns the file
// content, its MIME type, and a suggested filename derived from the
// source page's host.
func (s *ExportService) Export(links []string, sourceURL, format string) ([]byte, string, string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	switch format {
	case FormatTXT:
		return renderTXT(links), "text/plain; charset=utf-8", Filename(sourceURL, FormatTXT), nil
	case FormatCSV:
		data, err := renderCSV(links)
		if err != nil {
			return nil, "", "", err
		}
		return data, "text/csv; charset=utf-8", Filename(sourceURL, FormatCSV), nil
	default:
		return nil, "", "", &coreerrors.ValidationError{
			Field:   "format",
			Message: fmt.Sprintf("Unsupported export format %q. Use txt or csv.", format),
		}
	}
}

// Filename suggests a download name like links_example_com.txt. Hosts
// fall back to a bare "links" prefix when the source URL is unusable.
func Filename(sourceURL, ext string) string {
	host := ""
	if parsed, err := url.Parse(sourceURL); err == nil {
		host = parsed.Hostname()
	}
	if host == "" {
		return "links." + ext
	}
	return "links_" + strings.ReplaceAll(host, ".", "_") + "." + ext
}

func renderTXT(links []string) []byte {
	var buf bytes.Buffer
	for _, link := range links {
		buf.WriteString(link)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

func renderCSV(links []string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"#", "URL"}); err != nil {
		return nil, err
	}
	for i, link := range links {
		if err := w.Write([]string{strconv.Itoa(i + 1), link}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

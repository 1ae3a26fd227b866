// ABOUTME: Command-line interface for single-page link extraction
// ABOUTME: Fetches one URL and prints or exports its links

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"link-extractor-api/api/dto/mappers"
	"link-extractor-api/core/domain"
	"link-extractor-api/core/export"
	"link-extractor-api/core/extraction"
	"link-extractor-api/core/interfaces"
	"link-extractor-api/infrastructure/browser/chrome"
	stdhttp "link-extractor-api/infrastructure/http/standard"
	"link-extractor-api/infrastructure/logger/structured"
)

func main() {
	var (
		useBrowser      = flag.Bool("browser", false, "Render the page in headless Chrome before extracting")
		filterDomain    = flag.Bool("filter-domain", false, "Keep only links on the page's own domain")
		includeExternal = flag.Bool("include-external", true, "Keep links pointing at other hosts")
		timeout         = flag.Int("timeout", 10, "Fetch budget in seconds")
		wait            = flag.Int("wait", 10, "Browser settle budget in seconds")
		format          = flag.String("format", "text", "Output format: text, txt, csv or json")
		output          = flag.String("o", "", "Write output to a file instead of stdout")
		quiet           = flag.Bool("quiet", false, "Suppress progress and diagnostics output")
		verbose         = flag.Bool("verbose", false, "Enable debug logging")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: extract [flags] <url>\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	pageURL := flag.Arg(0)

	switch *format {
	case "text", export.FormatTXT, export.FormatCSV, "json":
	default:
		fmt.Fprintf(os.Stderr, "Unknown format %q: use text, txt, csv or json\n", *format)
		os.Exit(2)
	}

	var logger interfaces.Logger = structured.NewNopLogger()
	if *verbose {
		logger = structured.NewStructuredLogger(structured.Options{Level: "debug", Format: "text"})
	}

	httpClient := stdhttp.NewStandardHTTPClient(time.Duration(*timeout) * time.Second)
	service := extraction.NewExtractionService(interfaces.Dependencies{
		HTTPClient: httpClient,
		Logger:     logger,
	}, extraction.Options{})
	service.SetBrowserFetcher(chrome.NewFetcher(chrome.Options{}))

	if !*quiet {
		fmt.Fprintf(os.Stderr, "Extracting links from %s...\n", pageURL)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := service.Extract(ctx, domain.ExtractionRequest{
		URL:             pageURL,
		UseBrowser:      *useBrowser,
		FilterDomain:    *filterDomain,
		IncludeExternal: *includeExternal,
		Timeout:         *timeout,
		WaitTime:        *wait,
	})

	// The json format reports failures inside the envelope, so it renders
	// before the error check.
	if *format == "json" {
		envelope := mappers.ToExtractLinksResponse(result, err)
		data, marshalErr := json.MarshalIndent(envelope, "", "  ")
		if marshalErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", marshalErr)
			os.Exit(1)
		}
		if writeErr := writeOutput(*output, append(data, '\n')); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", writeErr)
			os.Exit(1)
		}
		if err != nil {
			os.Exit(1)
		}
		return
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		if !*quiet && result != nil && len(result.Diagnostics) > 0 {
			printDiagnostics(os.Stderr, result.Diagnostics)
		}
		os.Exit(1)
	}

	var data []byte
	switch *format {
	case export.FormatTXT, export.FormatCSV:
		exported, _, _, exportErr := export.NewExportService().Export(result.Links, result.SourceURL, *format)
		if exportErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", exportErr)
			os.Exit(1)
		}
		data = exported
	default:
		data = renderText(result)
	}

	if err := writeOutput(*output, data); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	if !*quiet {
		if *output != "" {
			fmt.Fprintf(os.Stderr, "Wrote %d links to %s\n", len(result.Links), *output)
		}
		if len(result.Diagnostics) > 0 {
			printDiagnostics(os.Stderr, result.Diagnostics)
		}
	}
}

// renderText numbers the links in document order and marks links whose
// host differs from the source page's host.
func renderText(result *domain.ExtractionResult) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Found %d unique links from %s:\n\n", len(result.Links), result.SourceURL)

	sourceHost := hostOf(result.SourceURL)
	for i, link := range result.Links {
		marker := ""
		if host := hostOf(link); host != "" && sourceHost != "" && host != sourceHost {
			marker = " [external]"
		}
		fmt.Fprintf(&buf, "  %d. %s%s\n", i+1, link, marker)
	}
	return buf.Bytes()
}

func printDiagnostics(w io.Writer, diags domain.Diagnostics) {
	keys := make([]string, 0, len(diags))
	for key := range diags {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	fmt.Fprintln(w, "Diagnostics:")
	for _, key := range keys {
		fmt.Fprintf(w, "  %s: %v\n", key, diags[key])
	}
}

func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func hostOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return parsed.Host
}

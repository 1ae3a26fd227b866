// ABOUTME: Markup parsing that collects raw link candidates in document order
// ABOUTME: goquery is the primary strategy with a tokenizer salvage for broken input

package extraction

import (
	"bytes"
	"encoding/json"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"link-extractor-api/core/domain"
	coreerrors "link-extractor-api/core/errors"
)

// ParsedPage is the raw parser output before any normalization
type ParsedPage struct {
	// Candidates holds every raw href found, in source-pass order
	Candidates []domain.LinkCandidate

	// Title is the document title, when present
	Title string

	// AnchorCount is the number of <a href> tags seen
	AnchorCount int
}

// ParseOptions toggles the non-anchor candidate sources
type ParseOptions struct {
	// DeepSources scans script bodies and JSON-LD blocks for URLs
	DeepSources bool
}

// scriptURLPattern matches absolute URLs embedded in script text.
var scriptURLPattern = regexp.MustCompile(`https?://[^\s"'<>\\]+`)

// ParsePage extracts link candidates from HTML markup. Candidates come out
// in passes: anchors first, then link/area tags, SPA attributes, and
// finally script-derived URLs when DeepSources is on. Within each pass the
// document order is preserved.
//
// When the reader fails mid-document, whatever bytes were already consumed
// are re-scanned with a tokenizer so a truncated page still yields its
// links. Only a page that produced no markup at all is a parse failure.
func ParsePage(r io.Reader, opts ParseOptions) (*ParsedPage, error) {
	var buf bytes.Buffer
	doc, err := goquery.NewDocumentFromReader(io.TeeReader(r, &buf))
	if err != nil {
		if buf.Len() == 0 {
			return nil, &coreerrors.ParseError{Message: "Failed to parse page content", Err: err}
		}
		return parseWithTokenizer(buf.Bytes()), nil
	}

	page := &ParsedPage{Candidates: make([]domain.LinkCandidate, 0, 32)}
	page.Title = strings.TrimSpace(doc.Find("title").First().Text())

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		page.AnchorCount++
		if href, ok := sel.Attr("href"); ok {
			page.add(href, domain.SourceAnchor)
		}
	})

	doc.Find("link[href]").Each(func(_ int, sel *goquery.Selection) {
		if href, ok := sel.Attr("href"); ok {
			page.add(href, domain.SourceLinkTag)
		}
	})

	doc.Find("area[href]").Each(func(_ int, sel *goquery.Selection) {
		if href, ok := sel.Attr("href"); ok {
			page.add(href, domain.SourceArea)
		}
	})

	// SPA frameworks render navigation targets into attributes instead of
	// hrefs. The HTML parser lowercases attribute names, so routerLink
	// arrives as routerlink.
	doc.Find("[routerlink]").Each(func(_ int, sel *goquery.Selection) {
		if target, ok := sel.Attr("routerlink"); ok {
			page.add(target, domain.SourceRouterLink)
		}
	})

	doc.Find("[data-href]").Each(func(_ int, sel *goquery.Selection) {
		if target, ok := sel.Attr("data-href"); ok {
			page.add(target, domain.SourceDataAttr)
		}
	})

	if opts.DeepSources {
		doc.Find("script").Each(func(_ int, sel *goquery.Selection) {
			scriptType, _ := sel.Attr("type")
			text := sel.Text()
			if text == "" {
				return
			}
			if strings.EqualFold(strings.TrimSpace(scriptType), "application/ld+json") {
				for _, u := range jsonLDURLs(text) {
					page.add(u, domain.SourceJSONLD)
				}
				return
			}
			for _, u := range scriptURLPattern.FindAllString(text, -1) {
				page.add(u, domain.SourceScriptText)
			}
		})
	}

	return page, nil
}

func (p *ParsedPage) add(href string, source domain.CandidateSource) {
	p.Candidates = append(p.Candidates, domain.LinkCandidate{Href: href, Source: source})
}

// jsonLDURLs pulls URL-shaped strings out of a JSON-LD block. It walks the
// top-level object or array plus one nested level, enough for the common
// @graph layout, and iterates object keys in sorted order so candidate
// order stays deterministic.
func jsonLDURLs(raw string) []string {
	var data interface{}
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil
	}
	var urls []string
	collectJSONURLs(data, 0, &urls)
	return urls
}

func collectJSONURLs(v interface{}, depth int, out *[]string) {
	if depth > 3 {
		return
	}
	switch val := v.(type) {
	case string:
		if strings.HasPrefix(val, "http://") || strings.HasPrefix(val, "https://") {
			*out = append(*out, val)
		}
	case []interface{}:
		for _, item := range val {
			collectJSONURLs(item, depth+1, out)
		}
	case map[string]interface{}:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			collectJSONURLs(val[k], depth+1, out)
		}
	}
}

// parseWithTokenizer re-scans partial markup for a/link/area hrefs. The
// tokenizer stops at the first error token, which for truncated input is
// simply the end of what we received.
func parseWithTokenizer(content []byte) *ParsedPage {
	page := &ParsedPage{Candidates: make([]domain.LinkCandidate, 0, 16)}
	z := html.NewTokenizer(bytes.NewReader(content))

	inTitle := false
	for {
		switch z.Next() {
		case html.ErrorToken:
			return page
		case html.TextToken:
			if inTitle && page.Title == "" {
				page.Title = strings.TrimSpace(string(z.Text()))
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			tag := string(name)
			inTitle = tag == "title"

			var source domain.CandidateSource
			switch tag {
			case "a":
				source = domain.SourceAnchor
			case "link":
				source = domain.SourceLinkTag
			case "area":
				source = domain.SourceArea
			default:
				continue
			}
			for hasAttr {
				key, val, more := z.TagAttr()
				if string(key) == "href" {
					if source == domain.SourceAnchor {
						page.AnchorCount++
					}
					page.add(string(val), source)
				}
				hasAttr = more
			}
		case html.EndTagToken:
			inTitle = false
		}
	}
}

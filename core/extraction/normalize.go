// ABOUTME: Link normalization and validation rules
// ABOUTME: Turns raw href candidates into canonical absolute URLs or rejects them

package extraction

import (
	"html"
	"net/url"
	"strings"

	"link-extractor-api/core/domain"
)

// maxHrefLength guards against corrupted markup producing unbounded hrefs.
const maxHrefLength = 2000

// skippedSchemes are navigation-free schemes that never yield a page link.
var skippedSchemes = []string{"javascript:", "mailto:", "tel:", "data:"}

// garbageMarkers are percent-encoded quote and tag fragments that only show
// up when surrounding markup leaked into an href value.
var garbageMarkers = []string{"%22%3e", "%3c/a", "href%3d"}

// NormalizeHref canonicalizes a raw href against the page base URL.
// It returns the normalized absolute URL, or a reject reason when the
// candidate cannot become a navigable http(s) link. Rules apply in order
// and the first match wins:
//
//  1. empty after trimming -> RejectEmpty
//  2. in-page anchor (#...) -> RejectFragmentOnly
//  3. javascript:/mailto:/tel:/data: prefix, even when the rest would not
//     parse -> RejectUnsupportedScheme
//  4. markup garbage, double scheme, oversized -> RejectMalformed
//  5. URL syntax failure after entity decoding -> RejectMalformed
//  6. any other non-http(s) scheme -> RejectUnsupportedScheme
//  7. otherwise resolve against base, strip the fragment, lowercase scheme
//     and host, and drop a trailing slash unless the path is just "/"
func NormalizeHref(href string, base *url.URL) (string, domain.RejectReason) {
	resolved, reason := normalizeHref(href, base)
	if reason != domain.RejectNone {
		return "", reason
	}
	return canonicalString(resolved), domain.RejectNone
}

// normalizeHref implements the rules and keeps the parsed URL so callers
// can inspect the host without reparsing.
func normalizeHref(href string, base *url.URL) (*url.URL, domain.RejectReason) {
	href = strings.TrimSpace(href)
	if href == "" {
		return nil, domain.RejectEmpty
	}

	decoded := html.UnescapeString(href)
	if strings.HasPrefix(decoded, "#") {
		return nil, domain.RejectFragmentOnly
	}

	lower := strings.ToLower(decoded)
	for _, scheme := range skippedSchemes {
		if strings.HasPrefix(lower, scheme) {
			return nil, domain.RejectUnsupportedScheme
		}
	}

	if len(decoded) > maxHrefLength {
		return nil, domain.RejectMalformed
	}
	for _, marker := range garbageMarkers {
		if strings.Contains(lower, marker) {
			return nil, domain.RejectMalformed
		}
	}
	// Two absolute schemes in one href means markup got concatenated.
	if strings.Count(lower, "http://")+strings.Count(lower, "https://") > 1 {
		return nil, domain.RejectMalformed
	}

	ref, err := url.Parse(decoded)
	if err != nil {
		return nil, domain.RejectMalformed
	}
	if ref.Scheme != "" && ref.Scheme != "http" && ref.Scheme != "https" {
		return nil, domain.RejectUnsupportedScheme
	}

	resolved := ref
	if base != nil {
		resolved = base.ResolveReference(ref)
	}
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return nil, domain.RejectMalformed
	}
	if resolved.Host == "" || strings.ContainsAny(resolved.Host, "<>\"'") {
		return nil, domain.RejectMalformed
	}

	resolved.Fragment = ""
	resolved.RawFragment = ""
	resolved.Scheme = strings.ToLower(resolved.Scheme)
	resolved.Host = strings.ToLower(resolved.Host)

	return resolved, domain.RejectNone
}

// canonicalString renders the canonical form, dropping trailing slashes
// unless the path is the bare root.
func canonicalString(u *url.URL) string {
	s := u.String()
	if strings.HasSuffix(s, "/") && u.Path != "/" {
		s = strings.TrimRight(s, "/")
	}
	return s
}

// Tally counts what happened to the candidates during normalization.
type Tally struct {
	// Candidates is the number of raw candidates examined
	Candidates int

	// Unique is the number of links that survived
	Unique int

	// Rejected counts candidates dropped by the normalization rules
	Rejected int

	// Duplicates counts repeats of links already kept
	Duplicates int

	// Filtered counts valid links dropped by the domain filter
	Filtered int

	// Reasons tallies rejects per reason
	Reasons map[domain.RejectReason]int
}

// FilterAndDedupe normalizes candidates in document order, applies the
// optional domain filter, and deduplicates keeping the first occurrence of
// each link. Order of first appearance is preserved; the result is never
// sorted.
func FilterAndDedupe(candidates []domain.LinkCandidate, base *url.URL, filterDomain, includeExternal bool) ([]string, Tally) {
	tally := Tally{
		Candidates: len(candidates),
		Reasons:    make(map[domain.RejectReason]int),
	}

	restrict := filterDomain && !includeExternal
	baseHost := ""
	if base != nil {
		baseHost = strings.ToLower(base.Host)
	}

	seen := make(map[string]bool, len(candidates))
	links := make([]string, 0, len(candidates))

	for _, c := range candidates {
		resolved, reason := normalizeHref(c.Href, base)
		if reason != domain.RejectNone {
			tally.Rejected++
			tally.Reasons[reason]++
			continue
		}

		// Exact host match only: subdomains and the apex are different
		// sites for filtering purposes.
		if restrict && resolved.Host != baseHost {
			tally.Filtered++
			continue
		}

		normalized := canonicalString(resolved)
		if seen[normalized] {
			tally.Duplicates++
			continue
		}
		seen[normalized] = true
		links = append(links, normalized)
	}

	tally.Unique = len(links)
	return links, tally
}

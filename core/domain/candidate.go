// ABOUTME: Link candidate types produced by the markup parser
// ABOUTME: Tracks where each raw href came from and why rejects were dropped

package domain

// CandidateSource identifies the markup construct a candidate came from
type CandidateSource string

const (
	SourceAnchor     CandidateSource = "anchor"
	SourceLinkTag    CandidateSource = "link-tag"
	SourceArea       CandidateSource = "area"
	SourceRouterLink CandidateSource = "router-link"
	SourceDataAttr   CandidateSource = "data-attr"
	SourceScriptText CandidateSource = "script-text"
	SourceJSONLD     CandidateSource = "json-ld"
)

// LinkCandidate is a raw href pulled out of the page, in document order,
// before any normalization or validation
type LinkCandidate struct {
	// Href is the raw attribute or text value as found in the markup
	Href string

	// Source records which construct produced the candidate
	Source CandidateSource
}

// RejectReason classifies why a candidate did not survive normalization
type RejectReason string

const (
	// RejectNone marks a candidate that normalized cleanly
	RejectNone RejectReason = ""

	// RejectEmpty marks an empty or whitespace-only href
	RejectEmpty RejectReason = "empty"

	// RejectFragmentOnly marks in-page anchors like "#section"
	RejectFragmentOnly RejectReason = "fragment-only"

	// RejectUnsupportedScheme marks non-navigational schemes such as
	// javascript:, mailto:, tel: and data:
	RejectUnsupportedScheme RejectReason = "unsupported-scheme"

	// RejectMalformed marks hrefs that fail URL parsing or carry
	// embedded-markup garbage
	RejectMalformed RejectReason = "malformed"
)

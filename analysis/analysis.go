// Package analysis scores post content for search-engine readiness.
//
// Everything here is a pure function of its inputs: no storage, no clock,
// no network. The host feeds in the textual fields of a post and its SEO
// metadata; the package returns a 0-100 score, a list of findings for the
// editor, keyword suggestions and a generated meta description.
package analysis

// Document carries the textual fields of a post that the heuristics read.
type Document struct {
	Title            string
	Body             string // HTML
	Excerpt          string
	HasFeaturedImage bool
	SiteURL          string // used to tell internal links from external ones
}

// Meta is the author-editable SEO metadata attached to a post.
type Meta struct {
	FocusKeyphrase string
	Keywords       string // comma-separated
	Description    string
}

// Severity grades a single finding.
type Severity string

const (
	Good Severity = "good"
	OK   Severity = "ok"
	Bad  Severity = "bad"
)

// Check identifies which rule produced a Finding.
type Check string

const (
	CheckKeyphrasePresence   Check = "keyphrase_presence"
	CheckKeyphraseInTitle    Check = "keyphrase_in_title"
	CheckKeyphraseInBody     Check = "keyphrase_in_body"
	CheckDescriptionPresence Check = "description_presence"
	CheckDescriptionLength   Check = "description_length"
	CheckDescriptionTerms    Check = "description_terms"
	CheckBodyLength          Check = "body_length"
	CheckImageAlt            Check = "image_alt"
	CheckFeaturedImage       Check = "featured_image"
	CheckInternalLinks       Check = "internal_links"
)

// Finding is one line of editor feedback. Suggestion is empty for Good findings.
type Finding struct {
	Check      Check    `json:"check"`
	Severity   Severity `json:"severity"`
	Message    string   `json:"message"`
	Suggestion string   `json:"suggestion"`
}

// Description length band recommended for search snippets, in characters.
const (
	DescriptionMin = 120
	DescriptionMax = 160
)

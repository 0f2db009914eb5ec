package analysis

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const minInternalLinks = 3

// Analyze returns editor feedback for a post in a fixed order: keyphrase
// presence, keyphrase in title, keyphrase in body, description presence,
// description length, description terms, body length, image alt text (only
// when the body has images), featured image and internal links.
func Analyze(doc Document, meta Meta, lex *Lexicon) []Finding {
	if lex == nil {
		lex = DefaultLexicon()
	}
	st := inspect(doc.Body)
	kp := strings.TrimSpace(meta.FocusKeyphrase)
	desc := strings.TrimSpace(meta.Description)

	out := make([]Finding, 0, 10)
	out = append(out, keyphraseFindings(doc, st.text, kp)...)
	out = append(out, descriptionFindings(desc, lex.DomainTerms)...)
	out = append(out, bodyLengthFinding(st.words))
	if st.images > 0 {
		out = append(out, imageAltFinding(st.images, st.imagesAlt))
	}
	out = append(out, featuredImageFinding(doc.HasFeaturedImage))
	out = append(out, internalLinksFinding(countInternal(st.links, doc.SiteURL)))
	return out
}

func good(c Check, msg string) Finding {
	return Finding{Check: c, Severity: Good, Message: msg}
}

func keyphraseFindings(doc Document, text, kp string) []Finding {
	if kp == "" {
		const setFirst = "Set a focus keyphrase first."
		return []Finding{
			{Check: CheckKeyphrasePresence, Severity: Bad, Message: "No focus keyphrase is set.",
				Suggestion: "Pick the main phrase you want this page to rank for."},
			{Check: CheckKeyphraseInTitle, Severity: OK, Message: "Keyphrase in title could not be checked.",
				Suggestion: setFirst},
			{Check: CheckKeyphraseInBody, Severity: OK, Message: "Keyphrase in content could not be checked.",
				Suggestion: setFirst},
		}
	}

	out := []Finding{good(CheckKeyphrasePresence, fmt.Sprintf("Focus keyphrase %q is set.", kp))}
	if containsFold(doc.Title, kp) {
		out = append(out, good(CheckKeyphraseInTitle, "The focus keyphrase appears in the title."))
	} else {
		out = append(out, Finding{Check: CheckKeyphraseInTitle, Severity: Bad,
			Message:    "The focus keyphrase does not appear in the title.",
			Suggestion: "Work the keyphrase into the title, ideally near the start."})
	}
	if containsFold(text, kp) {
		out = append(out, good(CheckKeyphraseInBody, "The focus keyphrase appears in the content."))
	} else {
		out = append(out, Finding{Check: CheckKeyphraseInBody, Severity: Bad,
			Message:    "The focus keyphrase does not appear in the content.",
			Suggestion: "Use the keyphrase in the first paragraph and a subheading."})
	}
	return out
}

func descriptionFindings(desc string, terms []string) []Finding {
	if desc == "" {
		return []Finding{
			{Check: CheckDescriptionPresence, Severity: Bad, Message: "No meta description is set.",
				Suggestion: "Write a meta description; search engines show it under the title."},
			{Check: CheckDescriptionLength, Severity: Bad, Message: "The meta description is empty.",
				Suggestion: fmt.Sprintf("Aim for %d to %d characters.", DescriptionMin, DescriptionMax)},
			{Check: CheckDescriptionTerms, Severity: Bad, Message: "There is no meta description to check for key terms.",
				Suggestion: "Mention what the page is about in the description."},
		}
	}

	out := []Finding{good(CheckDescriptionPresence, "A meta description is set.")}

	n := utf8.RuneCountInString(desc)
	switch {
	case n >= DescriptionMin && n <= DescriptionMax:
		out = append(out, good(CheckDescriptionLength, fmt.Sprintf("The meta description is %d characters long.", n)))
	case n < DescriptionMin:
		out = append(out, Finding{Check: CheckDescriptionLength, Severity: OK,
			Message:    fmt.Sprintf("The meta description is only %d characters long.", n),
			Suggestion: fmt.Sprintf("Add detail until it is at least %d characters.", DescriptionMin)})
	default:
		out = append(out, Finding{Check: CheckDescriptionLength, Severity: OK,
			Message:    fmt.Sprintf("The meta description is %d characters long and may be cut off.", n),
			Suggestion: fmt.Sprintf("Shorten it to %d characters or fewer.", DescriptionMax)})
	}

	var found []string
	for _, t := range terms {
		if t = strings.TrimSpace(t); t != "" && containsFold(desc, t) {
			found = append(found, t)
		}
	}
	switch {
	case len(found) > 0:
		out = append(out, good(CheckDescriptionTerms, "The meta description mentions "+strings.Join(found, ", ")+"."))
	case len(terms) == 0:
		out = append(out, Finding{Check: CheckDescriptionTerms, Severity: OK,
			Message:    "No site key terms are configured.",
			Suggestion: "Add default keywords in the SEO settings."})
	default:
		out = append(out, Finding{Check: CheckDescriptionTerms, Severity: OK,
			Message:    "The meta description does not mention any site key terms.",
			Suggestion: "Mention one of: " + strings.Join(firstN(terms, 5), ", ") + "."})
	}
	return out
}

func bodyLengthFinding(words int) Finding {
	switch {
	case words > 800:
		return good(CheckBodyLength, fmt.Sprintf("The content is %d words long.", words))
	case words > 300:
		return Finding{Check: CheckBodyLength, Severity: OK,
			Message:    fmt.Sprintf("The content is %d words long.", words),
			Suggestion: "Longer, in-depth content tends to rank better; aim for more than 800 words."}
	default:
		return Finding{Check: CheckBodyLength, Severity: Bad,
			Message:    fmt.Sprintf("The content is only %d words long.", words),
			Suggestion: "Write at least 300 words."}
	}
}

func imageAltFinding(images, withAlt int) Finding {
	if withAlt*100 >= images*80 {
		return good(CheckImageAlt, fmt.Sprintf("%d of %d images have alt text.", withAlt, images))
	}
	return Finding{Check: CheckImageAlt, Severity: Bad,
		Message:    fmt.Sprintf("Only %d of %d images have alt text.", withAlt, images),
		Suggestion: "Describe every image with an alt attribute."}
}

func featuredImageFinding(has bool) Finding {
	if has {
		return good(CheckFeaturedImage, "A featured image is set.")
	}
	return Finding{Check: CheckFeaturedImage, Severity: Bad,
		Message:    "No featured image is set.",
		Suggestion: "Add a featured image; it is used for social sharing cards."}
}

func internalLinksFinding(n int) Finding {
	switch {
	case n >= minInternalLinks:
		return good(CheckInternalLinks, fmt.Sprintf("The content has %d internal links.", n))
	case n > 0:
		return Finding{Check: CheckInternalLinks, Severity: OK,
			Message:    fmt.Sprintf("The content has %d internal links.", n),
			Suggestion: fmt.Sprintf("Link to at least %d related pages on this site.", minInternalLinks)}
	default:
		return Finding{Check: CheckInternalLinks, Severity: Bad,
			Message:    "The content has no internal links.",
			Suggestion: fmt.Sprintf("Link to at least %d related pages on this site.", minInternalLinks)}
	}
}

func firstN(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

package analysis

import "strings"

// Optimize fills in metadata the author left empty: the focus keyphrase
// becomes the top extracted keyword, the keyword list the top
// KeywordCount keywords, and the description a generated one taken from the
// excerpt (or the body when there is no excerpt). Non-empty fields are
// returned unchanged.
func Optimize(doc Document, meta Meta, lex *Lexicon) Meta {
	if lex == nil {
		lex = DefaultLexicon()
	}
	out := meta
	kpEmpty := strings.TrimSpace(meta.FocusKeyphrase) == ""
	kwEmpty := strings.TrimSpace(meta.Keywords) == ""

	if kpEmpty || kwEmpty {
		kws := ExtractKeywords(doc.Title+" "+PlainText(doc.Body), lex.DomainTerms, lex.BoostFactor, lex.KeywordCount)
		if kpEmpty && len(kws) > 0 {
			out.FocusKeyphrase = kws[0]
		}
		if kwEmpty && len(kws) > 0 {
			out.Keywords = strings.Join(kws, ", ")
		}
	}

	if strings.TrimSpace(meta.Description) == "" {
		src := doc.Excerpt
		if strings.TrimSpace(PlainText(src)) == "" {
			src = doc.Body
		}
		out.Description = lex.GenerateDescription(src)
	}
	return out
}

package analysis

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var stopWords = toSet(strings.Fields(`
a about above after again against all am an and any are as at be because been
before being below between both but by can could did do does doing down during
each few for from further had has have having he her here hers herself him
himself his how i if in into is it its itself just me more most my myself no
nor not now of off on once only or other our ours ourselves out over own same
she should so some such than that the their theirs them themselves then there
these they this those through to too under until up very was we were what when
where which while who whom why will with would you your yours yourself
yourselves also may might must shall us
`))

func toSet(words []string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

// IsStopWord reports whether w (lowercase) is in the fixed stop-word set.
func IsStopWord(w string) bool {
	_, ok := stopWords[w]
	return ok
}

// ExtractKeywords returns up to topN terms of text ranked by frequency.
// Text is lowercased and split on whitespace; punctuation at either end of a
// token is dropped and stop words are skipped. A term that is a word of any
// boost entry has its count multiplied by factor (a factor <= 0 disables boosting). Terms with
// equal weight keep the order in which they first appear.
//
// This is a frequency count, not linguistic keyword extraction.
func ExtractKeywords(text string, boost []string, factor float64, topN int) []string {
	if topN <= 0 {
		return []string{}
	}
	if factor <= 0 {
		factor = 1
	}

	lower := cases.Lower(language.Und)
	boosted := make(map[string]struct{}, len(boost))
	for _, b := range boost {
		for _, w := range strings.Fields(lower.String(b)) {
			if w = trimToken(w); w != "" {
				boosted[w] = struct{}{}
			}
		}
	}

	type term struct {
		word   string
		weight float64
	}
	var terms []term
	index := make(map[string]int)
	for _, tok := range strings.Fields(lower.String(text)) {
		w := trimToken(tok)
		if w == "" || IsStopWord(w) {
			continue
		}
		if i, ok := index[w]; ok {
			terms[i].weight++
			continue
		}
		index[w] = len(terms)
		terms = append(terms, term{word: w, weight: 1})
	}

	for i := range terms {
		if _, ok := boosted[terms[i].word]; ok {
			terms[i].weight *= factor
		}
	}
	sort.SliceStable(terms, func(i, j int) bool {
		return terms[i].weight > terms[j].weight
	})

	n := min(topN, len(terms))
	out := make([]string, n)
	for i := range out {
		out[i] = terms[i].word
	}
	return out
}

// trimToken drops leading and trailing runes that are neither letters nor
// digits.
func trimToken(tok string) string {
	return strings.TrimFunc(tok, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

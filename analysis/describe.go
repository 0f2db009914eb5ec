package analysis

import (
	"regexp"
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// MaxDescription is the hard length cap, in characters, of a generated description.
const MaxDescription = 160

// A sentence ends at . ? or ! followed by whitespace and a lowercase letter.
// Capitalized sentence starts are deliberately not treated as boundaries.
var sentenceBoundary = regexp.MustCompile(`[.?!]\s+[a-z]`)

// GenerateDescription builds a meta description from text using the default lexicon.
func GenerateDescription(text string) string {
	return DefaultLexicon().GenerateDescription(text)
}

// GenerateDescription picks the best-scoring sentence of text as a meta
// description. A sentence earns 5 points for having between 16 and 29 words,
// 3 per domain term it contains and 2 per power word. Terms match
// whole words only, ignoring case. When nothing scores,
// the fallback prefix followed by the first 20 words of text is used.
//
// The result is cut at MaxDescription characters without regard to word
// boundaries.
func (l *Lexicon) GenerateDescription(text string) string {
	text = PlainText(text)

	best, bestScore := "", 0
	for _, s := range splitSentences(text) {
		if sc := l.sentenceScore(s); sc > bestScore {
			best, bestScore = s, sc
		}
	}
	if bestScore == 0 {
		words := strings.Fields(text)
		best = strings.TrimSpace(l.FallbackPrefix + " " + strings.Join(firstN(words, 20), " "))
	}
	return truncate(best, MaxDescription)
}

func splitSentences(text string) []string {
	var out []string
	start := 0
	for _, m := range sentenceBoundary.FindAllStringIndex(text, -1) {
		if s := strings.TrimSpace(text[start : m[0]+1]); s != "" {
			out = append(out, s)
		}
		// the lowercase letter opens the next sentence
		start = m[1] - 1
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		out = append(out, s)
	}
	return out
}

func (l *Lexicon) sentenceScore(s string) int {
	score := 0
	if n := len(strings.Fields(s)); n > 15 && n < 30 {
		score += 5
	}
	toks := foldTokens(s)
	for _, t := range l.DomainTerms {
		if hasPhrase(toks, foldTokens(t)) {
			score += 3
		}
	}
	for _, w := range l.PowerWords {
		if hasPhrase(toks, foldTokens(w)) {
			score += 2
		}
	}
	return score
}

// foldTokens case-folds s and splits it into words with edge punctuation
// removed.
func foldTokens(s string) []string {
	var out []string
	for _, f := range strings.Fields(cases.Fold().String(s)) {
		if w := trimToken(f); w != "" {
			out = append(out, w)
		}
	}
	return out
}

// hasPhrase reports whether phrase occurs in toks as a run of whole words.
func hasPhrase(toks, phrase []string) bool {
	if len(phrase) == 0 {
		return false
	}
	for i := 0; i+len(phrase) <= len(toks); i++ {
		if slices.Equal(toks[i:i+len(phrase)], phrase) {
			return true
		}
	}
	return false
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

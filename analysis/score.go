package analysis

import (
	"strings"
	"unicode/utf8"
)

const (
	baseScore = 50
	maxScore  = 100
	minScore  = 0
)

// ComputeScore grades a post from 0 to 100. The score starts at 50 and
// collects fixed bonuses; it is never penalized below the base, and the
// total is clamped because every bonus together exceeds 100.
func ComputeScore(doc Document, meta Meta) int {
	st := inspect(doc.Body)
	score := baseScore

	if kp := strings.TrimSpace(meta.FocusKeyphrase); kp != "" {
		score += 10
		if containsFold(doc.Title, kp) {
			score += 5
		}
		if containsFold(st.text, kp) {
			score += 5
		}
	}

	if n := utf8.RuneCountInString(strings.TrimSpace(meta.Description)); n > 0 {
		score += 5
		if n >= DescriptionMin && n <= DescriptionMax {
			score += 10
		} else {
			score += 5
		}
	}

	switch {
	case st.words > 1500:
		score += 15
	case st.words > 800:
		score += 10
	case st.words > 300:
		score += 5
	}

	if st.images > 0 && st.imagesAlt*100 >= st.images*80 {
		score += 10
	}

	if st.paragraphs > 5 && st.headings >= 2 {
		score += 10
	}

	if doc.HasFeaturedImage {
		score += 10
	}

	return clamp(score)
}

func clamp(score int) int {
	if score > maxScore {
		return maxScore
	}
	if score < minScore {
		return minScore
	}
	return score
}

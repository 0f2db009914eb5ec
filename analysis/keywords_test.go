package analysis

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExtractKeywordsBoostedTermFirst(t *testing.T) {
	text := "Bugema University offers quality education in Uganda. Bugema University offers quality education."
	got := ExtractKeywords(text, []string{"bugema"}, 2, 3)
	want := []string{"bugema", "university", "offers"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ExtractKeywords mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractKeywordsBoostBreaksTies(t *testing.T) {
	got := ExtractKeywords("alpha beta gamma", []string{"GAMMA"}, 1.5, 3)
	want := []string{"gamma", "alpha", "beta"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ExtractKeywords mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractKeywordsSkipsStopWords(t *testing.T) {
	got := ExtractKeywords("The and of the THE a an is was to golang", nil, 2, 10)
	want := []string{"golang"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ExtractKeywords mismatch (-want +got):\n%s", diff)
	}
	for _, w := range got {
		if IsStopWord(w) {
			t.Errorf("stop word %q returned", w)
		}
	}
}

func TestExtractKeywordsTopN(t *testing.T) {
	text := "one two three four five six seven eight nine ten"
	for _, n := range []int{0, 1, 4, 10, 25} {
		got := ExtractKeywords(text, nil, 2, n)
		if len(got) > n {
			t.Errorf("topN=%d: got %d terms", n, len(got))
		}
	}
	if got := ExtractKeywords(text, nil, 2, -1); len(got) != 0 {
		t.Errorf("negative topN returned %v", got)
	}
}

func TestExtractKeywordsStableOrder(t *testing.T) {
	got := ExtractKeywords("zeta, alpha; zeta! alpha? mu", nil, 2, 3)
	want := []string{"zeta", "alpha", "mu"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ExtractKeywords mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractKeywordsEmpty(t *testing.T) {
	if got := ExtractKeywords("  ", []string{"x"}, 2, 5); len(got) != 0 {
		t.Fatalf("ExtractKeywords(blank) = %v, want empty", got)
	}
}

func TestExtractKeywordsBoostsEachWordOfPhrase(t *testing.T) {
	text := "campus campus campus bugema university bugema university"
	got := ExtractKeywords(text, []string{"Bugema University"}, 2, 3)
	want := []string{"bugema", "university", "campus"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ExtractKeywords mismatch (-want +got):\n%s", diff)
	}
}

package analysis

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
)

func TestGenerateDescriptionEmptyUsesFallback(t *testing.T) {
	got := GenerateDescription("")
	if got != DefaultLexicon().FallbackPrefix {
		t.Fatalf("GenerateDescription(\"\") = %q, want fallback prefix", got)
	}
}

func TestGenerateDescriptionNeverExceedsLimit(t *testing.T) {
	inputs := []string{
		"",
		"short",
		strings.Repeat("word ", 500),
		strings.Repeat("ünïcödé ", 100),
		"<p>" + strings.Repeat("The best guide ever written about things. ", 40) + "</p>",
		strings.Repeat("a", 1000),
	}
	for _, in := range inputs {
		got := GenerateDescription(in)
		if n := utf8.RuneCountInString(got); n > MaxDescription {
			t.Errorf("len = %d for input of %d bytes", n, len(in))
		}
		if !utf8.ValidString(got) {
			t.Errorf("invalid UTF-8 output %q", got)
		}
	}
}

func TestGenerateDescriptionPicksBestSentence(t *testing.T) {
	lex := DefaultLexicon().WithTerms("uganda")
	text := "welcome to our site. we offer the best courses for students who want to study hard and finish a degree in uganda with great support. thanks for reading."
	got := lex.GenerateDescription(text)
	want := "we offer the best courses for students who want to study hard and finish a degree in uganda with great support."
	if got != want {
		t.Fatalf("GenerateDescription = %q, want %q", got, want)
	}
}

func TestGenerateDescriptionZeroScoresFallBack(t *testing.T) {
	lex := DefaultLexicon()
	text := "one two three. four five six."
	got := lex.GenerateDescription(text)
	want := lex.FallbackPrefix + " one two three. four five six."
	if got != want {
		t.Fatalf("GenerateDescription = %q, want %q", got, want)
	}
}

func TestGenerateDescriptionHardCut(t *testing.T) {
	lex := &Lexicon{PowerWords: []string{"ultimate"}}
	sentence := "the ultimate " + strings.Repeat("longword ", 30)
	got := lex.GenerateDescription(sentence)
	if utf8.RuneCountInString(got) != MaxDescription {
		t.Fatalf("len = %d, want %d", utf8.RuneCountInString(got), MaxDescription)
	}
	if got != sentence[:MaxDescription] {
		t.Fatalf("not a hard prefix cut: %q", got)
	}
}

func TestSplitSentences(t *testing.T) {
	got := splitSentences("first one. second one? Third stays. fourth! end")
	want := []string{"first one.", "second one? Third stays.", "fourth!", "end"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("splitSentences mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateDescriptionMatchesWholeWords(t *testing.T) {
	lex := &Lexicon{PowerWords: []string{"top"}, DomainTerms: []string{"free"}, FallbackPrefix: "Read on."}
	got := lex.GenerateDescription("please stop here. freedom is another line.")
	want := "Read on. please stop here. freedom is another line."
	if got != want {
		t.Fatalf("GenerateDescription = %q, want %q", got, want)
	}

	lex = &Lexicon{DomainTerms: []string{"Bugema University"}}
	got = lex.GenerateDescription("apply now. study at bugema university, uganda.")
	if got != "study at bugema university, uganda." {
		t.Fatalf("phrase term not matched: %q", got)
	}
}

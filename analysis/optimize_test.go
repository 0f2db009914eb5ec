package analysis

import (
	"strings"
	"testing"
)

func TestOptimizeFillsEmptyFields(t *testing.T) {
	doc := Document{
		Title: "Bugema University",
		Body:  "<p>Bugema University offers quality education in Uganda. Bugema University offers quality education.</p>",
	}
	lex := DefaultLexicon().WithTerms("bugema")
	got := Optimize(doc, Meta{}, lex)

	if got.FocusKeyphrase != "bugema" {
		t.Errorf("FocusKeyphrase = %q, want bugema", got.FocusKeyphrase)
	}
	if !strings.HasPrefix(got.Keywords, "bugema, university") {
		t.Errorf("Keywords = %q", got.Keywords)
	}
	if n := len(strings.Split(got.Keywords, ", ")); n > lex.KeywordCount {
		t.Errorf("got %d keywords, want at most %d", n, lex.KeywordCount)
	}
	if got.Description == "" || len([]rune(got.Description)) > MaxDescription {
		t.Errorf("Description = %q", got.Description)
	}
}

func TestOptimizeKeepsAuthorValues(t *testing.T) {
	meta := Meta{FocusKeyphrase: "mine", Keywords: "a, b", Description: "Written by hand."}
	got := Optimize(Document{Title: "Other words", Body: "<p>different text entirely</p>"}, meta, nil)
	if got != meta {
		t.Fatalf("Optimize changed author values: %+v", got)
	}
}

func TestOptimizePrefersExcerpt(t *testing.T) {
	doc := Document{
		Body:    "<p>body text only</p>",
		Excerpt: "the ultimate excerpt for this post.",
	}
	got := Optimize(doc, Meta{FocusKeyphrase: "x", Keywords: "y"}, nil)
	if got.Description != "the ultimate excerpt for this post." {
		t.Fatalf("Description = %q", got.Description)
	}
}

func TestOptimizeUsesPhraseTerms(t *testing.T) {
	doc := Document{Body: "<p>campus campus campus bugema university bugema university</p>"}
	got := Optimize(doc, Meta{}, DefaultLexicon().WithTerms("Bugema University"))
	if got.FocusKeyphrase != "bugema" {
		t.Errorf("FocusKeyphrase = %q, want bugema", got.FocusKeyphrase)
	}
	if !strings.HasPrefix(got.Keywords, "bugema, university, campus") {
		t.Errorf("Keywords = %q", got.Keywords)
	}
}

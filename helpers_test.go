package seoengine

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Hello World":         "hello-world",
		"  Go -- is   fun! ":  "go-is-fun",
		"Café Menü":           "cafe-menu",
		"Bugema University's": "bugema-university-s",
		"---":                 "",
	}
	for in, want := range tests {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestURLHelpers(t *testing.T) {
	if got := BuildURL("https://example.com"); got != "https://example.com/" {
		t.Errorf("BuildURL = %q", got)
	}
	if got := BuildURL("https://example.com", "blog", "post"); got != "https://example.com/blog/post/" {
		t.Errorf("BuildURL = %q", got)
	}
	if got := AbsURL("https://example.com/sub", "/blog/post/"); got != "https://example.com/sub/blog/post/" {
		t.Errorf("AbsURL = %q", got)
	}
	if got := AssetURL("https://example.com", "public", "uploads", "a.jpg"); got != "https://example.com/public/uploads/a.jpg" {
		t.Errorf("AssetURL = %q", got)
	}
}

func TestSplitKeywords(t *testing.T) {
	got := SplitKeywords(" go, ,web ,  seo ")
	if diff := cmp.Diff([]string{"go", "web", "seo"}, got); diff != "" {
		t.Errorf("SplitKeywords mismatch (-want +got):\n%s", diff)
	}
	if got := SplitKeywords(""); len(got) != 0 {
		t.Errorf("SplitKeywords(\"\") = %v", got)
	}
}

func TestPostHTML(t *testing.T) {
	p := Post{Format: FormatMarkdown, Content: "## Title\n\nSome *text*."}
	got := p.HTML()
	for _, want := range []string{`<h2 id="title">Title</h2>`, `<p>Some <em>text</em>.</p>`} {
		if !strings.Contains(got, want) {
			t.Errorf("HTML() = %q, missing %q", got, want)
		}
	}
	raw := Post{Format: FormatHTML, Content: "<p>as is</p>"}
	if got := raw.HTML(); got != "<p>as is</p>" {
		t.Errorf("HTML() = %q", got)
	}
}

func TestPostLink(t *testing.T) {
	if got := (Post{Slug: "x", Type: TypePost}).Link(); got != "/blog/x/" {
		t.Errorf("post link = %q", got)
	}
	if got := (Post{Slug: "about", Type: TypePage}).Link(); got != "/about/" {
		t.Errorf("page link = %q", got)
	}
}

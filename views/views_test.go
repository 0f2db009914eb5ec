package views

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"github.com/eringen/seoengine"
	"github.com/eringen/seoengine/analysis"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

func TestPostEscapesTitleAndRendersContent(t *testing.T) {
	out := render(t, Post(seoengine.PostPage{
		Head:     templ.Raw("<title>x</title>"),
		SiteName: "Site",
		Post:     seoengine.Post{Title: `<script>alert(1)</script>`, Type: seoengine.TypePage},
		Content:  templ.Raw("<p>body</p>"),
	}))
	if strings.Contains(out, "<script>alert") {
		t.Errorf("title not escaped:\n%s", out)
	}
	for _, want := range []string{"<title>x</title>", "<p>body</p>", "&lt;script&gt;"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q:\n%s", want, out)
		}
	}
}

func TestAdminEditor(t *testing.T) {
	out := render(t, AdminEditor(seoengine.EditorPage{
		Post: seoengine.Post{ID: 7, Slug: "go", Title: "Go", Format: seoengine.FormatHTML},
		Meta: seoengine.Metadata{Description: "Short.", Score: 65, Scored: true},
		Findings: []analysis.Finding{
			{Check: analysis.CheckBodyLength, Severity: analysis.Bad, Message: "Too short.", Suggestion: "Write more."},
		},
		WordCount: 412,
		CSRFToken: "tok",
	}))
	for _, want := range []string{
		`<form id="seo-editor"`,
		`name="_csrf" value="tok"`,
		`name="id" value="7"`,
		`name="seo_meta_description"`,
		`<small id="seo-description-count">6/160</small>`,
		`SEO score: 65/100`,
		`<p class="seo-words">412 words</p>`,
		`<li class="finding bad">Too short. Write more.</li>`,
		`<option value="html" selected>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("editor missing %q:\n%s", want, out)
		}
	}
}

func TestScoreClass(t *testing.T) {
	for score, want := range map[int]string{100: "good", 80: "good", 79: "ok", 60: "ok", 59: "bad"} {
		if got := ScoreClass(score); got != want {
			t.Errorf("ScoreClass(%d) = %q, want %q", score, got, want)
		}
	}
}

func TestDefaultIsComplete(t *testing.T) {
	v := Default()
	if v.Home == nil || v.Post == nil || v.AdminLogin == nil || v.AdminDashboard == nil ||
		v.AdminEditor == nil || v.AdminSettings == nil || v.NotFound == nil || v.ServerError == nil {
		t.Fatalf("Default() left a view unset: %+v", v)
	}
}

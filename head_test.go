package seoengine

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func joined(frags []string) string {
	return strings.Join(frags, "\n")
}

func TestOnRenderHeadRobots(t *testing.T) {
	dev, _ := newTestEngine(t, SiteConfig{})
	if out := joined(dev.OnRenderHead(nil)); !strings.Contains(out, `<meta name="robots" content="noindex,nofollow">`) {
		t.Errorf("non-production head should be noindex:\n%s", out)
	}

	prod, _ := newTestEngine(t, SiteConfig{Production: true})
	out := joined(prod.OnRenderHead(nil))
	if strings.Contains(out, "noindex") {
		t.Errorf("production head must be indexable:\n%s", out)
	}
	if !strings.Contains(out, `content="index, follow`) {
		t.Errorf("production head missing index directive:\n%s", out)
	}
}

func TestOnRenderHeadHome(t *testing.T) {
	e, s := newTestEngine(t, SiteConfig{Name: "Config Name"})
	if err := s.SaveSettings(Settings{SiteTitle: "My Site", SiteDescription: "All about Go.", TwitterHandle: "@mysite"}); err != nil {
		t.Fatal(err)
	}
	frags := e.OnRenderHead(nil)
	if frags[0] != `<meta charset="utf-8">` {
		t.Errorf("first fragment = %q, want charset", frags[0])
	}
	out := joined(frags)
	for _, want := range []string{
		`<title>My Site</title>`,
		`<meta name="description" content="All about Go.">`,
		`<link rel="canonical" href="https://example.com/">`,
		`"@type":"WebSite"`,
		`<meta property="og:type" content="website">`,
		`<meta name="twitter:card" content="summary">`,
		`<meta name="twitter:site" content="@mysite">`,
		`<link rel="alternate" type="application/rss+xml"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("home head missing %q:\n%s", want, out)
		}
	}
}

func TestOnRenderHeadPost(t *testing.T) {
	e, s := newTestEngine(t, SiteConfig{Name: "Site", IconURL: "https://example.com/icon.png", Author: "Site Team"})
	p := mustSave(t, s, Post{
		Slug:          "go-tips",
		Title:         `Go "tips" & <tricks>`,
		Content:       "<p>x</p>",
		FeaturedImage: "go-tips.jpg",
		Published:     true,
	})
	if err := s.SaveMeta(p.ID, Metadata{Keywords: "go, tips", Description: "Ten practical Go tips."}); err != nil {
		t.Fatal(err)
	}

	out := joined(e.OnRenderHead(&p))
	for _, want := range []string{
		`<title>Go &#34;tips&#34; &amp; &lt;tricks&gt; | Site</title>`,
		`<meta name="description" content="Ten practical Go tips.">`,
		`<meta name="keywords" content="go, tips">`,
		`<link rel="canonical" href="https://example.com/blog/go-tips/">`,
		`<meta property="og:type" content="article">`,
		`<meta property="og:image" content="https://example.com/public/uploads/go-tips.jpg">`,
		`<meta property="og:image:width" content="1200">`,
		`<meta property="og:image:height" content="630">`,
		`<meta name="twitter:card" content="summary_large_image">`,
		`<meta property="article:published_time"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("post head missing %q:\n%s", want, out)
		}
	}

	ld := extractJSONLD(t, out)
	if ld["@type"] != "Article" {
		t.Errorf("@type = %v, want Article", ld["@type"])
	}
	if ld["headline"] != p.Title {
		t.Errorf("headline = %v, want %q", ld["headline"], p.Title)
	}
	if ld["keywords"] != "go, tips" {
		t.Errorf("keywords = %v", ld["keywords"])
	}
	publisher, _ := ld["publisher"].(map[string]interface{})
	logo, _ := publisher["logo"].(map[string]interface{})
	if logo["url"] != "https://example.com/icon.png" {
		t.Errorf("publisher logo = %v", publisher)
	}
	image, _ := ld["image"].(map[string]interface{})
	if image["width"] != float64(1200) || image["height"] != float64(630) {
		t.Errorf("image = %v, want 1200x630", image)
	}
	author, _ := ld["author"].(map[string]interface{})
	if author["name"] != "Site Team" {
		t.Errorf("author = %v", author)
	}
}

func TestOnRenderHeadFallsBackToDefaultDescription(t *testing.T) {
	e, s := newTestEngine(t, SiteConfig{})
	if err := s.SaveSettings(Settings{DefaultDescription: "Site-wide description."}); err != nil {
		t.Fatal(err)
	}
	p := mustSave(t, s, Post{Slug: "bare", Title: "Bare", Type: TypePage, Published: true})

	out := joined(e.OnRenderHead(&p))
	if !strings.Contains(out, `<meta name="description" content="Site-wide description.">`) {
		t.Errorf("missing default description:\n%s", out)
	}
	if !strings.Contains(out, `<link rel="canonical" href="https://example.com/bare/">`) {
		t.Errorf("page canonical should not include /blog/:\n%s", out)
	}
	if strings.Contains(out, "article:published_time") {
		t.Errorf("pages carry no article times:\n%s", out)
	}
}

func TestJSONLDCannotCloseScript(t *testing.T) {
	out := jsonLD(map[string]interface{}{"headline": "</script><script>alert(1)</script>"})
	if strings.Count(out, "</script>") != 1 {
		t.Errorf("payload closed the script element: %s", out)
	}
}

func TestHeadComponent(t *testing.T) {
	var buf bytes.Buffer
	if err := HeadComponent([]string{"<a>", "<b>"}).Render(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "<a>\n<b>\n" {
		t.Errorf("rendered %q", got)
	}
}

func TestArticleTimesAreRFC3339(t *testing.T) {
	e, s := newTestEngine(t, SiteConfig{})
	p := mustSave(t, s, Post{Slug: "t", Title: "T", Published: true})
	out := joined(e.OnRenderHead(&p))
	want := `<meta property="article:modified_time" content="` + p.ModifiedAt.Format(time.RFC3339) + `">`
	if !strings.Contains(out, want) {
		t.Errorf("missing %q:\n%s", want, out)
	}
}

func extractJSONLD(t *testing.T, head string) map[string]interface{} {
	t.Helper()
	const open = `<script type="application/ld+json">`
	i := strings.Index(head, open)
	if i < 0 {
		t.Fatalf("no JSON-LD in head:\n%s", head)
	}
	rest := head[i+len(open):]
	j := strings.Index(rest, "</script>")
	var out map[string]interface{}
	if err := json.Unmarshal([]byte(rest[:j]), &out); err != nil {
		t.Fatalf("invalid JSON-LD: %v", err)
	}
	return out
}

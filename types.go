package seoengine

import (
	"bytes"
	"time"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"github.com/eringen/seoengine/analysis"
)

// Post types and body formats.
const (
	TypePost = "post"
	TypePage = "page"

	FormatHTML     = "html"
	FormatMarkdown = "markdown"
)

// Post is a content item (article or page) stored in SQLite.
type Post struct {
	ID            int64
	Slug          string
	Type          string // TypePost or TypePage
	Title         string
	Content       string
	Format        string // FormatHTML or FormatMarkdown
	Excerpt       string
	Author        string
	FeaturedImage string // file name under the uploads directory, empty if none
	Published     bool
	PublishedAt   time.Time
	ModifiedAt    time.Time
}

// HasFeaturedImage reports whether the post has a featured image.
func (p Post) HasFeaturedImage() bool {
	return p.FeaturedImage != ""
}

// Link returns the site-relative URL of the post: /blog/<slug>/ for posts
// and /<slug>/ for pages.
func (p Post) Link() string {
	if p.Type == TypePage {
		return "/" + p.Slug + "/"
	}
	return "/blog/" + p.Slug + "/"
}

// HTML returns the post body as HTML, rendering Markdown bodies first.
func (p Post) HTML() string {
	if p.Format != FormatMarkdown {
		return p.Content
	}
	ext := parser.CommonExtensions | parser.AutoHeadingIDs
	doc := markdown.Parse([]byte(p.Content), parser.NewWithExtensions(ext))
	r := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags | mdhtml.HrefTargetBlank})
	return string(bytes.TrimSpace(markdown.Render(doc, r)))
}

// Metadata is the SEO data attached 1:1 to a post. Score is derived and
// only written by the engine after scoring; Scored is false until then.
type Metadata struct {
	FocusKeyphrase string
	Keywords       string
	Description    string
	Score          int
	Scored         bool
}

func (m Metadata) analysisMeta() analysis.Meta {
	return analysis.Meta{
		FocusKeyphrase: m.FocusKeyphrase,
		Keywords:       m.Keywords,
		Description:    m.Description,
	}
}

// Post meta keys.
const (
	metaFocusKeyphrase = "_seo_focus_keyphrase"
	metaKeywords       = "_seo_keywords"
	metaDescription    = "_seo_meta_description"
	metaScore          = "_seo_score"
)

// Form field names read by Engine.OnSave.
const (
	FieldFocusKeyphrase = "seo_focus_keyphrase"
	FieldKeywords       = "seo_keywords"
	FieldDescription    = "seo_meta_description"
)

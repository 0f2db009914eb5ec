package seoengine

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/a-h/templ"
)

// Featured images are cropped to the size social cards expect.
const (
	featuredWidth  = 1200
	featuredHeight = 630
)

// OnRenderHead returns the ordered <head> fragments for a post or page, or
// for the homepage when post is nil. Storage errors degrade to empty
// metadata; they never suppress the page.
func (e *Engine) OnRenderHead(post *Post) []string {
	settings, err := e.cache.Settings()
	if err != nil {
		e.logger.Warnf("head: load settings: %v", err)
	}
	siteName := settings.Title(e.cfg.Name)

	frags := []string{
		`<meta charset="utf-8">`,
		`<meta name="viewport" content="width=device-width, initial-scale=1.0, maximum-scale=5.0">`,
		robotsMeta(e.cfg.Production),
	}
	if post == nil {
		return append(frags, e.homeHead(settings, siteName)...)
	}
	meta, err := e.store.GetMeta(post.ID)
	if err != nil {
		e.logger.Warnf("head: load meta for post %d: %v", post.ID, err)
	}
	return append(frags, e.postHead(*post, meta, settings, siteName)...)
}

func robotsMeta(production bool) string {
	if !production {
		return `<meta name="robots" content="noindex,nofollow">`
	}
	return `<meta name="robots" content="index, follow, max-image-preview:large, max-snippet:-1, max-video-preview:-1">`
}

func (e *Engine) homeHead(s Settings, siteName string) []string {
	desc := s.SiteDescription
	if desc == "" {
		desc = e.cfg.Description
	}
	canonical := BuildURL(e.cfg.URL)

	ld := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     siteName,
		"url":      canonical,
	}
	if desc != "" {
		ld["description"] = desc
	}

	frags := []string{"<title>" + templ.EscapeString(siteName) + "</title>"}
	frags = appendNonEmpty(frags, metaName("description", desc), metaName("keywords", s.DefaultKeywords))
	frags = append(frags, linkTag("canonical", canonical), jsonLD(ld))
	frags = append(frags, e.social(s, socialCard{
		ogType:   "website",
		title:    siteName,
		desc:     desc,
		url:      canonical,
		siteName: siteName,
	})...)
	return append(frags, e.feedLink(siteName))
}

func (e *Engine) postHead(p Post, m Metadata, s Settings, siteName string) []string {
	desc := m.Description
	if desc == "" {
		desc = s.DefaultDescription
	}
	keywords := m.Keywords
	if keywords == "" {
		keywords = s.DefaultKeywords
	}
	author := p.Author
	if author == "" {
		author = e.cfg.Author
	}
	canonical := AbsURL(e.cfg.URL, p.Link())
	var image string
	if p.HasFeaturedImage() {
		image = AssetURL(e.cfg.URL, "public", uploadsSubdir, p.FeaturedImage)
	}

	publisher := map[string]interface{}{
		"@type": "Organization",
		"name":  siteName,
	}
	if e.cfg.IconURL != "" {
		publisher["logo"] = map[string]string{
			"@type": "ImageObject",
			"url":   e.cfg.IconURL,
		}
	}
	ld := map[string]interface{}{
		"@context":     "https://schema.org",
		"@type":        "Article",
		"headline":     p.Title,
		"url":          canonical,
		"dateModified": p.ModifiedAt.Format(time.RFC3339),
		"publisher":    publisher,
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   canonical,
		},
	}
	if desc != "" {
		ld["description"] = desc
	}
	if !p.PublishedAt.IsZero() {
		ld["datePublished"] = p.PublishedAt.Format(time.RFC3339)
	}
	if author != "" {
		ld["author"] = map[string]string{
			"@type": "Person",
			"name":  author,
		}
	}
	if m.Keywords != "" {
		ld["keywords"] = m.Keywords
	}
	if image != "" {
		ld["image"] = map[string]interface{}{
			"@type":  "ImageObject",
			"url":    image,
			"width":  featuredWidth,
			"height": featuredHeight,
		}
	}

	frags := []string{"<title>" + templ.EscapeString(p.Title+" | "+siteName) + "</title>"}
	frags = appendNonEmpty(frags, metaName("description", desc), metaName("keywords", keywords))
	frags = append(frags, linkTag("canonical", canonical), jsonLD(ld))
	ogType := "article"
	if p.Type == TypePage {
		ogType = "website"
	}
	frags = append(frags, e.social(s, socialCard{
		ogType:   ogType,
		title:    p.Title,
		desc:     desc,
		url:      canonical,
		siteName: siteName,
		image:    image,
	})...)
	if ogType == "article" {
		if !p.PublishedAt.IsZero() {
			frags = append(frags, metaProperty("article:published_time", p.PublishedAt.Format(time.RFC3339)))
		}
		frags = append(frags, metaProperty("article:modified_time", p.ModifiedAt.Format(time.RFC3339)))
	}
	return append(frags, e.feedLink(siteName))
}

type socialCard struct {
	ogType, title, desc, url, siteName, image string
}

// social returns the OpenGraph, Twitter and Facebook tags for a page.
func (e *Engine) social(s Settings, c socialCard) []string {
	frags := []string{
		metaProperty("og:locale", e.cfg.Locale),
		metaProperty("og:type", c.ogType),
		metaProperty("og:title", c.title),
	}
	frags = appendNonEmpty(frags, metaProperty("og:description", c.desc))
	frags = append(frags,
		metaProperty("og:url", c.url),
		metaProperty("og:site_name", c.siteName),
	)
	card := "summary"
	if c.image != "" {
		card = "summary_large_image"
		frags = append(frags,
			metaProperty("og:image", c.image),
			metaProperty("og:image:width", fmt.Sprint(featuredWidth)),
			metaProperty("og:image:height", fmt.Sprint(featuredHeight)),
		)
	}
	frags = append(frags, metaName("twitter:card", card), metaName("twitter:title", c.title))
	frags = appendNonEmpty(frags,
		metaName("twitter:description", c.desc),
		metaName("twitter:image", c.image),
		metaName("twitter:site", s.TwitterHandle),
		metaProperty("fb:app_id", s.FacebookAppID),
	)
	return frags
}

func (e *Engine) feedLink(siteName string) string {
	return fmt.Sprintf(`<link rel="alternate" type="application/rss+xml" title="%s" href="%s">`,
		templ.EscapeString(siteName), templ.EscapeString(AssetURL(e.cfg.URL, "feed.xml")))
}

// metaName and metaProperty return "" for empty content so callers can use
// appendNonEmpty for optional tags.
func metaName(name, content string) string {
	if content == "" {
		return ""
	}
	return fmt.Sprintf(`<meta name="%s" content="%s">`, name, templ.EscapeString(content))
}

func metaProperty(property, content string) string {
	if content == "" {
		return ""
	}
	return fmt.Sprintf(`<meta property="%s" content="%s">`, property, templ.EscapeString(content))
}

func linkTag(rel, href string) string {
	return fmt.Sprintf(`<link rel="%s" href="%s">`, rel, templ.EscapeString(href))
}

func appendNonEmpty(frags []string, add ...string) []string {
	for _, f := range add {
		if f != "" {
			frags = append(frags, f)
		}
	}
	return frags
}

// jsonLD wraps data in a JSON-LD script tag. encoding/json escapes <, > and
// &, so the payload cannot close the script element early.
func jsonLD(data map[string]interface{}) string {
	b, err := json.Marshal(data)
	if err != nil {
		b = []byte("{}")
	}
	return `<script type="application/ld+json">` + string(b) + `</script>`
}

// HeadComponent renders head fragments, one per line.
func HeadComponent(frags []string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, f := range frags {
			if _, err := io.WriteString(w, f+"\n"); err != nil {
				return err
			}
		}
		return nil
	})
}

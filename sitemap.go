package seoengine

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// BuildSitemap lists the homepage followed by every published post and page.
// The homepage is always present, so an empty site still yields a valid urlset.
func BuildSitemap(base string, posts []Post) sitemapURLSet {
	home := sitemapURL{
		Loc:        BuildURL(base),
		ChangeFreq: "daily",
		Priority:   "1.0",
	}
	urls := make([]sitemapURL, 0, len(posts)+1)
	urls = append(urls, home)
	for _, p := range posts {
		if !p.Published {
			continue
		}
		u := sitemapURL{
			Loc:        AbsURL(base, p.Link()),
			ChangeFreq: "weekly",
			Priority:   "0.8",
		}
		if !p.ModifiedAt.IsZero() {
			u.LastMod = p.ModifiedAt.UTC().Format("2006-01-02")
			if u.LastMod > urls[0].LastMod {
				urls[0].LastMod = u.LastMod
			}
		}
		urls = append(urls, u)
	}
	return sitemapURLSet{XMLNS: sitemapNS, URLs: urls}
}

// RenderSitemap writes the XML document for set to w.
func RenderSitemap(w io.Writer, set sitemapURLSet) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// WriteSitemap replaces the file at path with the rendered sitemap. The
// document is written to a temporary file first and renamed into place, so
// readers never see a partial sitemap.
func WriteSitemap(path string, set sitemapURLSet) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create sitemap dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".sitemap-*.xml")
	if err != nil {
		return fmt.Errorf("create temp sitemap: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := RenderSitemap(tmp, set); err != nil {
		tmp.Close()
		return fmt.Errorf("render sitemap: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

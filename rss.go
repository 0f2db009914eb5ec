package seoengine

import (
	"encoding/xml"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/seoengine/analysis"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	Language      string    `xml:"language,omitempty"`
	LastBuildDate string    `xml:"lastBuildDate,omitempty"`
	Items         []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	Author      string `xml:"author,omitempty"`
	PubDate     string `xml:"pubDate"`
	GUID        string `xml:"guid"`
}

// feedDescription prefers the SEO description, then the excerpt, then a
// description generated from the body.
func feedDescription(p Post, m Metadata) string {
	switch {
	case m.Description != "":
		return m.Description
	case p.Excerpt != "":
		return p.Excerpt
	default:
		return analysis.GenerateDescription(p.HTML())
	}
}

func (a *App) renderRSS(c echo.Context, posts []Post, metas map[int64]Metadata) error {
	base := a.Config.URL
	items := make([]rssItem, 0, len(posts))
	var newest time.Time
	for _, p := range posts {
		postURL := AbsURL(base, p.Link())
		items = append(items, rssItem{
			Title:       p.Title,
			Link:        postURL,
			Description: feedDescription(p, metas[p.ID]),
			Author:      p.Author,
			PubDate:     p.PublishedAt.Format(time.RFC1123Z),
			GUID:        postURL,
		})
		if p.PublishedAt.After(newest) {
			newest = p.PublishedAt
		}
	}
	channel := rssChannel{
		Title:       a.Config.Name,
		Link:        BuildURL(base),
		Description: a.Config.Description,
		Language:    strings.ToLower(strings.ReplaceAll(a.Config.Locale, "_", "-")),
		Items:       items,
	}
	if !newest.IsZero() {
		channel.LastBuildDate = newest.Format(time.RFC1123Z)
	}
	if s, err := a.Cache.Settings(); err == nil {
		channel.Title = s.Title(a.Config.Name)
		if s.SiteDescription != "" {
			channel.Description = s.SiteDescription
		}
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(rssXML{Version: "2.0", Channel: channel})
}

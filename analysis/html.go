package analysis

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/cases"
)

// bodyStats is the result of a single tokenizer pass over a post body.
type bodyStats struct {
	text       string
	words      int
	paragraphs int
	headings   int
	images     int
	imagesAlt  int
	links      []string
}

func inspect(body string) bodyStats {
	var st bodyStats
	var text strings.Builder
	skip := 0

	z := html.NewTokenizer(strings.NewReader(body))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			st.text = strings.Join(strings.Fields(text.String()), " ")
			st.words = len(strings.Fields(st.text))
			return st
		case html.TextToken:
			if skip == 0 {
				text.Write(z.Text())
				text.WriteByte(' ')
			}
		case html.EndTagToken:
			tok := z.Token()
			if (tok.DataAtom == atom.Script || tok.DataAtom == atom.Style) && skip > 0 {
				skip--
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			switch tok.DataAtom {
			case atom.Script, atom.Style:
				if tt == html.StartTagToken {
					skip++
				}
			case atom.P:
				st.paragraphs++
			case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
				st.headings++
			case atom.Img:
				st.images++
				if strings.TrimSpace(attr(tok, "alt")) != "" {
					st.imagesAlt++
				}
			case atom.A:
				if href := strings.TrimSpace(attr(tok, "href")); href != "" {
					st.links = append(st.links, href)
				}
			}
		}
	}
}

func attr(tok html.Token, key string) string {
	for _, a := range tok.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// PlainText strips markup from s, drops script and style contents, decodes
// entities and collapses runs of whitespace to single spaces.
func PlainText(s string) string {
	return inspect(s).text
}

// Sanitize reduces a free-text form value to a single trimmed line with no
// markup. It is applied to every metadata field before it is stored.
func Sanitize(s string) string {
	return PlainText(s)
}

// WordCount returns the number of whitespace-separated words in the text
// content of an HTML fragment.
func WordCount(body string) int {
	return inspect(body).words
}

// containsFold reports whether substr occurs in s, ignoring case.
func containsFold(s, substr string) bool {
	if substr == "" {
		return false
	}
	fold := cases.Fold()
	return strings.Contains(fold.String(s), fold.String(substr))
}

// countInternal counts links that stay on the site: relative references and
// absolute URLs whose host matches siteURL.
func countInternal(links []string, siteURL string) int {
	var siteHost string
	if u, err := url.Parse(siteURL); err == nil {
		siteHost = strings.ToLower(u.Hostname())
	}
	n := 0
	for _, href := range links {
		if strings.HasPrefix(href, "#") {
			continue
		}
		u, err := url.Parse(href)
		if err != nil {
			continue
		}
		switch {
		case u.Scheme == "" && u.Host == "":
			n++
		case u.Scheme == "http" || u.Scheme == "https" || u.Scheme == "":
			if siteHost != "" && strings.EqualFold(u.Hostname(), siteHost) {
				n++
			}
		}
	}
	return n
}

// Package views provides a plain default set of templates for seoengine.
// Sites that want their own look pass their own seoengine.ViewFuncs instead.
package views

import (
	"context"

	"github.com/a-h/templ"

	"github.com/eringen/seoengine"
)

// Default returns the built-in templates.
func Default() seoengine.ViewFuncs {
	return seoengine.ViewFuncs{
		Home:           Home,
		Post:           Post,
		AdminLogin:     AdminLogin,
		AdminDashboard: AdminDashboard,
		AdminEditor:    AdminEditor,
		AdminSettings:  AdminSettings,
		NotFound:       NotFound,
		ServerError:    ServerError,
	}
}

func layout(head templ.Component, siteName string, body func(ctx context.Context, w *writer)) templ.Component {
	return component(func(ctx context.Context, w *writer) {
		w.raw("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
		w.render(ctx, head)
		w.raw("</head>\n<body>\n<header><a href=\"/\">")
		w.text(siteName)
		w.raw("</a></header>\n<main>\n")
		body(ctx, w)
		w.raw("</main>\n</body>\n</html>\n")
	})
}

// Home lists published posts and pages.
func Home(page seoengine.HomePage) templ.Component {
	return layout(page.Head, page.SiteName, func(ctx context.Context, w *writer) {
		w.printf("<h1>%s</h1>\n", page.SiteName)
		if page.Tagline != "" {
			w.printf("<p class=\"tagline\">%s</p>\n", page.Tagline)
		}
		if len(page.Pages) > 0 {
			w.raw("<nav class=\"pages\">\n")
			for _, p := range page.Pages {
				w.printf("<a href=\"%s\">%s</a>\n", p.Link(), p.Title)
			}
			w.raw("</nav>\n")
		}
		if len(page.Posts) == 0 {
			w.raw("<p>No posts yet.</p>\n")
			return
		}
		w.raw("<ul class=\"posts\">\n")
		for _, p := range page.Posts {
			w.printf("<li><a href=\"%s\">%s</a> <time datetime=\"%s\">%s</time>",
				p.Link(), p.Title, p.PublishedAt.Format("2006-01-02"), FormatDate(p.PublishedAt))
			if p.Excerpt != "" {
				w.printf("<p>%s</p>", p.Excerpt)
			}
			w.raw("</li>\n")
		}
		w.raw("</ul>\n")
	})
}

// Post renders a single post or page.
func Post(page seoengine.PostPage) templ.Component {
	return layout(page.Head, page.SiteName, func(ctx context.Context, w *writer) {
		p := page.Post
		w.raw("<article>\n")
		w.printf("<h1>%s</h1>\n", p.Title)
		if p.Type == seoengine.TypePost {
			w.printf("<p class=\"byline\"><time datetime=\"%s\">%s</time>", p.PublishedAt.Format("2006-01-02"), FormatDate(p.PublishedAt))
			if p.Author != "" {
				w.printf(" by %s", p.Author)
			}
			w.raw("</p>\n")
		}
		if p.HasFeaturedImage() {
			w.printf("<img src=\"/public/uploads/%s\" alt=\"%s\" width=\"1200\" height=\"630\">\n", PathEscape(p.FeaturedImage), p.Title)
		}
		w.raw("<div class=\"content\">\n")
		w.render(ctx, page.Content)
		w.raw("\n</div>\n</article>\n")
	})
}

func errorPage(title, message string) templ.Component {
	return component(func(ctx context.Context, w *writer) {
		w.printf("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n<meta name=\"robots\" content=\"noindex\">\n<title>%s</title>\n</head>\n", title)
		w.printf("<body>\n<main>\n<h1>%s</h1>\n<p>%s</p>\n<p><a href=\"/\">Back to the homepage</a></p>\n</main>\n</body>\n</html>\n", title, message)
	})
}

func NotFound() templ.Component {
	return errorPage("Not found", "The page you are looking for does not exist.")
}

func ServerError() templ.Component {
	return errorPage("Something went wrong", "Please try again in a moment.")
}

package views

import (
	"context"
	"strconv"

	"github.com/a-h/templ"

	"github.com/eringen/seoengine"
	"github.com/eringen/seoengine/analysis"
)

func adminLayout(title, csrf string, loggedIn bool, body func(ctx context.Context, w *writer)) templ.Component {
	return component(func(ctx context.Context, w *writer) {
		w.raw("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
		w.raw("<meta name=\"robots\" content=\"noindex,nofollow\">\n")
		w.printf("<title>%s | Admin</title>\n", title)
		w.raw("<script src=\"/public/admin.js\" defer></script>\n</head>\n<body class=\"admin\">\n")
		if loggedIn {
			w.raw("<nav>\n<a href=\"/admin/\">Posts</a>\n<a href=\"/admin/post/new/\">New post</a>\n<a href=\"/admin/settings/\">Settings</a>\n")
			w.printf("<form method=\"post\" action=\"/admin/logout/\"><input type=\"hidden\" name=\"_csrf\" value=\"%s\"><button>Log out</button></form>\n", csrf)
			w.raw("</nav>\n")
		}
		w.raw("<main>\n")
		body(ctx, w)
		w.raw("</main>\n</body>\n</html>\n")
	})
}

func message(w *writer, msg string) {
	if msg != "" {
		w.printf("<p class=\"message\" role=\"status\">%s</p>\n", msg)
	}
}

func AdminLogin(showError bool, csrf string) templ.Component {
	return adminLayout("Log in", csrf, false, func(ctx context.Context, w *writer) {
		w.raw("<h1>Log in</h1>\n")
		if showError {
			w.raw("<p class=\"message error\">Wrong password.</p>\n")
		}
		w.raw("<form method=\"post\" action=\"/admin/login/\">\n")
		w.printf("<input type=\"hidden\" name=\"_csrf\" value=\"%s\">\n", csrf)
		w.raw("<label>Password <input type=\"password\" name=\"password\" autocomplete=\"current-password\" required></label>\n")
		w.raw("<button>Log in</button>\n</form>\n")
	})
}

// AdminDashboard lists every post with its cached SEO score.
func AdminDashboard(page seoengine.DashboardPage) templ.Component {
	return adminLayout("Posts", page.CSRFToken, true, func(ctx context.Context, w *writer) {
		w.raw("<h1>Posts</h1>\n")
		message(w, page.Message)
		w.raw("<div class=\"actions\">\n")
		for _, a := range []struct{ action, label string }{
			{"/admin/sitemap/", "Regenerate sitemap"},
			{"/admin/optimize/", "Run SEO sweep"},
		} {
			w.printf("<form method=\"post\" action=\"%s\"><input type=\"hidden\" name=\"_csrf\" value=\"%s\"><button>%s</button></form>\n",
				a.action, page.CSRFToken, a.label)
		}
		w.raw("</div>\n")
		if len(page.Rows) == 0 {
			w.raw("<p>No posts yet.</p>\n")
			return
		}
		w.raw("<table>\n<thead><tr><th>Title</th><th>Type</th><th>Status</th><th>SEO</th><th>Focus keyphrase</th><th></th></tr></thead>\n<tbody>\n")
		for _, r := range page.Rows {
			status := "draft"
			if r.Post.Published {
				status = "published"
			}
			w.printf("<tr><td><a href=\"/admin/post/%s/\">%s</a></td><td>%s</td><td>%s</td>",
				PathEscape(r.Post.Slug), r.Post.Title, r.Post.Type, status)
			if r.Meta.Scored {
				w.printf("<td class=\"score %s\">%d</td>", ScoreClass(r.Meta.Score), r.Meta.Score)
			} else {
				w.raw("<td class=\"score\">-</td>")
			}
			w.printf("<td>%s</td>", r.Meta.FocusKeyphrase)
			w.printf("<td><form method=\"post\" action=\"/admin/post/%s/\"><input type=\"hidden\" name=\"_method\" value=\"DELETE\"><input type=\"hidden\" name=\"_csrf\" value=\"%s\"><button>Delete</button></form></td></tr>\n",
				PathEscape(r.Post.Slug), page.CSRFToken)
		}
		w.raw("</tbody>\n</table>\n")
	})
}

// AdminEditor is the post form with the SEO box and its analysis panel.
func AdminEditor(page seoengine.EditorPage) templ.Component {
	p := page.Post
	title := "New post"
	if p.ID != 0 {
		title = "Edit " + p.Title
	}
	return adminLayout(title, page.CSRFToken, true, func(ctx context.Context, w *writer) {
		w.printf("<h1>%s</h1>\n", title)
		message(w, page.Message)
		w.raw("<form id=\"seo-editor\" method=\"post\" action=\"/admin/save/\" enctype=\"multipart/form-data\">\n")
		w.printf("<input type=\"hidden\" name=\"_csrf\" value=\"%s\">\n", page.CSRFToken)
		if p.ID != 0 {
			w.printf("<input type=\"hidden\" name=\"id\" value=\"%s\">\n", strconv.FormatInt(p.ID, 10))
		}
		w.printf("<label>Title <input name=\"title\" value=\"%s\" required></label>\n", p.Title)
		w.printf("<label>Slug <input name=\"slug\" value=\"%s\"></label>\n", p.Slug)
		w.printf("<label>Type <select name=\"type\"><option value=\"post\"%s>Post</option><option value=\"page\"%s>Page</option></select></label>\n",
			selected(p.Type != seoengine.TypePage), selected(p.Type == seoengine.TypePage))
		w.printf("<label>Format <select name=\"format\"><option value=\"markdown\"%s>Markdown</option><option value=\"html\"%s>HTML</option></select></label>\n",
			selected(p.Format == seoengine.FormatMarkdown), selected(p.Format != seoengine.FormatMarkdown))
		w.printf("<label>Content <textarea name=\"content\" rows=\"20\">%s</textarea></label>\n", p.Content)
		w.printf("<label>Excerpt <textarea name=\"excerpt\" rows=\"3\">%s</textarea></label>\n", p.Excerpt)
		w.printf("<label>Author <input name=\"author\" value=\"%s\"></label>\n", p.Author)
		w.printf("<label><input type=\"checkbox\" name=\"published\" value=\"1\"%s> Published</label>\n", checked(p.Published))

		w.raw("<fieldset>\n<legend>Featured image</legend>\n")
		if p.HasFeaturedImage() {
			w.raw("<input type=\"hidden\" name=\"has_featured_image\" value=\"1\">\n")
			w.printf("<img src=\"/public/uploads/%s\" alt=\"\" width=\"300\">\n", PathEscape(p.FeaturedImage))
			w.raw("<label><input type=\"checkbox\" name=\"remove_featured_image\" value=\"1\"> Remove</label>\n")
		}
		w.raw("<input type=\"file\" name=\"featured_image\" accept=\"image/jpeg,image/png,image/gif\">\n</fieldset>\n")

		w.raw("<fieldset>\n<legend>SEO</legend>\n")
		w.printf("<label>Focus keyphrase <input name=\"%s\" value=\"%s\"></label>\n", seoengine.FieldFocusKeyphrase, page.Meta.FocusKeyphrase)
		w.printf("<label>Keywords <input name=\"%s\" value=\"%s\" placeholder=\"comma, separated\"></label>\n", seoengine.FieldKeywords, page.Meta.Keywords)
		w.printf("<label>Meta description <textarea name=\"%s\" rows=\"3\">%s</textarea></label>\n", seoengine.FieldDescription, page.Meta.Description)
		w.printf("<small id=\"seo-description-count\">%d/%d</small>\n", len([]rune(page.Meta.Description)), analysis.DescriptionMax)
		w.raw("<div id=\"seo-analysis\">\n")
		if page.Meta.Scored {
			w.printf("<p class=\"seo-score\">SEO score: %d/100</p>\n", page.Meta.Score)
		}
		if page.Post.ID != 0 {
			w.printf("<p class=\"seo-words\">%d words</p>\n", page.WordCount)
		}
		findings(w, page.Findings)
		w.raw("</div>\n</fieldset>\n")

		w.raw("<button>Save</button>\n</form>\n")
	})
}

func findings(w *writer, fs []analysis.Finding) {
	if len(fs) == 0 {
		return
	}
	w.raw("<ul>\n")
	for _, f := range fs {
		w.printf("<li class=\"finding %s\">%s", string(f.Severity), f.Message)
		if f.Suggestion != "" {
			w.printf(" %s", f.Suggestion)
		}
		w.raw("</li>\n")
	}
	w.raw("</ul>\n")
}

func AdminSettings(page seoengine.SettingsPage) templ.Component {
	s := page.Settings
	return adminLayout("Settings", page.CSRFToken, true, func(ctx context.Context, w *writer) {
		w.raw("<h1>SEO settings</h1>\n")
		message(w, page.Message)
		w.raw("<form method=\"post\" action=\"/admin/settings/\">\n")
		w.printf("<input type=\"hidden\" name=\"_csrf\" value=\"%s\">\n", page.CSRFToken)
		for _, f := range []struct{ name, label, value string }{
			{"site_title", "Site title", s.SiteTitle},
			{"site_description", "Site description", s.SiteDescription},
			{"default_keywords", "Default keywords", s.DefaultKeywords},
			{"default_description", "Default meta description", s.DefaultDescription},
			{"twitter_handle", "Twitter handle", s.TwitterHandle},
			{"facebook_app_id", "Facebook app ID", s.FacebookAppID},
		} {
			w.printf("<label>%s <input name=\"%s\" value=\"%s\"></label>\n", f.label, f.name, f.value)
		}
		w.raw("<button>Save settings</button>\n</form>\n")
	})
}

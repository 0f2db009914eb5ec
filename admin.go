package seoengine

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/seoengine/analysis"
)

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, a.Views.AdminLogin(false, CsrfToken(c)))
	}
	return a.renderAdminDashboard(c, c.QueryParam("msg"))
}

func (a *App) handleAdminLogin(c echo.Context) error {
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	return Render(c, a.Views.AdminLogin(true, CsrfToken(c)))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func (a *App) handleAdminNew(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	return a.renderEditor(c, Post{Type: TypePost, Format: FormatMarkdown}, Metadata{}, "")
}

func (a *App) handleAdminEdit(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	post, err := a.Store.GetPostAny(c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		}
		return err
	}
	meta, err := a.Store.GetMeta(post.ID)
	if err != nil {
		return err
	}
	return a.renderEditor(c, post, meta, c.QueryParam("msg"))
}

// handleAdminSave stores the post fields of the editor form, then hands the
// SEO fields to the engine. Requests without an admin session change nothing.
func (a *App) handleAdminSave(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	if err := c.Request().ParseMultipartForm(maxUploadSize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return err
	}

	var post Post
	if id, err := strconv.ParseInt(c.FormValue("id"), 10, 64); err == nil && id > 0 {
		post, err = a.Store.GetPostByID(id)
		if errors.Is(err, ErrNotFound) {
			return c.Redirect(http.StatusSeeOther, "/admin/?msg=Post+no+longer+exists.")
		}
		if err != nil {
			return err
		}
	}
	wasPublished := post.Published

	post.Title = strings.TrimSpace(c.FormValue("title"))
	slug := Slugify(c.FormValue("slug"))
	if slug == "" {
		slug = Slugify(post.Title)
	}
	if slug == "" {
		return c.Redirect(http.StatusSeeOther, "/admin/?msg=Slug+is+required.+Add+a+title+or+slug.")
	}
	if other, err := a.Store.GetPostAny(slug); err == nil && other.ID != post.ID {
		return c.Redirect(http.StatusSeeOther, "/admin/?msg=Slug+is+already+in+use.")
	}
	post.Slug = slug
	post.Type = TypePost
	if c.FormValue("type") == TypePage {
		post.Type = TypePage
	}
	post.Format = FormatHTML
	if c.FormValue("format") == FormatMarkdown {
		post.Format = FormatMarkdown
	}
	post.Content = c.FormValue("content")
	post.Excerpt = analysis.Sanitize(c.FormValue("excerpt"))
	post.Author = analysis.Sanitize(c.FormValue("author"))
	post.Published = c.FormValue("published") != ""
	if c.FormValue("remove_featured_image") != "" {
		post.FeaturedImage = ""
	}
	if fh, err := c.FormFile("featured_image"); err == nil {
		name, err := a.saveFeaturedImage(fh, post.Slug)
		if err != nil {
			return c.String(http.StatusBadRequest, "Invalid image: "+err.Error())
		}
		post.FeaturedImage = name
	}

	if err := a.Store.SavePost(&post); err != nil {
		return err
	}
	meta, err := a.Engine.OnSave(c.Request().Context(), post, c.Request().Form)
	if err != nil {
		return err
	}
	if wasPublished && !post.Published {
		a.Engine.RegenerateSitemap()
	}
	a.Cache.Invalidate()
	return a.renderEditor(c, post, meta, "saved")
}

func (a *App) handleAdminDelete(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	if err := a.Store.DeletePost(c.Param("slug")); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	a.Cache.Invalidate()
	a.Engine.RegenerateSitemap()
	return a.renderAdminDashboard(c, "deleted")
}

func (a *App) handleAdminSettings(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	s, err := a.Store.LoadSettings()
	if err != nil {
		return err
	}
	return Render(c, a.Views.AdminSettings(SettingsPage{Settings: s, CSRFToken: CsrfToken(c)}))
}

func (a *App) handleAdminSettingsSave(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	var s Settings
	if err := c.Bind(&s); err != nil {
		return err
	}
	for _, f := range s.fields() {
		*f.val = analysis.Sanitize(*f.val)
	}
	if err := c.Validate(&s); err != nil {
		return RenderStatus(c, http.StatusUnprocessableEntity, a.Views.AdminSettings(SettingsPage{
			Settings:  s,
			Message:   err.Error(),
			CSRFToken: CsrfToken(c),
		}))
	}
	if err := a.Store.SaveSettings(s); err != nil {
		return err
	}
	a.Cache.Invalidate()
	return Render(c, a.Views.AdminSettings(SettingsPage{Settings: s, Message: "saved", CSRFToken: CsrfToken(c)}))
}

func (a *App) handleAdminSitemap(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	if err := a.Engine.GenerateSitemap(); err != nil {
		c.Logger().Warnf("sitemap: %v", err)
		return a.renderAdminDashboard(c, "sitemap failed")
	}
	return a.renderAdminDashboard(c, "sitemap written")
}

// handleAdminOptimize runs the scheduled sweep on demand.
func (a *App) handleAdminOptimize(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	if err := a.Engine.OnScheduleTick(c.Request().Context()); err != nil {
		return err
	}
	a.Cache.Invalidate()
	return a.renderAdminDashboard(c, "optimized")
}

type analyzeResponse struct {
	Score       int                `json:"score"`
	WordCount   int                `json:"word_count"`
	Findings    []analysis.Finding `json:"findings"`
	Description string             `json:"suggested_description,omitempty"`
}

// handleAdminAnalyze scores unsaved editor content for the live panel.
func (a *App) handleAdminAnalyze(c echo.Context) error {
	if !IsAdmin(c) {
		return c.NoContent(http.StatusForbidden)
	}
	post := Post{
		Title:   c.FormValue("title"),
		Content: c.FormValue("content"),
		Format:  c.FormValue("format"),
		Excerpt: c.FormValue("excerpt"),
	}
	if c.FormValue("has_featured_image") != "" {
		post.FeaturedImage = "set"
	}
	meta := Metadata{
		FocusKeyphrase: analysis.Sanitize(c.FormValue(FieldFocusKeyphrase)),
		Keywords:       analysis.Sanitize(c.FormValue(FieldKeywords)),
		Description:    analysis.Sanitize(c.FormValue(FieldDescription)),
	}
	resp := analyzeResponse{
		Score:     a.Engine.Score(post, meta),
		WordCount: analysis.WordCount(post.HTML()),
		Findings:  a.Engine.Analyze(post, meta),
	}
	if meta.Description == "" {
		resp.Description = a.Engine.Lexicon().GenerateDescription(post.HTML())
	}
	return c.JSON(http.StatusOK, resp)
}

func (a *App) renderEditor(c echo.Context, post Post, meta Metadata, msg string) error {
	page := EditorPage{Post: post, Meta: meta, Message: msg, CSRFToken: CsrfToken(c)}
	if post.ID != 0 {
		page.Findings = a.Engine.Analyze(post, meta)
		page.WordCount = analysis.WordCount(post.HTML())
	}
	return Render(c, a.Views.AdminEditor(page))
}

func (a *App) renderAdminDashboard(c echo.Context, msg string) error {
	posts, err := a.Store.ListAllPosts()
	if err != nil {
		return err
	}
	metas, err := a.Store.ListMeta()
	if err != nil {
		return err
	}
	rows := make([]DashboardRow, 0, len(posts))
	for _, p := range posts {
		rows = append(rows, DashboardRow{Post: p, Meta: metas[p.ID]})
	}
	return Render(c, a.Views.AdminDashboard(DashboardPage{Rows: rows, Message: msg, CSRFToken: CsrfToken(c)}))
}

package seoengine

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"strings"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// Render writes a templ component as an HTML 200 response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes a templ component as an HTML response with the given
// status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

func (a *App) handleHome(c echo.Context) error {
	posts, err := a.Cache.ListPosts(TypePost)
	if err != nil {
		return err
	}
	pages, err := a.Cache.ListPosts(TypePage)
	if err != nil {
		return err
	}
	settings, err := a.Cache.Settings()
	if err != nil {
		return err
	}
	tagline := settings.SiteDescription
	if tagline == "" {
		tagline = a.Config.Description
	}
	return Render(c, a.Views.Home(HomePage{
		Head:     HeadComponent(a.Engine.OnRenderHead(nil)),
		SiteName: settings.Title(a.Config.Name),
		Tagline:  tagline,
		Posts:    posts,
		Pages:    pages,
	}))
}

func (a *App) handlePost(c echo.Context) error {
	return a.showPost(c, TypePost)
}

func (a *App) handlePage(c echo.Context) error {
	return a.showPost(c, TypePage)
}

func (a *App) showPost(c echo.Context, typ string) error {
	post, err := a.Cache.GetPost(typ, c.Param("slug"))
	if errors.Is(err, ErrNotFound) {
		// The cache can miss writes made by other processes.
		post, err = a.Store.GetPost(c.Param("slug"))
		if err == nil && post.Type != typ {
			err = ErrNotFound
		}
		if err == nil {
			a.Cache.Invalidate()
		}
	}
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		}
		return err
	}
	settings, err := a.Cache.Settings()
	if err != nil {
		return err
	}
	return Render(c, a.Views.Post(PostPage{
		Head:     HeadComponent(a.Engine.OnRenderHead(&post)),
		SiteName: settings.Title(a.Config.Name),
		Post:     post,
		Content:  templ.Raw(a.Engine.FilterContent(post.HTML())),
	}))
}

// handleSitemap serves the generated file, writing it first if it has not
// been generated yet.
func (a *App) handleSitemap(c echo.Context) error {
	if _, err := os.Stat(a.Config.SitemapPath); errors.Is(err, fs.ErrNotExist) {
		a.Engine.RegenerateSitemap()
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	return c.File(a.Config.SitemapPath)
}

func (a *App) handleRobots(c echo.Context) error {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	if a.Config.Production {
		b.WriteString("Disallow: /admin/\n")
	} else {
		b.WriteString("Disallow: /\n")
	}
	fmt.Fprintf(&b, "\nSitemap: %s\n", AssetURL(a.Config.URL, "sitemap.xml"))
	return c.String(http.StatusOK, b.String())
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Cache.ListPosts(TypePost)
	if err != nil {
		return err
	}
	metas, err := a.Store.ListMeta()
	if err != nil {
		return err
	}
	return a.renderRSS(c, posts, metas)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}

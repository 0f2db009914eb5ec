// Package seoengine is a small publishing host with a built-in SEO engine,
// built with Go, Echo, and templ.
//
// It stores posts and pages in SQLite, injects meta tags, JSON-LD and
// OpenGraph/Twitter tags into every page, scores each post's SEO readiness,
// and keeps a static sitemap.xml up to date. Users provide their own templ
// templates via the ViewFuncs struct; the analysis subpackage holds the
// scoring heuristics and can be used on its own.
package seoengine

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"

	"github.com/eringen/seoengine/analysis"
)

// ViewFuncs holds the templ components the handlers render. This is the
// inversion-of-control point that lets users own every template; the views
// subpackage ships a plain default set.
type ViewFuncs struct {
	Home           func(page HomePage) templ.Component
	Post           func(page PostPage) templ.Component
	AdminLogin     func(showError bool, csrfToken string) templ.Component
	AdminDashboard func(page DashboardPage) templ.Component
	AdminEditor    func(page EditorPage) templ.Component
	AdminSettings  func(page SettingsPage) templ.Component
	NotFound       func() templ.Component
	ServerError    func() templ.Component
}

// HomePage is the data passed to ViewFuncs.Home.
type HomePage struct {
	Head     templ.Component
	SiteName string
	Tagline  string
	Posts    []Post
	Pages    []Post
}

// PostPage is the data passed to ViewFuncs.Post for both posts and pages.
// Content is the rendered, filtered body.
type PostPage struct {
	Head     templ.Component
	SiteName string
	Post     Post
	Content  templ.Component
}

// DashboardRow pairs a post with its SEO metadata and cached score.
type DashboardRow struct {
	Post Post
	Meta Metadata
}

// DashboardPage is the data passed to ViewFuncs.AdminDashboard.
type DashboardPage struct {
	Rows      []DashboardRow
	Message   string
	CSRFToken string
}

// EditorPage is the data passed to ViewFuncs.AdminEditor.
type EditorPage struct {
	Post      Post
	Meta      Metadata
	Findings  []analysis.Finding
	WordCount int
	Message   string
	CSRFToken string
}

// SettingsPage is the data passed to ViewFuncs.AdminSettings.
type SettingsPage struct {
	Settings  Settings
	Message   string
	CSRFToken string
}

// App is the central application. It wires together the store, cache,
// SEO engine, handlers, middleware, and user-provided templates.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *Store
	Cache  *SiteCache
	Engine *Engine
	Views  ViewFuncs

	customRoutes []func(*App)
	staticDir    string
}

// New creates a new App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(log.INFO)

	a := &App{
		Config:    cfg,
		Echo:      e,
		Views:     views,
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Open initializes the database, cache and engine, seeds the settings
// defaults and loads the lexicon file if one is configured. It is called by
// Start and can be used on its own by tools that do not serve HTTP.
func (a *App) Open() error {
	if a.Store != nil {
		return nil
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("seoengine: init store: %w", err)
	}
	a.Store = store
	a.Cache = NewSiteCache(store, a.Config.CacheTTL)
	a.Engine = NewEngine(a.Config, store, a.Cache, a.Echo.Logger)

	if err := store.InstallSettings(Settings{
		SiteTitle:       a.Config.Name,
		SiteDescription: a.Config.Description,
	}); err != nil {
		return fmt.Errorf("seoengine: install settings: %w", err)
	}

	if a.Config.LexiconPath != "" {
		lex, err := analysis.LoadLexicon(a.Config.LexiconPath)
		if err != nil {
			return fmt.Errorf("seoengine: %w", err)
		}
		a.Engine.SetLexicon(lex)
	}
	return nil
}

// Start opens the app, writes the initial sitemap, and serves HTTP together
// with the sweep scheduler and the lexicon watcher until ctx is cancelled.
func (a *App) Start(ctx context.Context) error {
	if a.Config.AdminPassword == "" {
		return fmt.Errorf("seoengine: AdminPassword is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("seoengine: SessionSecret is required")
	}
	if err := a.Open(); err != nil {
		return err
	}

	a.Engine.RegenerateSitemap()

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}

	stopSweep := a.Engine.StartScheduler(a.Config.SweepInterval)
	defer stopSweep()

	g, gctx := errgroup.WithContext(ctx)

	if a.Config.LexiconPath != "" {
		g.Go(func() error {
			if err := analysis.WatchLexicon(gctx, a.Config.LexiconPath, a.Echo.Logger, a.Engine.SetLexicon); err != nil {
				a.Echo.Logger.Warnf("lexicon: watcher disabled: %v", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return a.Echo.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Framework assets are served ahead of the user's static dir.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/admin.js", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))

	e.Static("/public", a.staticDir)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)

	// Public routes
	e.GET("/", a.handleHome)
	e.GET("/blog/:slug/", a.handlePost)
	e.GET("/:slug/", a.handlePage)

	// Admin routes
	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin, a.loginRateLimiter())
	e.POST("/admin/logout/", handleAdminLogout)
	e.GET("/admin/post/new/", a.handleAdminNew)
	e.GET("/admin/post/:slug/", a.handleAdminEdit)
	e.POST("/admin/save/", a.handleAdminSave)
	e.DELETE("/admin/post/:slug/", a.handleAdminDelete)
	e.GET("/admin/settings/", a.handleAdminSettings)
	e.POST("/admin/settings/", a.handleAdminSettingsSave)
	e.POST("/admin/sitemap/", a.handleAdminSitemap)
	e.POST("/admin/optimize/", a.handleAdminOptimize)
	e.POST("/admin/analyze/", a.handleAdminAnalyze)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

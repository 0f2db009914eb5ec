package seoengine

import "time"

// SiteConfig holds process-level configuration. Editable, site-wide SEO
// options live in Settings instead and are stored in the database.
type SiteConfig struct {
	Name        string // Site name (default "Site")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Fallback site description
	Author      string // Default author name for JSON-LD
	IconURL     string // Site icon, used as the publisher logo
	Locale      string // og:locale (default "en_US")
	Production  bool   // When false, pages are marked noindex and robots.txt disallows all

	Addr         string // Listen address (default ":3000")
	DatabasePath string // SQLite path (default "data/seo.db")
	SitemapPath  string // Where the sitemap is written (default "public/sitemap.xml")
	LexiconPath  string // Optional YAML lexicon, hot-reloaded when set

	AdminPassword string // Required to serve: admin login password
	SessionSecret string // Required to serve: session encryption secret
	CookieSecure  bool   // Set true for HTTPS

	CacheTTL      time.Duration // Post and settings cache TTL (default 5min)
	SweepInterval time.Duration // Scheduled optimize/rescore sweep (default 24h)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Site"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Locale == "" {
		c.Locale = "en_US"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/seo.db"
	}
	if c.SitemapPath == "" {
		c.SitemapPath = "public/sitemap.xml"
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = 5 * time.Minute
	}
	if c.SweepInterval <= 0 {
		c.SweepInterval = 24 * time.Hour
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App after the built-in routes are set up.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets and
// uploads (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

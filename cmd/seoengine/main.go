package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/eringen/seoengine"
	"github.com/eringen/seoengine/analysis"
	"github.com/eringen/seoengine/views"
)

// version is set at build time via ldflags.
var version = "dev"

func siteFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "site-name", Usage: "Site name", Sources: cli.EnvVars("SITE_NAME")},
		&cli.StringFlag{Name: "site-url", Usage: "Canonical site URL", Value: "http://localhost:3000", Sources: cli.EnvVars("SITE_URL")},
		&cli.StringFlag{Name: "site-description", Usage: "Fallback site description", Sources: cli.EnvVars("SITE_DESCRIPTION")},
		&cli.StringFlag{Name: "site-author", Usage: "Default author for structured data", Sources: cli.EnvVars("SITE_AUTHOR")},
		&cli.StringFlag{Name: "site-icon", Usage: "Icon URL used as the publisher logo", Sources: cli.EnvVars("SITE_ICON_URL")},
		&cli.StringFlag{Name: "locale", Usage: "OpenGraph locale", Value: "en_US", Sources: cli.EnvVars("SITE_LOCALE")},
		&cli.BoolFlag{Name: "production", Usage: "Allow search engines to index the site", Sources: cli.EnvVars("SEO_PRODUCTION")},
		&cli.StringFlag{Name: "addr", Usage: "Listen address", Value: ":3000", Sources: cli.EnvVars("ADDR")},
		&cli.StringFlag{Name: "db", Usage: "SQLite database path", Value: "data/seo.db", Sources: cli.EnvVars("DATABASE_PATH")},
		&cli.StringFlag{Name: "sitemap", Usage: "Sitemap output path", Value: "public/sitemap.xml", Sources: cli.EnvVars("SITEMAP_PATH")},
		&cli.StringFlag{Name: "lexicon", Usage: "YAML lexicon file, reloaded on change", Sources: cli.EnvVars("LEXICON_PATH")},
		&cli.StringFlag{Name: "static-dir", Usage: "Static assets and uploads directory", Value: "public", Sources: cli.EnvVars("STATIC_DIR")},
		&cli.StringFlag{Name: "admin-password", Usage: "Admin login password", Sources: cli.EnvVars("ADMIN_PASSWORD")},
		&cli.StringFlag{Name: "session-secret", Usage: "Session cookie secret", Sources: cli.EnvVars("SESSION_SECRET")},
		&cli.BoolFlag{Name: "cookie-secure", Usage: "Mark cookies Secure (HTTPS)", Sources: cli.EnvVars("COOKIE_SECURE")},
		&cli.DurationFlag{Name: "cache-ttl", Usage: "Post and settings cache TTL", Sources: cli.EnvVars("CACHE_TTL")},
		&cli.DurationFlag{Name: "sweep-interval", Usage: "Interval of the SEO sweep", Sources: cli.EnvVars("SWEEP_INTERVAL")},
	}
}

func newApp(cmd *cli.Command) *seoengine.App {
	cfg := seoengine.SiteConfig{
		Name:          cmd.String("site-name"),
		URL:           cmd.String("site-url"),
		Description:   cmd.String("site-description"),
		Author:        cmd.String("site-author"),
		IconURL:       cmd.String("site-icon"),
		Locale:        cmd.String("locale"),
		Production:    cmd.Bool("production"),
		Addr:          cmd.String("addr"),
		DatabasePath:  cmd.String("db"),
		SitemapPath:   cmd.String("sitemap"),
		LexiconPath:   cmd.String("lexicon"),
		AdminPassword: cmd.String("admin-password"),
		SessionSecret: cmd.String("session-secret"),
		CookieSecure:  cmd.Bool("cookie-secure"),
		CacheTTL:      cmd.Duration("cache-ttl"),
		SweepInterval: cmd.Duration("sweep-interval"),
	}
	return seoengine.New(cfg, views.Default(), seoengine.WithStaticDir(cmd.String("static-dir")))
}

// withApp opens an App for commands that work on the database without
// serving HTTP.
func withApp(fn func(ctx context.Context, app *seoengine.App) error) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		app := newApp(cmd)
		defer app.Close()
		if err := app.Open(); err != nil {
			return err
		}
		return fn(ctx, app)
	}
}

func serve(ctx context.Context, cmd *cli.Command) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := newApp(cmd)
	defer app.Close()
	return app.Start(ctx)
}

func writeSitemap(ctx context.Context, app *seoengine.App) error {
	if err := app.Engine.GenerateSitemap(); err != nil {
		return err
	}
	fmt.Printf("sitemap written to %s\n", app.Config.SitemapPath)
	return nil
}

func rescore(ctx context.Context, app *seoengine.App) error {
	return app.Engine.OnScheduleTick(ctx)
}

func uninstall(ctx context.Context, app *seoengine.App) error {
	if err := app.Store.UninstallSettings(); err != nil {
		return err
	}
	fmt.Println("SEO settings removed")
	return nil
}

// analyze scores a standalone HTML or Markdown file.
func analyze(ctx context.Context, cmd *cli.Command) error {
	path := cmd.Args().First()
	if path == "" {
		return fmt.Errorf("usage: seoengine analyze [flags] <file>")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	post := seoengine.Post{
		Title:   cmd.String("title"),
		Content: string(data),
		Format:  seoengine.FormatHTML,
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		post.Format = seoengine.FormatMarkdown
	}
	if post.Title == "" {
		post.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	lex := analysis.DefaultLexicon()
	if p := cmd.String("lexicon"); p != "" {
		if lex, err = analysis.LoadLexicon(p); err != nil {
			return err
		}
	}

	doc := analysis.Document{Title: post.Title, Body: post.HTML(), SiteURL: cmd.String("site-url")}
	meta := analysis.Meta{
		FocusKeyphrase: cmd.String("keyphrase"),
		Description:    cmd.String("description"),
	}
	if cmd.Bool("optimize") {
		meta = analysis.Optimize(doc, meta, lex)
		fmt.Printf("keyphrase:   %s\nkeywords:    %s\ndescription: %s\n\n", meta.FocusKeyphrase, meta.Keywords, meta.Description)
	}

	fmt.Printf("score: %d/100\n", analysis.ComputeScore(doc, meta))
	for _, f := range analysis.Analyze(doc, meta, lex) {
		fmt.Printf("[%-4s] %s", f.Severity, f.Message)
		if f.Suggestion != "" {
			fmt.Printf(" %s", f.Suggestion)
		}
		fmt.Println()
	}
	return nil
}

func main() {
	cmd := &cli.Command{
		Name:  "seoengine",
		Usage: "Publishing host with built-in SEO scoring, metadata and sitemaps",
		Flags: siteFlags(),
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Serve the site and admin panel",
				Action: serve,
			},
			{
				Name:   "sitemap",
				Usage:  "Write sitemap.xml from the published posts",
				Action: withApp(writeSitemap),
			},
			{
				Name:   "rescore",
				Usage:  "Run the SEO sweep once: fill missing metadata and refresh scores",
				Action: withApp(rescore),
			},
			{
				Name:      "analyze",
				Usage:     "Score an HTML or Markdown file",
				ArgsUsage: "<file>",
				Action:    analyze,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Usage: "Document title (default: file name)"},
					&cli.StringFlag{Name: "keyphrase", Aliases: []string{"k"}, Usage: "Focus keyphrase"},
					&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "Meta description"},
					&cli.BoolFlag{Name: "optimize", Usage: "Fill missing metadata before scoring"},
				},
			},
			{
				Name:   "uninstall",
				Usage:  "Remove all stored SEO settings",
				Action: withApp(uninstall),
			},
			{
				Name:  "version",
				Usage: "Print the seoengine version",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					fmt.Printf("seoengine %s\n", version)
					return nil
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

package seoengine

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync/atomic"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/singleflight"

	"github.com/eringen/seoengine/analysis"
)

// Hooks is the contract between a content host and the SEO core. The host
// decides when each callback runs: OnSave after a post is stored,
// OnRenderHead while assembling a page's <head>, OnScheduleTick on a timer
// or an explicit admin action.
type Hooks interface {
	OnSave(ctx context.Context, post Post, form url.Values) (Metadata, error)
	OnRenderHead(post *Post) []string
	OnScheduleTick(ctx context.Context) error
}

var _ Hooks = (*Engine)(nil)

// Engine implements Hooks on top of a Store.
type Engine struct {
	cfg     SiteConfig
	store   *Store
	cache   *SiteCache
	logger  echo.Logger
	lexicon atomic.Pointer[analysis.Lexicon]
	sitemap singleflight.Group
}

// NewEngine creates an Engine using the built-in lexicon.
func NewEngine(cfg SiteConfig, store *Store, cache *SiteCache, logger echo.Logger) *Engine {
	cfg.setDefaults()
	e := &Engine{cfg: cfg, store: store, cache: cache, logger: logger}
	e.lexicon.Store(analysis.DefaultLexicon())
	return e
}

// SetLexicon swaps the active lexicon. Safe to call while requests are served.
func (e *Engine) SetLexicon(l *analysis.Lexicon) {
	if l != nil {
		e.lexicon.Store(l)
	}
}

// Lexicon returns the active lexicon with the site's default keywords added
// as domain terms.
func (e *Engine) Lexicon() *analysis.Lexicon {
	lex := e.lexicon.Load()
	s, err := e.cache.Settings()
	if err != nil {
		e.logger.Warnf("lexicon: load settings: %v", err)
		return lex
	}
	return lex.WithTerms(SplitKeywords(s.DefaultKeywords)...)
}

// Document converts a post into the input of the analysis functions.
func (e *Engine) Document(p Post) analysis.Document {
	return analysis.Document{
		Title:            p.Title,
		Body:             p.HTML(),
		Excerpt:          p.Excerpt,
		HasFeaturedImage: p.HasFeaturedImage(),
		SiteURL:          e.cfg.URL,
	}
}

// Score computes the SEO score of a post without persisting it.
func (e *Engine) Score(p Post, m Metadata) int {
	return analysis.ComputeScore(e.Document(p), m.analysisMeta())
}

// Analyze returns editor findings for a post.
func (e *Engine) Analyze(p Post, m Metadata) []analysis.Finding {
	return analysis.Analyze(e.Document(p), m.analysisMeta(), e.Lexicon())
}

// OnSave applies the SEO fields of a submitted editor form to a stored post.
// Each field is sanitized; fields missing from form keep their stored value.
// The score is recomputed and cached, and the sitemap is rewritten when the
// post is published. Authorization is the caller's job.
func (e *Engine) OnSave(ctx context.Context, post Post, form url.Values) (Metadata, error) {
	if post.ID == 0 {
		return Metadata{}, errors.New("seoengine: post must be stored before its metadata")
	}
	meta, err := e.store.GetMeta(post.ID)
	if err != nil {
		return Metadata{}, fmt.Errorf("load meta: %w", err)
	}
	for field, dst := range map[string]*string{
		FieldFocusKeyphrase: &meta.FocusKeyphrase,
		FieldKeywords:       &meta.Keywords,
		FieldDescription:    &meta.Description,
	} {
		if v, ok := form[field]; ok && len(v) > 0 {
			*dst = analysis.Sanitize(v[0])
		}
	}
	if err := e.store.SaveMeta(post.ID, meta); err != nil {
		return Metadata{}, fmt.Errorf("save meta: %w", err)
	}
	meta.Score = e.Score(post, meta)
	meta.Scored = true
	if err := e.store.SetScore(post.ID, meta.Score); err != nil {
		return Metadata{}, fmt.Errorf("save score: %w", err)
	}
	if post.Published {
		e.RegenerateSitemap()
	}
	return meta, nil
}

// OnScheduleTick runs the periodic sweep: every post gets the automatic
// optimization pass and a fresh cached score, then the sitemap is rewritten.
// Running it twice in a row changes nothing the second time.
func (e *Engine) OnScheduleTick(ctx context.Context) error {
	posts, err := e.store.ListAllPosts()
	if err != nil {
		return fmt.Errorf("list posts: %w", err)
	}
	metas, err := e.store.ListMeta()
	if err != nil {
		return fmt.Errorf("list meta: %w", err)
	}
	lex := e.Lexicon()
	updated := 0
	for _, p := range posts {
		if err := ctx.Err(); err != nil {
			return err
		}
		changed, err := e.optimize(p, metas[p.ID], lex)
		if err != nil {
			e.logger.Warnf("sweep: post %d (%s): %v", p.ID, p.Slug, err)
			continue
		}
		if changed {
			updated++
		}
	}
	e.logger.Infof("sweep: %d posts checked, %d updated", len(posts), updated)
	e.RegenerateSitemap()
	return nil
}

func (e *Engine) optimize(p Post, m Metadata, lex *analysis.Lexicon) (bool, error) {
	doc := e.Document(p)
	cur := m.analysisMeta()
	opt := analysis.Optimize(doc, cur, lex)
	changed := false
	if opt != cur {
		next := Metadata{FocusKeyphrase: opt.FocusKeyphrase, Keywords: opt.Keywords, Description: opt.Description}
		if err := e.store.SaveMeta(p.ID, next); err != nil {
			return false, err
		}
		changed = true
	}
	score := analysis.ComputeScore(doc, opt)
	if !m.Scored || m.Score != score {
		if err := e.store.SetScore(p.ID, score); err != nil {
			return changed, err
		}
		changed = true
	}
	return changed, nil
}

// GenerateSitemap rewrites the sitemap file from the published posts.
func (e *Engine) GenerateSitemap() error {
	posts, err := e.store.ListPublished()
	if err != nil {
		return fmt.Errorf("list posts: %w", err)
	}
	return WriteSitemap(e.cfg.SitemapPath, BuildSitemap(e.cfg.URL, posts))
}

// RegenerateSitemap is GenerateSitemap for event triggers: concurrent calls
// share one write and failures are only logged.
func (e *Engine) RegenerateSitemap() {
	run := func() (interface{}, error) { return nil, e.GenerateSitemap() }
	_, err, shared := e.sitemap.Do("sitemap", run)
	if shared {
		// a joined write may have listed posts before the caller's change
		_, err, _ = e.sitemap.Do("sitemap", run)
	}
	if err != nil {
		e.logger.Warnf("sitemap: %v", err)
	}
}

// FilterContent prepares a post body for output.
func (e *Engine) FilterContent(html string) string {
	return LazyLoadImages(html)
}

package seoengine

import (
	"database/sql"
	"sync"
	"time"
)

// ErrNotFound is returned when a requested post does not exist.
var ErrNotFound = sql.ErrNoRows

// SiteCache is an in-memory TTL cache of published posts and the site
// settings, the two things read on every public request.
type SiteCache struct {
	mu       sync.RWMutex
	posts    []Post
	settings Settings
	loaded   bool
	fetched  time.Time
	ttl      time.Duration
	store    *Store
}

// NewSiteCache creates a SiteCache backed by the given Store.
func NewSiteCache(s *Store, ttl time.Duration) *SiteCache {
	return &SiteCache{store: s, ttl: ttl}
}

func (c *SiteCache) valid() bool {
	return c.loaded && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *SiteCache) Invalidate() {
	c.mu.Lock()
	c.posts = nil
	c.settings = Settings{}
	c.loaded = false
	c.mu.Unlock()
}

func (c *SiteCache) load() error {
	if c.valid() {
		return nil
	}
	posts, err := c.store.ListPublished()
	if err != nil {
		return err
	}
	settings, err := c.store.LoadSettings()
	if err != nil {
		return err
	}
	c.posts = posts
	c.settings = settings
	c.loaded = true
	c.fetched = time.Now()
	return nil
}

// ensureLoaded returns cached posts and settings after ensuring the cache is
// fresh. It tries a read lock first; only takes a write lock if a reload is needed.
func (c *SiteCache) ensureLoaded() ([]Post, Settings, error) {
	c.mu.RLock()
	if c.valid() {
		posts, settings := c.posts, c.settings
		c.mu.RUnlock()
		return posts, settings, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(); err != nil {
		return nil, Settings{}, err
	}
	return c.posts, c.settings, nil
}

// ListPosts returns published posts and pages of the given type; an empty
// type returns both.
func (c *SiteCache) ListPosts(typ string) ([]Post, error) {
	posts, _, err := c.ensureLoaded()
	if err != nil {
		return nil, err
	}
	if typ == "" {
		return posts, nil
	}
	var filtered []Post
	for _, p := range posts {
		if p.Type == typ {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// GetPost returns a published post of the given type by slug.
func (c *SiteCache) GetPost(typ, slug string) (Post, error) {
	posts, _, err := c.ensureLoaded()
	if err != nil {
		return Post{}, err
	}
	for _, p := range posts {
		if p.Slug == slug && p.Type == typ {
			return p, nil
		}
	}
	return Post{}, ErrNotFound
}

// Settings returns the cached site settings.
func (c *SiteCache) Settings() (Settings, error) {
	_, s, err := c.ensureLoaded()
	return s, err
}

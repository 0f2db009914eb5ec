package seoengine

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const timeLayout = time.RFC3339

// Store wraps a SQLite database holding posts, their SEO metadata and the
// site-wide options.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	// busy_timeout goes in the DSN so every pooled connection gets it.
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, err
	}
	// WAL lets the scheduled sweep write while requests read.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS posts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    slug TEXT NOT NULL UNIQUE,
    type TEXT NOT NULL DEFAULT 'post',
    title TEXT NOT NULL,
    content TEXT NOT NULL,
    format TEXT NOT NULL DEFAULT 'html',
    excerpt TEXT NOT NULL DEFAULT '',
    author TEXT NOT NULL DEFAULT '',
    featured_image TEXT NOT NULL DEFAULT '',
    published INTEGER NOT NULL DEFAULT 1,
    published_at TEXT NOT NULL DEFAULT '',
    modified_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS post_meta (
    post_id INTEGER NOT NULL,
    meta_key TEXT NOT NULL,
    meta_value TEXT NOT NULL,
    PRIMARY KEY (post_id, meta_key)
);

CREATE TABLE IF NOT EXISTS options (
    name TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_posts_published ON posts(published, published_at);
`)
	return err
}

const postColumns = `id, slug, type, title, content, format, excerpt, author, featured_image, published, published_at, modified_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(r rowScanner) (Post, error) {
	var p Post
	var published int
	var publishedAt, modifiedAt string
	err := r.Scan(&p.ID, &p.Slug, &p.Type, &p.Title, &p.Content, &p.Format, &p.Excerpt,
		&p.Author, &p.FeaturedImage, &published, &publishedAt, &modifiedAt)
	if err != nil {
		return Post{}, err
	}
	p.Published = published == 1
	p.PublishedAt, _ = time.Parse(timeLayout, publishedAt)
	p.ModifiedAt, _ = time.Parse(timeLayout, modifiedAt)
	return p, nil
}

func (s *Store) queryPosts(query string, args ...any) ([]Post, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// ListPublished returns all published posts and pages, newest first.
func (s *Store) ListPublished() ([]Post, error) {
	return s.queryPosts(`SELECT ` + postColumns + ` FROM posts WHERE published = 1 ORDER BY published_at DESC, id DESC`)
}

// ListAllPosts returns every post (published and drafts), most recently modified first.
func (s *Store) ListAllPosts() ([]Post, error) {
	return s.queryPosts(`SELECT ` + postColumns + ` FROM posts ORDER BY modified_at DESC, id DESC`)
}

// GetPost returns a single published post by slug.
func (s *Store) GetPost(slug string) (Post, error) {
	return scanPost(s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE slug = ? AND published = 1`, slug))
}

// GetPostAny returns a post by slug regardless of published status (for admin).
func (s *Store) GetPostAny(slug string) (Post, error) {
	return scanPost(s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE slug = ?`, slug))
}

// GetPostByID returns a post by id regardless of published status.
func (s *Store) GetPostByID(id int64) (Post, error) {
	return scanPost(s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE id = ?`, id))
}

// SavePost inserts or updates a post. Posts with an ID are updated in place;
// posts without one are upserted by slug. ModifiedAt is always bumped and
// PublishedAt is set the first time a post is saved as published. The
// stored ID and timestamps are written back into p.
func (s *Store) SavePost(p *Post) error {
	now := time.Now().UTC().Truncate(time.Second)
	p.ModifiedAt = now
	if p.Published && p.PublishedAt.IsZero() {
		p.PublishedAt = now
	}
	if p.Type == "" {
		p.Type = TypePost
	}
	if p.Format == "" {
		p.Format = FormatHTML
	}
	published := 0
	if p.Published {
		published = 1
	}
	var publishedAt string
	if !p.PublishedAt.IsZero() {
		publishedAt = p.PublishedAt.UTC().Format(timeLayout)
	}

	if p.ID != 0 {
		res, err := s.db.Exec(`UPDATE posts SET slug = ?, type = ?, title = ?, content = ?, format = ?, excerpt = ?,
			author = ?, featured_image = ?, published = ?, published_at = ?, modified_at = ? WHERE id = ?`,
			p.Slug, p.Type, p.Title, p.Content, p.Format, p.Excerpt, p.Author, p.FeaturedImage,
			published, publishedAt, now.Format(timeLayout), p.ID)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return ErrNotFound
		}
		return nil
	}

	return s.db.QueryRow(`INSERT INTO posts (slug, type, title, content, format, excerpt, author, featured_image, published, published_at, modified_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(slug) DO UPDATE SET type = excluded.type, title = excluded.title, content = excluded.content,
			format = excluded.format, excerpt = excluded.excerpt, author = excluded.author,
			featured_image = excluded.featured_image, published = excluded.published,
			published_at = CASE WHEN posts.published_at = '' THEN excluded.published_at ELSE posts.published_at END,
			modified_at = excluded.modified_at
		RETURNING id`,
		p.Slug, p.Type, p.Title, p.Content, p.Format, p.Excerpt, p.Author, p.FeaturedImage,
		published, publishedAt, now.Format(timeLayout)).Scan(&p.ID)
}

// DeletePost removes a post by slug together with its metadata.
func (s *Store) DeletePost(slug string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM post_meta WHERE post_id IN (SELECT id FROM posts WHERE slug = ?)`, slug); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM posts WHERE slug = ?`, slug); err != nil {
		return err
	}
	return tx.Commit()
}

// GetMeta returns the SEO metadata of a post. A post that has never been
// saved through the engine has zero Metadata and no error.
func (s *Store) GetMeta(postID int64) (Metadata, error) {
	rows, err := s.db.Query(`SELECT meta_key, meta_value FROM post_meta WHERE post_id = ?`, postID)
	if err != nil {
		return Metadata{}, err
	}
	defer rows.Close()

	var m Metadata
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return Metadata{}, err
		}
		m.apply(key, value)
	}
	return m, rows.Err()
}

// ListMeta returns the metadata of every post that has any, keyed by post id.
func (s *Store) ListMeta() (map[int64]Metadata, error) {
	rows, err := s.db.Query(`SELECT post_id, meta_key, meta_value FROM post_meta`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int64]Metadata)
	for rows.Next() {
		var id int64
		var key, value string
		if err := rows.Scan(&id, &key, &value); err != nil {
			return nil, err
		}
		m := out[id]
		m.apply(key, value)
		out[id] = m
	}
	return out, rows.Err()
}

func (m *Metadata) apply(key, value string) {
	switch key {
	case metaFocusKeyphrase:
		m.FocusKeyphrase = value
	case metaKeywords:
		m.Keywords = value
	case metaDescription:
		m.Description = value
	case metaScore:
		if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			m.Score = n
			m.Scored = true
		}
	}
}

// SaveMeta stores the author-editable metadata fields of a post. The cached
// score is left alone; see SetScore.
func (s *Store) SaveMeta(postID int64, m Metadata) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, kv := range [][2]string{
		{metaFocusKeyphrase, m.FocusKeyphrase},
		{metaKeywords, m.Keywords},
		{metaDescription, m.Description},
	} {
		if err := upsertMeta(tx, postID, kv[0], kv[1]); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// SetScore caches a computed score for a post.
func (s *Store) SetScore(postID int64, score int) error {
	return upsertMeta(s.db, postID, metaScore, strconv.Itoa(score))
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func upsertMeta(db execer, postID int64, key, value string) error {
	_, err := db.Exec(`INSERT INTO post_meta (post_id, meta_key, meta_value) VALUES (?, ?, ?)
		ON CONFLICT(post_id, meta_key) DO UPDATE SET meta_value = excluded.meta_value`, postID, key, value)
	return err
}

// GetOption returns the value of a site option, or "" if it is not set.
func (s *Store) GetOption(name string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM options WHERE name = ?`, name).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

// SetOption stores a site option (upsert).
func (s *Store) SetOption(name, value string) error {
	_, err := s.db.Exec(`INSERT INTO options (name, value) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value`, name, value)
	return err
}

// AddOption stores a site option only if it does not exist yet.
func (s *Store) AddOption(name, value string) error {
	_, err := s.db.Exec(`INSERT OR IGNORE INTO options (name, value) VALUES (?, ?)`, name, value)
	return err
}

// DeleteOptions removes every option whose name starts with prefix.
func (s *Store) DeleteOptions(prefix string) error {
	_, err := s.db.Exec(`DELETE FROM options WHERE substr(name, 1, ?) = ?`, len(prefix), prefix)
	return err
}

package analysis

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// Lexicon is the vocabulary the heuristics reward: domain terms a site wants
// to be found for, persuasive "power words", and tuning for the automatic
// optimization pass.
type Lexicon struct {
	DomainTerms    []string `yaml:"domain_terms"`
	PowerWords     []string `yaml:"power_words"`
	FallbackPrefix string   `yaml:"fallback_prefix"`
	BoostFactor    float64  `yaml:"boost_factor"`
	KeywordCount   int      `yaml:"keyword_count"`
}

// DefaultLexicon returns a fresh copy of the built-in vocabulary.
func DefaultLexicon() *Lexicon {
	return &Lexicon{
		PowerWords: []string{
			"best", "complete", "discover", "easy", "essential", "expert",
			"free", "guide", "proven", "quick", "top", "ultimate",
		},
		FallbackPrefix: "Read on to learn more.",
		BoostFactor:    2,
		KeywordCount:   5,
	}
}

// WithTerms returns a copy of l with extra domain terms appended. Duplicates
// (ignoring case) and blanks are dropped.
func (l *Lexicon) WithTerms(extra ...string) *Lexicon {
	c := *l
	c.DomainTerms = nil
	c.PowerWords = append([]string(nil), l.PowerWords...)
	seen := make(map[string]struct{})
	for _, t := range append(append([]string(nil), l.DomainTerms...), extra...) {
		t = strings.TrimSpace(t)
		key := strings.ToLower(t)
		if t == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		c.DomainTerms = append(c.DomainTerms, t)
	}
	return &c
}

// LoadLexicon reads a YAML lexicon from path. Fields missing from the file
// keep their default values.
func LoadLexicon(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lexicon %s: %w", path, err)
	}
	lex := DefaultLexicon()
	if err := yaml.Unmarshal(data, lex); err != nil {
		return nil, fmt.Errorf("parse lexicon %s: %w", path, err)
	}
	if lex.KeywordCount <= 0 {
		lex.KeywordCount = DefaultLexicon().KeywordCount
	}
	return lex, nil
}

// Logger is the subset of echo.Logger the watcher writes to.
type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

// WatchLexicon reloads the lexicon at path whenever the file changes and
// hands the new value to onChange. The parent directory is watched so that
// editors which replace the file on save are picked up. Bursts of events are
// debounced. WatchLexicon blocks until ctx is cancelled.
func WatchLexicon(ctx context.Context, path string, logger Logger, onChange func(*Lexicon)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	logger.Infof("lexicon: watching %s", abs)

	var debounce *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			return nil

		case <-fire:
			fire = nil
			lex, err := LoadLexicon(abs)
			if err != nil {
				logger.Warnf("lexicon: reload failed: %v", err)
				continue
			}
			logger.Infof("lexicon: reloaded %s", abs)
			onChange(lex)

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			if debounce == nil {
				debounce = time.NewTimer(200 * time.Millisecond)
			} else {
				debounce.Reset(200 * time.Millisecond)
			}
			fire = debounce.C

		case werr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warnf("lexicon: watcher error: %v", werr)
		}
	}
}

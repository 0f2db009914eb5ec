package analysis

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

type nopLogger struct{}

func (nopLogger) Infof(string, ...interface{}) {}
func (nopLogger) Warnf(string, ...interface{}) {}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadLexiconKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	writeFile(t, path, "domain_terms:\n  - bugema\n  - uganda\nboost_factor: 3\n")

	lex, err := LoadLexicon(path)
	if err != nil {
		t.Fatalf("LoadLexicon: %v", err)
	}
	if diff := cmp.Diff([]string{"bugema", "uganda"}, lex.DomainTerms); diff != "" {
		t.Errorf("DomainTerms mismatch (-want +got):\n%s", diff)
	}
	if lex.BoostFactor != 3 {
		t.Errorf("BoostFactor = %v, want 3", lex.BoostFactor)
	}
	def := DefaultLexicon()
	if diff := cmp.Diff(def.PowerWords, lex.PowerWords); diff != "" {
		t.Errorf("PowerWords should keep defaults (-want +got):\n%s", diff)
	}
	if lex.FallbackPrefix != def.FallbackPrefix || lex.KeywordCount != def.KeywordCount {
		t.Errorf("defaults not kept: %+v", lex)
	}
}

func TestLoadLexiconErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadLexicon(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	bad := filepath.Join(dir, "bad.yaml")
	writeFile(t, bad, "domain_terms: [unclosed\n")
	if _, err := LoadLexicon(bad); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestWithTermsDedupes(t *testing.T) {
	base := DefaultLexicon().WithTerms("Go", "web")
	got := base.WithTerms("go", " ", "SEO")
	if diff := cmp.Diff([]string{"Go", "web", "SEO"}, got.DomainTerms); diff != "" {
		t.Fatalf("DomainTerms mismatch (-want +got):\n%s", diff)
	}
	if len(base.DomainTerms) != 2 {
		t.Fatalf("WithTerms mutated receiver: %v", base.DomainTerms)
	}
}

func TestWatchLexiconReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	writeFile(t, path, "domain_terms: [first]\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan *Lexicon, 4)
	done := make(chan error, 1)
	go func() {
		done <- WatchLexicon(ctx, path, nopLogger{}, func(l *Lexicon) { changes <- l })
	}()

	// give the watcher time to register
	time.Sleep(100 * time.Millisecond)
	writeFile(t, path, "domain_terms: [second]\n")

	select {
	case l := <-changes:
		if diff := cmp.Diff([]string{"second"}, l.DomainTerms); diff != "" {
			t.Errorf("reloaded DomainTerms mismatch (-want +got):\n%s", diff)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("WatchLexicon returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}

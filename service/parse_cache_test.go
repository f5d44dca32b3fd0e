package service

import (
	"context"
	"sync"
	"testing"

	"github.com/ludo-technologies/laast/domain"
	"github.com/ludo-technologies/laast/internal/laast"
)

func buildLaast(t *testing.T, name string, lang domain.Language, src string) *laast.Laast {
	t.Helper()
	b, err := laast.NewBuilder(laast.DefaultBuilderConfig())
	if err != nil {
		t.Fatal(err)
	}
	l, err := b.Parse(context.Background(), name, lang, []byte(src))
	if err != nil {
		t.Fatalf("parse %s: %v", name, err)
	}
	return l
}

func TestNewParseCache(t *testing.T) {
	cache := NewParseCache()
	if cache == nil {
		t.Fatal("NewParseCache returned nil")
	}
	if cache.Len() != 0 {
		t.Fatalf("expected empty cache, got %d entries", cache.Len())
	}
}

func TestParseCachePutAndGet(t *testing.T) {
	cache := NewParseCache()
	l := buildLaast(t, "a.py", domain.LanguagePython, "print('hello')\n")
	cache.Put(l)

	got, ok := cache.Get("copy.py", domain.LanguagePython, l.ContentHash())
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got.Name() != "copy.py" {
		t.Fatalf("expected renamed tree, got %s", got.Name())
	}
	if cache.Hits() != 1 {
		t.Fatalf("expected 1 hit, got %d", cache.Hits())
	}
}

func TestParseCacheKeyIncludesLanguage(t *testing.T) {
	cache := NewParseCache()
	l := buildLaast(t, "a.js", domain.LanguageJavascript, "x = 1\n")
	cache.Put(l)

	// The same bytes are also valid Python but must not share a tree
	if _, ok := cache.Get("a.py", domain.LanguagePython, l.ContentHash()); ok {
		t.Fatal("expected miss for a different language")
	}
	cache.Put(nil)
	if cache.Len() != 1 {
		t.Fatalf("nil must not be stored, got %d entries", cache.Len())
	}
}

func TestParseCacheConcurrentAccess(t *testing.T) {
	cache := NewParseCache()
	l := buildLaast(t, "a.rb", domain.LanguageRuby, "puts 1\n")

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cache.Put(l)
			cache.Get("b.rb", domain.LanguageRuby, l.ContentHash())
		}()
	}
	wg.Wait()

	if cache.Len() != 1 {
		t.Fatalf("expected a single entry, got %d", cache.Len())
	}
}

package service

import (
	"sync"

	"github.com/ludo-technologies/laast/domain"
	"github.com/ludo-technologies/laast/internal/fingerprint"
	"github.com/ludo-technologies/laast/internal/laast"
)

type parseCacheKey struct {
	language domain.Language
	digest   fingerprint.Digest
}

// ParseCache remembers the LAAST built for a given language and source
// digest so byte-identical corpus files are parsed once. It is safe for
// concurrent use.
type ParseCache struct {
	mu      sync.RWMutex
	results map[parseCacheKey]*laast.Laast
	hits    int
}

// NewParseCache creates a new empty ParseCache.
func NewParseCache() *ParseCache {
	return &ParseCache{
		results: make(map[parseCacheKey]*laast.Laast),
	}
}

// Put stores a successfully built tree under its language and content hash.
func (c *ParseCache) Put(l *laast.Laast) {
	if l == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results[parseCacheKey{language: l.Language(), digest: l.ContentHash()}] = l
}

// Get returns the cached tree for lang and digest renamed to name.
func (c *ParseCache) Get(name string, lang domain.Language, digest fingerprint.Digest) (*laast.Laast, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	l, ok := c.results[parseCacheKey{language: lang, digest: digest}]
	if !ok {
		return nil, false
	}
	c.hits++
	return l.WithName(name), true
}

// Len returns the number of entries in the cache.
func (c *ParseCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.results)
}

// Hits returns how many lookups were served from the cache.
func (c *ParseCache) Hits() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits
}

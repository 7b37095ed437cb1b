package memory

import (
	"time"

	"knowledge-assistant-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// SearchCache keeps raw document-store matches for a short time so bursts of
// identical questions hit the store once
type SearchCache struct {
	cache *cache.Cache
}

func NewSearchCache(ttl time.Duration) *SearchCache {
	// Purge expired items at twice the TTL
	c := cache.New(ttl, 2*ttl)
	return &SearchCache{
		cache: c,
	}
}

func (r *SearchCache) Save(key string, docs []store.SourceDocument) {
	r.cache.Set(key, docs, cache.DefaultExpiration)
}

func (r *SearchCache) Get(key string) ([]store.SourceDocument, bool) {
	if x, found := r.cache.Get(key); found {
		return x.([]store.SourceDocument), true
	}
	return nil, false
}

// Flush drops every entry. Called after the knowledge base changes.
func (r *SearchCache) Flush() {
	r.cache.Flush()
}

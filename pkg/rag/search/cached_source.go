package search

import (
	"context"
	"encoding/json"
	"strings"

	"knowledge-assistant-be/pkg/store"
)

// ResultCache stores raw search results by key
type ResultCache interface {
	Save(key string, docs []store.SourceDocument)
	Get(key string) ([]store.SourceDocument, bool)
}

// CachedSource decorates a DocumentSource with a result cache. Errors are never cached.
type CachedSource struct {
	inner DocumentSource
	cache ResultCache
}

// NewCachedSource wraps inner with cache
func NewCachedSource(inner DocumentSource, cache ResultCache) *CachedSource {
	return &CachedSource{inner: inner, cache: cache}
}

func (c *CachedSource) Search(ctx context.Context, query string, filters store.SearchFilters) ([]store.SourceDocument, error) {
	key := cacheKey(query, filters)
	if docs, ok := c.cache.Get(key); ok {
		return docs, nil
	}

	docs, err := c.inner.Search(ctx, query, filters)
	if err != nil {
		return nil, err
	}

	c.cache.Save(key, docs)
	return docs, nil
}

func cacheKey(query string, filters store.SearchFilters) string {
	f, _ := json.Marshal(filters)
	return strings.ToLower(strings.TrimSpace(query)) + "|" + string(f)
}

package memory

import (
	"context"
	"fmt"
	"sync"

	"knowledge-assistant-be/pkg/store"

	"github.com/blevesearch/bleve"
)

// indexedDocument is the part of a document that takes part in full-text matching
type indexedDocument struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// KnowledgeIndex is an in-memory full-text document store backed by bleve.
// It is hydrated from the database at startup and kept in sync on ingestion.
type KnowledgeIndex struct {
	index         bleve.Index
	meta          map[string]store.SourceDocument
	candidatePool int
	mu            sync.RWMutex
}

func NewKnowledgeIndex(candidatePool int) (*KnowledgeIndex, error) {
	index, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create knowledge index: %w", err)
	}
	if candidatePool <= 0 {
		candidatePool = 50
	}
	return &KnowledgeIndex{
		index:         index,
		meta:          make(map[string]store.SourceDocument),
		candidatePool: candidatePool,
	}, nil
}

// Put indexes doc, replacing any previous version with the same id
func (k *KnowledgeIndex) Put(doc store.SourceDocument) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.meta[doc.ID] = doc
	return k.index.Index(doc.ID, indexedDocument{Title: doc.Title, Content: doc.Content})
}

// Remove drops doc from the index
func (k *KnowledgeIndex) Remove(id string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.meta, id)
	return k.index.Delete(id)
}

func (k *KnowledgeIndex) Len() int {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.meta)
}

// Search runs a match query (terms OR-ed) and post-filters by activity and filters
func (k *KnowledgeIndex) Search(ctx context.Context, query string, filters store.SearchFilters) ([]store.SourceDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	k.mu.RLock()
	defer k.mu.RUnlock()

	q := bleve.NewMatchQuery(query)
	req := bleve.NewSearchRequestOptions(q, k.candidatePool, 0, false)
	res, err := k.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("knowledge index search failed: %w", err)
	}

	out := make([]store.SourceDocument, 0, len(res.Hits))
	for _, hit := range res.Hits {
		doc, ok := k.meta[hit.ID]
		if !ok || !doc.Matches(filters) {
			continue
		}
		out = append(out, doc)
	}
	return out, nil
}

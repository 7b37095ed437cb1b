package search

import (
	"context"
	"sort"

	"knowledge-assistant-be/internal/pkg/logger"
	"knowledge-assistant-be/pkg/rag/similarity"
	"knowledge-assistant-be/pkg/store"
)

// DocumentSource is the searchable knowledge repository.
// Implementations must only return active documents matching the filters.
type DocumentSource interface {
	Search(ctx context.Context, query string, filters store.SearchFilters) ([]store.SourceDocument, error)
}

// Config encapsulates retrieval parameters
type Config struct {
	MaxDocs             int
	SimilarityThreshold float64
}

// DefaultConfig returns default retrieval configuration
func DefaultConfig() Config {
	return Config{
		MaxDocs:             5,
		SimilarityThreshold: 0.7,
	}
}

// Retriever queries the document source, scores each match and keeps the best ones
type Retriever struct {
	source DocumentSource
	scorer similarity.Scorer
	logger logger.ILogger
}

// NewRetriever creates a new retriever
func NewRetriever(source DocumentSource, scorer similarity.Scorer, logger logger.ILogger) *Retriever {
	return &Retriever{
		source: source,
		scorer: scorer,
		logger: logger,
	}
}

// Retrieve never fails: a search error degrades to an empty result.
// Every returned document has Similarity >= cfg.SimilarityThreshold, the slice is sorted
// by similarity descending and holds at most cfg.MaxDocs entries.
func (r *Retriever) Retrieve(ctx context.Context, query string, filters store.SearchFilters, cfg Config) []store.RetrievedDocument {
	if len(similarity.Tokens(query)) == 0 {
		return []store.RetrievedDocument{}
	}
	if cfg.MaxDocs <= 0 {
		cfg.MaxDocs = DefaultConfig().MaxDocs
	}

	matches, err := r.source.Search(ctx, query, filters)
	if err != nil {
		r.logger.Error("RETRIEVER", "Document search failed, continuing without evidence", map[string]interface{}{
			"error": err.Error(),
			"query": truncate(query, 80),
		})
		return []store.RetrievedDocument{}
	}

	docs := make([]store.RetrievedDocument, 0, len(matches))
	for _, m := range matches {
		if !m.IsActive {
			continue
		}

		score := r.scorer.Score(query, m.Content)
		if score < cfg.SimilarityThreshold {
			r.logger.Debug("RETRIEVER", "Candidate filtered", map[string]interface{}{
				"doc_id": m.ID,
				"score":  score,
			})
			continue
		}

		docs = append(docs, store.RetrievedDocument{
			ID:            m.ID,
			Title:         m.Title,
			SourceType:    m.SourceType,
			Sensitivity:   m.Sensitivity,
			Content:       m.Content,
			Similarity:    score,
			Version:       m.Version,
			RequiredRoles: m.RequiredRoles,
		})
	}

	// Ties fall back to id order so identical inputs give identical output
	sort.SliceStable(docs, func(i, j int) bool {
		if docs[i].Similarity != docs[j].Similarity {
			return docs[i].Similarity > docs[j].Similarity
		}
		return docs[i].ID < docs[j].ID
	})

	if len(docs) > cfg.MaxDocs {
		docs = docs[:cfg.MaxDocs]
	}

	r.logger.Debug("RETRIEVER", "Retrieval finished", map[string]interface{}{
		"raw_matches": len(matches),
		"kept":        len(docs),
	})

	return docs
}

// truncate keeps at most maxLen runes
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}

package confidence

import (
	"testing"

	"knowledge-assistant-be/pkg/store"

	"github.com/stretchr/testify/assert"
)

func docsWith(similarities ...float64) []store.RetrievedDocument {
	docs := make([]store.RetrievedDocument, 0, len(similarities))
	for _, s := range similarities {
		docs = append(docs, store.RetrievedDocument{Similarity: s})
	}
	return docs
}

func TestScorer_Score(t *testing.T) {
	s := NewScorer(DefaultThresholds())

	tests := []struct {
		name string
		docs []store.RetrievedDocument
		want store.ConfidenceLevel
	}{
		{"no documents", nil, store.ConfidenceLow},
		{"two strong documents", docsWith(0.9, 0.85), store.ConfidenceHigh},
		{"single strong document is only medium", docsWith(1.0), store.ConfidenceMedium},
		{"average at medium bound", docsWith(0.7, 0.7), store.ConfidenceMedium},
		{"average just under high", docsWith(0.9, 0.79), store.ConfidenceMedium},
		{"weak documents", docsWith(0.6, 0.65), store.ConfidenceLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Score(tt.docs))
		})
	}
}

func TestScorer_CustomThresholds(t *testing.T) {
	s := NewScorer(Thresholds{High: 0.5, Medium: 0.3, MinDocsForHigh: 1})
	assert.Equal(t, store.ConfidenceHigh, s.Score(docsWith(0.5)))
	assert.Equal(t, store.ConfidenceLow, s.Score(docsWith(0.2)))
}

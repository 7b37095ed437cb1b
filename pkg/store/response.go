package store

import (
	"encoding/json"
	"strings"
)

// ConfidenceLevel is the discrete trust rating attached to an answer
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "high"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceLow    ConfidenceLevel = "low"
)

// SourceCitation references a retrieved document backing an answer
type SourceCitation struct {
	DocID     string  `json:"doc_id"`
	Title     string  `json:"title"`
	Version   string  `json:"version"`
	Relevance float64 `json:"relevance"`
}

// StructuredResponse is the answer contract returned to callers.
// ConfidenceLevel low always comes with RequiresHumanFallback and a FallbackReason.
type StructuredResponse struct {
	Summary               string           `json:"summary"`
	Steps                 []string         `json:"steps,omitempty"`
	Sources               []SourceCitation `json:"sources"`
	StrategicSuggestion   string           `json:"strategic_suggestion,omitempty"`
	ConfidenceLevel       ConfidenceLevel  `json:"confidence_level"`
	RequiresHumanFallback bool             `json:"requires_human_fallback"`
	FallbackReason        string           `json:"fallback_reason,omitempty"`
	NextAction            string           `json:"next_action,omitempty"`
}

// Citations builds the sources list for docs. Never nil so the JSON stays an array.
func Citations(docs []RetrievedDocument) []SourceCitation {
	out := make([]SourceCitation, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.Citation())
	}
	return out
}

// Serialize renders the response as JSON for persistence
func (r *StructuredResponse) Serialize() string {
	data, err := json.Marshal(r)
	if err != nil {
		return "{}"
	}
	return string(data)
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func containsFold(list []string, v string) bool {
	for _, item := range list {
		if equalFold(item, v) {
			return true
		}
	}
	return false
}

package confidence

import "knowledge-assistant-be/pkg/store"

// Thresholds drive the generic confidence rule. Anything under Medium is low.
type Thresholds struct {
	High           float64
	Medium         float64
	MinDocsForHigh int
}

// DefaultThresholds returns the standard thresholds
func DefaultThresholds() Thresholds {
	return Thresholds{
		High:           0.85,
		Medium:         0.70,
		MinDocsForHigh: 2,
	}
}

// Scorer derives a confidence level from the retrieved set
type Scorer struct {
	thresholds Thresholds
}

func NewScorer(thresholds Thresholds) *Scorer {
	return &Scorer{thresholds: thresholds}
}

func (s *Scorer) Score(docs []store.RetrievedDocument) store.ConfidenceLevel {
	if len(docs) == 0 {
		return store.ConfidenceLow
	}

	avg := store.MeanSimilarity(docs)
	switch {
	case avg >= s.thresholds.High && len(docs) >= s.thresholds.MinDocsForHigh:
		return store.ConfidenceHigh
	case avg >= s.thresholds.Medium:
		return store.ConfidenceMedium
	default:
		return store.ConfidenceLow
	}
}

package response

import "knowledge-assistant-be/pkg/store"

// FinancialGenerator answers formula questions from the metric catalogue.
// The formulas stand on their own, so confidence is high with sources and medium without.
type FinancialGenerator struct {
	metrics    []FinancialMetric
	fallback   FinancialMetric
	nextAction string
}

func NewFinancialGenerator(metrics []FinancialMetric, fallback FinancialMetric, nextAction string) *FinancialGenerator {
	return &FinancialGenerator{metrics: metrics, fallback: fallback, nextAction: nextAction}
}

// Detect returns the first catalogue entry whose pattern matches the query
func (g *FinancialGenerator) Detect(query string) (FinancialMetric, bool) {
	for _, m := range g.metrics {
		if m.Pattern != nil && m.Pattern.MatchString(query) {
			return m, true
		}
	}
	return g.fallback, false
}

func (g *FinancialGenerator) Generate(query string, docs []store.RetrievedDocument) Result {
	resp := newResponse(docs)

	metric, _ := g.Detect(query)
	resp.Summary = metric.Summary
	resp.Steps = append(resp.Steps, metric.Steps...)
	resp.StrategicSuggestion = metric.Recommendation
	resp.NextAction = g.nextAction
	resp.ConfidenceLevel = store.ConfidenceMedium
	if len(docs) > 0 {
		resp.ConfidenceLevel = store.ConfidenceHigh
	}

	return Result{Response: resp, ConfidenceAsserted: true}
}

var _ Generator = (*FinancialGenerator)(nil)

package response

import (
	"knowledge-assistant-be/pkg/rag/intent"
	"knowledge-assistant-be/pkg/store"
)

// Result is a generated response plus whether the generator fixed the
// confidence itself. The executor only computes confidence when it was not asserted.
type Result struct {
	Response           store.StructuredResponse
	ConfidenceAsserted bool
}

// Generator builds a structured response for one intent from the authorized documents
type Generator interface {
	Generate(query string, docs []store.RetrievedDocument) Result
}

// Router dispatches to the generator registered for an intent
type Router struct {
	generators map[intent.Intent]Generator
	fallback   Generator
}

// NewRouter wires the four built-in strategies
func NewRouter(knowledge Knowledge, opts Options) *Router {
	general := NewGeneralGenerator(knowledge.General)
	return &Router{
		generators: map[intent.Intent]Generator{
			intent.FinancialCalculation: NewFinancialGenerator(knowledge.Financial, knowledge.FinancialFallback, knowledge.FinancialNextAction),
			intent.OperationalGuide:     NewOperationalGenerator(knowledge.Operational, opts.OperationalMinSimilarity),
			intent.StrategicAdvice:      NewStrategicGenerator(knowledge.Strategic),
			intent.General:              general,
		},
		fallback: general,
	}
}

// Register replaces or adds the generator for an intent
func (r *Router) Register(i intent.Intent, g Generator) {
	r.generators[i] = g
}

// Generate routes to the matching strategy. Unknown intents use the general one.
func (r *Router) Generate(i intent.Intent, query string, docs []store.RetrievedDocument) Result {
	g, ok := r.generators[i]
	if !ok {
		g = r.fallback
	}
	return g.Generate(query, docs)
}

// newResponse starts every response with the citations of the authorized documents
func newResponse(docs []store.RetrievedDocument) store.StructuredResponse {
	return store.StructuredResponse{
		Sources: store.Citations(docs),
		Steps:   []string{},
	}
}

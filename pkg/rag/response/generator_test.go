package response

import (
	"strings"
	"testing"

	"knowledge-assistant-be/pkg/rag/intent"
	"knowledge-assistant-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter() *Router {
	return NewRouter(DefaultKnowledge(), DefaultOptions())
}

func doc(id string, similarity float64, content string) store.RetrievedDocument {
	return store.RetrievedDocument{
		ID:         id,
		Title:      "Doc " + id,
		SourceType: store.SourceInternal,
		Content:    content,
		Similarity: similarity,
		Version:    "1.0",
	}
}

func assertFallbackInvariant(t *testing.T, resp store.StructuredResponse) {
	t.Helper()
	if resp.ConfidenceLevel == store.ConfidenceLow {
		assert.True(t, resp.RequiresHumanFallback)
		assert.NotEmpty(t, resp.FallbackReason)
	}
}

func TestFinancial_ContributionMarginWithoutDocuments(t *testing.T) {
	res := newTestRouter().Generate(intent.FinancialCalculation, "Como calcular a margem de contribuição?", nil)

	assert.True(t, res.ConfidenceAsserted)
	assert.Contains(t, res.Response.Summary, "Margem de Contribuição")
	assert.GreaterOrEqual(t, len(res.Response.Steps), 3)
	assert.LessOrEqual(t, len(res.Response.Steps), 5)
	assert.Equal(t, store.ConfidenceMedium, res.Response.ConfidenceLevel)
	assert.False(t, res.Response.RequiresHumanFallback)
	assert.NotNil(t, res.Response.Sources)
	assert.Empty(t, res.Response.Sources)
}

func TestFinancial_HighWithSources(t *testing.T) {
	docs := []store.RetrievedDocument{doc("fin-1", 0.8, "margem")}
	res := newTestRouter().Generate(intent.FinancialCalculation, "margem de contribuição", docs)

	assert.Equal(t, store.ConfidenceHigh, res.Response.ConfidenceLevel)
	require.Len(t, res.Response.Sources, 1)
	assert.Equal(t, "fin-1", res.Response.Sources[0].DocID)
	assert.Equal(t, 0.8, res.Response.Sources[0].Relevance)
}

func TestFinancial_DSOFormula(t *testing.T) {
	res := newTestRouter().Generate(intent.FinancialCalculation, "qual o DSO da empresa?", nil)

	assert.Contains(t, res.Response.Summary, "DSO")
	assert.Contains(t, strings.Join(res.Response.Steps, "\n"), "(Contas a Receber / Receita Mensal) × 30")
	assert.NotEmpty(t, res.Response.StrategicSuggestion)
}

func TestFinancial_Detect(t *testing.T) {
	k := DefaultKnowledge()
	g := NewFinancialGenerator(k.Financial, k.FinancialFallback, k.FinancialNextAction)

	tests := []struct {
		query string
		want  string
		found bool
	}{
		{"qual o DSO?", "dso", true},
		{"Margem EBITDA do trimestre", "ebitda", true},
		{"como definir o markup", "markup", true},
		{"giro de estoque anual", "inventory_turnover", true},
		{"calcular ponto de equilíbrio", "break_even", true},
		{"break-even point", "break_even", true},
		{"margem bruta", "contribution_margin", true},
		{"indicadores financeiros", "financial_overview", false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			m, ok := g.Detect(tt.query)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, m.Key)
			assert.GreaterOrEqual(t, len(m.Steps), 3)
			assert.LessOrEqual(t, len(m.Steps), 5)
		})
	}
}

func TestOperational_BelowBarFallsBack(t *testing.T) {
	docs := []store.RetrievedDocument{doc("op-1", 0.6, "1. Abra o módulo")}
	res := newTestRouter().Generate(intent.OperationalGuide, "como criar um orçamento", docs)

	assert.Equal(t, store.ConfidenceLow, res.Response.ConfidenceLevel)
	assert.True(t, res.Response.RequiresHumanFallback)
	assert.Equal(t, ReasonNoApplicableDocumentation, res.Response.FallbackReason)
	require.Len(t, res.Response.Sources, 1)
	assertFallbackInvariant(t, res.Response)
}

func TestOperational_ExactlyAtBarFallsBack(t *testing.T) {
	docs := []store.RetrievedDocument{doc("op-1", 0.75, "1. Abra o módulo")}
	res := newTestRouter().Generate(intent.OperationalGuide, "tutorial", docs)

	assert.Equal(t, store.ConfidenceLow, res.Response.ConfidenceLevel)
}

func TestOperational_ExtractsNumberedSteps(t *testing.T) {
	content := "Criação de orçamento\n1. Abra o módulo Vendas\r\n2) Clique em Novo Orçamento\nObservação solta\n  3. Salve e envie ao cliente  "
	docs := []store.RetrievedDocument{
		doc("op-1", 0.9, content),
		doc("op-2", 0.8, "1. Outro procedimento"),
	}
	res := newTestRouter().Generate(intent.OperationalGuide, "como criar um orçamento", docs)

	assert.Equal(t, store.ConfidenceHigh, res.Response.ConfidenceLevel)
	assert.False(t, res.Response.RequiresHumanFallback)
	assert.Equal(t, []string{"Abra o módulo Vendas", "Clique em Novo Orçamento", "Salve e envie ao cliente"}, res.Response.Steps)
	assert.Contains(t, res.Response.Summary, "Doc op-1")
	assert.Len(t, res.Response.Sources, 2)
}

func TestOperational_GenericStepWhenNoNumbering(t *testing.T) {
	docs := []store.RetrievedDocument{doc("op-1", 0.9, "Texto corrido sem passos numerados.")}
	res := newTestRouter().Generate(intent.OperationalGuide, "procedimento", docs)

	require.Len(t, res.Response.Steps, 1)
	assert.Contains(t, res.Response.Steps[0], "Doc op-1")
	assert.Equal(t, store.ConfidenceHigh, res.Response.ConfidenceLevel)
}

func TestExtractSteps(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"empty", "", nil},
		{"dot and paren", "1. um\n2) dois", []string{"um", "dois"}},
		{"multi digit", "10. dez", []string{"dez"}},
		{"ignores bullets", "- item\n* outro", nil},
		{"ignores bare numbers", "3.\n4)", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractSteps(tt.content))
		})
	}
}

func TestStrategic_AlwaysHighWithSixSteps(t *testing.T) {
	res := newTestRouter().Generate(intent.StrategicAdvice, "qual a melhor estratégia de crescimento?", nil)

	assert.True(t, res.ConfidenceAsserted)
	assert.Equal(t, store.ConfidenceHigh, res.Response.ConfidenceLevel)
	assert.Len(t, res.Response.Steps, 6)
	assert.NotEmpty(t, res.Response.StrategicSuggestion)
	assert.False(t, res.Response.RequiresHumanFallback)
	assert.Empty(t, res.Response.Sources)
}

func TestGeneral(t *testing.T) {
	router := newTestRouter()

	found := router.Generate(intent.General, "política de férias", []store.RetrievedDocument{doc("g-1", 0.8, "férias")})
	assert.Equal(t, store.ConfidenceMedium, found.Response.ConfidenceLevel)
	assert.Contains(t, found.Response.Summary, "1")
	assert.False(t, found.Response.RequiresHumanFallback)

	missing := router.Generate(intent.General, "política de férias", nil)
	assert.Equal(t, store.ConfidenceLow, missing.Response.ConfidenceLevel)
	assert.Equal(t, ReasonNoDocumentationAvailable, missing.Response.FallbackReason)
	assertFallbackInvariant(t, missing.Response)
}

type stubGenerator struct{ calls int }

func (s *stubGenerator) Generate(string, []store.RetrievedDocument) Result {
	s.calls++
	return Result{Response: store.StructuredResponse{Summary: "stub"}}
}

func TestRouter_RegisterAndUnknownIntent(t *testing.T) {
	router := newTestRouter()
	stub := &stubGenerator{}
	router.Register(intent.General, stub)

	res := router.Generate(intent.Intent("unknown"), "x", nil)
	assert.Equal(t, ReasonNoDocumentationAvailable, res.Response.FallbackReason, "unknown intents use the built-in general strategy")

	res = router.Generate(intent.General, "x", nil)
	assert.Equal(t, "stub", res.Response.Summary)
	assert.Equal(t, 1, stub.calls)
}

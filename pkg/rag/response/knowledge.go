package response

import "regexp"

// Fallback reasons recorded on responses that need a human
const (
	ReasonNoApplicableDocumentation = "no applicable documentation"
	ReasonNoDocumentationAvailable  = "no documentation available"
)

// FinancialMetric is one entry of the formula catalogue. New metrics are added
// by appending to Knowledge.Financial; order decides which metric wins.
type FinancialMetric struct {
	Key            string
	Name           string
	Pattern        *regexp.Regexp
	Summary        string
	Steps          []string
	Recommendation string
}

type OperationalTemplate struct {
	FoundSummary       string // %s = document title
	GenericStep        string // %s = document title
	NextAction         string
	NotFoundSummary    string
	NotFoundNextAction string
}

type StrategicPlaybook struct {
	Summary    string
	Steps      []string
	Principles string
	NextAction string
}

type GeneralTemplate struct {
	FoundSummary       string // %d = number of documents
	NextAction         string
	NotFoundSummary    string
	NotFoundNextAction string
}

// Knowledge is the static domain content the generators assemble answers from
type Knowledge struct {
	Financial           []FinancialMetric
	FinancialFallback   FinancialMetric
	FinancialNextAction string
	Operational         OperationalTemplate
	Strategic           StrategicPlaybook
	General             GeneralTemplate
}

// Options tunes generator behaviour
type Options struct {
	// OperationalMinSimilarity is the bar a document must clear (strictly) to supply a procedure
	OperationalMinSimilarity float64
}

func DefaultOptions() Options {
	return Options{OperationalMinSimilarity: 0.75}
}

const humanReviewNextAction = "Um especialista vai analisar sua pergunta e responder dentro do prazo de atendimento."

// DefaultKnowledge returns the built-in catalogue
func DefaultKnowledge() Knowledge {
	return Knowledge{
		Financial: []FinancialMetric{
			{
				Key:     "dso",
				Name:    "DSO (Prazo Médio de Recebimento)",
				Pattern: regexp.MustCompile(`(?i)(\bdso\b|prazo m[ée]dio de recebimento|receivables?[- ]days|days sales outstanding)`),
				Summary: "O DSO (Prazo Médio de Recebimento) indica em quantos dias, em média, a empresa recebe de seus clientes após a venda.",
				Steps: []string{
					"Levante o saldo de Contas a Receber no fim do período",
					"Apure a Receita Mensal (faturamento bruto do mês)",
					"Aplique a fórmula: DSO = (Contas a Receber / Receita Mensal) × 30",
					"Compare o resultado com o prazo médio concedido aos clientes",
				},
				Recommendation: "Se o DSO estiver acima do prazo concedido, revise a política de crédito, antecipe a cobrança e ofereça desconto para pagamento à vista.",
			},
			{
				Key:     "ebitda",
				Name:    "EBITDA",
				Pattern: regexp.MustCompile(`(?i)ebitda`),
				Summary: "O EBITDA mede a geração de caixa operacional: lucro antes de juros, impostos, depreciação e amortização.",
				Steps: []string{
					"Parta do Lucro Operacional (EBIT) da DRE",
					"Some a Depreciação e a Amortização do período",
					"Calcule: EBITDA = Lucro Operacional + Depreciação + Amortização",
					"Calcule a margem: Margem EBITDA = (EBITDA / Receita Líquida) × 100",
				},
				Recommendation: "Acompanhe a margem EBITDA mensalmente e compare com o setor antes de decidir investimentos ou novas dívidas.",
			},
			{
				Key:     "markup",
				Name:    "Markup",
				Pattern: regexp.MustCompile(`(?i)mark-?up`),
				Summary: "O Markup é o multiplicador aplicado sobre o custo para formar o preço de venda, cobrindo despesas e a margem de lucro desejada.",
				Steps: []string{
					"Some as despesas variáveis de venda em percentual do preço (impostos, comissões)",
					"Defina o percentual de despesas fixas e o lucro desejado",
					"Calcule: Markup = 100 / (100 − (Despesas Variáveis % + Despesas Fixas % + Lucro %))",
					"Forme o preço: Preço de Venda = Custo Unitário × Markup",
				},
				Recommendation: "Revise o markup sempre que impostos ou custos fixos mudarem e compare o preço resultante com o mercado.",
			},
			{
				Key:     "inventory_turnover",
				Name:    "Giro de Estoque",
				Pattern: regexp.MustCompile(`(?i)(giro de estoque|inventory turnover)`),
				Summary: "O Giro de Estoque indica quantas vezes o estoque é renovado no período.",
				Steps: []string{
					"Apure o Custo das Mercadorias Vendidas (CMV) do período",
					"Calcule o Estoque Médio = (Estoque Inicial + Estoque Final) / 2",
					"Calcule: Giro de Estoque = CMV / Estoque Médio",
					"Converta em dias: Dias de Estoque = 365 / Giro de Estoque",
				},
				Recommendation: "Reduza as compras dos itens de giro baixo e negocie reposição mais frequente dos itens de giro alto.",
			},
			{
				Key:     "break_even",
				Name:    "Ponto de Equilíbrio",
				Pattern: regexp.MustCompile(`(?i)(ponto de equil[íi]brio|break[- ]?even)`),
				Summary: "O Ponto de Equilíbrio é o faturamento em que a receita cobre todos os custos, sem lucro nem prejuízo.",
				Steps: []string{
					"Some os Custos Fixos mensais",
					"Calcule o índice de Margem de Contribuição (Margem de Contribuição / Receita Líquida)",
					"Calcule: Ponto de Equilíbrio = Custos Fixos / Índice de Margem de Contribuição",
				},
				Recommendation: "Mantenha o faturamento pelo menos 20% acima do ponto de equilíbrio e revise os custos fixos se essa folga diminuir.",
			},
			{
				Key:     "contribution_margin",
				Name:    "Margem de Contribuição",
				Pattern: regexp.MustCompile(`(?i)(margem|margin)`),
				Summary: "A Margem de Contribuição mostra quanto de cada venda sobra para pagar os custos fixos e gerar lucro, depois dos custos e despesas variáveis.",
				Steps: []string{
					"Apure a Receita Líquida de Vendas do período",
					"Some os custos e despesas variáveis (CMV, impostos sobre venda, comissões, frete)",
					"Calcule: Margem de Contribuição = Receita Líquida − Custos e Despesas Variáveis",
					"Calcule o índice: Margem de Contribuição (%) = (Margem de Contribuição / Receita Líquida) × 100",
				},
				Recommendation: "Priorize os produtos com maior margem de contribuição unitária e revise preço ou custo dos itens com margem abaixo de 30%.",
			},
		},
		FinancialFallback: FinancialMetric{
			Key:     "financial_overview",
			Name:    "Indicadores Financeiros",
			Summary: "Posso ajudar com indicadores como Margem de Contribuição, Markup, EBITDA, DSO, Giro de Estoque e Ponto de Equilíbrio.",
			Steps: []string{
				"Identifique qual indicador você quer acompanhar",
				"Reúna os dados da DRE e do balanço do período",
				"Refaça a pergunta citando o indicador, por exemplo: como calcular o DSO?",
			},
			Recommendation: "Acompanhe ao menos margem, caixa e prazo de recebimento todos os meses.",
		},
		FinancialNextAction: "Aplique a fórmula com os números do último mês e compare com o mês anterior.",
		Operational: OperationalTemplate{
			FoundSummary:       "Encontrei o procedimento no documento \"%s\".",
			GenericStep:        "Consulte o documento completo \"%s\" para o passo a passo detalhado.",
			NextAction:         "Siga os passos na ordem e abra um chamado se algum deles falhar.",
			NotFoundSummary:    "Não encontrei documentação aplicável para este procedimento.",
			NotFoundNextAction: humanReviewNextAction,
		},
		Strategic: StrategicPlaybook{
			Summary: "Decisões estratégicas devem partir de dados: siga o diagnóstico abaixo antes de comprometer recursos.",
			Steps: []string{
				"Reúna os dados dos últimos 60 a 90 dias (vendas, margens, caixa e clientes)",
				"Identifique os 3 principais gargalos que limitam o resultado",
				"Calcule o ROI estimado de cada opção de ação",
				"Priorize as opções pelo menor prazo de retorno (payback)",
				"Defina métricas semanais para acompanhar a execução",
				"Teste em piloto antes de escalar",
			},
			Principles: "Princípios: proteja o caixa antes de buscar crescimento; teste pequeno e escale o que funciona; " +
				"decisões reversíveis podem ser rápidas, as irreversíveis exigem dados; cresça onde já existe margem; meça antes de opinar.",
			NextAction: "Comece pelo passo 1 e traga os números para uma nova análise.",
		},
		General: GeneralTemplate{
			FoundSummary:       "Encontrei %d documento(s) relacionados à sua pergunta. Consulte as fontes indicadas.",
			NextAction:         "Abra as fontes listadas para ver os detalhes.",
			NotFoundSummary:    "Não encontrei documentação sobre este assunto.",
			NotFoundNextAction: humanReviewNextAction,
		},
	}
}

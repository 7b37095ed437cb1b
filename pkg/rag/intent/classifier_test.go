package intent

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifier_Classify(t *testing.T) {
	c := NewClassifier(nil)

	tests := []struct {
		query string
		want  Intent
	}{
		{"Como calcular a margem de contribuição?", FinancialCalculation},
		{"qual o DSO da empresa?", FinancialCalculation},
		{"What is our EBITDA this quarter", FinancialCalculation},
		{"como melhorar o giro de estoque", FinancialCalculation},
		{"Qual o ponto de equilíbrio?", FinancialCalculation},
		{"how do I compute break-even", FinancialCalculation},
		{"como criar um orçamento", OperationalGuide},
		{"Tutorial de emissão de nota fiscal", OperationalGuide},
		{"apareceu um ERRO ao salvar", OperationalGuide},
		{"step by step invoice", OperationalGuide},
		{"qual a melhor estratégia de crescimento?", StrategicAdvice},
		{"should we make this investment", StrategicAdvice},
		{"preciso tomar uma decisão sobre expansão", StrategicAdvice},
		{"quem é o responsável pelo RH?", General},
		{"", General},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.query))
		})
	}
}

func TestClassifier_PriorityOrder(t *testing.T) {
	c := NewClassifier(nil)

	// financial beats operational and strategic
	assert.Equal(t, FinancialCalculation, c.Classify("problema na margem da estratégia"))
	// operational beats strategic
	assert.Equal(t, OperationalGuide, c.Classify("tutorial da estratégia de crescimento"))
}

func TestClassifier_DoesNotMatchInsideWords(t *testing.T) {
	c := NewClassifier(nil)
	assert.Equal(t, General, c.Classify("quem cuida do dsomething"))
}

func TestClassifier_CustomRules(t *testing.T) {
	c := NewClassifier([]Rule{
		{Intent: StrategicAdvice, Pattern: regexp.MustCompile(`(?i)roadmap`)},
	})
	assert.Equal(t, StrategicAdvice, c.Classify("Roadmap 2027"))
	assert.Equal(t, General, c.Classify("margem"))
}

package intent

import "regexp"

// Intent is the classified purpose of a query. It selects the response strategy.
type Intent string

const (
	FinancialCalculation Intent = "financial_calculation"
	OperationalGuide     Intent = "operational_guide"
	StrategicAdvice      Intent = "strategic_advice"
	General              Intent = "general"
)

// Rule maps a case-insensitive pattern to an intent
type Rule struct {
	Intent  Intent
	Pattern *regexp.Regexp
}

// DefaultRules returns the rules in priority order. Portuguese and English vocabulary are both recognised.
func DefaultRules() []Rule {
	return []Rule{
		{
			Intent: FinancialCalculation,
			Pattern: regexp.MustCompile(`(?i)(margem|margin|mark-?up|ebitda|\bdso\b|prazo m[ée]dio de recebimento|receivables?[- ]days|days sales outstanding|giro de estoque|inventory turnover|ponto de equil[íi]brio|break[- ]?even)`),
		},
		{
			Intent:  OperationalGuide,
			Pattern: regexp.MustCompile(`(?i)(como criar|how to create|passo a passo|step[- ]by[- ]step|tutorial|procedimento|procedure|\berro|\berror|problema|problem)`),
		},
		{
			Intent:  StrategicAdvice,
			Pattern: regexp.MustCompile(`(?i)(estrat[ée]gi|strateg|crescimento|growth|expans[ãa]o|expansion|investimento|investment|decis[ãa]o|decision)`),
		},
	}
}

// Classifier evaluates rules in order, first match wins
type Classifier struct {
	rules []Rule
}

// NewClassifier creates a classifier; nil rules means DefaultRules
func NewClassifier(rules []Rule) *Classifier {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Classifier{rules: rules}
}

// Classify returns the first matching intent or General
func (c *Classifier) Classify(query string) Intent {
	for _, r := range c.rules {
		if r.Pattern.MatchString(query) {
			return r.Intent
		}
	}
	return General
}

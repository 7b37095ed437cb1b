// Package similarity scores how well a document body answers a query.
//
// The lexical scorer is a stand-in for a semantic one: anything satisfying
// Scorer can replace it without touching the retriever.
package similarity

import "strings"

// DefaultBoost is added to the raw overlap fraction before clamping
const DefaultBoost = 0.2

// Scorer returns a similarity in [0,1] between query and document body
type Scorer interface {
	Score(query, document string) float64
}

// LexicalScorer measures the fraction of query tokens found in the document
type LexicalScorer struct {
	Boost float64
}

// NewLexicalScorer creates a scorer with the given boost
func NewLexicalScorer(boost float64) *LexicalScorer {
	return &LexicalScorer{Boost: boost}
}

// Score computes min(matchedFraction + boost, 1.0). A query without tokens scores 0.
func (s *LexicalScorer) Score(query, document string) float64 {
	tokens := Tokens(query)
	if len(tokens) == 0 {
		return 0
	}

	body := strings.ToLower(document)
	matched := 0
	for _, tok := range tokens {
		if strings.Contains(body, tok) {
			matched++
		}
	}

	score := float64(matched)/float64(len(tokens)) + s.Boost
	if score > 1.0 {
		score = 1.0
	}
	if score < 0 {
		score = 0
	}
	return score
}

// Tokens splits the query on whitespace and lowercases every token
func Tokens(query string) []string {
	return strings.Fields(strings.ToLower(query))
}

package specification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToPrefixTSQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"empty", "", ""},
		{"punctuation only", "?!", ""},
		{"lowercases and joins", "Como criar Orçamento?", "como:* | criar:* | orçamento:*"},
		{"deduplicates", "dso DSO dso", "dso:*"},
		{"strips tsquery operators", "a & b | !c", "a:* | b:* | c:*"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToPrefixTSQuery(tt.query))
		})
	}
}

package response

import (
	"fmt"
	"regexp"
	"strings"

	"knowledge-assistant-be/pkg/store"
)

var numberedLine = regexp.MustCompile(`^\s*\d+[.)]\s*(.+?)\s*$`)

// OperationalGenerator turns the numbered lines of the best matching guide into steps
type OperationalGenerator struct {
	tpl           OperationalTemplate
	minSimilarity float64
}

func NewOperationalGenerator(tpl OperationalTemplate, minSimilarity float64) *OperationalGenerator {
	return &OperationalGenerator{tpl: tpl, minSimilarity: minSimilarity}
}

func (g *OperationalGenerator) Generate(_ string, docs []store.RetrievedDocument) Result {
	resp := newResponse(docs)

	guide, ok := g.pickGuide(docs)
	if !ok {
		resp.Summary = g.tpl.NotFoundSummary
		resp.ConfidenceLevel = store.ConfidenceLow
		resp.RequiresHumanFallback = true
		resp.FallbackReason = ReasonNoApplicableDocumentation
		resp.NextAction = g.tpl.NotFoundNextAction
		return Result{Response: resp, ConfidenceAsserted: true}
	}

	steps := ExtractSteps(guide.Content)
	if len(steps) == 0 {
		steps = []string{fmt.Sprintf(g.tpl.GenericStep, guide.Title)}
	}

	resp.Summary = fmt.Sprintf(g.tpl.FoundSummary, guide.Title)
	resp.Steps = steps
	resp.ConfidenceLevel = store.ConfidenceHigh
	resp.NextAction = g.tpl.NextAction
	return Result{Response: resp, ConfidenceAsserted: true}
}

// pickGuide returns the first document strictly above the similarity bar.
// Docs arrive sorted, so that is also the most relevant one.
func (g *OperationalGenerator) pickGuide(docs []store.RetrievedDocument) (store.RetrievedDocument, bool) {
	for _, d := range docs {
		if d.Similarity > g.minSimilarity {
			return d, true
		}
	}
	return store.RetrievedDocument{}, false
}

// ExtractSteps collects the text of lines starting with "N." or "N)" in document order
func ExtractSteps(content string) []string {
	var steps []string
	for _, line := range strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n") {
		m := numberedLine.FindStringSubmatch(line)
		if m == nil || m[1] == "" {
			continue
		}
		steps = append(steps, m[1])
	}
	return steps
}

var _ Generator = (*OperationalGenerator)(nil)

package response

import (
	"fmt"

	"knowledge-assistant-be/pkg/store"
)

type GeneralGenerator struct {
	tpl GeneralTemplate
}

func NewGeneralGenerator(tpl GeneralTemplate) *GeneralGenerator {
	return &GeneralGenerator{tpl: tpl}
}

func (g *GeneralGenerator) Generate(_ string, docs []store.RetrievedDocument) Result {
	resp := newResponse(docs)

	if len(docs) == 0 {
		resp.Summary = g.tpl.NotFoundSummary
		resp.ConfidenceLevel = store.ConfidenceLow
		resp.RequiresHumanFallback = true
		resp.FallbackReason = ReasonNoDocumentationAvailable
		resp.NextAction = g.tpl.NotFoundNextAction
		return Result{Response: resp, ConfidenceAsserted: true}
	}

	resp.Summary = fmt.Sprintf(g.tpl.FoundSummary, len(docs))
	resp.ConfidenceLevel = store.ConfidenceMedium
	resp.NextAction = g.tpl.NextAction
	return Result{Response: resp, ConfidenceAsserted: true}
}

var _ Generator = (*GeneralGenerator)(nil)

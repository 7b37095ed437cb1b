package response

import "knowledge-assistant-be/pkg/store"

// StrategicGenerator always answers with the diagnostic playbook
type StrategicGenerator struct {
	playbook StrategicPlaybook
}

func NewStrategicGenerator(playbook StrategicPlaybook) *StrategicGenerator {
	return &StrategicGenerator{playbook: playbook}
}

func (g *StrategicGenerator) Generate(_ string, docs []store.RetrievedDocument) Result {
	resp := newResponse(docs)
	resp.Summary = g.playbook.Summary
	resp.Steps = append(resp.Steps, g.playbook.Steps...)
	resp.StrategicSuggestion = g.playbook.Principles
	resp.NextAction = g.playbook.NextAction
	resp.ConfidenceLevel = store.ConfidenceHigh
	return Result{Response: resp, ConfidenceAsserted: true}
}

var _ Generator = (*StrategicGenerator)(nil)

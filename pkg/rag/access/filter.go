package access

import "knowledge-assistant-be/pkg/store"

// Filter strips documents the requester's role may not see
type Filter struct {
	policy Policy
}

// NewFilter creates a filter. A nil policy means AllowAll.
func NewFilter(policy Policy) *Filter {
	if policy == nil {
		policy = AllowAll{}
	}
	return &Filter{policy: policy}
}

// Apply returns the authorized documents in their original order and how many were denied
func (f *Filter) Apply(docs []store.RetrievedDocument, userRole string) ([]store.RetrievedDocument, int) {
	allowed := make([]store.RetrievedDocument, 0, len(docs))
	for _, d := range docs {
		if f.policy.Allows(d, userRole) {
			allowed = append(allowed, d)
		}
	}
	return allowed, len(docs) - len(allowed)
}

package access

import (
	"testing"

	"knowledge-assistant-be/pkg/store"

	"github.com/stretchr/testify/assert"
)

func sampleDocs() []store.RetrievedDocument {
	return []store.RetrievedDocument{
		{ID: "public", SourceType: store.SourcePublic},
		{ID: "finance", SourceType: store.SourceConfidential, RequiredRoles: []string{"finance", "manager"}},
		{ID: "board", SourceType: store.SourceRestricted, RequiredRoles: []string{"director"}},
	}
}

func TestFilter_DefaultAllowsEverything(t *testing.T) {
	f := NewFilter(nil)
	docs, denied := f.Apply(sampleDocs(), "employee")

	assert.Len(t, docs, 3)
	assert.Equal(t, 0, denied)
}

func TestFilter_RoleBased(t *testing.T) {
	tests := []struct {
		name    string
		role    string
		wantIDs []string
	}{
		{name: "employee sees only open docs", role: "employee", wantIDs: []string{"public"}},
		{name: "finance matches case insensitively", role: "FINANCE", wantIDs: []string{"public", "finance"}},
		{name: "director", role: "director", wantIDs: []string{"public", "board"}},
		{name: "admin is a super role", role: "admin", wantIDs: []string{"public", "finance", "board"}},
		{name: "empty role", role: "", wantIDs: []string{"public"}},
	}

	f := NewFilter(NewRoleBased("admin"))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs, denied := f.Apply(sampleDocs(), tt.role)
			assert.Equal(t, tt.wantIDs, store.DocumentIDs(docs))
			assert.Equal(t, 3-len(tt.wantIDs), denied)
		})
	}
}

func TestNewPolicy(t *testing.T) {
	assert.IsType(t, AllowAll{}, NewPolicy("allow_all"))
	assert.IsType(t, AllowAll{}, NewPolicy("unknown"))
	assert.IsType(t, &RoleBased{}, NewPolicy("role_based", "admin"))
}

package access

import (
	"strings"

	"knowledge-assistant-be/pkg/store"
)

// Policy decides whether a role may see a document
type Policy interface {
	Allows(doc store.RetrievedDocument, userRole string) bool
}

// AllowAll lets every document through. It is the shipped default and carries no access control.
type AllowAll struct{}

func (AllowAll) Allows(store.RetrievedDocument, string) bool { return true }

// RoleBased checks the document's required roles against the requester role.
// Documents without required roles are visible to everyone; SuperRoles see everything.
type RoleBased struct {
	SuperRoles []string
}

// NewRoleBased creates a role based policy
func NewRoleBased(superRoles ...string) *RoleBased {
	return &RoleBased{SuperRoles: superRoles}
}

func (p *RoleBased) Allows(doc store.RetrievedDocument, userRole string) bool {
	if len(doc.RequiredRoles) == 0 {
		return true
	}
	role := strings.TrimSpace(userRole)
	if role == "" {
		return false
	}
	for _, s := range p.SuperRoles {
		if strings.EqualFold(s, role) {
			return true
		}
	}
	for _, r := range doc.RequiredRoles {
		if strings.EqualFold(r, role) {
			return true
		}
	}
	return false
}

// NewPolicy maps a configuration name to a policy. Unknown names fall back to AllowAll.
func NewPolicy(name string, superRoles ...string) Policy {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "role_based", "rolebased", "rbac":
		return NewRoleBased(superRoles...)
	default:
		return AllowAll{}
	}
}

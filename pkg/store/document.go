package store

import "time"

// Sensitivity / source type tags carried by knowledge documents
const (
	SourcePublic       = "public"
	SourceInternal     = "internal"
	SourceConfidential = "confidential"
	SourceRestricted   = "restricted"
)

// QueryContext frames one incoming question. It is built per request and never mutated.
type QueryContext struct {
	SessionID string     `json:"session_id"`
	UserID    string     `json:"user_id,omitempty"`
	UserRole  string     `json:"user_role"`
	CompanyID string     `json:"company_id,omitempty"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

// SearchFilters narrows a DocumentSource query. Empty fields mean "no restriction".
type SearchFilters struct {
	SourceTypes []string `json:"source_types,omitempty"`
	Sensitivity string   `json:"sensitivity,omitempty"`
	Categories  []string `json:"categories,omitempty"`
	CompanyID   string   `json:"company_id,omitempty"`
}

// SourceDocument is a raw match as returned by the document store
type SourceDocument struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	SourceType    string   `json:"source_type"`
	Sensitivity   string   `json:"sensitivity"`
	Category      string   `json:"category"`
	Content       string   `json:"content"`
	Version       string   `json:"version"`
	IsActive      bool     `json:"is_active"`
	RequiredRoles []string `json:"required_roles,omitempty"`
	CompanyID     string   `json:"company_id,omitempty"`
}

// Matches reports whether the document satisfies the filters. Inactive documents never match.
func (d SourceDocument) Matches(f SearchFilters) bool {
	if !d.IsActive {
		return false
	}
	if len(f.SourceTypes) > 0 && !containsFold(f.SourceTypes, d.SourceType) {
		return false
	}
	if f.Sensitivity != "" && !equalFold(f.Sensitivity, d.Sensitivity) {
		return false
	}
	if len(f.Categories) > 0 && !containsFold(f.Categories, d.Category) {
		return false
	}
	// Tenant scoping: global documents (no company) are visible to every tenant
	if f.CompanyID != "" && d.CompanyID != "" && d.CompanyID != f.CompanyID {
		return false
	}
	return true
}

// RetrievedDocument is a scored candidate produced by the retriever for one pipeline run
type RetrievedDocument struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	SourceType    string   `json:"source_type"`
	Sensitivity   string   `json:"sensitivity,omitempty"`
	Content       string   `json:"content"`
	Similarity    float64  `json:"similarity"`
	Version       string   `json:"version"`
	RequiredRoles []string `json:"required_roles,omitempty"`
}

// IsSensitive reports whether exposing the document must be flagged in the audit trail
func (d RetrievedDocument) IsSensitive() bool {
	return isSensitiveTag(d.SourceType) || isSensitiveTag(d.Sensitivity)
}

// Citation projects the document into a source citation
func (d RetrievedDocument) Citation() SourceCitation {
	return SourceCitation{
		DocID:     d.ID,
		Title:     d.Title,
		Version:   d.Version,
		Relevance: d.Similarity,
	}
}

// MeanSimilarity returns the average similarity of docs, 0 when empty
func MeanSimilarity(docs []RetrievedDocument) float64 {
	if len(docs) == 0 {
		return 0
	}
	var sum float64
	for _, d := range docs {
		sum += d.Similarity
	}
	return sum / float64(len(docs))
}

// DocumentIDs collects the ids of docs in order
func DocumentIDs(docs []RetrievedDocument) []string {
	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	return ids
}

func isSensitiveTag(tag string) bool {
	return equalFold(tag, SourceConfidential) || equalFold(tag, SourceRestricted)
}

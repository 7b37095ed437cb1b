package search

import (
	"context"

	"knowledge-assistant-be/internal/entity"
	"knowledge-assistant-be/internal/repository/specification"
	"knowledge-assistant-be/internal/repository/unitofwork"
	"knowledge-assistant-be/pkg/store"
)

// RepositorySource searches the knowledge_documents table with postgres full-text search
type RepositorySource struct {
	uowFactory    unitofwork.RepositoryFactory
	candidatePool int
}

func NewRepositorySource(uowFactory unitofwork.RepositoryFactory, candidatePool int) *RepositorySource {
	if candidatePool <= 0 {
		candidatePool = 50
	}
	return &RepositorySource{uowFactory: uowFactory, candidatePool: candidatePool}
}

func (s *RepositorySource) Search(ctx context.Context, query string, filters store.SearchFilters) ([]store.SourceDocument, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	docs, err := uow.KnowledgeDocumentRepository().FindAll(ctx,
		specification.ActiveOnly{},
		specification.BySourceTypes{SourceTypes: filters.SourceTypes},
		specification.BySensitivity{Sensitivity: filters.Sensitivity},
		specification.ByCategories{Categories: filters.Categories},
		specification.ByCompany{CompanyID: filters.CompanyID},
		specification.FullTextQuery{Query: query},
		specification.Pagination{Limit: s.candidatePool},
	)
	if err != nil {
		return nil, err
	}

	out := make([]store.SourceDocument, 0, len(docs))
	for _, d := range docs {
		out = append(out, ToSourceDocument(d))
	}
	return out, nil
}

// ToSourceDocument converts a persisted knowledge document for the pipeline
func ToSourceDocument(d *entity.KnowledgeDocument) store.SourceDocument {
	return store.SourceDocument{
		ID:            d.Id.String(),
		Title:         d.Title,
		SourceType:    d.SourceType,
		Sensitivity:   d.Sensitivity,
		Category:      d.Category,
		Content:       d.Content,
		Version:       d.Version,
		IsActive:      d.IsActive,
		RequiredRoles: d.RequiredRoles,
		CompanyID:     d.CompanyId,
	}
}

var _ DocumentSource = (*RepositorySource)(nil)

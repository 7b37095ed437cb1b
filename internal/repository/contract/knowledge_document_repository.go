package contract

import (
	"context"

	"knowledge-assistant-be/internal/entity"
	"knowledge-assistant-be/internal/repository/specification"
)

type KnowledgeDocumentRepository interface {
	Create(ctx context.Context, doc *entity.KnowledgeDocument) error
	Update(ctx context.Context, doc *entity.KnowledgeDocument) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.KnowledgeDocument, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KnowledgeDocument, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

package contract

import (
	"context"

	"knowledge-assistant-be/internal/entity"
	"knowledge-assistant-be/internal/repository/specification"
)

// RagConversationRepository is append-only: no update or delete
type RagConversationRepository interface {
	Create(ctx context.Context, conversation *entity.RagConversation) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RagConversation, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

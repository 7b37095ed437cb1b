package contract

import (
	"context"

	"knowledge-assistant-be/internal/entity"
	"knowledge-assistant-be/internal/repository/specification"
)

type FallbackTicketRepository interface {
	Create(ctx context.Context, ticket *entity.FallbackTicket) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FallbackTicket, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

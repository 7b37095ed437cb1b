package contract

import (
	"context"

	"knowledge-assistant-be/internal/entity"
	"knowledge-assistant-be/internal/repository/specification"
)

type AuditLogRepository interface {
	Create(ctx context.Context, entry *entity.AuditLog) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AuditLog, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

package unitofwork

import (
	"context"

	"knowledge-assistant-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	KnowledgeDocumentRepository() contract.KnowledgeDocumentRepository
	RagConversationRepository() contract.RagConversationRepository
	AuditLogRepository() contract.AuditLogRepository
	FallbackTicketRepository() contract.FallbackTicketRepository
}

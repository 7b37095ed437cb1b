package journal

import (
	"context"

	"knowledge-assistant-be/internal/constant"
	"knowledge-assistant-be/internal/entity"
	"knowledge-assistant-be/internal/pkg/logger"
	pkgEvents "knowledge-assistant-be/pkg/events"
	pktNats "knowledge-assistant-be/pkg/nats"
)

// EventPublisher announces journal activity to other services. Publishing is fire-and-forget.
type EventPublisher interface {
	PublishFallbackTicketCreated(ctx context.Context, ticket entity.FallbackTicket)
	PublishSensitiveDataAccessed(ctx context.Context, entry entity.AuditLog)
}

// NatsPublisher implements EventPublisher on JetStream. A nil publisher makes it a no-op.
type NatsPublisher struct {
	publisher *pktNats.Publisher
	logger    logger.ILogger
}

func NewNatsPublisher(publisher *pktNats.Publisher, logger logger.ILogger) *NatsPublisher {
	return &NatsPublisher{
		publisher: publisher,
		logger:    logger,
	}
}

func (p *NatsPublisher) PublishFallbackTicketCreated(ctx context.Context, ticket entity.FallbackTicket) {
	if p.publisher == nil {
		return
	}

	evt := pkgEvents.New(constant.EventFallbackTicketCreated, map[string]interface{}{
		"ticket_id":        ticket.Id.String(),
		"conversation_id":  ticket.ConversationId,
		"session_id":       ticket.SessionId,
		"reason":           ticket.Reason,
		"priority":         ticket.Priority,
		"confidence_score": ticket.ConfidenceScore,
		"sla_deadline":     ticket.SlaDeadline,
	})

	if err := p.publisher.Publish(ctx, evt); err != nil {
		p.logger.Error("JOURNAL", "Failed to publish FALLBACK_TICKET_CREATED event", map[string]interface{}{"error": err.Error()})
	}
}

func (p *NatsPublisher) PublishSensitiveDataAccessed(ctx context.Context, entry entity.AuditLog) {
	if p.publisher == nil {
		return
	}

	evt := pkgEvents.New(constant.EventSensitiveDataAccessed, map[string]interface{}{
		"conversation_id": entry.ConversationId,
		"user_id":         entry.UserId,
		"data_accessed":   entry.DataAccessed,
		"roles_checked":   entry.PermissionsChecked,
	})

	if err := p.publisher.Publish(ctx, evt); err != nil {
		p.logger.Error("JOURNAL", "Failed to publish SENSITIVE_DATA_ACCESSED event", map[string]interface{}{"error": err.Error()})
	}
}

var _ EventPublisher = (*NatsPublisher)(nil)

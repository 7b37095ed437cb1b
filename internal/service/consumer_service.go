package service

import (
	"context"
	"encoding/json"

	"knowledge-assistant-be/internal/dto"
	"knowledge-assistant-be/internal/pkg/logger"
	"knowledge-assistant-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// FailureObserver counts audit writes that were dropped
type FailureObserver interface {
	ObservePersistenceFailure(operation string)
}

type consumerService struct {
	subscriber  message.Subscriber
	topicName   string
	uowFactory  unitofwork.RepositoryFactory
	logger      logger.ILogger
	auditLogger logger.ILogger
	failures    FailureObserver
}

// NewConsumerService persists audit entries published on topicName. auditLogger
// receives a copy of every entry and should write to its own file. failures may be nil.
func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	logger logger.ILogger,
	auditLogger logger.ILogger,
	failures FailureObserver,
) IConsumerService {
	return &consumerService{
		subscriber:  subscriber,
		topicName:   topicName,
		uowFactory:  uowFactory,
		logger:      logger,
		auditLogger: auditLogger,
		failures:    failures,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.AuditLogMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("AUDIT", "Dropping malformed audit message", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		// Nothing to retry
		msg.Ack()
		return
	}

	entry := payload.ToEntity()
	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.AuditLogRepository().Create(ctx, entry); err != nil {
		cs.logger.Error("AUDIT", "Failed to persist audit entry, dropping it", map[string]interface{}{
			"conversation_id": entry.ConversationId,
			"error":           err.Error(),
		})
		if cs.failures != nil {
			cs.failures.ObservePersistenceFailure("audit_consume")
		}
		// Dropped, not redelivered
		msg.Ack()
		return
	}

	cs.auditLogger.Info("AUDIT", entry.ActionType, map[string]interface{}{
		"audit_id":               entry.Id.String(),
		"conversation_id":        entry.ConversationId,
		"user_id":                entry.UserId,
		"data_accessed":          entry.DataAccessed,
		"permissions_checked":    entry.PermissionsChecked,
		"permission_granted":     entry.PermissionGranted,
		"sensitive_data_exposed": entry.SensitiveDataExposed,
	})
	msg.Ack()
}

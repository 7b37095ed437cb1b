package service

import (
	"context"
	"encoding/json"
	"fmt"

	"knowledge-assistant-be/internal/dto"
	"knowledge-assistant-be/internal/entity"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

type IPublisherService interface {
	Publish(ctx context.Context, payload []byte) error
}

type publisherService struct {
	topicName string
	publisher message.Publisher
}

func NewPublisherService(topicName string, publisher message.Publisher) IPublisherService {
	return &publisherService{
		topicName: topicName,
		publisher: publisher,
	}
}

func (ps *publisherService) Publish(ctx context.Context, payload []byte) error {
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	return ps.publisher.Publish(ps.topicName, msg)
}

// AuditPublisher hands audit entries to the consumer service instead of writing
// them inline, so the query path never waits on the audit table.
type AuditPublisher struct {
	publisherService IPublisherService
}

func NewAuditPublisher(publisherService IPublisherService) *AuditPublisher {
	return &AuditPublisher{publisherService: publisherService}
}

// Record satisfies journal.AuditSink
func (p *AuditPublisher) Record(ctx context.Context, entry *entity.AuditLog) error {
	payload, err := json.Marshal(dto.AuditLogMessageFromEntity(entry))
	if err != nil {
		return fmt.Errorf("failed to marshal audit entry: %w", err)
	}
	return p.publisherService.Publish(ctx, payload)
}

package journal

import (
	"context"
	"errors"
	"testing"
	"time"

	"knowledge-assistant-be/internal/constant"
	"knowledge-assistant-be/internal/entity"
	"knowledge-assistant-be/internal/pkg/logger"
	"knowledge-assistant-be/internal/pkg/mailer"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type sentNotice struct {
	to     string
	notice mailer.TicketNotice
}

type chanMailer struct {
	sent chan sentNotice
	err  error
}

func (m *chanMailer) SendFallbackTicketNotice(toEmail string, notice mailer.TicketNotice) error {
	m.sent <- sentNotice{to: toEmail, notice: notice}
	return m.err
}

func sampleTicket() entity.FallbackTicket {
	return entity.FallbackTicket{
		Id:          uuid.New(),
		SessionId:   "s-1",
		UserQuery:   "como faço o fechamento?",
		Reason:      "no applicable documentation",
		Priority:    constant.TicketPriorityMedium,
		Status:      constant.TicketStatusOpen,
		SlaDeadline: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
	}
}

func TestMailNotifier_SendsToInbox(t *testing.T) {
	m := &chanMailer{sent: make(chan sentNotice, 1)}
	n := NewMailNotifier(m, "suporte@example.com", logger.NewNopLogger())
	ticket := sampleTicket()

	n.NotifyTicket(context.Background(), ticket)

	select {
	case got := <-m.sent:
		assert.Equal(t, "suporte@example.com", got.to)
		assert.Equal(t, ticket.Id.String(), got.notice.TicketID)
		assert.Equal(t, ticket.UserQuery, got.notice.UserQuery)
		assert.Equal(t, ticket.SlaDeadline, got.notice.SLADeadline)
	case <-time.After(time.Second):
		t.Fatal("notice was not sent")
	}
}

func TestMailNotifier_SendErrorIsOnlyLogged(t *testing.T) {
	m := &chanMailer{sent: make(chan sentNotice, 1), err: errors.New("smtp down")}
	n := NewMailNotifier(m, "suporte@example.com", logger.NewNopLogger())

	assert.NotPanics(t, func() { n.NotifyTicket(context.Background(), sampleTicket()) })

	select {
	case <-m.sent:
	case <-time.After(time.Second):
		t.Fatal("notice was not attempted")
	}
}

func TestMailNotifier_WithoutInboxIsNoop(t *testing.T) {
	m := &chanMailer{sent: make(chan sentNotice, 1)}
	n := NewMailNotifier(m, "", logger.NewNopLogger())

	n.NotifyTicket(context.Background(), sampleTicket())

	select {
	case <-m.sent:
		t.Fatal("nothing should be sent without an inbox")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestNatsPublisher_NilConnectionIsNoop(t *testing.T) {
	p := NewNatsPublisher(nil, logger.NewNopLogger())

	assert.NotPanics(t, func() {
		p.PublishFallbackTicketCreated(context.Background(), sampleTicket())
		p.PublishSensitiveDataAccessed(context.Background(), entity.AuditLog{ConversationId: "c-1"})
	})
}

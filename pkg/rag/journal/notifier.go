package journal

import (
	"context"

	"knowledge-assistant-be/internal/entity"
	"knowledge-assistant-be/internal/pkg/logger"
	"knowledge-assistant-be/internal/pkg/mailer"
)

// TicketNotifier is told about every fallback ticket after it is stored
type TicketNotifier interface {
	NotifyTicket(ctx context.Context, ticket entity.FallbackTicket)
}

// MailNotifier mails the support inbox. Sending runs in the background so a slow
// SMTP server never delays the answer.
type MailNotifier struct {
	mailer mailer.IEmailService
	inbox  string
	logger logger.ILogger
}

func NewMailNotifier(m mailer.IEmailService, inbox string, logger logger.ILogger) *MailNotifier {
	return &MailNotifier{mailer: m, inbox: inbox, logger: logger}
}

func (n *MailNotifier) NotifyTicket(_ context.Context, ticket entity.FallbackTicket) {
	if n.mailer == nil || n.inbox == "" {
		return
	}

	notice := mailer.TicketNotice{
		TicketID:    ticket.Id.String(),
		SessionID:   ticket.SessionId,
		UserQuery:   ticket.UserQuery,
		Reason:      ticket.Reason,
		Priority:    ticket.Priority,
		SLADeadline: ticket.SlaDeadline,
	}

	go func() {
		if err := n.mailer.SendFallbackTicketNotice(n.inbox, notice); err != nil {
			n.logger.Error("JOURNAL", "Failed to mail ticket notice", map[string]interface{}{
				"ticket_id": notice.TicketID,
				"error":     err.Error(),
			})
		}
	}()
}

var _ TicketNotifier = (*MailNotifier)(nil)

package mailer

import (
	"fmt"
	"html"
	"time"

	"gopkg.in/gomail.v2"
)

// TicketNotice is what the support inbox receives for a new fallback ticket
type TicketNotice struct {
	TicketID    string
	SessionID   string
	UserQuery   string
	Reason      string
	Priority    string
	SLADeadline time.Time
}

type IEmailService interface {
	SendFallbackTicketNotice(toEmail string, notice TicketNotice) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
}

func NewEmailService(host string, port int, username, password, senderEmail, senderName string) IEmailService {
	return &emailService{
		dialer:      gomail.NewDialer(host, port, username, password),
		senderEmail: senderEmail,
		senderName:  senderName,
	}
}

func (s *emailService) SendFallbackTicketNotice(toEmail string, notice TicketNotice) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", TicketSubject(notice))
	m.SetBody("text/html", TicketBody(notice))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send ticket notice to %s: %w", toEmail, err)
	}
	return nil
}

func TicketSubject(n TicketNotice) string {
	return fmt.Sprintf("[%s] Nova pergunta para revisão humana (%s)", n.Priority, n.TicketID)
}

func TicketBody(n TicketNotice) string {
	return fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Pergunta encaminhada para especialista</h2>
			<p><strong>Ticket:</strong> %s</p>
			<p><strong>Sessão:</strong> %s</p>
			<p><strong>Pergunta:</strong> %s</p>
			<p><strong>Motivo:</strong> %s</p>
			<p><strong>Prazo (SLA):</strong> %s</p>
		</div>
	`,
		html.EscapeString(n.TicketID),
		html.EscapeString(n.SessionID),
		html.EscapeString(n.UserQuery),
		html.EscapeString(n.Reason),
		n.SLADeadline.Format("02/01/2006 15:04 MST"),
	)
}

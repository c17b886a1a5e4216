// Package email sends transactional mail. Handlers depend on the Mailer
// interface; the concrete transport (SES or SMTP) is picked from config.
package email

import (
	"context"
	"fmt"
	"log"

	"gopkg.in/gomail.v2"

	"github.com/NightFury2415/CSC648-Personal-Project/internal/config"
)

// Mailer delivers one message with a plain-text and an HTML part. A nil
// return means the transport accepted the message; any error means the
// caller must treat the send as failed.
type Mailer interface {
	Send(ctx context.Context, to, subject, textBody, htmlBody string) error
}

// New returns the mailer selected by cfg.EmailProvider.
func New(cfg *config.Config) (Mailer, error) {
	switch cfg.EmailProvider {
	case "ses":
		return NewSES(cfg)
	case "smtp":
		return NewSMTP(cfg), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.EmailProvider)
	}
}

// SMTP sends mail through a plain SMTP relay.
type SMTP struct {
	cfg *config.Config
}

// NewSMTP constructs an SMTP mailer.
func NewSMTP(cfg *config.Config) *SMTP {
	return &SMTP{cfg: cfg}
}

func (s *SMTP) Send(ctx context.Context, to, subject, textBody, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("%s <%s>", s.cfg.SMTPFromName, s.cfg.SMTPFrom))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", textBody)
	if htmlBody != "" {
		m.AddAlternative("text/html", htmlBody)
	}

	dialer := gomail.NewDialer(s.cfg.SMTPHost, s.cfg.SMTPPort, s.cfg.SMTPUser, s.cfg.SMTPPass)
	if err := dialer.DialAndSend(m); err != nil {
		log.Printf("smtp send to %s failed: %v", to, err)
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

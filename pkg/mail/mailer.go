// Package mail sends reviewed outreach emails over SMTP.
package mail

import (
	"context"
	"errors"
	"fmt"

	gomail "github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"github.com/pitchline-inc/pitchline-engine/pkg/config"
	"github.com/pitchline-inc/pitchline-engine/pkg/logging"
)

// Mailer delivers one email. The outreach sequencer only records a send after
// this returns nil.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMTPMailer implements Mailer over SMTP with STARTTLS.
type SMTPMailer struct {
	client *gomail.Client
	from   string
	logger *zap.Logger
}

var _ Mailer = (*SMTPMailer)(nil)

// NewSMTPMailer creates a Mailer from SMTP configuration.
func NewSMTPMailer(cfg *config.SMTPConfig, logger *zap.Logger) (*SMTPMailer, error) {
	if cfg.From == "" {
		return nil, errors.New("smtp from address is required")
	}

	client, err := gomail.NewClient(cfg.Host,
		gomail.WithPort(cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.From),
		gomail.WithPassword(cfg.Password),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}

	return &SMTPMailer{
		client: client,
		from:   cfg.From,
		logger: logger.Named("mail"),
	}, nil
}

// Send delivers one email. Any failure leaves the outreach state untouched;
// the caller surfaces it to the operator.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	msg := gomail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		m.logger.Error("Mail delivery failed",
			zap.String("to", to),
			zap.String("error", logging.SanitizeError(err)))
		return fmt.Errorf("send mail to %s: %w", to, err)
	}

	m.logger.Info("Mail delivered", zap.String("to", to), zap.String("subject", logging.TruncateString(subject, 80)))
	return nil
}

// MockMailer records sends for tests.
type MockMailer struct {
	SendFunc func(ctx context.Context, to, subject, body string) error

	Sent []SentMail
}

// SentMail is one recorded MockMailer delivery.
type SentMail struct {
	To      string
	Subject string
	Body    string
}

// Send implements Mailer.
func (m *MockMailer) Send(ctx context.Context, to, subject, body string) error {
	if m.SendFunc != nil {
		if err := m.SendFunc(ctx, to, subject, body); err != nil {
			return err
		}
	}
	m.Sent = append(m.Sent, SentMail{To: to, Subject: subject, Body: body})
	return nil
}

var _ Mailer = (*MockMailer)(nil)

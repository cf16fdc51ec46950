package tool

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/parleyhq/parley/internal/provider"
)

// Mailer is the delivery capability behind the send_email tool.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMTPMailer delivers mail through a plain SMTP endpoint.
type SMTPMailer struct {
	// Addr is the host:port of the SMTP server.
	Addr string
	// From is the envelope sender address.
	From string
}

// Send implements Mailer.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	msg := strings.Join([]string{
		"From: " + m.From,
		"To: " + to,
		"Subject: " + subject,
		"",
		body,
	}, "\r\n")

	if err := smtp.SendMail(m.Addr, nil, m.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp delivery failed: %w", err)
	}
	return nil
}

type sendEmailRequest struct {
	To      string `mapstructure:"to"`
	Subject string `mapstructure:"subject"`
	Body    string `mapstructure:"body"`
}

func (r sendEmailRequest) Validate() error {
	if r.To == "" {
		return errors.New("to is required")
	}
	if !strings.Contains(r.To, "@") {
		return fmt.Errorf("invalid recipient address %q", r.To)
	}
	if r.Subject == "" {
		return errors.New("subject is required")
	}
	return nil
}

type sendEmailResponse struct {
	Status string `json:"status"`
	To     string `json:"to"`
}

// NewSendEmailTool creates the send_email tool backed by the given
// mailer.
func NewSendEmailTool(mailer Mailer) Tool {
	schema := &provider.ParameterSchema{
		Type: "object",
		Properties: map[string]provider.PropertySchema{
			"to": {
				Type:        "string",
				Description: "Recipient email address",
			},
			"subject": {
				Type:        "string",
				Description: "Subject line",
			},
			"body": {
				Type:        "string",
				Description: "Plain-text message body",
			},
		},
		Required: []string{"to", "subject", "body"},
	}

	return NewBaseAdapter(
		"send_email",
		"Sends an email to a single recipient",
		schema,
		func(ctx context.Context, req sendEmailRequest) (sendEmailResponse, error) {
			if err := mailer.Send(ctx, req.To, req.Subject, req.Body); err != nil {
				return sendEmailResponse{}, err
			}
			return sendEmailResponse{Status: "sent", To: req.To}, nil
		},
	)
}

// Package email sends transactional email through Resend, rendering
// HTML bodies from templates under templates/emails.
package email

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"

	"github.com/studykit/studykit/internal/config"
)

const fromAddress = "StudyKit <onboarding@resend.dev>"

// Client wraps the Resend API client.
type Client struct {
	client *resend.Client
	logger *zerolog.Logger
}

func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	return &Client{
		client: resend.NewClient(cfg.Integration.ResendAPIKey),
		logger: logger,
	}
}

// SendEmail renders the named template with data and sends the result
// to a single recipient.
func (c *Client) SendEmail(to, subject string, templateName Template, data map[string]string) error {
	tmplPath := fmt.Sprintf("templates/emails/%s.html", templateName)

	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		return errors.Wrapf(err, "parsing email template %s", templateName)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return errors.Wrapf(err, "executing email template %s", templateName)
	}

	_, err = c.client.Emails.Send(&resend.SendEmailRequest{
		From:    fromAddress,
		To:      []string{to},
		Subject: subject,
		Html:    body.String(),
	})
	if err != nil {
		return errors.Wrap(err, "sending email")
	}

	c.logger.Debug().Str("to", to).Str("template", string(templateName)).Msg("email sent")
	return nil
}

package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v3"

	"wanderstay-notify/internal/config"
)

// Service sends the email copy of urgent notifications. Delivery is
// best-effort; callers fire it asynchronously and ignore failures.
type Service interface {
	SendUrgentNotificationEmail(ctx context.Context, toEmail, recipientName, title, message, url string) error
}

type service struct {
	client *resend.Client
	config *config.Config
	tmpl   *template.Template
}

const urgentTemplate = `
<div style="font-family: sans-serif; max-width: 560px; margin: 0 auto;">
  <h2>{{.Title}}</h2>
  <p>Hi {{.Name}},</p>
  <p>{{.Message}}</p>
  {{if .Link}}<p><a href="{{.Link}}">View on Wanderstay</a></p>{{end}}
  <p style="color: #888; font-size: 12px;">You received this email because the notification was marked urgent.</p>
</div>`

func NewService(cfg *config.Config) Service {
	return &service{
		client: resend.NewClient(cfg.ResendAPIKey),
		config: cfg,
		tmpl:   template.Must(template.New("urgent").Parse(urgentTemplate)),
	}
}

func (s *service) SendUrgentNotificationEmail(ctx context.Context, toEmail, recipientName, title, message, url string) error {
	link := ""
	if url != "" {
		link = fmt.Sprintf("https://%s%s", s.config.Domain, url)
	}

	data := struct {
		Title   string
		Name    string
		Message string
		Link    string
	}{
		Title:   title,
		Name:    recipientName,
		Message: message,
		Link:    link,
	}

	var body bytes.Buffer
	if err := s.tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render urgent notification email: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Wanderstay <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    body.String(),
		Subject: title,
	}

	_, err := s.client.Emails.Send(params)
	return err
}

package notification

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"

	"go.uber.org/zap"
)

// SMTPConfig holds mail provider settings.
type SMTPConfig struct {
	Host       string
	Port       int
	User       string
	Pass       string
	AdminEmail string
}

// SMTPMailer sends review notifications over SMTP. Constructed once in
// the composition root and injected; there is no package-level
// transporter.
type SMTPMailer struct {
	cfg    SMTPConfig
	logger *zap.Logger
}

// NewSMTPMailer builds a mailer from config.
func NewSMTPMailer(cfg SMTPConfig, logger *zap.Logger) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, logger: logger}
}

var reviewTemplate = template.Must(template.New("review").Parse(`
<h2>New Review Received</h2>
<p><strong>Title:</strong> {{.Title}}</p>
<p><strong>Rating:</strong> {{.Rating}}/5</p>
<p><strong>Comment:</strong> {{.Comment}}</p>
<p><strong>From:</strong> {{.Reviewer}}{{if .Email}} ({{.Email}}){{end}}</p>
{{if .TargetName}}<p><strong>{{.TargetKind}}:</strong> {{.TargetName}}</p>{{end}}
{{if .IsPublic}}<p>Submitted through the public contact form.</p>{{end}}
<p><strong>Date:</strong> {{.CreatedAt.Format "2 Jan 2006"}}</p>
`))

// SendReviewNotification mails the admin about a new review. When SMTP
// is not configured the notification is skipped silently.
func (m *SMTPMailer) SendReviewNotification(n ReviewNotification) error {
	if m.cfg.Host == "" || m.cfg.AdminEmail == "" {
		m.logger.Debug("SMTP not configured, skipping review notification")
		return nil
	}

	var html bytes.Buffer
	if err := reviewTemplate.Execute(&html, n); err != nil {
		return fmt.Errorf("failed to render review notification: %w", err)
	}

	var body bytes.Buffer
	body.WriteString("MIME-Version: 1.0\r\n")
	body.WriteString(fmt.Sprintf("From: %s\r\n", m.cfg.User))
	body.WriteString(fmt.Sprintf("To: %s\r\n", m.cfg.AdminEmail))
	body.WriteString(fmt.Sprintf("Subject: New Review: %s\r\n", sanitizeHeader(n.Title)))
	body.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	body.WriteString("\r\n")
	body.Write(html.Bytes())

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	if err := smtp.SendMail(addr, auth, m.cfg.User, []string{m.cfg.AdminEmail}, body.Bytes()); err != nil {
		return fmt.Errorf("failed to send review notification: %w", err)
	}
	return nil
}

func sanitizeHeader(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}

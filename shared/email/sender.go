package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"

	"history-analyzer/internal/models"
	"history-analyzer/shared/config"
	"history-analyzer/shared/logger"
)

const reportTemplate = `<html><body style="font-family: Arial, sans-serif;">
<h2>YouTube History Analysis</h2>
<p><strong>Total Unique Videos:</strong> {{.Summary.Total}}</p>
<p><strong>Fully Watched:</strong> {{.Summary.FullyWatchedCount}} ({{.Summary.FullyWatchedPercent}}%)</p>
<p><strong>Partially Watched:</strong> {{.Summary.PartiallyWatchedCount}} ({{.Summary.PartiallyWatchedPercent}}%)</p>
<p><strong>Unique Channels:</strong> {{len .Summary.UniqueChannels}}</p>
<table cellpadding="4" style="border-collapse: collapse;">
<tr><th align="left">Title</th><th align="left">Channel</th><th align="left">Duration</th><th align="right">Progress</th></tr>
{{range .Records}}<tr>
<td><a href="{{.WatchURL}}">{{.Title}}</a></td>
<td>{{.ChannelName}}</td>
<td>{{.Duration}}</td>
<td align="right">{{printf "%.0f" .Progress.Percent}}%</td>
</tr>
{{end}}</table>
</body></html>`

var reportTmpl = template.Must(template.New("report").Parse(reportTemplate))

// Sender delivers history reports and status messages over SMTP.
type Sender struct {
	config *config.EmailConfig
	send   func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSender(cfg *config.EmailConfig) *Sender {
	return &Sender{
		config: cfg,
		send:   smtp.SendMail,
	}
}

// Present mails the report. Reports without records are not sent.
func (s *Sender) Present(ctx context.Context, report *models.HistoryReport) error {
	if report == nil {
		return fmt.Errorf("report cannot be nil")
	}

	if len(report.Records) == 0 {
		return nil
	}

	subject := fmt.Sprintf("YouTube History - %d Videos, %d%% Fully Watched (%s)",
		report.Summary.Total, report.Summary.FullyWatchedPercent, report.Date.Format("Jan 2, 2006"))

	body, err := s.generateEmailBody(report)
	if err != nil {
		return fmt.Errorf("failed to generate email body: %w", err)
	}

	return s.SendHTML(subject, body)
}

// Status mails a plain status line.
func (s *Sender) Status(ctx context.Context, message string) {
	body := fmt.Sprintf("<html><body><p>%s</p></body></html>", template.HTMLEscapeString(message))
	if err := s.SendHTML("YouTube History Analyzer status", body); err != nil {
		logger.WithComponent("email").Warnf("Failed to send status email: %v", err)
	}
}

// SendHTML sends an email with custom HTML content
func (s *Sender) SendHTML(subject, htmlBody string) error {
	return s.sendViaSMTP(subject, htmlBody)
}

func (s *Sender) sendViaSMTP(subject, body string) error {
	var auth smtp.Auth
	if s.config.Username != "" {
		auth = smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.SMTPServer)
	}

	to := []string{s.config.ToEmail}
	msg := []byte(fmt.Sprintf(`To: %s
From: %s
Subject: %s
MIME-Version: 1.0
Content-Type: text/html; charset=UTF-8

%s`, s.config.ToEmail, s.config.FromEmail, subject, body))

	addr := fmt.Sprintf("%s:%d", s.config.SMTPServer, s.config.SMTPPort)
	return s.send(addr, auth, s.config.FromEmail, to, msg)
}

func (s *Sender) generateEmailBody(report *models.HistoryReport) (string, error) {
	var buf bytes.Buffer
	if err := reportTmpl.Execute(&buf, report); err != nil {
		return "", err
	}
	return buf.String(), nil
}

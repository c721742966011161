// Package email provides email sending functionality
package email

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"log"
	"net/smtp"
	"strings"
)

// Config holds email configuration
type Config struct {
	Host        string
	Port        int
	User        string
	Password    string
	From        string
	FromName    string
	UseTLS      bool
	FrontendURL string
}

// Service handles email sending
type Service struct {
	config    *Config
	templates map[string]*template.Template
}

// NewService creates a new email service
func NewService(config *Config) *Service {
	s := &Service{
		config:    config,
		templates: make(map[string]*template.Template),
	}
	s.loadTemplates()
	return s
}

// Email represents an email message
type Email struct {
	To       []string
	Subject  string
	Body     string
	HTMLBody string
}

// InvitationEmailData holds data for campaign invitation emails
type InvitationEmailData struct {
	CampaignName string
	InvitedBy    string
	Role         string
	InviteURL    string
}

// JoinRequestEmailData holds data for join request notification emails
type JoinRequestEmailData struct {
	CampaignName  string
	RequesterName string
	ReviewURL     string
}

func (s *Service) loadTemplates() {
	s.templates["invitation"] = template.Must(template.New("invitation").Parse(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Helvetica, Arial, sans-serif; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #7c3aed; color: white; padding: 24px; border-radius: 8px 8px 0 0; }
        .content { background: #f9fafb; padding: 24px; border-radius: 0 0 8px 8px; }
        .btn { display: inline-block; background: #7c3aed; color: white; padding: 12px 20px; text-decoration: none; border-radius: 6px; margin-top: 16px; }
        .footer { margin-top: 24px; font-size: 12px; color: #6b7280; text-align: center; }
    </style>
</head>
<body>
<div class="container">
    <div class="header">
        <h2>You're Invited to a Campaign</h2>
    </div>
    <div class="content">
        <p>Hello,</p>
        <p><strong>{{.InvitedBy}}</strong> invited you to join <strong>{{.CampaignName}}</strong> as a <strong>{{.Role}}</strong>.</p>

        <a href="{{.InviteURL}}" class="btn">Accept Invitation</a>

        <p style="margin-top: 16px; font-size: 14px; color: #6b7280;">
            This invitation expires. If you were not expecting this email, you can ignore it.
        </p>
    </div>
    <div class="footer">
        Questdeck • Campaign Management for Game Masters
    </div>
</div>
</body>
</html>
`))

	s.templates["join_request"] = template.Must(template.New("join_request").Parse(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Helvetica, Arial, sans-serif; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #0ea5e9; color: white; padding: 24px; border-radius: 8px 8px 0 0; }
        .content { background: #f9fafb; padding: 24px; border-radius: 0 0 8px 8px; }
        .btn { display: inline-block; background: #0ea5e9; color: white; padding: 12px 20px; text-decoration: none; border-radius: 6px; margin-top: 16px; }
        .footer { margin-top: 24px; font-size: 12px; color: #6b7280; text-align: center; }
    </style>
</head>
<body>
<div class="container">
    <div class="header">
        <h2>New Join Request</h2>
    </div>
    <div class="content">
        <p>Hello,</p>
        <p><strong>{{.RequesterName}}</strong> asked to join <strong>{{.CampaignName}}</strong>.</p>

        <a href="{{.ReviewURL}}" class="btn">Review Request</a>
    </div>
    <div class="footer">
        Questdeck • Campaign Management for Game Masters
    </div>
</div>
</body>
</html>
`))
}

// SendInvitation sends a campaign invitation email with the accept link.
func (s *Service) SendInvitation(campaignName, to, invitedBy, role, token string) error {
	if invitedBy == "" {
		invitedBy = "Someone"
	}

	data := InvitationEmailData{
		CampaignName: campaignName,
		InvitedBy:    invitedBy,
		Role:         role,
		InviteURL:    fmt.Sprintf("%s/invitations/%s", s.config.FrontendURL, token),
	}

	return s.SendWithTemplate(
		[]string{to},
		fmt.Sprintf("[Questdeck] Invitation to join %s", campaignName),
		"invitation",
		data,
	)
}

// SendJoinRequestNotification tells the campaign owner a request is waiting.
func (s *Service) SendJoinRequestNotification(campaignName, campaignID, to, requesterName string) error {
	data := JoinRequestEmailData{
		CampaignName:  campaignName,
		RequesterName: requesterName,
		ReviewURL:     fmt.Sprintf("%s/campaigns/%s/requests", s.config.FrontendURL, campaignID),
	}

	return s.SendWithTemplate(
		[]string{to},
		fmt.Sprintf("[Questdeck] Join request for %s", campaignName),
		"join_request",
		data,
	)
}

// SendWithTemplate renders a named template and sends it as HTML.
func (s *Service) SendWithTemplate(to []string, subject, templateName string, data interface{}) error {
	tmpl, ok := s.templates[templateName]
	if !ok {
		return fmt.Errorf("template %s not found", templateName)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("template execute error: %w", err)
	}

	return s.Send(&Email{
		To:       to,
		Subject:  subject,
		HTMLBody: body.String(),
	})
}

// Send sends an email
func (s *Service) Send(email *Email) error {
	if s.config.Host == "" {
		log.Println("Email not configured, skipping send")
		return nil
	}

	// Build message
	var msg bytes.Buffer
	msg.WriteString(fmt.Sprintf("From: %s <%s>\r\n", s.config.FromName, s.config.From))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(email.To, ", ")))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", email.Subject))
	msg.WriteString("MIME-Version: 1.0\r\n")

	if email.HTMLBody != "" {
		msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
		msg.WriteString("\r\n")
		msg.WriteString(email.HTMLBody)
	} else {
		msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
		msg.WriteString("\r\n")
		msg.WriteString(email.Body)
	}

	auth := smtp.PlainAuth("", s.config.User, s.config.Password, s.config.Host)
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	if s.config.UseTLS {
		tlsConfig := &tls.Config{
			ServerName: s.config.Host,
		}

		conn, err := tls.Dial("tcp", addr, tlsConfig)
		if err != nil {
			return fmt.Errorf("TLS dial error: %w", err)
		}
		defer conn.Close()

		client, err := smtp.NewClient(conn, s.config.Host)
		if err != nil {
			return fmt.Errorf("SMTP client error: %w", err)
		}
		defer client.Close()

		if err = client.Auth(auth); err != nil {
			return fmt.Errorf("auth error: %w", err)
		}

		if err = client.Mail(s.config.From); err != nil {
			return fmt.Errorf("mail error: %w", err)
		}

		for _, rcpt := range email.To {
			if err = client.Rcpt(rcpt); err != nil {
				return fmt.Errorf("rcpt error: %w", err)
			}
		}

		w, err := client.Data()
		if err != nil {
			return fmt.Errorf("data error: %w", err)
		}

		if _, err = w.Write(msg.Bytes()); err != nil {
			return fmt.Errorf("write error: %w", err)
		}

		if err = w.Close(); err != nil {
			return fmt.Errorf("close error: %w", err)
		}

		return client.Quit()
	}

	return smtp.SendMail(addr, auth, s.config.From, email.To, msg.Bytes())
}

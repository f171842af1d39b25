package services

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"text/template"
	"time"

	"huddle/internal/infra"
	"huddle/internal/models/db_models"
)

// MailServiceInterface escalates at-risk members to their project manager
// by email. A no-op implementation is wired when SMTP is not configured.
type MailServiceInterface interface {
	SendMemberAtRiskEmail(member *db_models.Member) error
}

const atRiskMailTemplate = `A member of your organization may be at risk.

Member: {{.Name}}
Email:  {{.Email}}

Their latest status update indicates they may need follow-up. Please reach
out to them directly or review the dashboard.
`

type smtpMailService struct {
	cfg infra.SMTPConfig
	tpl *template.Template
}

func NewSMTPMailService(cfg infra.SMTPConfig) MailServiceInterface {
	return &smtpMailService{
		cfg: cfg,
		tpl: template.Must(template.New("atRisk").Parse(atRiskMailTemplate)),
	}
}

func (s *smtpMailService) SendMemberAtRiskEmail(member *db_models.Member) error {
	if member.ProjectManagerEmail == "" {
		return nil
	}

	var body bytes.Buffer
	if err := s.tpl.Execute(&body, member); err != nil {
		return err
	}

	subject := fmt.Sprintf("Safety follow-up needed: %s", member.Name)

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", s.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", member.ProjectManagerEmail)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	fmt.Fprintf(&msg, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	fmt.Fprintf(&msg, "Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	msg.Write(body.Bytes())

	return s.send(member.ProjectManagerEmail, msg.Bytes())
}

func (s *smtpMailService) send(to string, msg []byte) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	dialer := &net.Dialer{Timeout: 10 * time.Second}
	conn, err := dialer.Dial("tcp", addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	c, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		return err
	}
	defer c.Quit()

	if ok, _ := c.Extension("STARTTLS"); ok {
		tlsCfg := &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}
		if err = c.StartTLS(tlsCfg); err != nil {
			return err
		}
	}

	if err = c.Auth(auth); err != nil {
		return err
	}
	if err = c.Mail(s.cfg.From); err != nil {
		return err
	}
	if err = c.Rcpt(to); err != nil {
		return err
	}

	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err = w.Write(msg); err != nil {
		return err
	}
	return w.Close()
}

type noopMailService struct{}

func NewNoopMailService() MailServiceInterface {
	return noopMailService{}
}

func (noopMailService) SendMemberAtRiskEmail(*db_models.Member) error {
	return nil
}

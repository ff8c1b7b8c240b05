package services

import (
	"fmt"
	"log"

	mail "github.com/go-mail/mail/v2"

	"back_yamdb/internal/config"
)

type EmailService interface {
	SendConfirmationCode(to, code string) error
}

func NewEmailService() EmailService {
	cfg := config.GlobalConfig
	if cfg.SMTPHost == "" {
		return &logEmailService{}
	}
	return &smtpEmailService{cfg: cfg}
}

type smtpEmailService struct {
	cfg *config.Config
}

func (s *smtpEmailService) SendConfirmationCode(to, code string) error {
	m := mail.NewMessage()
	m.SetHeader("From", s.cfg.EmailFrom)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "YaMDb confirmation code")
	m.SetBody("text/plain", "Your confirmation code is "+code)

	d := mail.NewDialer(s.cfg.SMTPHost, s.cfg.SMTPPort, s.cfg.SMTPUser, s.cfg.SMTPPassword)
	d.StartTLSPolicy = mail.MandatoryStartTLS
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send confirmation email to %s: %w", to, err)
	}
	return nil
}

// logEmailService stands in when SMTP is not configured, e.g. local
// development.
type logEmailService struct{}

func (s *logEmailService) SendConfirmationCode(to, code string) error {
	log.Printf("[email] confirmation code for %s: %s", to, code)
	return nil
}

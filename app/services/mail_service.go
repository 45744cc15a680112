// Package services provides external service integrations and technical concerns like mail dispatch and sessions
package services

import (
	"fmt"
	"log"

	"github.com/enrolld/enrolld/config"
	"github.com/enrolld/enrolld/metrics"
	"gopkg.in/gomail.v2"
)

// MailService dispatches a single email per call. One SMTP session is opened
// per message (STARTTLS upgrade and authentication handled by the dialer);
// errors surface to the caller with no automatic retry.
type MailService interface {
	Send(to, subject, body string) error
}

// SMTPMailService implements MailService over gomail
type SMTPMailService struct {
	dialer    *gomail.Dialer
	fromEmail string
	fromName  string
}

// NewMailService creates a mail service from SMTP configuration
func NewMailService(cfg config.SMTPConfig) MailService {
	log.Printf("Initializing mail dispatcher for host %s:%d", cfg.Host, cfg.Port)
	return &SMTPMailService{
		dialer:    gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
	}
}

// Send dials the relay, authenticates, sends exactly one message, and closes
// the session.
func (s *SMTPMailService) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", s.fromEmail, s.fromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(msg); err != nil {
		metrics.MailSendFailures.WithLabelValues(s.dialer.Host).Inc()
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	log.Printf("Email sent to %s", to)
	return nil
}

// MockMailService records sends instead of dialing a relay
type MockMailService struct{}

func NewMockMailService() MailService {
	return &MockMailService{}
}

func (s *MockMailService) Send(to, subject, body string) error {
	log.Printf("Email sent to %s [%s]: %s", to, subject, body)
	return nil
}

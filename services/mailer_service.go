package services

import (
	"fmt"

	"github.com/maya-widjaja/mayas-bakery-api/config"
	"github.com/maya-widjaja/mayas-bakery-api/logger"
	"github.com/maya-widjaja/mayas-bakery-api/models"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Mailer sends notification emails to the bakery inbox
type Mailer interface {
	SendContactNotification(msg *models.ContactMessage) error
}

type gomailMailer struct {
	dialer     *gomail.Dialer
	sender     string
	inboxEmail string
}

// noopMailer is used when SMTP is not configured; submissions still
// land in the database, the bakery just gets no email.
type noopMailer struct{}

func (noopMailer) SendContactNotification(msg *models.ContactMessage) error { return nil }

var mailerInstance Mailer = noopMailer{}

// InitMailer initializes the mailer from SMTP configuration. When the
// SMTP host or inbox address is missing it installs a no-op mailer.
func InitMailer(cfg *config.Config) Mailer {
	if cfg.SMTPHost == "" || cfg.BakeryInboxEmail == "" {
		logger.L().Info("SMTP not configured, contact notifications disabled")
		mailerInstance = noopMailer{}
		return mailerInstance
	}

	mailerInstance = &gomailMailer{
		dialer:     gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPEmail, cfg.SMTPPassword),
		sender:     cfg.SMTPEmail,
		inboxEmail: cfg.BakeryInboxEmail,
	}
	return mailerInstance
}

// GetMailer returns the initialized mailer instance
func GetMailer() Mailer {
	return mailerInstance
}

// SetMailer sets the mailer instance (primarily for testing)
func SetMailer(m Mailer) {
	mailerInstance = m
}

// SendContactNotification emails the bakery inbox about a new contact message
func (m *gomailMailer) SendContactNotification(msg *models.ContactMessage) error {
	mail := gomail.NewMessage()
	mail.SetHeader("From", m.sender)
	mail.SetHeader("To", m.inboxEmail)
	mail.SetHeader("Subject", fmt.Sprintf("New contact message from %s", msg.Name))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>New message from the contact form</h2>
			<p><strong>Name:</strong> %s</p>
			<p><strong>Email:</strong> %s</p>
			<p><strong>Phone:</strong> %s</p>
			<p><strong>Subject:</strong> %s</p>
			<p>%s</p>
		</div>
	`, msg.Name, msg.Email, msg.Phone, msg.Subject, msg.Message)

	mail.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(mail); err != nil {
		logger.L().Error("failed to send contact notification",
			zap.String("message_id", msg.ID.String()), zap.Error(err))
		return fmt.Errorf("failed to send contact notification: %w", err)
	}

	return nil
}

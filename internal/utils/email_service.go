package utils

import (
	"fmt"
	"net/smtp"

	"CARTOPIA_BACK-END/internal/config"
)

// EmailService handles email sending operations
type EmailService struct {
	config *config.EmailConfig
}

// NewEmailService creates a new email service instance
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{
		config: cfg,
	}
}

// SendOTPEmail sends a password-reset OTP to the user's email
func (e *EmailService) SendOTPEmail(to, otp string) error {
	subject := "Cartopia - Password Reset OTP"
	body := fmt.Sprintf(`Hello,

Use the OTP below to reset your Cartopia password:

    %s

This OTP is valid for 10 minutes.

If you did not request this, you can ignore this email.

Regards,
Cartopia Team
`, otp)

	return e.Send(to, subject, body)
}

// Send sends an email using SMTP
func (e *EmailService) Send(to, subject, body string) error {
	// Check if credentials are set
	if e.config.SMTPUsername == "" || e.config.SMTPPassword == "" {
		return fmt.Errorf("email credentials not configured")
	}

	// Setup authentication
	auth := smtp.PlainAuth("", e.config.SMTPUsername, e.config.SMTPPassword, e.config.SMTPHost)

	// Compose message
	fromEmail := e.config.FromEmail
	if fromEmail == "" {
		fromEmail = e.config.SMTPUsername
	}

	message := []byte(fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"\r\n"+
			"%s\r\n",
		e.config.FromName, fromEmail, to, subject, body))

	// Send email
	addr := e.config.SMTPHost + ":" + e.config.SMTPPort
	if err := smtp.SendMail(addr, auth, fromEmail, []string{to}, message); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}

	return nil
}

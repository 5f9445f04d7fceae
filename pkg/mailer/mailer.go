package mailer

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer sends transactional email. The only message the service sends today
// is the reset-password link.
type Mailer interface {
	SendResetPasswordEmail(toEmail, resetToken string) error
}

type sendgridMailer struct {
	apiKey      string
	fromEmail   string
	frontendURL string
}

// NewSendgridMailer builds a SendGrid-backed Mailer from environment
// configuration. When SENDGRID_API_KEY is empty the returned mailer logs the
// reset link instead of sending, so local setups work without an account.
func NewSendgridMailer() Mailer {
	return &sendgridMailer{
		apiKey:      os.Getenv("SENDGRID_API_KEY"),
		fromEmail:   os.Getenv("SENDGRID_FROM_EMAIL"),
		frontendURL: os.Getenv("FRONTEND_URL"),
	}
}

func (m *sendgridMailer) SendResetPasswordEmail(toEmail, resetToken string) error {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", m.frontendURL, resetToken)

	if m.apiKey == "" {
		log.Printf("mailer: SENDGRID_API_KEY not set, reset link for %s: %s", toEmail, resetURL)
		return nil
	}

	htmlContent := fmt.Sprintf(`
	<html>
		<body>
			<h2>Password Reset Request</h2>
			<p>You have requested to reset your password.
			Click the link below to proceed:</p>
			<p><a href="%s">Reset Password</a></p>
			<p>If you did not request this, please ignore this email.</p>
			<p>This link will expire in 1 hour.</p>
		</body>
	</html>`, resetURL)

	message := mail.NewSingleEmail(
		mail.NewEmail("Art Market", m.fromEmail),
		"Password Reset Request",
		mail.NewEmail("", toEmail),
		"Use the link in this email to reset your password.",
		htmlContent,
	)

	client := sendgrid.NewSendClient(m.apiKey)
	resp, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid returned status %d: %s", resp.StatusCode, resp.Body)
	}

	log.Printf("mailer: reset email sent to %s", toEmail)
	return nil
}

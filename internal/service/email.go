package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// emailService implements the notification gateway on SendGrid. Every send
// is bounded by a timeout; callers treat failures as observations, never as
// operation failures.
type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
	timeout   time.Duration
}

func NewEmailService(apiKey, fromEmail, fromName string, timeout time.Duration) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
		timeout:   timeout,
	}
}

func (s *emailService) send(ctx context.Context, toEmail, toName, subject, plainText, htmlContent string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *emailService) SendReminder(ctx context.Context, email, name string, notice ReminderNotice) error {
	subject := fmt.Sprintf("Case Reminder: %s", notice.Title)
	plainText := fmt.Sprintf("Dear %s,\n\nThis is a reminder for the following case:\n\n%s\nCase: %s\nSuit Number: %s\nDescription: %s\n\nPlease take the necessary action.",
		name, notice.Title, notice.CaseSubject, notice.SuitNumber, notice.Description)
	htmlContent := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
			<h2>Case Reminder</h2>
			<p>Dear %s,</p>
			<p>This is a reminder for the following case:</p>
			<div style="background: #f3f4f6; padding: 20px; border-radius: 8px;">
				<h3>%s</h3>
				<p><strong>Case:</strong> %s</p>
				<p><strong>Suit Number:</strong> %s</p>
				<p><strong>Description:</strong> %s</p>
			</div>
			<p>Please take the necessary action.</p>
			<p>Best regards,<br>Case Management System</p>
		</div>
	`, name, notice.Title, notice.CaseSubject, notice.SuitNumber, notice.Description)

	return s.send(ctx, email, name, subject, plainText, htmlContent)
}

func (s *emailService) SendAccessApproved(ctx context.Context, email, name string) error {
	subject := "Account Approved"
	plainText := fmt.Sprintf("Dear %s,\n\nYour access request has been approved. You can now log in with your email and the temporary password provided by the administrator.", name)
	htmlContent := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
			<h2>Account Approved</h2>
			<p>Dear %s,</p>
			<p>Your access request has been approved. You can now log in with your email and the temporary password provided by the administrator.</p>
			<p>Best regards,<br>Case Management System</p>
		</div>
	`, name)

	return s.send(ctx, email, name, subject, plainText, htmlContent)
}

func (s *emailService) SendAccessRejected(ctx context.Context, email, name string) error {
	subject := "Account Request Rejected"
	plainText := fmt.Sprintf("Dear %s,\n\nYour access request has been reviewed and unfortunately cannot be approved at this time. Please contact the administrator for more information.", name)
	htmlContent := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
			<h2>Account Request Rejected</h2>
			<p>Dear %s,</p>
			<p>Your access request has been reviewed and unfortunately cannot be approved at this time. Please contact the administrator for more information.</p>
			<p>Best regards,<br>Case Management System</p>
		</div>
	`, name)

	return s.send(ctx, email, name, subject, plainText, htmlContent)
}

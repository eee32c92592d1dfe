// utils/email.go
package utils

import (
	"fmt"

	"bicycle-odyssey/models"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// EmailService handles sending emails using SendGrid
type EmailService struct {
	client *sendgrid.Client
	sender string
}

// NewEmailService returns nil when no API key is configured, which disables receipts
func NewEmailService(apiKey, sender string) *EmailService {
	if apiKey == "" {
		return nil
	}
	return &EmailService{
		client: sendgrid.NewSendClient(apiKey),
		sender: sender,
	}
}

// SendEmail sends a basic email to the specified recipient
func (es *EmailService) SendEmail(toEmail, subject, htmlContent string) error {
	from := mail.NewEmail("Bicycle Odyssey", es.sender)
	to := mail.NewEmail("", toEmail)
	message := mail.NewSingleEmail(from, subject, to, htmlContent, htmlContent)

	resp, err := es.client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("failed to send email: sendgrid status %d", resp.StatusCode)
	}
	return nil
}

// SendPaymentReceipt tells the customer their order payment went through
func (es *EmailService) SendPaymentReceipt(payment models.Payment) error {
	subject := "Payment Received"
	htmlContent := fmt.Sprintf(
		"<strong>Dear Customer,</strong><br><br>We received your payment for order %s.<br>Transaction ID: <strong>%s</strong><br>Amount: <strong>$%.2f</strong><br><br>Thank you for riding with Bicycle Odyssey!",
		payment.OrderID,
		payment.TransactionID,
		payment.Amount,
	)
	return es.SendEmail(payment.Email, subject, htmlContent)
}

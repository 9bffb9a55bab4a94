package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"os"

	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// MailServiceInterface defines the contract for outbound notification emails
type MailServiceInterface interface {
	SendOTP(ctx context.Context, destinatario, otp string) error
	SendPasswordReset(ctx context.Context, destinatario, token string) error
}

// MailService sends email through the Gmail API using a Service Account
// with domain-wide delegation over the sender address.
type MailService struct {
	client *gmail.Service
	sender string
}

// NewMailService creates a new MailService instance
// credentialsPath should be the path to the Service Account JSON file
func NewMailService(credentialsPath string) (*MailService, error) {
	sender := os.Getenv("GMAIL_SENDER")
	if sender == "" {
		return nil, fmt.Errorf("GMAIL_SENDER environment variable is not set")
	}

	ctx := context.Background()
	gmailService, err := gmail.NewService(ctx,
		option.WithCredentialsFile(credentialsPath),
		option.WithScopes(gmail.GmailSendScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail service: %w", err)
	}

	return &MailService{
		client: gmailService,
		sender: sender,
	}, nil
}

// Ensure MailService implements MailServiceInterface
var _ MailServiceInterface = (*MailService)(nil)

// send wraps an RFC 2822 message and submits it through the Gmail API
func (ms *MailService) send(destinatario, asunto, cuerpoHTML string) error {
	raw := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		ms.sender, destinatario, asunto, cuerpoHTML,
	)

	mensaje := &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString([]byte(raw)),
	}

	if _, err := ms.client.Users.Messages.Send("me", mensaje).Do(); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", destinatario, err)
	}

	log.Printf("✅ MailService: Email sent to %s (%s)", destinatario, asunto)
	return nil
}

// SendOTP delivers the 6-digit verification code for the 2FA login
func (ms *MailService) SendOTP(ctx context.Context, destinatario, otp string) error {
	cuerpo := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 480px;">
			<h2>Código de verificación</h2>
			<p>Tu código de acceso es:</p>
			<p style="font-size: 32px; font-weight: bold; letter-spacing: 8px;">%s</p>
			<p>El código expira en 5 minutos. Si no intentaste iniciar sesión, ignora este correo.</p>
		</div>`, otp)

	return ms.send(destinatario, "Código de verificación", cuerpo)
}

// SendPasswordReset delivers the password-reset link
func (ms *MailService) SendPasswordReset(ctx context.Context, destinatario, token string) error {
	baseURL := os.Getenv("FRONTEND_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3000"
	}

	cuerpo := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 480px;">
			<h2>Restablecer contraseña</h2>
			<p>Recibimos una solicitud para restablecer tu contraseña. El enlace expira en 15 minutos:</p>
			<p><a href="%s/restablecer?token=%s">Restablecer contraseña</a></p>
			<p>Si no solicitaste este cambio, ignora este correo.</p>
		</div>`, baseURL, token)

	return ms.send(destinatario, "Restablecer contraseña", cuerpo)
}

package services

import (
	"fmt"
	"log"
	"obra_flow_app_go/config"
	"strings"

	"github.com/resend/resend-go/v2"
)

// Email represents an email message
type Email struct {
	To       []string
	Subject  string
	HTMLBody string
	TextBody string
}

// SendEmail sends an email using Resend API
func SendEmail(cfg *config.Config, email *Email) error {
	// In development mode, log the email instead of sending
	if cfg.EmailTestMode {
		logEmailToConsole(email)
		return nil
	}

	// Validate configuration
	if cfg.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY not configured")
	}

	client := resend.NewClient(cfg.ResendAPIKey)

	fromAddress := fmt.Sprintf("%s <%s>", cfg.EmailFromName, cfg.EmailFrom)

	params := &resend.SendEmailRequest{
		From:    fromAddress,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTMLBody,
		Text:    email.TextBody,
	}

	if _, err := client.Emails.Send(params); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// SendEmailAsync sends an email in a goroutine, logging any failure
func SendEmailAsync(cfg *config.Config, email *Email) {
	go func() {
		if err := SendEmail(cfg, email); err != nil {
			log.Printf("[EMAIL] Failed to send %q to %v: %v", email.Subject, email.To, err)
		}
	}()
}

func logEmailToConsole(email *Email) {
	log.Printf("[EMAIL] To: %s | Subject: %s\n%s",
		strings.Join(email.To, ", "), email.Subject, email.TextBody)
}

// BuildUserActionEmail builds the message sent when a service enters a status
// that needs something from the client
func BuildUserActionEmail(toEmail, serviceName, statusName string) *Email {
	text := fmt.Sprintf(
		"El servicio %s ha pasado al estado %q y necesita documentación por tu parte. Accede a la plataforma para aportarla.",
		serviceName, statusName)
	return &Email{
		To:       []string{toEmail},
		Subject:  fmt.Sprintf("Acción necesaria: %s", serviceName),
		HTMLBody: fmt.Sprintf("<p>%s</p>", text),
		TextBody: text,
	}
}

// BuildIncidenceEmail builds the message sent when an incidence is opened on
// a service
func BuildIncidenceEmail(toEmail, serviceName, statusName string) *Email {
	text := fmt.Sprintf(
		"Se ha abierto una incidencia en el servicio %s (%s). Revisa la plataforma para resolverla.",
		serviceName, statusName)
	return &Email{
		To:       []string{toEmail},
		Subject:  fmt.Sprintf("Incidencia en %s", serviceName),
		HTMLBody: fmt.Sprintf("<p>%s</p>", text),
		TextBody: text,
	}
}

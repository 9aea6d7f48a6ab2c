package services

import (
	"testing"

	"obra_flow_app_go/config"

	"github.com/stretchr/testify/assert"
)

func TestSendEmailTestMode(t *testing.T) {
	cfg := &config.Config{EmailTestMode: true}

	// Test mode logs instead of calling the API; no key needed
	err := SendEmail(cfg, &Email{
		To:       []string{"cliente@example.com"},
		Subject:  "Prueba",
		TextBody: "contenido",
	})
	assert.NoError(t, err)
}

func TestSendEmailRequiresAPIKey(t *testing.T) {
	cfg := &config.Config{EmailTestMode: false, ResendAPIKey: ""}

	err := SendEmail(cfg, &Email{To: []string{"cliente@example.com"}, Subject: "Prueba"})
	assert.Error(t, err)
}

func TestBuildUserActionEmail(t *testing.T) {
	email := BuildUserActionEmail("cliente@example.com", "Luz definitiva", "Contrato de suministro")

	assert.Equal(t, []string{"cliente@example.com"}, email.To)
	assert.Contains(t, email.Subject, "Luz definitiva")
	assert.Contains(t, email.TextBody, "Contrato de suministro")
	assert.Contains(t, email.HTMLBody, "<p>")
}

func TestBuildIncidenceEmail(t *testing.T) {
	email := BuildIncidenceEmail("cliente@example.com", "Agua definitiva", "Incidencia: dirección de suministro")

	assert.Contains(t, email.Subject, "Incidencia")
	assert.Contains(t, email.TextBody, "Agua definitiva")
}

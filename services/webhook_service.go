package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

// Webhook sinks are fire-and-forget: a CRM and a chat channel mirror status
// events, but neither is allowed to fail a request or block a transition.

var webhookClient = &http.Client{Timeout: 5 * time.Second}

// WebhookEvent is the payload posted to the CRM and chat webhooks
type WebhookEvent struct {
	Event          string `json:"event"`
	ConstructionID int    `json:"construction_id"`
	ServiceID      int    `json:"service_id"`
	ServiceType    string `json:"service_type,omitempty"`
	FromStatus     string `json:"from_status,omitempty"`
	ToStatus       string `json:"to_status,omitempty"`
	Detail         string `json:"detail,omitempty"`
}

// PostWebhook delivers one event to a webhook URL
func PostWebhook(url string, event WebhookEvent) error {
	if url == "" {
		return nil
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode webhook payload: %w", err)
	}

	resp, err := webhookClient.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to post webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}

// EmitWebhooksAsync posts an event to every configured sink in the
// background, logging failures
func EmitWebhooksAsync(urls []string, event WebhookEvent) {
	for _, url := range urls {
		if url == "" {
			continue
		}
		go func(target string) {
			if err := PostWebhook(target, event); err != nil {
				log.Printf("[WEBHOOK] %s: %v", event.Event, err)
			}
		}(url)
	}
}

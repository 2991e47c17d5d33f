package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"pushcron/internal/domain/model"
	"pushcron/internal/domain/ports"
)

// Webhook is a Discord webhook alerter.
type Webhook struct {
	webhookURL string
	httpClient *http.Client
	logger     ports.Logger
	now        func() time.Time
}

var _ ports.Alerter = (*Webhook)(nil)

// NewWebhook creates a new Discord webhook alerter.
func NewWebhook(webhookURL string, timeout time.Duration, logger ports.Logger) *Webhook {
	return &Webhook{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
		now:        time.Now,
	}
}

// Alert posts the alert to Discord as a single embed.
func (w *Webhook) Alert(ctx context.Context, alert model.Alert) error {
	if w.webhookURL == "" {
		return fmt.Errorf("webhook URL is empty")
	}

	payload := map[string]any{
		"content": "",
		"embeds": []map[string]any{
			{
				"title":       truncate(alert.Title, 256),
				"description": truncate(alert.Description, 4096),
				"fields":      convertFields(alert.Fields),
				"timestamp":   w.now().UTC().Format(time.RFC3339),
				"color":       0xED4245, // Discord red
				"footer": map[string]string{
					"text": "pushcron",
				},
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("perform request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("discord webhook returned status %d", resp.StatusCode)
	}

	if w.logger != nil {
		w.logger.Info(ctx, "alert sent to discord", "title", alert.Title)
	}
	return nil
}

func convertFields(fields []model.AlertField) []map[string]any {
	if len(fields) == 0 {
		return nil
	}

	result := make([]map[string]any, 0, len(fields))
	for _, field := range fields {
		result = append(result, map[string]any{
			"name":   truncate(field.Name, 256),
			"value":  truncate(field.Value, 1024),
			"inline": field.Inline,
		})
	}

	return result
}

func truncate(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return strings.TrimSpace(string(runes[:limit-3])) + "..."
}

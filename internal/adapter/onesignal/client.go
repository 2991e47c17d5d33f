package onesignal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"pushcron/internal/domain/model"
	"pushcron/internal/domain/ports"
)

// DefaultEndpoint is the OneSignal create-notification endpoint.
const DefaultEndpoint = "https://onesignal.com/api/v1/notifications"

const maxResponseBytes = 1 << 20

// APIError is returned when OneSignal rejects a notification.
type APIError struct {
	StatusCode int
	Errors     []string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("onesignal returned status %d: %s", e.StatusCode, strings.Join(e.Errors, "; "))
}

// Client implements ports.Notifier against the OneSignal REST API.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     ports.Logger
}

var _ ports.Notifier = (*Client)(nil)

// New creates a OneSignal client posting to endpoint.
func New(endpoint string, timeout time.Duration, logger ports.Logger) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Send creates a notification. Failures are returned as is; the caller decides what to do with them.
func (c *Client) Send(ctx context.Context, creds model.Credentials, notification model.Notification) (*model.Delivery, error) {
	if creds.AppID == "" || creds.APIKey == "" {
		return nil, fmt.Errorf("onesignal credentials incomplete for %s", creds.App)
	}
	if strings.TrimSpace(notification.Message) == "" {
		return nil, fmt.Errorf("notification message is empty")
	}

	body, err := json.Marshal(BuildPayload(creds.AppID, notification))
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Basic "+creds.APIKey)

	if c.logger != nil {
		c.logger.Debug(ctx, "posting notification", "endpoint", c.endpoint, "app", creds.App, "bytes", len(body))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("perform request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	delivery, err := parseResponse(resp.StatusCode, data)
	if err != nil {
		return nil, err
	}

	if c.logger != nil {
		c.logger.Info(ctx, "onesignal accepted notification", "app", creds.App, "id", delivery.ID, "recipients", delivery.Recipients)
	}
	return delivery, nil
}

func parseResponse(status int, body []byte) (*model.Delivery, error) {
	ok := status >= 200 && status < 300
	if !gjson.ValidBytes(body) {
		return nil, &APIError{StatusCode: status, Errors: []string{fallbackMessage(body)}}
	}

	id := gjson.GetBytes(body, "id").String()
	if ok && id != "" {
		return &model.Delivery{
			ID:         id,
			Recipients: int(gjson.GetBytes(body, "recipients").Int()),
		}, nil
	}

	return nil, &APIError{StatusCode: status, Errors: collectErrors(gjson.GetBytes(body, "errors"))}
}

// collectErrors flattens both shapes OneSignal uses: a list of strings or an object of lists.
func collectErrors(result gjson.Result) []string {
	var messages []string
	switch {
	case result.IsArray():
		for _, item := range result.Array() {
			if msg := strings.TrimSpace(item.String()); msg != "" {
				messages = append(messages, msg)
			}
		}
	case result.IsObject():
		result.ForEach(func(key, value gjson.Result) bool {
			messages = append(messages, fmt.Sprintf("%s: %s", key.String(), value.Raw))
			return true
		})
	case result.Type == gjson.String:
		if msg := strings.TrimSpace(result.String()); msg != "" {
			messages = append(messages, msg)
		}
	}
	if len(messages) == 0 {
		return []string{"Unknown error"}
	}
	return messages
}

func fallbackMessage(body []byte) string {
	text := strings.TrimSpace(string(body))
	if text == "" {
		return "Unknown error"
	}
	if len(text) > 512 {
		text = text[:512]
	}
	return text
}

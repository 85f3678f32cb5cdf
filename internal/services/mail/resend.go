package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultBaseURL is the Resend API endpoint
	DefaultBaseURL = "https://api.resend.com"
	// DefaultTimeout bounds a single send attempt
	DefaultTimeout = 15 * time.Second
)

// Sender delivers email messages.
type Sender interface {
	Send(ctx context.Context, msg *Email) error
}

// Email is a single outbound message.
type Email struct {
	From    string `json:"from"`
	To      string `json:"to"`
	ReplyTo string `json:"reply_to,omitempty"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

// ResendClient sends email through the Resend HTTP API.
type ResendClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewResendClient creates a Resend client.
func NewResendClient(apiKey string) *ResendClient {
	return &ResendClient{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

// NewResendClientWithBaseURL creates a Resend client against a custom endpoint.
// Used in tests to point at a local server.
func NewResendClientWithBaseURL(apiKey, baseURL string) *ResendClient {
	c := NewResendClient(apiKey)
	c.baseURL = baseURL
	return c
}

// Send delivers one email. Non-2xx responses are returned as errors with the
// response body included for diagnosis.
func (c *ResendClient) Send(ctx context.Context, msg *Email) error {
	body, err := json.Marshal(struct {
		From    string   `json:"from"`
		To      []string `json:"to"`
		ReplyTo string   `json:"reply_to,omitempty"`
		Subject string   `json:"subject"`
		Text    string   `json:"text"`
	}{
		From:    msg.From,
		To:      []string{msg.To},
		ReplyTo: msg.ReplyTo,
		Subject: msg.Subject,
		Text:    msg.Text,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build email request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("email API returned status %d: %s", resp.StatusCode, respBody)
	}

	return nil
}

// Package relay delivers contact form messages through an external email
// service. Every backend implements contact.Relay.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cvvishnuu/portfolio/internal/contact"
)

// DefaultEmailJSEndpoint is the EmailJS REST send endpoint.
const DefaultEmailJSEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

// EmailJS sends templated messages through the EmailJS REST API.
type EmailJS struct {
	endpoint   string
	serviceID  string
	publicKey  string
	privateKey string
	client     *http.Client
}

// EmailJSOption configures an EmailJS relay.
type EmailJSOption func(*EmailJS)

// WithEndpoint overrides DefaultEmailJSEndpoint.
func WithEndpoint(url string) EmailJSOption {
	return func(e *EmailJS) {
		if url != "" {
			e.endpoint = url
		}
	}
}

// WithPrivateKey sets the access token required when the EmailJS account
// enforces private keys for API calls.
func WithPrivateKey(key string) EmailJSOption {
	return func(e *EmailJS) { e.privateKey = key }
}

// WithHTTPClient replaces the default client (10s timeout).
func WithHTTPClient(client *http.Client) EmailJSOption {
	return func(e *EmailJS) { e.client = client }
}

// NewEmailJS creates a relay for the given service and public key.
func NewEmailJS(serviceID, publicKey string, opts ...EmailJSOption) *EmailJS {
	e := &EmailJS{
		endpoint:  DefaultEmailJSEndpoint,
		serviceID: serviceID,
		publicKey: publicKey,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type emailJSRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken,omitempty"`
	TemplateParams map[string]string `json:"template_params"`
}

// Send implements contact.Relay.
func (e *EmailJS) Send(ctx context.Context, msg contact.Message) error {
	payload, err := json.Marshal(emailJSRequest{
		ServiceID:      e.serviceID,
		TemplateID:     msg.Template,
		UserID:         e.publicKey,
		AccessToken:    e.privateKey,
		TemplateParams: msg.Params,
	})
	if err != nil {
		return fmt.Errorf("encoding emailjs request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating emailjs request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending emailjs request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Code: resp.StatusCode, Text: strings.TrimSpace(string(body))}
	}
	return nil
}

// StatusError is a non-2xx response from the relay service.
type StatusError struct {
	Code int
	Text string
}

func (e *StatusError) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("relay returned status %d", e.Code)
	}
	return fmt.Sprintf("relay returned status %d: %s", e.Code, e.Text)
}

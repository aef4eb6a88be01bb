package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// completionRequest is the wire body for a streaming completion call
type completionRequest struct {
	Model    string          `json:"model"`
	Messages []Message       `json:"messages"`
	Stream   bool            `json:"stream"`
	Thinking *thinkingConfig `json:"thinking,omitempty"`
}

type thinkingConfig struct {
	Type string `json:"type"`
}

// TransportClient performs a single streaming request/response exchange
// against the completions endpoint
type TransportClient struct {
	endpoint string
	model    string
	thinking string
	creds    *CredentialStore

	// No client-level timeout: a streaming read has no bounded duration.
	// Cancellation flows through the request context instead.
	httpClient *http.Client
}

// NewTransportClient creates a transport bound to the configured endpoint,
// obtaining the credential from creds at send time
func NewTransportClient(cfg *Config, creds *CredentialStore) *TransportClient {
	return &TransportClient{
		endpoint:   cfg.APIURL,
		model:      cfg.Model,
		thinking:   cfg.Thinking,
		creds:      creds,
		httpClient: &http.Client{},
	}
}

// Send submits the messages and returns the streaming response body for
// the caller to pump through a StreamDecoder. The caller owns closing the
// returned body.
func (c *TransportClient) Send(ctx context.Context, messages []Message) (io.ReadCloser, error) {
	token, err := c.creds.Load()
	if err != nil {
		return nil, &TransportError{Op: "send", Err: err}
	}
	if token == "" {
		return nil, &AuthError{Status: http.StatusUnauthorized}
	}

	reqBody := completionRequest{
		Model:    c.model,
		Messages: messages,
		Stream:   true,
	}
	if c.thinking != "" {
		reqBody.Thinking = &thinkingConfig{Type: c.thinking}
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, &TransportError{Op: "send", Err: fmt.Errorf("marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &TransportError{Op: "send", Err: fmt.Errorf("create request: %w", err)}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "send", Err: err}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		return nil, &AuthError{Status: resp.StatusCode}
	}
	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, &TransportError{
			Op:     "send",
			Status: resp.StatusCode,
			Err:    errors.New(strings.TrimSpace(string(detail))),
		}
	}

	return resp.Body, nil
}

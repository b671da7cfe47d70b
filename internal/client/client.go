// Package client is the typed HTTP client for the inventory API. Every
// screen read and mutation goes through it; it owns auth headers,
// idempotency keys and the mapping of failures onto pkg/errors codes.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/KennethTannn98/stockflow-console/pkg/errors"
	"github.com/KennethTannn98/stockflow-console/pkg/session"
)

const defaultBaseURL = "http://localhost:8080/api"

// Client talks to the inventory API over JSON.
type Client struct {
	httpClient *http.Client
	baseURL    string
	session    session.Provider
	newKey     func() string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the configured API base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// New builds the API client. The session provider supplies the bearer
// token; a nil provider means every call goes out unauthenticated.
func New(sess session.Provider, opts ...Option) *Client {
	client := &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    defaultBaseURL,
		session:    sess,
		newKey:     uuid.NewString,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if client.baseURL == "" {
		client.baseURL = defaultBaseURL
	}

	return client
}

// errorEnvelope is the API's error body shape.
type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details any    `json:"details,omitempty"`
	} `json:"error"`
}

// do runs one JSON request. A nil body sends no payload; a nil out discards
// the response body. Mutating methods carry a fresh Idempotency-Key.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marshal request body")
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.buildURL(path), reader)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build request")
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.session != nil {
		if token := c.session.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	if method != http.MethodGet {
		req.Header.Set("Idempotency-Key", c.newKey())
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeNetwork, err, fmt.Sprintf("%s %s", method, path))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return c.errorFromResponse(resp, method, path)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("decode %s %s response", method, path))
	}
	return nil
}

func (c *Client) errorFromResponse(resp *http.Response, method, path string) error {
	code := pkgerrors.CodeForStatus(resp.StatusCode)
	message := fmt.Sprintf("%s %s returned status %d", method, path, resp.StatusCode)

	var envelope errorEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil && envelope.Error.Message != "" {
		message = envelope.Error.Message
	}

	typed := pkgerrors.New(code, message)
	if envelope.Error.Details != nil && pkgerrors.MetadataFor(code).DetailsAllowed {
		typed = typed.WithDetails(envelope.Error.Details)
	}
	return typed
}

func (c *Client) buildURL(path string) string {
	return strings.TrimRight(c.baseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

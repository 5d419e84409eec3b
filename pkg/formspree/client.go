// Package formspree submits contact values to a hosted Formspree form and
// translates its JSON responses into the submission.Collaborator contract.
package formspree

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-contactform/pkg/submission"
)

// DefaultBaseURL prefixes form IDs when no endpoint override is set.
const DefaultBaseURL = "https://formspree.io/f/"

const maxResponseBytes = 1 << 20

// StatusError reports a non-success response that carried no validation
// detail.
type StatusError struct {
	Code int
	Body string
}

func (e StatusError) Error() string {
	text := http.StatusText(e.Code)
	if body := strings.TrimSpace(e.Body); body != "" {
		return fmt.Sprintf("formspree: unexpected status %d %s: %s", e.Code, text, body)
	}
	return fmt.Sprintf("formspree: unexpected status %d %s", e.Code, text)
}

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusBadGateway
	}
	return e.Code
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint posts to url instead of DefaultBaseURL + form ID.
func WithEndpoint(url string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimSpace(url); trimmed != "" {
			c.endpoint = trimmed
		}
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithLogger routes request logs.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Client is a submission.Collaborator backed by a Formspree form.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ submission.Collaborator = (*Client)(nil)

// New builds a client for formID. formID may be empty when WithEndpoint is
// supplied.
func New(formID string, options ...Option) (*Client, error) {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	if id := strings.Trim(strings.TrimSpace(formID), "/"); id != "" {
		c.endpoint = DefaultBaseURL + id
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	if c.endpoint == "" {
		return nil, errors.New("formspree: form id or endpoint is required")
	}
	return c, nil
}

// Endpoint returns the URL submissions are posted to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

type providerError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type providerResponse struct {
	OK     bool            `json:"ok"`
	Error  string          `json:"error"`
	Errors []providerError `json:"errors"`
}

// Submit posts values as JSON. Validation responses become a
// *submission.Rejection; other failures are returned as transport errors.
func (c *Client) Submit(ctx context.Context, values submission.Values) error {
	body, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("formspree: encode values: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("formspree: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("formspree: submit: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("formspree: read response: %w", err)
	}
	c.logger.Debug("formspree: response", "status", resp.StatusCode, "bytes", len(raw))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
		var decoded providerResponse
		if err := json.Unmarshal(raw, &decoded); err == nil {
			if rejection := rejectionFrom(decoded); rejection != nil {
				return rejection
			}
		}
	}
	return StatusError{Code: resp.StatusCode, Body: string(raw)}
}

func rejectionFrom(resp providerResponse) *submission.Rejection {
	if len(resp.Errors) == 0 && strings.TrimSpace(resp.Error) == "" {
		return nil
	}

	payload := make(map[string][]string, len(resp.Errors)+1)
	for _, perr := range resp.Errors {
		message := strings.TrimSpace(perr.Message)
		if message == "" {
			message = perr.Code
		}
		payload[perr.Field] = append(payload[perr.Field], message)
	}
	if msg := strings.TrimSpace(resp.Error); msg != "" {
		payload["form"] = append(payload["form"], msg)
	}
	return submission.MapErrorPayload(submission.FieldNames(), payload).Rejection()
}

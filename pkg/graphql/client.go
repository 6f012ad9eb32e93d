package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-survey-admin/components/surveys"
)

const defaultTimeout = 10 * time.Second

// Config configures the GraphQL client.
type Config struct {
	Endpoint   string
	Timeout    time.Duration
	UserAgent  string
	HTTPClient *http.Client
}

// Client posts GraphQL operations to a single endpoint. The access token of
// the session stored in the request context is forwarded as a bearer token.
type Client struct {
	endpoint  string
	userAgent string
	client    *http.Client
}

// New builds a client.
func New(cfg Config) (*Client, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("graphql: endpoint is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		endpoint:  endpoint,
		userAgent: cfg.UserAgent,
		client:    httpClient,
	}, nil
}

// Request is one GraphQL operation.
type Request struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName,omitempty"`
	Variables     map[string]any `json:"variables,omitempty"`
}

// Error is one entry of a GraphQL errors array.
type Error struct {
	Message    string         `json:"message"`
	Path       []any          `json:"path,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

// ResponseError reports a response that carried GraphQL errors.
type ResponseError struct {
	Operation string
	Errors    []Error
}

func (e *ResponseError) Error() string {
	messages := make([]string, 0, len(e.Errors))
	for _, gqlErr := range e.Errors {
		messages = append(messages, gqlErr.Message)
	}
	return fmt.Sprintf("graphql: %s: %s", e.Operation, strings.Join(messages, "; "))
}

// StatusError reports a non-2xx HTTP response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("graphql: remote error %d: %s", e.StatusCode, e.Body)
}

type response struct {
	Data   json.RawMessage `json:"data"`
	Errors []Error         `json:"errors"`
}

// Do runs req and decodes the data member into target. GraphQL errors are
// returned as *ResponseError even when partial data is present.
func (c *Client) Do(ctx context.Context, req Request, target any) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("graphql: encode payload: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("graphql: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}
	if session := surveys.SessionFromContext(ctx); session != nil && session.AccessToken != "" {
		httpReq.Header.Set("Authorization", "Bearer "+session.AccessToken)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("graphql: http request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	var decoded response
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return fmt.Errorf("graphql: decode response: %w", err)
	}
	if len(decoded.Errors) > 0 {
		return &ResponseError{Operation: req.OperationName, Errors: decoded.Errors}
	}
	if target == nil || len(decoded.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(decoded.Data, target); err != nil {
		return fmt.Errorf("graphql: decode %s data: %w", req.OperationName, err)
	}
	return nil
}

package centerplus

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/centerplus/centerplus-landing/gateway/internal/authtoken"
	"github.com/centerplus/centerplus-landing/gateway/internal/config"
	"github.com/centerplus/centerplus-landing/gateway/internal/logger"
)

// Client talks to the CenterPlus tenant API.
type Client struct {
	baseURL     string
	staticToken string
	httpClient  *http.Client
	tokens      *authtoken.Store
	log         *logger.Logger
}

// New creates a tenant API client. The token store is consulted on every
// request; the static token from configuration is the fallback.
func New(cfg *config.APIConfig, tokens *authtoken.Store, log *logger.Logger) *Client {
	return &Client{
		baseURL:     cfg.BaseURL,
		staticToken: authtoken.Sanitize(cfg.StaticToken),
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		tokens:      tokens,
		log:         log,
	}
}

// bearerToken resolves the token for the next request: the stored token
// first, then the deployment-configured static one. Empty means the
// request goes out unauthenticated.
func (c *Client) bearerToken() string {
	if token := c.tokens.Token(); token != "" {
		return token
	}
	return c.staticToken
}

// doRequest executes one API call and maps the failure taxonomy:
// no response -> ConnectivityError, 401/403 -> ErrUnauthorized,
// other non-2xx -> APIError with the body's message when present.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, body interface{}) ([]byte, error) {
	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("centerplus: marshal body: %w", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("centerplus: build request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.bearerToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.log.Debug("tenant api request", "method", method, "url", fullURL, "request_id", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ConnectivityError{URL: fullURL, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("centerplus: read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		c.log.Warn("tenant api rejected token", "status", resp.StatusCode, "request_id", requestID)
		return nil, ErrUnauthorized
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Status: resp.StatusCode, Message: bodyMessage(respBody)}
	}

	return respBody, nil
}

// bodyMessage extracts the message or error field from an error body.
// Returns "" when neither exists; APIError then falls back to the status line.
func bodyMessage(body []byte) string {
	var parsed struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &parsed) != nil {
		return ""
	}
	if parsed.Message != "" {
		return parsed.Message
	}
	return parsed.Error
}

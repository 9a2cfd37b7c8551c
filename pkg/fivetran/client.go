// Package fivetran is a minimal client for the Fivetran REST API, covering
// the calls needed to drive one connector's sync lifecycle: reading the
// current sync state and flipping the paused flag.
package fivetran

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/agrilabs/fivetran-sync-agent/internal/models"
)

const DefaultBaseURL = "https://api.fivetran.com/v1"

// Fivetran allows considerably more, but the agent issues one request every
// poll interval at most, so a conservative bucket is plenty.
const (
	defaultRequestsPerSecond = 5.0
	defaultBurst             = 5
)

// Client issues authenticated requests against the Fivetran API. It carries
// no retry or caching logic; retry policy belongs to the caller.
type Client struct {
	baseURL    string
	apiKey     string
	apiSecret  string
	httpClient *http.Client
	limiter    *rate.Limiter
}

type ClientOption func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRateLimit overrides the client-side request rate.
func WithRateLimit(requestsPerSecond float64, burst int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
	}
}

// NewClient creates a client for the given API base URL. The credentials are
// immutable for the lifetime of the client.
func NewClient(baseURL string, creds models.Credentials, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    baseURL,
		apiKey:     creds.APIKey,
		apiSecret:  creds.APISecret,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(defaultRequestsPerSecond), defaultBurst),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// AuthHeader returns the Basic authorization value derived from the stored
// key and secret. Pure function, no I/O.
func (c *Client) AuthHeader() string {
	token := base64.StdEncoding.EncodeToString([]byte(c.apiKey + ":" + c.apiSecret))
	return "Basic " + token
}

// GetSyncStatus reads the connection resource and returns its
// data.status.sync_state field.
func (c *Client) GetSyncStatus(ctx context.Context, connectorID string) (models.SyncState, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", &TransportError{Op: "get sync status", Err: err}
	}

	url := fmt.Sprintf("%s/connections/%s", c.baseURL, connectorID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &TransportError{Op: "get sync status", Err: err}
	}
	req.Header.Set("Authorization", c.AuthHeader())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &TransportError{Op: "get sync status", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &TransportError{Op: "get sync status", StatusCode: resp.StatusCode}
	}

	var payload struct {
		Data struct {
			Status struct {
				SyncState string `json:"sync_state"`
			} `json:"status"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", &ProtocolError{Op: "get sync status", Reason: fmt.Sprintf("decoding response body: %v", err)}
	}
	if payload.Data.Status.SyncState == "" {
		return "", &ProtocolError{Op: "get sync status", Reason: "response body has no data.status.sync_state"}
	}

	return models.SyncState(payload.Data.Status.SyncState), nil
}

// SetPaused flips the connector's paused flag. A non-2xx answer is returned
// as a *RemoteError carrying the response body.
func (c *Client) SetPaused(ctx context.Context, connectorID string, paused bool) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &TransportError{Op: "set paused", Err: err}
	}

	body, err := json.Marshal(map[string]bool{"paused": paused})
	if err != nil {
		return &TransportError{Op: "set paused", Err: err}
	}

	url := fmt.Sprintf("%s/connectors/%s", c.baseURL, connectorID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewReader(body))
	if err != nil {
		return &TransportError{Op: "set paused", Err: err}
	}
	req.SetBasicAuth(c.apiKey, c.apiSecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: "set paused", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &RemoteError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	return nil
}

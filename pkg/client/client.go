// Package client is the Go SDK for the MolForge HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"github.com/turtacn/molforge/pkg/errors"
)

const Version = "0.1.0"

const maxResponseBytes = 16 << 20

// Logger defines the logging interface used by the Client
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// noopLogger is a no-op implementation of Logger
type noopLogger struct{}

func (noopLogger) Debugf(format string, args ...interface{}) {}
func (noopLogger) Infof(format string, args ...interface{})  {}
func (noopLogger) Errorf(format string, args ...interface{}) {}

// Client is the MolForge SDK client
type Client struct {
	baseURL      string
	httpClient   *http.Client
	userAgent    string
	logger       Logger
	retryMax     int
	retryWaitMin time.Duration
	retryWaitMax time.Duration
}

// APIError represents an error response from the API
type APIError struct {
	StatusCode int    `json:"status_code"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	Detail     string `json:"detail,omitempty"`
	RequestID  string `json:"request_id"`

	body []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("molforge: %s (HTTP %d): %s [request_id=%s]", e.Code, e.StatusCode, e.Message, e.RequestID)
}

func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsInvalidSMILES reports whether the server rejected the SMILES string.
func (e *APIError) IsInvalidSMILES() bool {
	return e.Code == errors.ErrCodeMoleculeInvalidSMILES.String()
}

func (e *APIError) IsRateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500 && e.StatusCode < 600
}

// NewClient creates a new MolForge SDK client
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "baseURL is required")
	}

	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidConfig, "invalid baseURL")
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "baseURL scheme must be http or https")
	}

	c := &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		httpClient:   &http.Client{Timeout: 60 * time.Second},
		userAgent:    fmt.Sprintf("molforge-go-sdk/%s", Version),
		logger:       &noopLogger{},
		retryMax:     3,
		retryWaitMin: 500 * time.Millisecond,
		retryWaitMax: 5 * time.Second,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// request describes one API call.
type request struct {
	method  string
	path    string
	body    interface{}
	accept  string
	noRetry bool
}

// do performs req, retrying network failures, 5xx and 429 responses with
// exponential backoff. Other 4xx responses are returned at once.
func (c *Client) do(ctx context.Context, req request) ([]byte, error) {
	if !strings.HasPrefix(req.path, "/") {
		req.path = "/" + req.path
	}
	if req.accept == "" {
		req.accept = "application/json"
	}

	var payload []byte
	if req.body != nil {
		var err error
		if payload, err = json.Marshal(req.body); err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	requestID := uuid.NewString()
	attempt := 0
	op := func() ([]byte, error) {
		attempt++
		if attempt > 1 {
			c.logger.Debugf("Retry attempt %d for %s %s", attempt-1, req.method, req.path)
		}

		var bodyReader io.Reader
		if payload != nil {
			bodyReader = bytes.NewReader(payload)
		}
		httpReq, err := http.NewRequestWithContext(ctx, req.method, c.baseURL+req.path, bodyReader)
		if err != nil {
			return nil, backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
		}
		if payload != nil {
			httpReq.Header.Set("Content-Type", "application/json")
		}
		httpReq.Header.Set("Accept", req.accept)
		httpReq.Header.Set("User-Agent", c.userAgent)
		httpReq.Header.Set("X-Request-ID", requestID)

		start := time.Now()
		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			c.logger.Errorf("Request failed: %v", err)
			if ctx.Err() != nil {
				return nil, backoff.Permanent(ctx.Err())
			}
			return nil, err
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		if err != nil {
			return nil, fmt.Errorf("failed to read response body: %w", err)
		}
		c.logger.Debugf("%s %s %d (%v)", req.method, req.path, resp.StatusCode, time.Since(start))

		if resp.StatusCode < 400 {
			return respBody, nil
		}

		apiErr := newAPIError(resp.StatusCode, requestID, respBody)
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return nil, apiErr
		}
		return nil, backoff.Permanent(apiErr)
	}

	retries := c.retryMax
	if req.noRetry {
		retries = 0
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.retryWaitMin
	b.MaxInterval = c.retryWaitMax
	b.MaxElapsedTime = 0

	return backoff.RetryWithData(op, backoff.WithContext(backoff.WithMaxRetries(b, uint64(retries)), ctx))
}

func newAPIError(status int, requestID string, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status, RequestID: requestID, body: body}
	if len(body) == 0 {
		apiErr.Message = http.StatusText(status)
		return apiErr
	}
	var errResp struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Code != "" {
		apiErr.Code = errResp.Code
		apiErr.Message = errResp.Message
		apiErr.Detail = errResp.Detail
	} else {
		apiErr.Message = string(body)
	}
	return apiErr
}

func (c *Client) postJSON(ctx context.Context, path string, body interface{}, result interface{}) error {
	return c.doJSON(ctx, request{method: http.MethodPost, path: path, body: body}, result)
}

func (c *Client) doJSON(ctx context.Context, req request, result interface{}) error {
	respBody, err := c.do(ctx, req)
	if err != nil {
		return err
	}
	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}
	return nil
}

//Personal.AI order the ending

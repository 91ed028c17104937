// internal/app/gateway/client.go

// Package gateway is the typed client for the platform's REST backend.
//
// Every call injects the caller's bearer token and an X-Request-ID,
// runs through a shared circuit breaker, and maps responses onto a small
// error taxonomy: ErrAuthExpired (401), ErrAlreadyApproved (409),
// *APIError (other non-2xx with a message payload), and ErrUnreachable
// (transport failure, open breaker, or unparseable body).
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// Client talks to the backend API. It is constructed once in bootstrap
// and shared by every feature handler; it is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
	log     *zap.Logger
}

// New builds a Client for the API at baseURL (including any path prefix,
// e.g. "http://localhost:5000/api"). The per-request timeout doubles as
// the explicit hung-request contract: a stalled call fails instead of
// leaving its control disabled forever.
func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "nursehub-api",
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("api circuit breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		breaker: breaker,
		log:     logger,
	}
}

// BreakerState exposes the circuit breaker state for the health check.
func (c *Client) BreakerState() string { return c.breaker.State().String() }

// CloseIdleConnections releases pooled keep-alive connections. Called
// from shutdown.
func (c *Client) CloseIdleConnections() { c.http.CloseIdleConnections() }

// Upload is a file attached to a multipart request.
type Upload struct {
	Field    string
	Filename string
	Reader   io.Reader
}

// errorBody is the backend's error payload shape.
type errorBody struct {
	Error string `json:"error"`
}

// do performs one backend call and decodes a 2xx JSON body into out
// (when out is non-nil). token may be empty for the unauthenticated
// login/signup calls.
func (c *Client) do(ctx context.Context, token, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	endpoint := method + " " + path
	started := time.Now()

	res, err := c.breaker.Execute(func() (any, error) {
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		// Server faults trip the breaker; client-level verdicts don't.
		if resp.StatusCode >= http.StatusInternalServerError {
			defer resp.Body.Close()
			msg := readErrorMessage(resp.Body)
			return nil, &APIError{Status: resp.StatusCode, Message: msg}
		}
		return resp, nil
	})
	if err != nil {
		if apiErr, ok := err.(*APIError); ok {
			observe(endpoint, apiErr.Status, started)
			c.log.Error("backend server error",
				zap.String("endpoint", endpoint),
				zap.Int("status", apiErr.Status))
			return apiErr
		}
		observe(endpoint, 0, started)
		c.log.Error("backend unreachable", zap.String("endpoint", endpoint), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	resp := res.(*http.Response)
	defer resp.Body.Close()
	observe(endpoint, resp.StatusCode, started)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrAuthExpired
	case resp.StatusCode == http.StatusConflict:
		return ErrAlreadyApproved
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return &APIError{Status: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.log.Error("backend response undecodable",
			zap.String("endpoint", endpoint), zap.Error(err))
		return fmt.Errorf("%w: decoding response: %v", ErrUnreachable, err)
	}
	return nil
}

// getJSON issues an authorized GET and decodes the result.
func (c *Client) getJSON(ctx context.Context, token, path string, out any) error {
	return c.do(ctx, token, http.MethodGet, path, nil, "", out)
}

// sendJSON issues a request with a JSON body.
func (c *Client) sendJSON(ctx context.Context, token, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%w: encoding request: %v", ErrUnreachable, err)
		}
		body = bytes.NewReader(raw)
	}
	return c.do(ctx, token, method, path, body, "application/json", out)
}

// sendMultipart issues a POST with form fields and optional file parts.
// Multi-valued fields (tags) repeat the field once per value.
func (c *Client) sendMultipart(ctx context.Context, token, path string, fields map[string][]string, files []Upload, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, vals := range fields {
		for _, v := range vals {
			if err := w.WriteField(name, v); err != nil {
				return fmt.Errorf("%w: building form: %v", ErrUnreachable, err)
			}
		}
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.Field, f.Filename)
		if err != nil {
			return fmt.Errorf("%w: building form: %v", ErrUnreachable, err)
		}
		if _, err := io.Copy(part, f.Reader); err != nil {
			return fmt.Errorf("%w: reading upload: %v", ErrUnreachable, err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("%w: building form: %v", ErrUnreachable, err)
	}
	return c.do(ctx, token, http.MethodPost, path, &buf, w.FormDataContentType(), out)
}

func readErrorMessage(r io.Reader) string {
	var e errorBody
	if err := json.NewDecoder(io.LimitReader(r, 64<<10)).Decode(&e); err == nil && e.Error != "" {
		return e.Error
	}
	return "An unknown error occurred"
}

// Package backend is the typed REST client for the Shree Multiservices API.
// Every failure is returned as a *errors.AppError; nothing panics.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"shree-admin/internal/auth"
	"shree-admin/internal/config"
	apperrors "shree-admin/pkg/errors"
	"shree-admin/pkg/logger"

	"github.com/labstack/echo/v4"
)

const defaultTimeout = 10 * time.Second

// Client talks to the backend on behalf of the gateway. It is safe for
// concurrent use; per-session calls go through API.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	logger     echo.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the transport, mostly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func New(cfg config.BackendConfig, logger echo.Logger, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		timeout:    timeout,
		httpClient: &http.Client{},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured reports whether a base URL is set. Calls on an unconfigured
// client fail with a configuration error without touching the network.
func (c *Client) Configured() bool {
	return c.baseURL != ""
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// For returns an API bound to one session credential.
func (c *Client) For(credential string) *API {
	return &API{client: c, credential: credential}
}

// Login exchanges admin credentials for a session token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var out struct {
		Token   string `json:"token"`
		Message string `json:"message"`
	}
	in := map[string]string{"username": username, "password": password}
	if err := c.doJSON(ctx, "", http.MethodPost, pathLogin, in, &out, msgLoginFailed); err != nil {
		return "", err
	}
	if out.Token == "" {
		if out.Message != "" {
			return "", apperrors.Unauthorized(out.Message)
		}
		return "", apperrors.Unauthorized(msgMissingToken)
	}
	return out.Token, nil
}

// API issues requests carrying one admin's credential.
type API struct {
	client     *Client
	credential string
}

func (a *API) doJSON(ctx context.Context, method, path string, in, out any, fallback string) error {
	return a.client.doJSON(ctx, a.credential, method, path, in, out, fallback)
}

func (c *Client) doJSON(ctx context.Context, credential, method, path string, in, out any, fallback string) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return apperrors.InternalServer(msgEncodeFailed, err)
		}
		body = bytes.NewReader(payload)
		contentType = contentTypeJSON
	}
	return c.do(ctx, credential, method, path, body, contentType, out, fallback)
}

// do performs one bounded request. out may be nil when the response body is
// irrelevant.
func (c *Client) do(ctx context.Context, credential, method, path string, body io.Reader, contentType string, out any, fallback string) error {
	if !c.Configured() {
		return apperrors.Configuration(msgNotConfigured)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return apperrors.Network(msgUnreachable, err)
	}
	req.Header.Set(headerAccept, contentTypeJSON)
	if contentType != "" {
		req.Header.Set(headerType, contentType)
	}
	if credential != "" {
		req.Header.Set(auth.BearerHeader(credential))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			c.logf("backend %s %s timed out after %s", method, path, c.timeout)
			return apperrors.Network(msgTimedOut, err)
		}
		c.logf("backend %s %s failed: %v", method, path, err)
		return apperrors.Network(msgUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		msg := errorMessage(raw, fallback, resp.StatusCode)
		c.logf("backend %s %s returned %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(raw)))
		return apperrors.HTTP(resp.StatusCode, msg)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return apperrors.InternalServer(msgDecodeFailed, err)
	}
	return nil
}

func (c *Client) logf(format string, args ...interface{}) {
	if c.logger == nil {
		return
	}
	c.logger.Warn(logger.SanitizeLogMessage(fmt.Sprintf(format, args...)))
}

// errorMessage prefers the backend's own message or error field.
func errorMessage(raw []byte, fallback string, status int) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	if fallback != "" {
		return fallback
	}
	return fmt.Sprintf(msgRequestFailedFmt, status)
}

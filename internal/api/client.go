// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"time"
)

// =============================================================================
// SESSION
// =============================================================================

// Session supplies the bearer token for outgoing requests. The token is
// read fresh on every request, never cached, so a login or logout on one
// goroutine is visible to requests issued on another. Clear is invoked
// when the backend answers 401.
type Session interface {
	Token() string
	Clear()
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// Config holds configuration options for the backend client.
type Config struct {
	// BaseURL is the backend API base URL (default: http://127.0.0.1:8080/v1/api)
	BaseURL string

	// Timeout for regular requests (default: 30s)
	Timeout time.Duration

	// ChatTimeout for message-send requests, which wait on the assistant
	// reply and run much longer than plain CRUD calls (default: 120s)
	ChatTimeout time.Duration
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:     "http://127.0.0.1:8080/v1/api",
		Timeout:     30 * time.Second,
		ChatTimeout: 120 * time.Second,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the Sophia backend.
//
// The Client is thread-safe for concurrent use. It never retries: the
// caller decides whether an operation is worth reissuing.
type Client struct {
	config     *Config
	session    Session
	httpClient *http.Client
	chatClient *http.Client
}

// NewClient creates a new backend client. session must not be nil.
func NewClient(config *Config, session Session) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	// Fill in defaults for any zero values
	if config.BaseURL == "" {
		config.BaseURL = "http://127.0.0.1:8080/v1/api"
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.ChatTimeout == 0 {
		config.ChatTimeout = 120 * time.Second
	}

	return &Client{
		config:     config,
		session:    session,
		httpClient: &http.Client{Timeout: config.Timeout},
		chatClient: &http.Client{Timeout: config.ChatTimeout},
	}
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// =============================================================================
// REQUEST PRIMITIVES
// =============================================================================

// Get issues a GET and decodes the 2xx body into out (see DecodeBody).
func (c *Client) Get(ctx context.Context, path string, out any, allowBareArray bool) (string, error) {
	return c.do(ctx, c.httpClient, http.MethodGet, path, "", nil, out, allowBareArray)
}

// Post issues a POST with a JSON body and decodes the 2xx response into out.
func (c *Client) Post(ctx context.Context, path string, in, out any) (string, error) {
	return c.postWith(ctx, c.httpClient, path, in, out)
}

// PostChat is Post with the long chat timeout, for endpoints that block
// on the assistant reply.
func (c *Client) PostChat(ctx context.Context, path string, in, out any) (string, error) {
	return c.postWith(ctx, c.chatClient, path, in, out)
}

// Put issues a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, in, out any) (string, error) {
	body, err := encodeJSON(in)
	if err != nil {
		return "", err
	}
	return c.do(ctx, c.httpClient, http.MethodPut, path, "application/json", body, out, false)
}

func (c *Client) postWith(ctx context.Context, hc *http.Client, path string, in, out any) (string, error) {
	body, err := encodeJSON(in)
	if err != nil {
		return "", err
	}
	return c.do(ctx, hc, http.MethodPost, path, "application/json", body, out, false)
}

// MultipartFile names one file part of a multipart POST.
type MultipartFile struct {
	Field    string
	Filename string
	Content  []byte
}

// PostMultipart issues a multipart/form-data POST carrying form fields
// and file parts. Empty-valued fields are omitted. Uses the chat timeout
// since the image-message endpoint waits on the assistant reply.
func (c *Client) PostMultipart(ctx context.Context, path string, fields map[string]string, files []MultipartFile, out any) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for key, val := range fields {
		if val == "" {
			continue
		}
		if err := w.WriteField(key, val); err != nil {
			return "", &ClientError{Type: ErrTypeUnknown, Message: "failed to build multipart body", Cause: err}
		}
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.Field, filepath.Base(f.Filename))
		if err != nil {
			return "", &ClientError{Type: ErrTypeUnknown, Message: "failed to build multipart body", Cause: err}
		}
		if _, err := part.Write(f.Content); err != nil {
			return "", &ClientError{Type: ErrTypeUnknown, Message: "failed to build multipart body", Cause: err}
		}
	}
	if err := w.Close(); err != nil {
		return "", &ClientError{Type: ErrTypeUnknown, Message: "failed to build multipart body", Cause: err}
	}
	return c.do(ctx, c.chatClient, http.MethodPost, path, w.FormDataContentType(), buf.Bytes(), out, false)
}

// =============================================================================
// CORE REQUEST PATH
// =============================================================================

func (c *Client) do(ctx context.Context, hc *http.Client, method, path, contentType string, body []byte, out any, allowBareArray bool) (string, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, reader)
	if err != nil {
		return "", &ClientError{Type: ErrTypeUnknown, Message: "failed to create request", Cause: err}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := hc.Do(req)
	if err != nil {
		return "", &ClientError{Type: ErrTypeNetwork, Message: "cannot reach server", Cause: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ClientError{Type: ErrTypeNetwork, Message: "failed to read response", Cause: err}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		// Local state must not outlive a rejected token.
		c.session.Clear()
		msg := errorMessage(respBody)
		if msg == "" {
			msg = "session expired, please log in again"
		}
		return "", &ClientError{Type: ErrTypeUnauthorized, Status: resp.StatusCode, Message: msg}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := errorMessage(respBody)
		if msg == "" {
			msg = "server error: " + resp.Status
		}
		return "", &ClientError{Type: ErrTypeHTTP, Status: resp.StatusCode, Message: msg}
	}

	return DecodeBody(respBody, out, allowBareArray)
}

func encodeJSON(in any) ([]byte, error) {
	if in == nil {
		return nil, nil
	}
	body, err := json.Marshal(in)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeUnknown, Message: "failed to encode request", Cause: err}
	}
	return body, nil
}

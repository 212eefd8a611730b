// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api implements the HTTP client for the floor plan generation
// service.
//
// The client is a thin adapter: it marshals requests, attaches the bearer
// token supplied by an injected TokenProvider, and normalizes every non-2xx
// response into a typed *APIError carrying the status code and the server's
// "detail" message when one was decodable. Nothing escapes this layer as a
// panic or an untyped error; callers always receive a value they can turn
// into UI state.
//
// The client performs no retries. Retry policy belongs to the caller and is
// expressed by wrapping the client with a RetryPolicy (see retry.go).
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Configuration constants for the service client.
const (
	// DefaultTimeout bounds a single request when no custom timeout is
	// configured. Generation runs a diffusion pass server-side, so this is
	// deliberately generous.
	DefaultTimeout = 120 * time.Second

	// MaxResponseSize limits how much of a response body is read.
	// SECURITY: Response size limit prevents memory exhaustion.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB

	userAgent = "blueprint-tui/0.1.0"
)

// PERFORMANCE: Connection pooling reduces TCP handshake overhead.
// One shared transport serves all requests from all clients.
var sharedTransport = &http.Transport{
	MaxIdleConns:        100,
	MaxIdleConnsPerHost: 10,
	IdleConnTimeout:     90 * time.Second,
	TLSHandshakeTimeout: 10 * time.Second,
}

// =============================================================================
// ERRORS
// =============================================================================

// ErrNoLayoutImage indicates a 2xx generate response without the required
// layout image URL. This is a contract violation by the backend, not a user
// condition, and is logged as such.
var ErrNoLayoutImage = errors.New("generate response missing layout image URL")

// APIError represents a non-2xx response from the service.
type APIError struct {
	// Status is the HTTP status code.
	Status int
	// Detail is the server-provided message from a JSON {"detail": ...}
	// body, empty when the body was absent or not decodable.
	Detail string
	// RawBody holds the undecoded response body for logging.
	RawBody string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("service error (HTTP %d): %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("service error (HTTP %d)", e.Status)
}

// Message returns the text to show a user: the server detail when present,
// otherwise a generic fallback. The status code stays in logs only.
func (e *APIError) Message() string {
	if e.Detail != "" {
		return e.Detail
	}
	return "The request failed. Please try again."
}

// IsRetryable reports whether the error is transient from the server's
// point of view (5xx or rate limiting). Used by retry policies.
func (e *APIError) IsRetryable() bool {
	return e.Status >= 500 || e.Status == http.StatusTooManyRequests
}

// =============================================================================
// CLIENT
// =============================================================================

// Client communicates with the floor plan generation service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenProvider
}

// NewClient creates a client for the service at baseURL. The TokenProvider
// may be nil, in which case all requests go out unauthenticated.
func NewClient(baseURL string, tokens TokenProvider) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Transport: sharedTransport,
			Timeout:   DefaultTimeout,
		},
		tokens: tokens,
	}
}

// WithTimeout sets the per-request timeout.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.httpClient.Timeout = timeout
	return c
}

// WithHTTPClient replaces the underlying HTTP client. Intended for tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// BaseURL returns the configured service root.
func (c *Client) BaseURL() string { return c.baseURL }

// Authenticated reports whether a bearer token is currently available.
func (c *Client) Authenticated() bool {
	return c.tokens != nil && c.tokens.Token() != ""
}

// =============================================================================
// OPERATIONS
// =============================================================================

// Generate asks the service to produce a floor plan for the prompt.
func (c *Client) Generate(ctx context.Context, prompt string) (*GenerateResponse, error) {
	var resp GenerateResponse
	err := c.SendJSON(ctx, http.MethodPost, "/generate", GenerateRequest{Prompt: prompt}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListFloorPlans fetches one page of the community feed. Pages are
// 1-indexed; a response shorter than limit means the feed is exhausted.
func (c *Client) ListFloorPlans(ctx context.Context, page, limit int) ([]FloorPlan, error) {
	path := "/floorplans?page=" + strconv.Itoa(page) + "&limit=" + strconv.Itoa(limit)
	var plans []FloorPlan
	if err := c.SendJSON(ctx, http.MethodGet, path, nil, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// ProbeImage checks that an image URL answers successfully. The terminal
// cannot decode the bitmap itself, so "the image loads" means "the URL is
// reachable and 2xx". Returns a *APIError for non-2xx answers.
func (c *Client) ProbeImage(ctx context.Context, imageURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, imageURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("image probe failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 1024))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode}
	}
	return nil
}

// =============================================================================
// TRANSPORT
// =============================================================================

// SendJSON issues one request against the service. body is marshaled as
// JSON when non-nil; a 2xx response is unmarshaled into out when out is
// non-nil. Non-2xx responses become *APIError.
func (c *Client) SendJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req, body != nil)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	// Method and path only; never bodies, never the Authorization header.
	log.Printf("api: %s %s -> %d (%v)", method, req.URL.Path, resp.StatusCode, time.Since(start).Round(time.Millisecond))

	respBody, err := readResponse(resp)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, respBody)
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}

// setHeaders attaches the standard headers. The Authorization header is
// only present when the provider yields a token.
func (c *Client) setHeaders(req *http.Request, hasBody bool) {
	if hasBody {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
}

// newAPIError builds an *APIError from a failed response, pulling the
// "detail" field out of a JSON body when one is there.
func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{
		Status:  status,
		RawBody: string(body),
	}
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		apiErr.Detail = eb.Detail
	}
	return apiErr
}

// readResponse reads the response body with a size limit.
// SECURITY: Response size limit prevents memory exhaustion.
func readResponse(resp *http.Response) ([]byte, error) {
	limited := io.LimitReader(resp.Body, MaxResponseSize)
	body, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) == MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", int64(MaxResponseSize))
	}
	return body, nil
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/time/rate"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	// ErrTypeRequestFailed is a non-2xx HTTP status.
	ErrTypeRequestFailed
	// ErrTypeAborted is deliberate cancellation. Not a failure: callers must
	// treat it as silent termination, never as an error to surface.
	ErrTypeAborted
	// ErrTypeConnection is a transport-level failure (backend unreachable,
	// connection dropped mid-stream).
	ErrTypeConnection
	// ErrTypeUploadRejected is a backend-reported upload validation failure;
	// its message is shown to the user verbatim.
	ErrTypeUploadRejected
	// ErrTypeInvalidResponse is a response body that could not be decoded.
	ErrTypeInvalidResponse
)

// ClientError represents an error from the backend client.
type ClientError struct {
	Type       ErrorType
	StatusCode int // Set for ErrTypeRequestFailed
	Message    string
	Cause      error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrAborted is the sentinel for cancelled requests.
var ErrAborted = &ClientError{Type: ErrTypeAborted, Message: "request aborted"}

// ErrBackendDown is the sentinel for an unreachable backend.
var ErrBackendDown = &ClientError{Type: ErrTypeConnection, Message: "backend is not reachable"}

// IsAborted reports whether err is a deliberate cancellation, including a
// context.Canceled buried inside a wrapped transport error.
func IsAborted(err error) bool {
	if errors.Is(err, context.Canceled) {
		return true
	}
	var clientErr *ClientError
	return errors.As(err, &clientErr) && clientErr.Type == ErrTypeAborted
}

// IsRequestFailed reports whether err is a non-2xx HTTP response.
func IsRequestFailed(err error) bool {
	var clientErr *ClientError
	return errors.As(err, &clientErr) && clientErr.Type == ErrTypeRequestFailed
}

// IsUploadRejected reports whether err is a backend upload validation
// failure whose message should be shown verbatim.
func IsUploadRejected(err error) bool {
	var clientErr *ClientError
	return errors.As(err, &clientErr) && clientErr.Type == ErrTypeUploadRejected
}

// StatusCode returns the HTTP status carried by a request failure, or zero.
func StatusCode(err error) int {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.StatusCode
	}
	return 0
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the backend client.
type ClientConfig struct {
	// BaseURL is the backend base URL (default: http://127.0.0.1:8000)
	BaseURL string

	// Timeout for non-streaming requests (default: 30s)
	Timeout time.Duration

	// DefaultModel to request if a turn names none (empty lets the backend
	// pick its own default)
	DefaultModel string

	// SearchRate limits search submissions per second (default: 2)
	SearchRate float64
}

// DefaultClientConfig returns the default client configuration.
func DefaultClientConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:    "http://127.0.0.1:8000",
		Timeout:    30 * time.Second,
		SearchRate: 2,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the Warm AI backend.
//
// The Client is safe for concurrent use, though the application issues at
// most one chat stream at a time.
type Client struct {
	config       *ClientConfig
	httpClient   *http.Client
	streamClient *http.Client
	searchLimit  *rate.Limiter
}

// NewClient creates a backend client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultClientConfig())
}

// NewClientWithConfig creates a backend client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultClientConfig()
	}
	if config.BaseURL == "" {
		config.BaseURL = "http://127.0.0.1:8000"
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.SearchRate == 0 {
		config.SearchRate = 2
	}

	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		// Streaming requests have no fixed deadline; lifetime is bound to the
		// turn's context instead.
		streamClient: &http.Client{},
		searchLimit:  rate.NewLimiter(rate.Limit(config.SearchRate), 1),
	}
}

// GetConfig returns the client configuration.
func (c *Client) GetConfig() *ClientConfig {
	return c.config
}

// newRequest builds a request with the headers every backend call carries.
func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, body)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	return req, nil
}

// wrapTransportErr classifies a transport-level failure, distinguishing
// deliberate cancellation from real connection problems.
func wrapTransportErr(err error) error {
	if errors.Is(err, context.Canceled) {
		return ErrAborted
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &ClientError{Type: ErrTypeConnection, Message: "request timed out", Cause: err}
	}
	return &ClientError{Type: ErrTypeConnection, Message: "backend is not reachable", Cause: err}
}

// doJSON performs a request and decodes a JSON response into out.
func (c *Client) doJSON(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return wrapTransportErr(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return requestFailed(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}
	return nil
}

// requestFailed builds the error for a non-2xx response, preferring the
// backend's own detail message when one is present.
func requestFailed(resp *http.Response) error {
	message := "request failed: " + resp.Status
	var detail errorDetail
	if err := json.NewDecoder(resp.Body).Decode(&detail); err == nil && detail.Detail != "" {
		message = detail.Detail
	}
	return &ClientError{
		Type:       ErrTypeRequestFailed,
		StatusCode: resp.StatusCode,
		Message:    message,
	}
}

// =============================================================================
// HEALTH CHECK
// =============================================================================

// CheckHealth verifies that the backend is reachable and healthy.
func (c *Client) CheckHealth(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return ErrAborted
		}
		return ErrBackendDown
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return &ClientError{
			Type:       ErrTypeRequestFailed,
			StatusCode: resp.StatusCode,
			Message:    "unexpected status from backend: " + resp.Status,
		}
	}
	return nil
}

// =============================================================================
// STREAMING CHAT
// =============================================================================

// ChatStream performs one chat turn and surfaces each stream event to
// handler, synchronously and in arrival order.
//
// The endpoint and record framing are chosen by the request's mode: the
// file-search endpoint speaks blank-line event-stream framing, the legacy
// chat endpoint speaks line framing with a [DONE] terminator.
//
// Chat turns are not idempotent, so a failed request is never retried here;
// resubmission is the caller's decision. Cancelling ctx aborts the network
// read and returns ErrAborted.
func (c *Client) ChatStream(ctx context.Context, request ChatRequest, handler EventHandler) error {
	if request.Model == "" {
		request.Model = c.config.DefaultModel
	}

	path := "/api/v1/chat/message"
	framing := FramingLine
	var body any = request
	if request.Mode == ModeFileSearch {
		path = "/api/v1/file-search/chat"
		framing = FramingEventStream
		body = fileSearchChatRequest{
			SessionID: request.ConversationID,
			Message:   request.Message,
			Model:     request.Model,
		}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.streamClient.Do(req)
	if err != nil {
		return wrapTransportErr(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return requestFailed(resp)
	}

	reader := NewEventReader(resp.Body, framing)
	if err := reader.Process(ctx, handler); err != nil {
		if errors.Is(err, context.Canceled) {
			return ErrAborted
		}
		return &ClientError{Type: ErrTypeConnection, Message: "stream interrupted", Cause: err}
	}
	return nil
}

// =============================================================================
// ENTITY SEARCH
// =============================================================================

// SearchPeople runs a people search and returns ranked person cards.
func (c *Client) SearchPeople(ctx context.Context, query string, numResults int) (*PeopleSearchResponse, error) {
	var result PeopleSearchResponse
	if err := c.search(ctx, "/api/v1/search/people", query, numResults, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SearchCompanies runs a company search and returns ranked company cards.
func (c *Client) SearchCompanies(ctx context.Context, query string, numResults int) (*CompanySearchResponse, error) {
	var result CompanySearchResponse
	if err := c.search(ctx, "/api/v1/search/companies", query, numResults, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) search(ctx context.Context, path, query string, numResults int, out any) error {
	if numResults <= 0 {
		numResults = 5
	}
	// Terminals can deliver decomposed input; the backend matches on NFC.
	query = norm.NFC.String(query)

	if err := c.searchLimit.Wait(ctx); err != nil {
		return ErrAborted
	}

	payload, err := json.Marshal(SearchRequest{Query: query, NumResults: numResults})
	if err != nil {
		return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.doJSON(req, out)
}

// =============================================================================
// SESSION DIRECTORY
// =============================================================================

// ListSessions returns a page of past sessions.
func (c *Client) ListSessions(ctx context.Context, skip, limit int) ([]SessionSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	query := url.Values{}
	query.Set("skip", strconv.Itoa(skip))
	query.Set("limit", strconv.Itoa(limit))

	req, err := c.newRequest(ctx, http.MethodGet, "/api/v1/sessions?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var sessions []SessionSummary
	if err := c.doJSON(req, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// GetSession fetches a session's full message history.
func (c *Client) GetSession(ctx context.Context, id int) (*SessionDetail, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/v1/sessions/"+strconv.Itoa(id), nil)
	if err != nil {
		return nil, err
	}

	var detail SessionDetail
	if err := c.doJSON(req, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// RenameSession changes a session title and returns the updated summary.
func (c *Client) RenameSession(ctx context.Context, id int, title string) (*SessionSummary, error) {
	payload, err := json.Marshal(SessionUpdate{Title: title})
	if err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	req, err := c.newRequest(ctx, http.MethodPatch, "/api/v1/sessions/"+strconv.Itoa(id), bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var updated SessionSummary
	if err := c.doJSON(req, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteSession removes a session server-side.
func (c *Client) DeleteSession(ctx context.Context, id int) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/api/v1/sessions/"+strconv.Itoa(id), nil)
	if err != nil {
		return err
	}
	var result DeleteResult
	return c.doJSON(req, &result)
}

// =============================================================================
// FILE UPLOAD
// =============================================================================

// UploadFile sends a document for indexing and returns the file-search
// session created for it. A backend validation failure surfaces as an
// ErrTypeUploadRejected whose message is shown to the user verbatim.
func (c *Client) UploadFile(ctx context.Context, fileName string, content io.Reader) (*UploadResponse, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to build upload", Cause: err}
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to read file", Cause: err}
	}
	if err := writer.Close(); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to build upload", Cause: err}
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/v1/file-search/upload", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, wrapTransportErr(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := "upload failed: " + resp.Status
		var body errorDetail
		if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Detail != "" {
			detail = body.Detail
		}
		return nil, &ClientError{
			Type:       ErrTypeUploadRejected,
			StatusCode: resp.StatusCode,
			Message:    detail,
		}
	}

	var result UploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}
	if result.Status == "error" {
		return nil, &ClientError{
			Type:    ErrTypeUploadRejected,
			Message: fmt.Sprintf("indexing failed for %s", result.FileName),
		}
	}
	return &result, nil
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"golang.org/x/time/rate"

	"github.com/SKN-4rdPJT-6Team/Ready-To-Go/internal/catalog"
	"github.com/SKN-4rdPJT-6Team/Ready-To-Go/internal/model"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the backend gateway.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
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

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeUnreachable
	ErrTypeTimeout
	ErrTypeInvalidResponse
	ErrTypeStatus
)

// Sentinel errors for easy checking.
var (
	ErrUnreachable = &ClientError{Type: ErrTypeUnreachable, Message: "backend is unreachable"}
	ErrTimeout     = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
)

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeTimeout
	}
	return errors.Is(err, ErrTimeout)
}

// IsUnreachable checks if an error indicates the backend is down.
func IsUnreachable(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeUnreachable
	}
	return errors.Is(err, ErrUnreachable)
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// Config holds configuration options for the gateway client.
type Config struct {
	// BaseURL is the backend API base URL (default: http://127.0.0.1:8000/api)
	BaseURL string

	// Timeout bounds every request (default: 15s). A hung request fails
	// like a network error once the timeout elapses.
	Timeout time.Duration

	// WriteInterval is the minimum spacing between write requests
	// (default: 250ms). Guards against accidental duplicate bursts.
	WriteInterval time.Duration

	// Warnf receives soft-failure warnings. Defaults to stderr; the TUI
	// swaps in a silent logger so warnings never corrupt the display.
	Warnf func(format string, args ...any)
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:       "http://127.0.0.1:8000/api",
		Timeout:       15 * time.Second,
		WriteInterval: 250 * time.Millisecond,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the Ready To Go backend.
// It is safe for concurrent use.
type Client struct {
	config     *Config
	httpClient *http.Client
	writeGate  *rate.Limiter
	warnf      func(format string, args ...any)
}

// NewClient creates a gateway client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a gateway client with custom configuration.
func NewClientWithConfig(config *Config) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	if config.BaseURL == "" {
		config.BaseURL = "http://127.0.0.1:8000/api"
	}
	if config.Timeout == 0 {
		config.Timeout = 15 * time.Second
	}
	if config.WriteInterval == 0 {
		config.WriteInterval = 250 * time.Millisecond
	}

	warnf := config.Warnf
	if warnf == nil {
		warnf = func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
		}
	}

	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		writeGate:  rate.NewLimiter(rate.Every(config.WriteInterval), 1),
		warnf:      warnf,
	}
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// CheckRunning verifies that the backend is reachable.
func (c *Client) CheckRunning(ctx context.Context) error {
	var countries []string
	return c.getJSON(ctx, "/countries/", &countries)
}

// =============================================================================
// READ OPERATIONS (fail soft)
// =============================================================================

// GetCountries returns the available country keys, or the built-in
// default list when the backend cannot be reached.
func (c *Client) GetCountries(ctx context.Context) []string {
	var countries []string
	if err := c.getJSON(ctx, "/countries/", &countries); err != nil {
		c.warnf("failed to fetch countries, using defaults: %v", err)
		return catalog.DefaultCountries
	}
	return countries
}

// GetTopics returns the available topic keys, or the built-in default
// list when the backend cannot be reached.
func (c *Client) GetTopics(ctx context.Context) []string {
	var topics []string
	if err := c.getJSON(ctx, "/topics/", &topics); err != nil {
		c.warnf("failed to fetch topics, using defaults: %v", err)
		return catalog.DefaultTopics
	}
	return topics
}

// GetModels returns the models the backend can serve, or the built-in
// default list when the backend cannot be reached. The result is not
// eligibility-filtered; that is the caller's concern.
func (c *Client) GetModels(ctx context.Context) []model.Info {
	var resp modelsResponse
	if err := c.getJSON(ctx, "/chat/settings/models/", &resp); err != nil {
		c.warnf("failed to fetch models, using defaults: %v", err)
		return model.DefaultModels
	}
	return resp.Models
}

// GetExamples returns example questions for a country+topic, or an
// empty list when the backend cannot be reached.
func (c *Client) GetExamples(ctx context.Context, country, topic string) []string {
	path := "/chat/examples/?" + contextQuery(country, topic)
	var resp examplesResponse
	if err := c.getJSON(ctx, path, &resp); err != nil {
		c.warnf("failed to fetch example questions: %v", err)
		return []string{}
	}
	return resp.Examples
}

// GetSources returns document source URLs for a country+topic, or an
// empty list when the backend cannot be reached.
func (c *Client) GetSources(ctx context.Context, country, topic string) []string {
	path := "/chat/sources/?" + contextQuery(country, topic)
	var resp sourcesResponse
	if err := c.getJSON(ctx, path, &resp); err != nil {
		c.warnf("failed to fetch document sources: %v", err)
		return []string{}
	}
	return resp.Sources
}

// =============================================================================
// WRITE OPERATIONS (fail hard)
// =============================================================================

// CreateConversation registers a new conversation with the backend and
// returns its record. The caller owns fallback on failure.
func (c *Client) CreateConversation(ctx context.Context, sessionID, country, topic, modelID string) (*Conversation, error) {
	req := CreateConversationRequest{
		SessionID: sessionID,
		CountryID: country,
		TopicID:   topic,
		ModelID:   modelID,
	}

	var conv Conversation
	if err := c.postJSON(ctx, "/chat/conversation/", req, &conv); err != nil {
		return nil, err
	}
	return &conv, nil
}

// SendMessage submits a user message and returns the backend's answer
// payload. The caller owns fallback on failure.
func (c *Client) SendMessage(ctx context.Context, req SendMessageRequest) (*SendMessageResponse, error) {
	var resp SendMessageResponse
	if err := c.postJSON(ctx, "/chat/message/", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetHistory fetches the transcript of a backend conversation.
func (c *Client) GetHistory(ctx context.Context, conversationID int64) (*History, error) {
	var hist History
	path := fmt.Sprintf("/chat/history/%d/", conversationID)
	if err := c.getJSON(ctx, path, &hist); err != nil {
		return nil, err
	}
	if hist.ConversationID == 0 {
		hist.ConversationID = conversationID
	}
	return &hist, nil
}

// =============================================================================
// HTTP PLUMBING
// =============================================================================

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+path, nil)
	if err != nil {
		return &ClientError{Type: ErrTypeUnreachable, Message: "failed to create request", Cause: err}
	}
	return c.do(req, out)
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	if err := c.writeGate.Wait(ctx); err != nil {
		return &ClientError{Type: ErrTypeTimeout, Message: "request canceled before send", Cause: err}
	}

	body, err := json.Marshal(in)
	if err != nil {
		return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return &ClientError{Type: ErrTypeUnreachable, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

// do executes a request and decodes the JSON body into out. Any
// non-2xx status is a failure regardless of body content.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return ErrTimeout
		}
		return &ClientError{Type: ErrTypeUnreachable, Message: "backend is unreachable", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ClientError{
			Type:    ErrTypeStatus,
			Message: "unexpected status from backend: " + resp.Status,
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}
	return nil
}

func contextQuery(country, topic string) string {
	params := url.Values{}
	if country != "" {
		params.Set("country", country)
	}
	if topic != "" {
		params.Set("topic", topic)
	}
	return params.Encode()
}

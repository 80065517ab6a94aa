// Package restapi talks to the classification/profile REST backend.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	model "refashion/internal/models"
	"refashion/internal/refashionerrors"
	"refashion/internal/storage"
)

// DefaultBaseURL is used when no base URL is configured
const DefaultBaseURL = "http://localhost:8000/api"

// TokenSource supplies the bearer token forwarded on every request
type TokenSource interface {
	Token(ctx context.Context) string
}

// StatusError is returned for non-2xx responses
type StatusError struct {
	Status int
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("restapi: status %d", e.Status)
	}
	return fmt.Sprintf("restapi: status %d: %s", e.Status, e.Detail)
}

// Unwrap lets callers match 401 responses with refashionerrors.ErrUnauthorized
func (e *StatusError) Unwrap() error {
	if e.Status == http.StatusUnauthorized {
		return refashionerrors.ErrUnauthorized
	}
	return nil
}

// Client is the REST backend adapter
type Client struct {
	baseURL        string
	http           *http.Client
	tokens         TokenSource
	onUnauthorized func(ctx context.Context)
}

// Option customizes a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the timeout of the underlying http.Client
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http = &http.Client{Timeout: d} }
}

// WithTokenSource sets where the bearer token is read from
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithUnauthorizedHandler registers the callback run when the backend answers 401
func WithUnauthorizedHandler(fn func(ctx context.Context)) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// New creates a Client for baseURL
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Login posts credentials to /login and parses the token/user pair
func (c *Client) Login(ctx context.Context, creds model.Credentials) (LoginResult, error) {
	body, err := c.doJSON(ctx, http.MethodPost, "/login", creds)
	if err != nil {
		return LoginResult{}, err
	}
	return ParseLogin(body)
}

// Profile fetches the current user's profile
func (c *Client) Profile(ctx context.Context) (model.User, error) {
	body, err := c.doJSON(ctx, http.MethodGet, "/profile", nil)
	if err != nil {
		return model.User{}, err
	}
	return parseUser(body)
}

// UpdateProfile sends the edited profile and returns the stored one
func (c *Client) UpdateProfile(ctx context.Context, user model.User) (model.User, error) {
	body, err := c.doJSON(ctx, http.MethodPut, "/update_profile", user)
	if err != nil {
		return model.User{}, err
	}
	return parseUser(body)
}

// Detect uploads an image as multipart field "file" and returns the detections
func (c *Client) Detect(ctx context.Context, fileName string, image io.Reader) ([]model.Detection, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		return nil, fmt.Errorf("restapi: build upload: %w", err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return nil, fmt.Errorf("restapi: read upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("restapi: build upload: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, "/detect/", mw.FormDataContentType(), &buf)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Detections *[]model.Detection `json:"detections"`
	}
	if err := json.Unmarshal(body, &resp); err != nil || resp.Detections == nil {
		return nil, fmt.Errorf("restapi: detect: %w", refashionerrors.ErrUnrecognizedResponse)
	}
	return *resp.Detections, nil
}

// GetItems fetches backend marketplace items, accepting a bare array or {"items": [...]}
func (c *Client) GetItems(ctx context.Context) ([]model.Listing, error) {
	body, err := c.doJSON(ctx, http.MethodGet, "/get_items", nil)
	if err != nil {
		return nil, err
	}
	return parseItems(body)
}

func (c *Client) doJSON(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("restapi: encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(raw)
	}
	return c.do(ctx, method, path, "application/json", reader)
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("restapi: build %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	if c.tokens != nil {
		if token := c.tokens.Token(ctx); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("restapi: %s %s: %w: %v", method, path, refashionerrors.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("restapi: read %s %s: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
			c.onUnauthorized(ctx)
		}
		return nil, &StatusError{Status: resp.StatusCode, Detail: detailOf(raw)}
	}
	return raw, nil
}

// detailOf extracts FastAPI's {"detail": "..."} message, falling back to the raw body
func detailOf(raw []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && len(payload.Detail) > 0 {
		var text string
		if json.Unmarshal(payload.Detail, &text) == nil {
			return text
		}
		return string(payload.Detail)
	}
	return strings.TrimSpace(string(raw))
}

// storeTokenSource reads the persisted auth token on every request
type storeTokenSource struct {
	store storage.KVStore
}

// StoreTokenSource returns a TokenSource backed by the persisted auth token key
func StoreTokenSource(store storage.KVStore) TokenSource {
	return storeTokenSource{store: store}
}

func (s storeTokenSource) Token(ctx context.Context) string {
	raw, err := s.store.Get(ctx, storage.GlobalNamespace, storage.KeyToken)
	if err != nil {
		return ""
	}
	var token string
	if json.Unmarshal(raw, &token) == nil {
		return token
	}
	return ""
}

// IsUnauthorized reports whether err came from a 401 response
func IsUnauthorized(err error) bool {
	return errors.Is(err, refashionerrors.ErrUnauthorized)
}

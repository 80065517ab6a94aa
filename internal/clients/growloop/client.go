// Package growloop talks to the secondary (bags, items, recyclers) backend.
package growloop

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	model "refashion/internal/models"
	"refashion/internal/refashionerrors"
	"refashion/internal/storage"
)

// DefaultBaseURL is the fixed secondary backend location
const DefaultBaseURL = "http://localhost:8080/api"

// DefaultFirebaseUID is sent when no mock identifier has been stored
const DefaultFirebaseUID = "guest-user-123"

// APIError is returned when the backend answers with success=false
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("growloop: status %d: %s", e.Status, e.Message)
}

// Unwrap lets callers match 401 responses with refashionerrors.ErrUnauthorized
func (e *APIError) Unwrap() error {
	if e.Status == http.StatusUnauthorized {
		return refashionerrors.ErrUnauthorized
	}
	return nil
}

// UIDSource supplies the Firebase-UID header value
type UIDSource interface {
	FirebaseUID(ctx context.Context) string
}

// Client is the secondary backend adapter
type Client struct {
	baseURL string
	http    *http.Client
	uids    UIDSource
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

// WithUIDSource sets where the Firebase-UID header is read from
func WithUIDSource(src UIDSource) Option {
	return func(c *Client) { c.uids = src }
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

// AuthResult is the token/user pair returned by login and signup
type AuthResult struct {
	Token string
	User  model.User
}

type authPayload struct {
	Token string     `json:"token"`
	User  RemoteUser `json:"user"`
}

// Login authenticates against /auth/login
func (c *Client) Login(ctx context.Context, creds model.Credentials) (AuthResult, error) {
	var payload authPayload
	if err := c.call(ctx, http.MethodPost, "/auth/login", nil, creds, &payload); err != nil {
		return AuthResult{}, err
	}
	return authResult(payload)
}

// Signup registers through /auth/signup
func (c *Client) Signup(ctx context.Context, req model.SignupRequest) (AuthResult, error) {
	var payload authPayload
	if err := c.call(ctx, http.MethodPost, "/auth/signup", nil, req, &payload); err != nil {
		return AuthResult{}, err
	}
	return authResult(payload)
}

func authResult(p authPayload) (AuthResult, error) {
	if p.Token == "" || (p.User.UserID == 0 && p.User.Email == "") {
		return AuthResult{}, fmt.Errorf("growloop: auth: %w - missing token or user", refashionerrors.ErrUnrecognizedResponse)
	}
	return AuthResult{Token: p.Token, User: p.User.ToUser()}, nil
}

// Profile fetches /auth/profile for a bearer token
func (c *Client) Profile(ctx context.Context, token string) (model.User, error) {
	var user RemoteUser
	headers := map[string]string{"Authorization": "Bearer " + token}
	if err := c.call(ctx, http.MethodGet, "/auth/profile", headers, nil, &user); err != nil {
		return model.User{}, err
	}
	return user.ToUser(), nil
}

// UpdateProfile sends PUT /users/profile
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (model.User, error) {
	var user RemoteUser
	if err := c.call(ctx, http.MethodPut, "/users/profile", nil, update, &user); err != nil {
		return model.User{}, err
	}
	return user.ToUser(), nil
}

// UserExists asks /users/exists whether the Firebase UID is registered
func (c *Client) UserExists(ctx context.Context) (bool, error) {
	var exists bool
	if err := c.call(ctx, http.MethodGet, "/users/exists", nil, nil, &exists); err != nil {
		return false, err
	}
	return exists, nil
}

// CreateBag sends POST /bags/create
func (c *Client) CreateBag(ctx context.Context, req CreateBagRequest) (Bag, error) {
	var bag Bag
	err := c.call(ctx, http.MethodPost, "/bags/create", nil, req, &bag)
	return bag, err
}

// MyBags lists the caller's bags
func (c *Client) MyBags(ctx context.Context) ([]Bag, error) {
	var bags []Bag
	err := c.call(ctx, http.MethodGet, "/bags/my-bags", nil, nil, &bags)
	return bags, err
}

// BagsByPurpose lists the caller's bags for RESALE or DONATION
func (c *Client) BagsByPurpose(ctx context.Context, purpose Purpose) ([]Bag, error) {
	var bags []Bag
	err := c.call(ctx, http.MethodGet, "/bags/my-bags/"+url.PathEscape(string(purpose)), nil, nil, &bags)
	return bags, err
}

// BagByID fetches one bag
func (c *Client) BagByID(ctx context.Context, bagID int64) (Bag, error) {
	var bag Bag
	err := c.call(ctx, http.MethodGet, "/bags/"+strconv.FormatInt(bagID, 10), nil, nil, &bag)
	return bag, err
}

// SchedulePickup requests collection of a bag
func (c *Client) SchedulePickup(ctx context.Context, bagID int64) (Bag, error) {
	var bag Bag
	err := c.call(ctx, http.MethodPost, "/bags/"+strconv.FormatInt(bagID, 10)+"/schedule-pickup", nil, nil, &bag)
	return bag, err
}

// AddItemToBag sends POST /items/bags/{bagId}
func (c *Client) AddItemToBag(ctx context.Context, bagID int64, item ItemRequest) (Item, error) {
	var out Item
	err := c.call(ctx, http.MethodPost, "/items/bags/"+strconv.FormatInt(bagID, 10), nil, item, &out)
	return out, err
}

// AddForRecycling sends POST /items/recycle
func (c *Client) AddForRecycling(ctx context.Context, item ItemRequest) (Item, error) {
	var out Item
	err := c.call(ctx, http.MethodPost, "/items/recycle", nil, item, &out)
	return out, err
}

// BagItems lists the items inside a bag
func (c *Client) BagItems(ctx context.Context, bagID int64) ([]Item, error) {
	var items []Item
	err := c.call(ctx, http.MethodGet, "/items/bags/"+strconv.FormatInt(bagID, 10), nil, nil, &items)
	return items, err
}

// MyItems lists every item the caller owns
func (c *Client) MyItems(ctx context.Context) ([]Item, error) {
	var items []Item
	err := c.call(ctx, http.MethodGet, "/items/my-items", nil, nil, &items)
	return items, err
}

// MyRecycling lists the caller's recycling items
func (c *Client) MyRecycling(ctx context.Context) ([]Item, error) {
	var items []Item
	err := c.call(ctx, http.MethodGet, "/items/my-recycling", nil, nil, &items)
	return items, err
}

// MarketplaceItems lists items offered on the backend marketplace
func (c *Client) MarketplaceItems(ctx context.Context) ([]Item, error) {
	var items []Item
	err := c.call(ctx, http.MethodGet, "/items/marketplace", nil, nil, &items)
	return items, err
}

// AllRecyclers lists every recycler
func (c *Client) AllRecyclers(ctx context.Context) ([]model.Recycler, error) {
	var recyclers []model.Recycler
	err := c.call(ctx, http.MethodGet, "/recyclers/all", nil, nil, &recyclers)
	return recyclers, err
}

// NearbyRecyclers lists recyclers within radiusKm of a point; radiusKm <= 0 uses the backend default
func (c *Client) NearbyRecyclers(ctx context.Context, latitude, longitude, radiusKm float64) ([]model.Recycler, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(latitude, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(longitude, 'f', -1, 64))
	if radiusKm > 0 {
		q.Set("radiusKm", strconv.FormatFloat(radiusKm, 'f', -1, 64))
	}
	var recyclers []model.Recycler
	err := c.call(ctx, http.MethodGet, "/recyclers/nearby?"+q.Encode(), nil, nil, &recyclers)
	return recyclers, err
}

// VerifiedRecyclers lists verified recyclers only
func (c *Client) VerifiedRecyclers(ctx context.Context) ([]model.Recycler, error) {
	var recyclers []model.Recycler
	err := c.call(ctx, http.MethodGet, "/recyclers/verified", nil, nil, &recyclers)
	return recyclers, err
}

// call performs a request and decodes the envelope's data into out
func (c *Client) call(ctx context.Context, method, path string, headers map[string]string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("growloop: encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("growloop: build %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Firebase-UID", c.firebaseUID(ctx))
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("growloop: %s %s: %w: %v", method, path, refashionerrors.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("growloop: read %s %s: %w", method, path, err)
	}

	env, err := parseEnvelope(raw)
	if err != nil {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return &APIError{Status: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
		}
		return fmt.Errorf("growloop: %s %s: %w", method, path, err)
	}
	if !env.Success || resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: env.Message}
	}

	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("growloop: %s %s: %w - %v", method, path, refashionerrors.ErrUnrecognizedResponse, err)
	}
	return nil
}

func (c *Client) firebaseUID(ctx context.Context) string {
	if c.uids != nil {
		if uid := c.uids.FirebaseUID(ctx); uid != "" {
			return uid
		}
	}
	return DefaultFirebaseUID
}

// storeUIDSource reads the mock identifier persisted on the device
type storeUIDSource struct {
	store storage.KVStore
}

// StoreUIDSource returns a UIDSource backed by the persisted mock_firebase_uid key
func StoreUIDSource(store storage.KVStore) UIDSource {
	return storeUIDSource{store: store}
}

func (s storeUIDSource) FirebaseUID(ctx context.Context) string {
	raw, err := s.store.Get(ctx, storage.GlobalNamespace, storage.KeyMockFirebaseUID)
	if err != nil {
		return ""
	}
	var uid string
	if json.Unmarshal(raw, &uid) == nil {
		return uid
	}
	return ""
}

// SetMockFirebaseUID persists the identifier sent in the Firebase-UID header
func SetMockFirebaseUID(ctx context.Context, store storage.KVStore, uid string) error {
	return storage.SaveJSON(ctx, store, storage.GlobalNamespace, storage.KeyMockFirebaseUID, uid)
}

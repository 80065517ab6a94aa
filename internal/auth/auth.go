// Package auth holds the signed-in identity and its persisted token.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"refashion/internal/clients/growloop"
	"refashion/internal/clients/restapi"
	"refashion/internal/events"
	model "refashion/internal/models"
	"refashion/internal/refashionerrors"
	"refashion/internal/storage"
	"refashion/utils"
)

//go:generate mockgen -source=auth.go -destination=mock_auth.go -package=auth

// Demo credentials accepted without contacting any backend
const (
	DemoEmail    = "test@gmail.com"
	DemoPassword = "test"
	DemoUserID   = "test-user-123"
	DemoToken    = "test-token-123"
)

const (
	msgCredentialsRequired = "email and password are required"
	msgInvalidEmail        = "invalid email address"
	msgSignupRequired      = "name, email and password are required"
	msgSignupFailed        = "unable to sign up, please try again"
	msgSessionFailed       = "unable to start a session, please try again"
)

// GuestUser is the identity adopted by ContinueAsGuest
func GuestUser() model.User {
	return model.User{ID: "guest", Email: "guest@refashion.app", Name: "Guest User", Guest: true}
}

// Backend is the remote used for login and profile refresh
type Backend interface {
	Login(ctx context.Context, creds model.Credentials) (restapi.LoginResult, error)
	Profile(ctx context.Context) (model.User, error)
}

// Registrar creates remote accounts
type Registrar interface {
	Signup(ctx context.Context, req model.SignupRequest) (growloop.AuthResult, error)
}

// IdentityListener is called with the new storage namespace whenever the identity's namespace changes
type IdentityListener func(ctx context.Context, namespace string)

// LoginResult reports the outcome of a login or signup attempt. User is the identity the
// attempt adopted, captured at the moment it was adopted.
type LoginResult struct {
	Success bool        `json:"success"`
	Error   string      `json:"error,omitempty"`
	User    *model.User `json:"user,omitempty"`
}

// Container is the auth state container
type Container struct {
	mu        sync.Mutex
	store     storage.KVStore
	backend   Backend
	registrar Registrar
	minter    *TokenMinter
	notifier  events.ChangeNotifier
	now       func() time.Time
	token     string
	user      *model.User
	listeners []IdentityListener
}

// Option customizes a Container
type Option func(*Container)

// WithBackend sets the remote used by Login and RefreshUser
func WithBackend(b Backend) Option {
	return func(c *Container) { c.backend = b }
}

// WithRegistrar sets the remote used by Signup
func WithRegistrar(r Registrar) Option {
	return func(c *Container) { c.registrar = r }
}

// WithTokenMinter sets the signer for offline demo tokens
func WithTokenMinter(m *TokenMinter) Option {
	return func(c *Container) { c.minter = m }
}

// WithNotifier sets where persisted writes are announced
func WithNotifier(n events.ChangeNotifier) Option {
	return func(c *Container) { c.notifier = n }
}

// WithClock replaces the wall clock used for fallback ids and token stamps
func WithClock(now func() time.Time) Option {
	return func(c *Container) { c.now = now }
}

// NewContainer creates an anonymous auth container
func NewContainer(store storage.KVStore, opts ...Option) *Container {
	c := &Container{
		store:    store,
		minter:   NewTokenMinter(""),
		notifier: events.Discard,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnIdentityChange registers fn to run after every namespace change
func (c *Container) OnIdentityChange(fn IdentityListener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// User returns a copy of the current identity, or nil when anonymous
func (c *Container) User() *model.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneUser(c.user)
}

// Token returns the current bearer token
func (c *Container) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// IsAuthenticated reports whether an identity, guest included, is present
func (c *Container) IsAuthenticated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.user != nil
}

// Namespace returns the storage namespace of the current identity
func (c *Container) Namespace() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return storage.Namespace(c.user)
}

// Login authenticates creds. The demo credentials short-circuit, a reachable backend is trusted,
// and any backend failure falls back to a locally minted demo identity.
func (c *Container) Login(ctx context.Context, creds model.Credentials) LoginResult {
	creds.Email = strings.TrimSpace(creds.Email)
	if creds.Email == "" || creds.Password == "" {
		return LoginResult{Error: msgCredentialsRequired}
	}

	if creds.Email == DemoEmail && creds.Password == DemoPassword {
		adopted := c.adopt(ctx, DemoToken, &model.User{ID: DemoUserID, Email: DemoEmail, Name: "Test User"})
		utils.Info("auth: demo login", map[string]any{"user_id": DemoUserID})
		return LoginResult{Success: true, User: adopted}
	}

	if c.backend != nil {
		res, err := c.backend.Login(ctx, creds)
		if err == nil {
			adopted := c.adopt(ctx, res.Token, &res.User)
			utils.Info("auth: login succeeded", map[string]any{
				"user_id": res.User.ID,
				"shape":   string(res.Shape),
			})
			return LoginResult{Success: true, User: adopted}
		}
		utils.Warn("auth: backend login failed, using demo identity", map[string]any{
			"email": creds.Email,
			"error": err.Error(),
		})
	}

	return c.loginOffline(ctx, creds.Email)
}

func (c *Container) loginOffline(ctx context.Context, email string) LoginResult {
	local, _, found := strings.Cut(email, "@")
	if !found || local == "" {
		return LoginResult{Error: msgInvalidEmail}
	}

	now := c.now()
	user := model.User{ID: fmt.Sprintf("user-%d", now.UnixMilli()), Email: email, Name: local}
	token, err := c.minter.Mint(user, now)
	if err != nil {
		utils.Error("auth: could not mint demo token", map[string]any{"error": err.Error()})
		return LoginResult{Error: msgSessionFailed}
	}

	adopted := c.adopt(ctx, token, &user)
	utils.Info("auth: offline login", map[string]any{"user_id": user.ID})
	return LoginResult{Success: true, User: adopted}
}

// Signup registers a new account on the secondary backend and adopts it
func (c *Container) Signup(ctx context.Context, req model.SignupRequest) LoginResult {
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return LoginResult{Error: msgSignupRequired}
	}
	if c.registrar == nil {
		return LoginResult{Error: msgSignupFailed}
	}

	res, err := c.registrar.Signup(ctx, req)
	if err != nil {
		utils.Warn("auth: signup failed", map[string]any{"email": req.Email, "error": err.Error()})
		var apiErr *growloop.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			return LoginResult{Error: apiErr.Message}
		}
		return LoginResult{Error: msgSignupFailed}
	}

	adopted := c.adopt(ctx, res.Token, &res.User)
	utils.Info("auth: signup succeeded", map[string]any{"user_id": res.User.ID})
	return LoginResult{Success: true, User: adopted}
}

// ContinueAsGuest adopts the fixed guest identity without a token and returns it
func (c *Container) ContinueAsGuest(ctx context.Context) *model.User {
	guest := GuestUser()
	return c.adopt(ctx, "", &guest)
}

// Logout clears the identity and its persisted keys
func (c *Container) Logout(ctx context.Context) {
	c.adopt(ctx, "", nil)
	utils.Info("auth: logged out", nil)
}

// Unauthorized clears credentials after the backend rejected the token
func (c *Container) Unauthorized(ctx context.Context) {
	if c.Token() == "" && !c.IsAuthenticated() {
		return
	}
	utils.Warn("auth: backend rejected token, clearing credentials", nil)
	c.adopt(ctx, "", nil)
}

// RefreshUser reloads the profile from the backend. It returns nil without error when there is
// no token or the backend call fails; the state is left unchanged in both cases.
func (c *Container) RefreshUser(ctx context.Context) (*model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	token := c.Token()
	if token == "" || c.backend == nil {
		return nil, nil
	}

	user, err := c.backend.Profile(ctx)
	if err != nil {
		utils.Warn("auth: profile refresh failed", map[string]any{"error": err.Error()})
		return nil, nil
	}

	c.adopt(ctx, token, &user)
	return cloneUser(&user), nil
}

// UpdateUser replaces the local identity and keeps the current token
func (c *Container) UpdateUser(ctx context.Context, user model.User) error {
	c.mu.Lock()
	token := c.token
	authenticated := c.user != nil
	c.mu.Unlock()

	if !authenticated {
		return fmt.Errorf("auth: update user: %w", refashionerrors.ErrNotAuthenticated)
	}
	c.adopt(ctx, token, &user)
	return nil
}

// Resync re-reads the persisted token and user, e.g. after another session changed them
func (c *Container) Resync(ctx context.Context) error {
	var token string
	tokenErr := storage.LoadJSON(ctx, c.store, storage.GlobalNamespace, storage.KeyToken, &token, "")
	var user *model.User
	userErr := storage.LoadJSON(ctx, c.store, storage.GlobalNamespace, storage.KeyUser, &user, nil)
	if err := errors.Join(tokenErr, userErr); err != nil {
		return fmt.Errorf("auth: resync: %w", err)
	}

	c.mu.Lock()
	before := storage.Namespace(c.user)
	c.token, c.user = token, user
	after := storage.Namespace(c.user)
	listeners := append([]IdentityListener(nil), c.listeners...)
	c.mu.Unlock()

	if before != after {
		c.fire(ctx, listeners, after)
	}
	return nil
}

// adopt replaces token and user, persists both keys, announces the write and
// runs the identity listeners when the namespace moved. It returns a copy of the adopted user.
func (c *Container) adopt(ctx context.Context, token string, user *model.User) *model.User {
	c.mu.Lock()
	before := storage.Namespace(c.user)
	c.token, c.user = token, cloneUser(user)
	c.persistLocked(ctx)
	after := storage.Namespace(c.user)
	adopted := cloneUser(c.user)
	listeners := append([]IdentityListener(nil), c.listeners...)
	c.mu.Unlock()

	if before != after {
		c.fire(ctx, listeners, after)
	}
	return adopted
}

func (c *Container) fire(ctx context.Context, listeners []IdentityListener, namespace string) {
	for _, fn := range listeners {
		fn(ctx, namespace)
	}
}

// persistLocked writes or removes both auth keys; failures are logged and the in-memory state kept
func (c *Container) persistLocked(ctx context.Context) {
	var errs []error
	if c.token == "" {
		errs = append(errs, c.store.Remove(ctx, storage.GlobalNamespace, storage.KeyToken))
	} else {
		errs = append(errs, storage.SaveJSON(ctx, c.store, storage.GlobalNamespace, storage.KeyToken, c.token))
	}
	if c.user == nil {
		errs = append(errs, c.store.Remove(ctx, storage.GlobalNamespace, storage.KeyUser))
	} else {
		errs = append(errs, storage.SaveJSON(ctx, c.store, storage.GlobalNamespace, storage.KeyUser, c.user))
	}

	if err := errors.Join(errs...); err != nil {
		utils.Error("auth: failed to persist credentials", map[string]any{"error": err.Error()})
		return
	}
	c.notifier.Notify(ctx, storage.GlobalNamespace, storage.KeyUser)
}

func cloneUser(u *model.User) *model.User {
	if u == nil {
		return nil
	}
	out := *u
	if u.Points != nil {
		points := *u.Points
		out.Points = &points
	}
	return &out
}

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"refashion/internal/clients/growloop"
	"refashion/internal/clients/restapi"
	"refashion/internal/events"
	model "refashion/internal/models"
	"refashion/internal/refashionerrors"
	"refashion/internal/storage"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

// persisted reads both auth keys straight from the store
func persisted(t *testing.T, store storage.KVStore) (string, *model.User) {
	t.Helper()
	ctx := context.Background()
	var token string
	require.NoError(t, storage.LoadJSON(ctx, store, storage.GlobalNamespace, storage.KeyToken, &token, ""))
	var user *model.User
	require.NoError(t, storage.LoadJSON(ctx, store, storage.GlobalNamespace, storage.KeyUser, &user, nil))
	return token, user
}

func TestContainer_Login_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		creds model.Credentials
	}{
		{name: "empty", creds: model.Credentials{}},
		{name: "no_password", creds: model.Credentials{Email: "a@b.c"}},
		{name: "blank_email", creds: model.Credentials{Email: "   ", Password: "pw"}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			store := storage.NewMemoryStore()
			c := NewContainer(store)

			res := c.Login(context.Background(), tc.creds)
			require.False(t, res.Success)
			require.Equal(t, "email and password are required", res.Error)
			require.Nil(t, c.User())

			token, user := persisted(t, store)
			require.Empty(t, token)
			require.Nil(t, user)
		})
	}
}

func TestContainer_Login_DemoCredentialsSkipBackend(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	backend := NewMockBackend(ctrl)
	backend.EXPECT().Login(gomock.Any(), gomock.Any()).Times(0)

	store := storage.NewMemoryStore()
	c := NewContainer(store, WithBackend(backend))

	res := c.Login(context.Background(), model.Credentials{Email: DemoEmail, Password: DemoPassword})
	require.True(t, res.Success)
	require.Equal(t, &model.User{ID: DemoUserID, Email: DemoEmail, Name: "Test User"}, res.User)
	require.Equal(t, DemoToken, c.Token())
	require.Equal(t, &model.User{ID: DemoUserID, Email: DemoEmail, Name: "Test User"}, c.User())
	require.Equal(t, DemoUserID, c.Namespace())

	token, user := persisted(t, store)
	require.Equal(t, DemoToken, token)
	require.Equal(t, DemoUserID, user.ID)
}

func TestContainer_Login_Backend(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	backend := NewMockBackend(ctrl)

	creds := model.Credentials{Email: "ann@example.com", Password: "pw"}
	backend.EXPECT().Login(gomock.Any(), creds).Return(restapi.LoginResult{
		Shape: restapi.ShapeAccessToken,
		Token: "remote-token",
		User:  model.User{ID: "42", Email: "ann@example.com", Name: "Ann"},
	}, nil)

	store := storage.NewMemoryStore()
	c := NewContainer(store, WithBackend(backend))

	res := c.Login(context.Background(), creds)
	require.True(t, res.Success)
	require.Equal(t, "42", res.User.ID)
	require.Equal(t, "remote-token", c.Token())
	require.Equal(t, "42", c.Namespace())
}

func TestContainer_Login_BackendFailureFallsBack(t *testing.T) {
	t.Parallel()

	failures := []struct {
		name string
		err  error
	}{
		{name: "unreachable", err: refashionerrors.ErrRemoteUnavailable},
		{name: "status", err: &restapi.StatusError{Status: http.StatusInternalServerError}},
		{name: "unrecognized", err: refashionerrors.ErrUnrecognizedResponse},
	}

	for _, tc := range failures {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			backend := NewMockBackend(ctrl)
			backend.EXPECT().Login(gomock.Any(), gomock.Any()).Return(restapi.LoginResult{}, tc.err)

			now := time.Now()
			minter := NewTokenMinter("s3cret")
			c := NewContainer(storage.NewMemoryStore(), WithBackend(backend), WithTokenMinter(minter),
				WithClock(func() time.Time { return now }))

			res := c.Login(context.Background(), model.Credentials{Email: "jane.doe@example.com", Password: "x"})
			require.True(t, res.Success)
			require.Equal(t, c.User(), res.User)

			user := c.User()
			require.NotNil(t, user)
			require.Equal(t, fmt.Sprintf("user-%d", now.UnixMilli()), user.ID)
			require.Equal(t, "jane.doe", user.Name)
			require.Equal(t, "jane.doe@example.com", user.Email)
			require.False(t, user.Guest)

			claims, err := minter.Verify(c.Token())
			require.NoError(t, err)
			require.Equal(t, user.ID, claims["sub"])
			require.Equal(t, user.Email, claims["email"])
		})
	}
}

func TestContainer_Login_FallbackRejectsMalformedEmail(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	backend := NewMockBackend(ctrl)
	backend.EXPECT().Login(gomock.Any(), gomock.Any()).Return(restapi.LoginResult{}, refashionerrors.ErrRemoteUnavailable)

	c := NewContainer(storage.NewMemoryStore(), WithBackend(backend))

	res := c.Login(context.Background(), model.Credentials{Email: "not-an-email", Password: "x"})
	require.False(t, res.Success)
	require.Equal(t, "invalid email address", res.Error)
	require.Nil(t, c.User())
}

func TestContainer_Signup(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		registrar := NewMockRegistrar(ctrl)
		req := model.SignupRequest{Name: "Ann", Email: "ann@example.com", Password: "pw"}
		registrar.EXPECT().Signup(gomock.Any(), req).Return(growloop.AuthResult{
			Token: "token-9",
			User:  model.User{ID: "9", Email: "ann@example.com", Name: "Ann"},
		}, nil)

		c := NewContainer(storage.NewMemoryStore(), WithRegistrar(registrar))
		res := c.Signup(context.Background(), req)
		require.True(t, res.Success)
		require.Equal(t, "Ann", res.User.Name)
		require.Equal(t, "token-9", c.Token())
		require.Equal(t, "9", c.Namespace())
	})

	t.Run("backend_message", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		registrar := NewMockRegistrar(ctrl)
		registrar.EXPECT().Signup(gomock.Any(), gomock.Any()).
			Return(growloop.AuthResult{}, &growloop.APIError{Status: http.StatusConflict, Message: "Email already registered"})

		c := NewContainer(storage.NewMemoryStore(), WithRegistrar(registrar))
		res := c.Signup(context.Background(), model.SignupRequest{Name: "Ann", Email: "ann@example.com", Password: "pw"})
		require.False(t, res.Success)
		require.Equal(t, "Email already registered", res.Error)
		require.Nil(t, c.User())
	})

	t.Run("missing_fields", func(t *testing.T) {
		t.Parallel()
		c := NewContainer(storage.NewMemoryStore())
		res := c.Signup(context.Background(), model.SignupRequest{Email: "ann@example.com"})
		require.False(t, res.Success)
		require.Equal(t, "name, email and password are required", res.Error)
	})
}

func TestContainer_GuestAndLogout(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := storage.NewMemoryStore()
	c := NewContainer(store)

	c.ContinueAsGuest(ctx)
	guest := GuestUser()
	require.Equal(t, &guest, c.User())
	require.Empty(t, c.Token())
	require.True(t, c.IsAuthenticated())
	require.Equal(t, storage.GuestNamespace, c.Namespace())

	c.Logout(ctx)
	require.Nil(t, c.User())
	require.False(t, c.IsAuthenticated())

	_, err := store.Get(ctx, storage.GlobalNamespace, storage.KeyUser)
	require.ErrorIs(t, err, refashionerrors.ErrKeyNotFound)
	_, err = store.Get(ctx, storage.GlobalNamespace, storage.KeyToken)
	require.ErrorIs(t, err, refashionerrors.ErrKeyNotFound)
}

func TestContainer_RefreshUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("no_token", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		backend := NewMockBackend(ctrl)
		backend.EXPECT().Profile(gomock.Any()).Times(0)

		c := NewContainer(storage.NewMemoryStore(), WithBackend(backend))
		c.ContinueAsGuest(ctx)

		user, err := c.RefreshUser(ctx)
		require.NoError(t, err)
		require.Nil(t, user)
	})

	t.Run("failure_keeps_state", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		backend := NewMockBackend(ctrl)
		backend.EXPECT().Profile(gomock.Any()).Return(model.User{}, refashionerrors.ErrRemoteUnavailable)

		c := NewContainer(storage.NewMemoryStore(), WithBackend(backend))
		c.Login(ctx, model.Credentials{Email: DemoEmail, Password: DemoPassword})

		user, err := c.RefreshUser(ctx)
		require.NoError(t, err)
		require.Nil(t, user)
		require.Equal(t, DemoUserID, c.User().ID)
	})

	t.Run("success_overwrites_user", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		backend := NewMockBackend(ctrl)
		points := 40
		backend.EXPECT().Profile(gomock.Any()).Return(model.User{ID: DemoUserID, Email: DemoEmail, Name: "Renamed", Points: &points}, nil)

		store := storage.NewMemoryStore()
		c := NewContainer(store, WithBackend(backend))
		c.Login(ctx, model.Credentials{Email: DemoEmail, Password: DemoPassword})

		user, err := c.RefreshUser(ctx)
		require.NoError(t, err)
		require.Equal(t, "Renamed", user.Name)
		require.Equal(t, DemoToken, c.Token())

		_, stored := persisted(t, store)
		require.Equal(t, "Renamed", stored.Name)
		require.Equal(t, 40, *stored.Points)
	})
}

func TestContainer_UpdateUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := NewContainer(storage.NewMemoryStore())

	err := c.UpdateUser(ctx, model.User{ID: "x"})
	require.ErrorIs(t, err, refashionerrors.ErrNotAuthenticated)

	c.Login(ctx, model.Credentials{Email: DemoEmail, Password: DemoPassword})
	require.NoError(t, c.UpdateUser(ctx, model.User{ID: DemoUserID, Email: DemoEmail, Name: "New Name"}))
	require.Equal(t, "New Name", c.User().Name)
	require.Equal(t, DemoToken, c.Token())
}

func TestContainer_Unauthorized(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := storage.NewMemoryStore()
	c := NewContainer(store)

	c.Login(ctx, model.Credentials{Email: DemoEmail, Password: DemoPassword})
	c.Unauthorized(ctx)

	require.Nil(t, c.User())
	require.Empty(t, c.Token())
	token, user := persisted(t, store)
	require.Empty(t, token)
	require.Nil(t, user)
}

func TestContainer_IdentityListeners(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := NewContainer(storage.NewMemoryStore())

	var namespaces []string
	c.OnIdentityChange(func(_ context.Context, ns string) { namespaces = append(namespaces, ns) })

	c.ContinueAsGuest(ctx) // anonymous and guest share a namespace
	c.Login(ctx, model.Credentials{Email: DemoEmail, Password: DemoPassword})
	require.NoError(t, c.UpdateUser(ctx, model.User{ID: DemoUserID, Email: DemoEmail, Name: "Same Namespace"}))
	c.Logout(ctx)

	require.Equal(t, []string{DemoUserID, storage.GuestNamespace}, namespaces)
}

func TestContainer_NotifiesUserKey(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	notifier := events.NewMockChangeNotifier(ctrl)
	notifier.EXPECT().Notify(gomock.Any(), storage.GlobalNamespace, storage.KeyUser).Times(2)

	c := NewContainer(storage.NewMemoryStore(), WithNotifier(notifier))
	c.ContinueAsGuest(context.Background())
	c.Logout(context.Background())
}

func TestContainer_Resync(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := storage.NewMemoryStore()

	writer := NewContainer(store)
	reader := NewContainer(store)

	var changed []string
	reader.OnIdentityChange(func(_ context.Context, ns string) { changed = append(changed, ns) })

	writer.Login(ctx, model.Credentials{Email: DemoEmail, Password: DemoPassword})
	require.Nil(t, reader.User())

	require.NoError(t, reader.Resync(ctx))
	require.Equal(t, DemoUserID, reader.User().ID)
	require.Equal(t, DemoToken, reader.Token())
	require.Equal(t, []string{DemoUserID}, changed)

	writer.Logout(ctx)
	require.NoError(t, reader.Resync(ctx))
	require.Nil(t, reader.User())
	require.Equal(t, []string{DemoUserID, storage.GuestNamespace}, changed)
}

func TestContainer_ResyncIgnoresCorruptUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(ctx, storage.GlobalNamespace, storage.KeyUser, []byte("{not json")))

	c := NewContainer(store)
	require.NoError(t, c.Resync(ctx))
	require.Nil(t, c.User())
}

// brokenStore fails every write
type brokenStore struct{ *storage.MemoryStore }

func (brokenStore) Set(context.Context, string, string, []byte) error { return errors.New("disk full") }

func TestContainer_PersistFailureKeepsMemoryState(t *testing.T) {
	t.Parallel()
	c := NewContainer(brokenStore{storage.NewMemoryStore()})

	res := c.Login(context.Background(), model.Credentials{Email: DemoEmail, Password: DemoPassword})
	require.True(t, res.Success)
	require.Equal(t, DemoUserID, c.User().ID)
}

func TestTokenMinter(t *testing.T) {
	t.Parallel()
	user := model.User{ID: "user-1", Email: "a@b.c"}

	token, err := NewTokenMinter("one").Mint(user, time.Now())
	require.NoError(t, err)
	require.Equal(t, 2, strings.Count(token, "."))

	_, err = NewTokenMinter("two").Verify(token)
	require.Error(t, err)

	claims, err := NewTokenMinter("one").Verify(token)
	require.NoError(t, err)
	require.Equal(t, "demo", claims["type"])

	raw, err := json.Marshal(claims)
	require.NoError(t, err)
	require.Contains(t, string(raw), `"sub":"user-1"`)
}

func TestContainer_LoginResultKeepsAdoptedUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := NewContainer(storage.NewMemoryStore())

	res := c.Login(ctx, model.Credentials{Email: DemoEmail, Password: DemoPassword})
	require.True(t, res.Success)

	guest := c.ContinueAsGuest(ctx)
	require.Equal(t, GuestUser(), *guest)

	require.Equal(t, DemoUserID, res.User.ID, "a later identity change does not rewrite an earlier result")
	res.User.Name = "changed"
	require.Equal(t, "Guest User", c.User().Name)
}

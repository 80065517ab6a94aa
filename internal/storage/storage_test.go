package storage

import (
	"context"
	"errors"
	"testing"

	model "refashion/internal/models"
	"refashion/internal/refashionerrors"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
)

// failingStore reports a backend error for every call
type failingStore struct{}

func (failingStore) Get(context.Context, string, string) ([]byte, error) {
	return nil, errors.New("connection refused")
}

func (failingStore) Set(context.Context, string, string, []byte) error {
	return errors.New("connection refused")
}

func (failingStore) Remove(context.Context, string, string) error {
	return errors.New("connection refused")
}

// newRedisStore starts an in-process Redis and returns a store bound to it
func newRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, "refashion-test")
}

func TestNamespace(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		user *model.User
		want string
	}{
		{name: "nil_user", user: nil, want: GuestNamespace},
		{name: "id_wins", user: &model.User{ID: "u1", Email: "a@b.c"}, want: "u1"},
		{name: "email_fallback", user: &model.User{Email: "a@b.c"}, want: "a@b.c"},
		{name: "empty_user", user: &model.User{}, want: GuestNamespace},
		{name: "guest_user", user: &model.User{ID: "guest", Guest: true}, want: "guest"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, Namespace(tc.user))
		})
	}
}

func TestKVStores(t *testing.T) {
	stores := map[string]func(t *testing.T) KVStore{
		"memory": func(*testing.T) KVStore { return NewMemoryStore() },
		"redis":  func(t *testing.T) KVStore { return newRedisStore(t) },
	}

	for name, build := range stores {
		build := build
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := build(t)

			_, err := store.Get(ctx, "u1", KeyBags)
			require.ErrorIs(t, err, refashionerrors.ErrKeyNotFound)

			require.NoError(t, store.Set(ctx, "u1", KeyBags, []byte(`{"recycle":[]}`)))
			require.NoError(t, store.Set(ctx, "u2", KeyBags, []byte(`{"resell":[]}`)))

			raw, err := store.Get(ctx, "u1", KeyBags)
			require.NoError(t, err)
			require.JSONEq(t, `{"recycle":[]}`, string(raw))

			raw, err = store.Get(ctx, "u2", KeyBags)
			require.NoError(t, err)
			require.JSONEq(t, `{"resell":[]}`, string(raw))

			require.NoError(t, store.Remove(ctx, "u1", KeyBags))
			require.NoError(t, store.Remove(ctx, "u1", KeyBags), "removing twice is a no-op")

			_, err = store.Get(ctx, "u1", KeyBags)
			require.ErrorIs(t, err, refashionerrors.ErrKeyNotFound)
		})
	}
}

func TestMemoryStore_ValuesAreCopied(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := NewMemoryStore()

	value := []byte("abc")
	require.NoError(t, store.Set(ctx, "ns", "k", value))
	value[0] = 'z'

	raw, err := store.Get(ctx, "ns", "k")
	require.NoError(t, err)
	require.Equal(t, "abc", string(raw))

	raw[0] = 'y'
	again, err := store.Get(ctx, "ns", "k")
	require.NoError(t, err)
	require.Equal(t, "abc", string(again))
}

func TestLoadJSON(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	fallback := model.Rewards{Points: 0, History: []model.RewardEntry{}}

	t.Run("missing_key_returns_fallback", func(t *testing.T) {
		store := NewMemoryStore()
		var got model.Rewards
		require.NoError(t, LoadJSON(ctx, store, "u1", KeyRewards, &got, fallback))
		require.Equal(t, fallback, got)
	})

	t.Run("malformed_value_returns_fallback", func(t *testing.T) {
		store := NewMemoryStore()
		require.NoError(t, store.Set(ctx, "u1", KeyRewards, []byte("{not json")))
		var got model.Rewards
		require.NoError(t, LoadJSON(ctx, store, "u1", KeyRewards, &got, fallback))
		require.Equal(t, fallback, got)
	})

	t.Run("stored_value_round_trips", func(t *testing.T) {
		store := NewMemoryStore()
		want := model.Rewards{Points: 10, History: []model.RewardEntry{{ID: 1, Action: model.ActionRecycle, Points: 10}}}
		require.NoError(t, SaveJSON(ctx, store, "u1", KeyRewards, want))

		var got model.Rewards
		require.NoError(t, LoadJSON(ctx, store, "u1", KeyRewards, &got, fallback))
		require.Equal(t, want, got)
	})

	t.Run("backend_error_is_reported", func(t *testing.T) {
		var got model.Rewards
		err := LoadJSON(ctx, failingStore{}, "u1", KeyRewards, &got, fallback)
		require.Error(t, err)
		require.Equal(t, fallback, got)
	})

	t.Run("save_backend_error_is_reported", func(t *testing.T) {
		require.Error(t, SaveJSON(ctx, failingStore{}, "u1", KeyRewards, fallback))
	})
}

func TestRedisStore_KeyLayout(t *testing.T) {
	t.Parallel()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	store := NewRedisStore(client, "refashion")
	require.NoError(t, store.Set(context.Background(), "u1", KeyToken, []byte("tok")))

	got, err := mr.Get("refashion:u1:" + KeyToken)
	require.NoError(t, err)
	require.Equal(t, "tok", got)
}

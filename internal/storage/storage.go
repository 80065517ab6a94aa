package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	model "refashion/internal/models"
	"refashion/internal/refashionerrors"
	"refashion/utils"
)

// Persisted keys
const (
	KeyToken           = "refashion_token"
	KeyUser            = "refashion_user"
	KeyBags            = "refashion_bags"
	KeyRewards         = "refashion_rewards"
	KeyListings        = "marketplace_listings"
	KeyMockFirebaseUID = "mock_firebase_uid"
)

// GlobalNamespace holds device-wide keys that do not belong to a single user
const GlobalNamespace = "global"

// GuestNamespace is used when no user identity is available
const GuestNamespace = "guest"

// KVStore defines the namespaced durable storage used by the state containers
type KVStore interface {
	Get(ctx context.Context, namespace, key string) ([]byte, error)
	Set(ctx context.Context, namespace, key string, value []byte) error
	Remove(ctx context.Context, namespace, key string) error
}

// Namespace derives the storage namespace for a user: id, then email, then "guest"
func Namespace(user *model.User) string {
	if user == nil {
		return GuestNamespace
	}
	if user.ID != "" {
		return user.ID
	}
	if user.Email != "" {
		return user.Email
	}
	return GuestNamespace
}

// LoadJSON decodes the value stored under namespace/key into dst.
// A missing key or an unparseable value leaves dst set to fallback and returns nil;
// only backend failures are reported.
func LoadJSON[T any](ctx context.Context, store KVStore, namespace, key string, dst *T, fallback T) error {
	*dst = fallback

	raw, err := store.Get(ctx, namespace, key)
	if errors.Is(err, refashionerrors.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("storage: load %s/%s: %w", namespace, key, err)
	}

	var decoded T
	if err := json.Unmarshal(raw, &decoded); err != nil {
		utils.Warn("storage: discarding malformed value", map[string]any{
			"namespace": namespace,
			"key":       key,
			"error":     err.Error(),
		})
		return nil
	}
	*dst = decoded
	return nil
}

// SaveJSON encodes value and stores it under namespace/key
func SaveJSON(ctx context.Context, store KVStore, namespace, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("storage: encode %s/%s: %w", namespace, key, err)
	}
	if err := store.Set(ctx, namespace, key, raw); err != nil {
		return fmt.Errorf("storage: save %s/%s: %w", namespace, key, err)
	}
	return nil
}

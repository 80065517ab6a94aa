package listings

import (
	"context"
	"fmt"
	"sync"

	"refashion/internal/events"
	model "refashion/internal/models"
	"refashion/internal/refashionerrors"
	"refashion/internal/storage"
)

// KVRepository keeps every listing as one JSON array under the device-wide marketplace key
type KVRepository struct {
	mu       sync.Mutex
	store    storage.KVStore
	notifier events.ChangeNotifier
}

// NewKVRepository creates a repository over store; notifier may be nil
func NewKVRepository(store storage.KVStore, notifier events.ChangeNotifier) *KVRepository {
	if notifier == nil {
		notifier = events.Discard
	}
	return &KVRepository{store: store, notifier: notifier}
}

func (r *KVRepository) load(ctx context.Context) ([]model.Listing, error) {
	var items []model.Listing
	if err := storage.LoadJSON(ctx, r.store, storage.GlobalNamespace, storage.KeyListings, &items, []model.Listing{}); err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.Listing{}
	}
	return items, nil
}

// All returns the stored listings in creation order
func (r *KVRepository) All(ctx context.Context) ([]model.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

// Add appends listing to the stored array
func (r *KVRepository) Add(ctx context.Context, listing model.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.load(ctx)
	if err != nil {
		return err
	}
	items = append(items, listing)
	if err := storage.SaveJSON(ctx, r.store, storage.GlobalNamespace, storage.KeyListings, items); err != nil {
		return err
	}
	r.notifier.Notify(ctx, storage.GlobalNamespace, storage.KeyListings)
	return nil
}

// Find returns the listing with id
func (r *KVRepository) Find(ctx context.Context, id string) (model.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.load(ctx)
	if err != nil {
		return model.Listing{}, err
	}
	for _, item := range items {
		if item.ID == id {
			return item, nil
		}
	}
	return model.Listing{}, fmt.Errorf("%w - %s", refashionerrors.ErrListingNotFound, id)
}

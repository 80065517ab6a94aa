// Package bag holds the per-user recycle/resell/donation collections.
package bag

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"refashion/internal/events"
	model "refashion/internal/models"
	"refashion/internal/refashionerrors"
	"refashion/internal/storage"
	"refashion/utils"
)

//go:generate mockgen -source=bag.go -destination=mock_bag.go -package=bag

// PointsAwarder receives the point-earning side effect of adding an item. The award is booked
// against the namespace the item was stored under, even if the identity changed meanwhile.
type PointsAwarder interface {
	AddPointsTo(ctx context.Context, namespace string, action model.RewardAction, description string) int
}

// RemoteSync mirrors an added item to a remote backend
type RemoteSync interface {
	SyncItem(ctx context.Context, category model.Category, item model.BagItem) error
}

// Container is the bag state container for the active namespace
type Container struct {
	mu        sync.Mutex
	store     storage.KVStore
	awarder   PointsAwarder
	remote    RemoteSync
	notifier  events.ChangeNotifier
	now       func() time.Time
	namespace string
	bags      model.Bags
}

// Option customizes a Container
type Option func(*Container)

// WithClock replaces the wall clock used for addedAt stamps
func WithClock(now func() time.Time) Option {
	return func(c *Container) { c.now = now }
}

// WithNotifier sets where persisted writes are announced
func WithNotifier(n events.ChangeNotifier) Option {
	return func(c *Container) { c.notifier = n }
}

// WithRemoteSync enables best-effort mirroring of added items
func WithRemoteSync(r RemoteSync) Option {
	return func(c *Container) { c.remote = r }
}

// NewContainer creates a bag container bound to the guest namespace with empty bags
func NewContainer(store storage.KVStore, awarder PointsAwarder, opts ...Option) *Container {
	c := &Container{
		store:     store,
		awarder:   awarder,
		notifier:  events.Discard,
		now:       time.Now,
		namespace: storage.GuestNamespace,
		bags:      model.EmptyBags(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Reload discards in-memory bags and loads the ones persisted for namespace
func (c *Container) Reload(ctx context.Context, namespace string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.namespace = namespace

	var loaded model.Bags
	err := storage.LoadJSON(ctx, c.store, namespace, storage.KeyBags, &loaded, model.EmptyBags())
	c.bags = normalize(loaded)
	if err != nil {
		return fmt.Errorf("bag: reload %s: %w", namespace, err)
	}
	return nil
}

// Namespace returns the namespace the container is bound to
func (c *Container) Namespace() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.namespace
}

// Bags returns a deep copy of the current bags
func (c *Container) Bags() model.Bags {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyBags(c.bags)
}

// Counts returns per-category sizes and their total
func (c *Container) Counts() model.Counts {
	c.mu.Lock()
	defer c.mu.Unlock()
	return countsOf(c.bags)
}

// Item looks up an item by id inside a category
func (c *Container) Item(category model.Category, itemID string) (model.BagItem, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, item := range c.bags.Items(category) {
		if item.ID == itemID {
			return item, true
		}
	}
	return model.BagItem{}, false
}

// AddToBag stamps item with a fresh id and addedAt, appends it to category and awards points.
// The remote mirror runs last and its failure never undoes the local update.
func (c *Container) AddToBag(ctx context.Context, category model.Category, item model.BagItem) (model.BagItem, error) {
	if !category.Valid() {
		return model.BagItem{}, fmt.Errorf("bag: %w - %q", refashionerrors.ErrInvalidCategory, category)
	}

	c.mu.Lock()
	item.ID = utils.GeneratePrefixedID(string(category))
	item.AddedAt = c.now().UnixMilli()
	items := append(append([]model.BagItem{}, c.bags.Items(category)...), item)
	c.bags = c.bags.WithItems(category, items)
	c.persistLocked(ctx)
	namespace := c.namespace
	c.mu.Unlock()

	action := model.RewardAction(strings.ToUpper(string(category)))
	awarded := c.awarder.AddPointsTo(ctx, namespace, action, fmt.Sprintf("Added %s to %s bag", item.FileName, category))

	utils.Info("bag: item added", map[string]any{
		"namespace": namespace,
		"category":  string(category),
		"item_id":   item.ID,
		"points":    awarded,
	})

	if c.remote != nil {
		if err := c.remote.SyncItem(ctx, category, item); err != nil {
			utils.Warn("bag: remote sync failed", map[string]any{
				"namespace": namespace,
				"category":  string(category),
				"item_id":   item.ID,
				"error":     err.Error(),
			})
		}
	}

	return item, nil
}

// RemoveFromBag drops itemID from category; removing an unknown id is a no-op
func (c *Container) RemoveFromBag(ctx context.Context, category model.Category, itemID string) error {
	if !category.Valid() {
		return fmt.Errorf("bag: %w - %q", refashionerrors.ErrInvalidCategory, category)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	current := c.bags.Items(category)
	kept := make([]model.BagItem, 0, len(current))
	for _, item := range current {
		if item.ID != itemID {
			kept = append(kept, item)
		}
	}
	c.bags = c.bags.WithItems(category, kept)
	c.persistLocked(ctx)
	return nil
}

// TakenItem is an item removed by TakeItem together with where it was stored
type TakenItem struct {
	Item      model.BagItem
	Category  model.Category
	Namespace string
}

// TakeItem removes itemID from category and returns it. ok is false when the item is absent,
// so only one of several concurrent callers can consume a given item.
func (c *Container) TakeItem(ctx context.Context, category model.Category, itemID string) (TakenItem, bool, error) {
	if !category.Valid() {
		return TakenItem{}, false, fmt.Errorf("bag: %w - %q", refashionerrors.ErrInvalidCategory, category)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	current := c.bags.Items(category)
	for i, item := range current {
		if item.ID != itemID {
			continue
		}
		kept := make([]model.BagItem, 0, len(current)-1)
		kept = append(kept, current[:i]...)
		kept = append(kept, current[i+1:]...)
		c.bags = c.bags.WithItems(category, kept)
		c.persistLocked(ctx)
		return TakenItem{Item: item, Category: category, Namespace: c.namespace}, true, nil
	}
	return TakenItem{}, false, nil
}

// RestoreItem puts back an item returned by TakeItem, keeping its id and addedAt. It goes to
// the namespace it was taken from, which may no longer be the active one. No points are awarded.
func (c *Container) RestoreItem(ctx context.Context, taken TakenItem) error {
	if !taken.Category.Valid() {
		return fmt.Errorf("bag: %w - %q", refashionerrors.ErrInvalidCategory, taken.Category)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if taken.Namespace == c.namespace {
		if restored, ok := withRestored(c.bags, taken); ok {
			c.bags = restored
			c.persistLocked(ctx)
		}
		return nil
	}

	var stored model.Bags
	if err := storage.LoadJSON(ctx, c.store, taken.Namespace, storage.KeyBags, &stored, model.EmptyBags()); err != nil {
		return fmt.Errorf("bag: restore into %s: %w", taken.Namespace, err)
	}
	restored, ok := withRestored(normalize(stored), taken)
	if !ok {
		return nil
	}
	if err := storage.SaveJSON(ctx, c.store, taken.Namespace, storage.KeyBags, restored); err != nil {
		return fmt.Errorf("bag: restore into %s: %w", taken.Namespace, err)
	}
	c.notifier.Notify(ctx, taken.Namespace, storage.KeyBags)
	return nil
}

// withRestored appends taken to b unless an item with the same id is already there
func withRestored(b model.Bags, taken TakenItem) (model.Bags, bool) {
	current := b.Items(taken.Category)
	for _, existing := range current {
		if existing.ID == taken.Item.ID {
			return b, false
		}
	}
	return b.WithItems(taken.Category, append(append([]model.BagItem{}, current...), taken.Item)), true
}

// ClearBag empties category
func (c *Container) ClearBag(ctx context.Context, category model.Category) error {
	if !category.Valid() {
		return fmt.Errorf("bag: %w - %q", refashionerrors.ErrInvalidCategory, category)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.bags = c.bags.WithItems(category, []model.BagItem{})
	c.persistLocked(ctx)
	return nil
}

// MoveItem moves itemID from one category to another. The moved copy gets a new id.
// When the item is absent nothing changes and moved is false.
func (c *Container) MoveItem(ctx context.Context, from, to model.Category, itemID string) (model.BagItem, bool, error) {
	if !from.Valid() || !to.Valid() {
		return model.BagItem{}, false, fmt.Errorf("bag: %w - move %q to %q", refashionerrors.ErrInvalidCategory, from, to)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	source := c.bags.Items(from)
	index := -1
	for i, item := range source {
		if item.ID == itemID {
			index = i
			break
		}
	}
	if index < 0 {
		return model.BagItem{}, false, nil
	}

	moved := source[index]
	moved.ID = utils.GeneratePrefixedID(string(to))

	remaining := make([]model.BagItem, 0, len(source)-1)
	remaining = append(remaining, source[:index]...)
	remaining = append(remaining, source[index+1:]...)
	c.bags = c.bags.WithItems(from, remaining)
	c.bags = c.bags.WithItems(to, append(append([]model.BagItem{}, c.bags.Items(to)...), moved))
	c.persistLocked(ctx)

	utils.Info("bag: item moved", map[string]any{
		"namespace": c.namespace,
		"from":      string(from),
		"to":        string(to),
		"old_id":    itemID,
		"new_id":    moved.ID,
	})
	return moved, true, nil
}

// persistLocked writes the bags; a failed write keeps the in-memory state and is only logged
func (c *Container) persistLocked(ctx context.Context) {
	if err := storage.SaveJSON(ctx, c.store, c.namespace, storage.KeyBags, c.bags); err != nil {
		utils.Error("bag: failed to persist bags", map[string]any{
			"namespace": c.namespace,
			"error":     err.Error(),
		})
		return
	}
	c.notifier.Notify(ctx, c.namespace, storage.KeyBags)
}

func normalize(b model.Bags) model.Bags {
	for _, category := range model.Categories {
		if b.Items(category) == nil {
			b = b.WithItems(category, []model.BagItem{})
		}
	}
	return b
}

func copyBags(b model.Bags) model.Bags {
	out := model.EmptyBags()
	for _, category := range model.Categories {
		out = out.WithItems(category, append([]model.BagItem{}, b.Items(category)...))
	}
	return out
}

func countsOf(b model.Bags) model.Counts {
	counts := model.Counts{
		Recycle:  len(b.Recycle),
		Resell:   len(b.Resell),
		Donation: len(b.Donation),
	}
	counts.Total = counts.Recycle + counts.Resell + counts.Donation
	return counts
}

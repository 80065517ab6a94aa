// Package rewards keeps a user's loyalty points balance and its append-only history.
package rewards

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"refashion/internal/events"
	model "refashion/internal/models"
	"refashion/internal/refashionerrors"
	"refashion/internal/storage"
	"refashion/utils"
)

// pointTable is the fixed award per action
var pointTable = map[model.RewardAction]int{
	model.ActionRecycle:         10,
	model.ActionResell:          15,
	model.ActionDonation:        12,
	model.ActionCreateListing:   20,
	model.ActionCompleteProfile: 25,
}

// PointsFor returns the award for action, 0 for unknown actions
func PointsFor(action model.RewardAction) int {
	return pointTable[action]
}

// PointTable returns a copy of the fixed award table
func PointTable() map[model.RewardAction]int {
	table := make(map[model.RewardAction]int, len(pointTable))
	for action, points := range pointTable {
		table[action] = points
	}
	return table
}

// PurchaseCost converts a marketplace price into points: price × 10, rounded up
func PurchaseCost(price float64) int {
	return int(math.Ceil(price * 10))
}

func emptyRewards() model.Rewards {
	return model.Rewards{Points: 0, History: []model.RewardEntry{}}
}

// Ledger is the rewards state container for the active namespace
type Ledger struct {
	mu        sync.Mutex
	store     storage.KVStore
	notifier  events.ChangeNotifier
	now       func() time.Time
	namespace string
	state     model.Rewards
	lastID    int64
}

// Option customizes a Ledger
type Option func(*Ledger)

// WithClock replaces the wall clock used for entry ids and timestamps
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithNotifier sets where persisted writes are announced
func WithNotifier(n events.ChangeNotifier) Option {
	return func(l *Ledger) { l.notifier = n }
}

// NewLedger creates a ledger bound to the guest namespace with an empty state
func NewLedger(store storage.KVStore, opts ...Option) *Ledger {
	l := &Ledger{
		store:     store,
		notifier:  events.Discard,
		now:       time.Now,
		namespace: storage.GuestNamespace,
		state:     emptyRewards(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Reload discards in-memory state and loads the rewards persisted for namespace
func (l *Ledger) Reload(ctx context.Context, namespace string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.namespace = namespace
	l.lastID = 0

	var loaded model.Rewards
	err := storage.LoadJSON(ctx, l.store, namespace, storage.KeyRewards, &loaded, emptyRewards())
	if loaded.History == nil {
		loaded.History = []model.RewardEntry{}
	}
	l.state = loaded
	for _, entry := range loaded.History {
		if entry.ID > l.lastID {
			l.lastID = entry.ID
		}
	}
	if err != nil {
		return fmt.Errorf("ledger: reload %s: %w", namespace, err)
	}
	return nil
}

// Namespace returns the namespace the ledger is bound to
func (l *Ledger) Namespace() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.namespace
}

// Points returns the current balance
func (l *Ledger) Points() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.Points
}

// Snapshot returns a copy of the balance and history
func (l *Ledger) Snapshot() model.Rewards {
	l.mu.Lock()
	defer l.mu.Unlock()
	return model.Rewards{
		Points:  l.state.Points,
		History: append([]model.RewardEntry{}, l.state.History...),
	}
}

// AddPoints records the fixed award for action and returns the amount awarded
func (l *Ledger) AddPoints(ctx context.Context, action model.RewardAction, description string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.addPointsLocked(ctx, action, description)
}

func (l *Ledger) addPointsLocked(ctx context.Context, action model.RewardAction, description string) int {
	awarded := PointsFor(action)
	l.appendLocked(action, awarded, description)
	l.persistLocked(ctx)

	utils.Info("ledger: points awarded", map[string]any{
		"namespace": l.namespace,
		"action":    string(action),
		"points":    awarded,
		"balance":   l.state.Points,
	})
	return awarded
}

// AddPointsTo records the award for action in namespace. When the ledger is bound elsewhere the
// entry is appended to the rewards persisted for namespace and the active state is left alone.
func (l *Ledger) AddPointsTo(ctx context.Context, namespace string, action model.RewardAction, description string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if namespace == l.namespace {
		return l.addPointsLocked(ctx, action, description)
	}

	var stored model.Rewards
	if err := storage.LoadJSON(ctx, l.store, namespace, storage.KeyRewards, &stored, emptyRewards()); err != nil {
		utils.Error("ledger: could not load rewards to award", map[string]any{
			"namespace": namespace,
			"action":    string(action),
			"error":     err.Error(),
		})
		return 0
	}
	if stored.History == nil {
		stored.History = []model.RewardEntry{}
	}

	var lastID int64
	for _, entry := range stored.History {
		if entry.ID > lastID {
			lastID = entry.ID
		}
	}
	now := l.now()
	id := now.UnixMilli()
	if id <= lastID {
		id = lastID + 1
	}

	awarded := PointsFor(action)
	stored.History = append(stored.History, model.RewardEntry{
		ID:          id,
		Action:      action,
		Points:      awarded,
		Description: description,
		Timestamp:   now.UnixMilli(),
	})
	stored.Points += awarded

	if err := storage.SaveJSON(ctx, l.store, namespace, storage.KeyRewards, stored); err != nil {
		utils.Error("ledger: failed to persist rewards", map[string]any{
			"namespace": namespace,
			"error":     err.Error(),
		})
		return awarded
	}
	l.notifier.Notify(ctx, namespace, storage.KeyRewards)

	utils.Info("ledger: points awarded to inactive namespace", map[string]any{
		"namespace": namespace,
		"action":    string(action),
		"points":    awarded,
	})
	return awarded
}

// Spend deducts cost points for a purchase. The balance is never allowed to go negative:
// a spend larger than the balance leaves the ledger untouched.
func (l *Ledger) Spend(ctx context.Context, cost int, description string) (model.RewardEntry, error) {
	if cost <= 0 {
		return model.RewardEntry{}, fmt.Errorf("ledger: %w - cost must be positive, got %d", refashionerrors.ErrInvalidAmount, cost)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state.Points < cost {
		return model.RewardEntry{}, fmt.Errorf("ledger: %w - balance %d, cost %d", refashionerrors.ErrInsufficientPoints, l.state.Points, cost)
	}

	entry := l.appendLocked(model.ActionPurchase, -cost, description)
	l.persistLocked(ctx)

	utils.Info("ledger: points spent", map[string]any{
		"namespace": l.namespace,
		"cost":      cost,
		"balance":   l.state.Points,
	})
	return entry, nil
}

// ResetPoints wipes balance and history
func (l *Ledger) ResetPoints(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.state = emptyRewards()
	l.lastID = 0
	l.persistLocked(ctx)
}

func (l *Ledger) appendLocked(action model.RewardAction, points int, description string) model.RewardEntry {
	now := l.now()
	id := now.UnixMilli()
	if id <= l.lastID {
		id = l.lastID + 1
	}
	l.lastID = id

	entry := model.RewardEntry{
		ID:          id,
		Action:      action,
		Points:      points,
		Description: description,
		Timestamp:   now.UnixMilli(),
	}
	l.state.History = append(l.state.History, entry)
	l.state.Points += points
	return entry
}

// persistLocked writes the state; a failed write keeps the in-memory state and is only logged
func (l *Ledger) persistLocked(ctx context.Context) {
	if err := storage.SaveJSON(ctx, l.store, l.namespace, storage.KeyRewards, l.state); err != nil {
		utils.Error("ledger: failed to persist rewards", map[string]any{
			"namespace": l.namespace,
			"error":     err.Error(),
		})
		return
	}
	l.notifier.Notify(ctx, l.namespace, storage.KeyRewards)
}

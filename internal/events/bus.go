// Package events carries storage-change notifications between sessions that share one store.
package events

import (
	"context"
	"sync"
	"time"

	"refashion/utils"
)

// Event announces that a persisted key changed
type Event struct {
	Namespace string    `json:"namespace"`
	Key       string    `json:"key"`
	Origin    string    `json:"origin"`
	At        time.Time `json:"at"`
}

// Subscription delivers events until closed
type Subscription interface {
	Events() <-chan Event
	Close() error
}

// Bus defines the publish/subscribe channel used for cross-session consistency
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(ctx context.Context) (Subscription, error)
}

// subscriberBuffer sizes the delivery channel of Redis subscriptions
const subscriberBuffer = 64

// MemoryBus fans events out to in-process subscribers. A subscriber that falls behind never
// loses a change: pending events for the same namespace and key are merged into one.
type MemoryBus struct {
	mu   sync.RWMutex
	subs map[*memorySubscription]struct{}
}

// NewMemoryBus creates an empty in-process bus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{subs: make(map[*memorySubscription]struct{})}
}

// Publish queues event on every open subscription without blocking
func (b *MemoryBus) Publish(_ context.Context, event Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for sub := range b.subs {
		sub.offer(event)
	}
	return nil
}

// Subscribe registers a new subscription
func (b *MemoryBus) Subscribe(_ context.Context) (Subscription, error) {
	sub := &memorySubscription{
		bus:  b,
		out:  make(chan Event),
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}

	b.mu.Lock()
	b.subs[sub] = struct{}{}
	b.mu.Unlock()

	go sub.pump()
	return sub, nil
}

type changeKey struct {
	namespace string
	key       string
}

// pendingQueue holds undelivered events, at most one per namespace and key, in first-seen order
type pendingQueue struct {
	order  []changeKey
	events map[changeKey]Event
}

// push adds event or merges it into the pending one for the same key. A merge of events from
// different origins has no origin, so no receiver mistakes it for purely its own change.
func (q *pendingQueue) push(event Event) (merged bool) {
	k := changeKey{namespace: event.Namespace, key: event.Key}
	if q.events == nil {
		q.events = make(map[changeKey]Event)
	}

	queued, ok := q.events[k]
	if !ok {
		q.order = append(q.order, k)
		q.events[k] = event
		return false
	}
	if queued.Origin != event.Origin {
		queued.Origin = ""
	}
	if event.At.After(queued.At) {
		queued.At = event.At
	}
	q.events[k] = queued
	return true
}

func (q *pendingQueue) pop() (Event, bool) {
	if len(q.order) == 0 {
		return Event{}, false
	}
	k := q.order[0]
	q.order = q.order[1:]
	event := q.events[k]
	delete(q.events, k)
	return event, true
}

func (q *pendingQueue) len() int { return len(q.order) }

type memorySubscription struct {
	bus  *MemoryBus
	out  chan Event
	wake chan struct{}
	done chan struct{}
	once sync.Once

	mu      sync.Mutex
	pending pendingQueue
}

func (s *memorySubscription) offer(event Event) {
	s.mu.Lock()
	merged := s.pending.push(event)
	s.mu.Unlock()

	if merged {
		utils.Debug("events: merged pending event", map[string]any{
			"namespace": event.Namespace,
			"key":       event.Key,
		})
	}
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *memorySubscription) next() (Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending.pop()
}

// pump hands queued events to the reader one at a time until the subscription closes
func (s *memorySubscription) pump() {
	defer close(s.out)
	for {
		event, ok := s.next()
		if !ok {
			select {
			case <-s.wake:
				continue
			case <-s.done:
				return
			}
		}
		select {
		case s.out <- event:
		case <-s.done:
			return
		}
	}
}

func (s *memorySubscription) Events() <-chan Event {
	return s.out
}

func (s *memorySubscription) Close() error {
	s.once.Do(func() {
		s.bus.mu.Lock()
		delete(s.bus.subs, s)
		s.bus.mu.Unlock()
		close(s.done)
	})
	return nil
}

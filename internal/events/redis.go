package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"refashion/utils"

	"github.com/go-redis/redis/v8"
)

// RedisBus publishes events as JSON on a Redis Pub/Sub channel
type RedisBus struct {
	client  *redis.Client
	channel string
}

// NewRedisBus creates a bus on channel "<prefix>:events"
func NewRedisBus(client *redis.Client, prefix string) *RedisBus {
	return &RedisBus{client: client, channel: prefix + ":events"}
}

// Publish encodes event and publishes it on the bus channel
func (b *RedisBus) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("events: encode event: %w", err)
	}
	if err := b.client.Publish(ctx, b.channel, payload).Err(); err != nil {
		return fmt.Errorf("events: publish on %s: %w", b.channel, err)
	}
	return nil
}

// Subscribe opens a Pub/Sub subscription and waits until Redis confirms it
func (b *RedisBus) Subscribe(ctx context.Context) (Subscription, error) {
	pubsub := b.client.Subscribe(ctx, b.channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("events: subscribe to %s: %w", b.channel, err)
	}

	sub := &redisSubscription{
		pubsub: pubsub,
		ch:     make(chan Event, subscriberBuffer),
		done:   make(chan struct{}),
	}
	go sub.run()
	return sub, nil
}

type redisSubscription struct {
	pubsub *redis.PubSub
	ch     chan Event
	done   chan struct{}
	once   sync.Once
}

func (s *redisSubscription) run() {
	defer close(s.ch)
	for msg := range s.pubsub.Channel() {
		var event Event
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			utils.Warn("events: dropping malformed event", map[string]any{"error": err.Error()})
			continue
		}
		select {
		case s.ch <- event:
		case <-s.done:
			return
		}
	}
}

func (s *redisSubscription) Events() <-chan Event {
	return s.ch
}

func (s *redisSubscription) Close() error {
	var err error
	s.once.Do(func() {
		close(s.done)
		err = s.pubsub.Close()
	})
	return err
}

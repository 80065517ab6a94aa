package events

import (
	"context"
	"time"

	"refashion/utils"
)

//go:generate mockgen -source=notifier.go -destination=mock_notifier.go -package=events

// ChangeNotifier is told about every persisted write a container makes
type ChangeNotifier interface {
	Notify(ctx context.Context, namespace, key string)
}

// Notifier publishes change notifications for one session on a bus.
// Publish failures are logged and otherwise ignored.
type Notifier struct {
	bus    Bus
	origin string
}

// NewNotifier binds a bus to the publishing session id
func NewNotifier(bus Bus, origin string) *Notifier {
	return &Notifier{bus: bus, origin: origin}
}

// Origin returns the session id stamped on published events
func (n *Notifier) Origin() string {
	return n.origin
}

// Notify publishes a change event for namespace/key
func (n *Notifier) Notify(ctx context.Context, namespace, key string) {
	event := Event{Namespace: namespace, Key: key, Origin: n.origin, At: time.Now().UTC()}
	if err := n.bus.Publish(ctx, event); err != nil {
		utils.Warn("events: failed to publish change", map[string]any{
			"namespace": namespace,
			"key":       key,
			"error":     err.Error(),
		})
	}
}

// Discard is a ChangeNotifier that drops every notification
var Discard ChangeNotifier = discard{}

type discard struct{}

func (discard) Notify(context.Context, string, string) {}

package messaging

import (
	"context"
	"log/slog"
	"sync"

	"foreman/internal/shared/events"
)

// Kafka is the notification bus used by the event distributor and outbox relay.
// Current implementation is in-process publish/subscribe while runtime wiring
// is finalized for external brokers. Topics are organization IDs, so delivery
// to any one subscriber follows per-organization publish order.
type Kafka struct {
	mu          sync.RWMutex
	subscribers map[string][]chan events.Envelope
	buffer      int
	logger      *slog.Logger
}

func NewKafka(_ []string, buffer int, logger *slog.Logger) (*Kafka, error) {
	if buffer <= 0 {
		buffer = 64
	}
	return &Kafka{
		subscribers: make(map[string][]chan events.Envelope),
		buffer:      buffer,
		logger:      logger,
	}, nil
}

// Publish fans an event out to every channel currently registered on topic.
// Delivery is best-effort and at-most-once: a subscriber whose buffer is full
// loses the event rather than blocking the publisher.
func (k *Kafka) Publish(ctx context.Context, topic string, event events.Envelope) error {
	k.mu.RLock()
	subs := append([]chan events.Envelope(nil), k.subscribers[topic]...)
	k.mu.RUnlock()

	for _, sub := range subs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case sub <- event:
		default:
			if k.logger != nil {
				k.logger.Warn("dropping event for slow subscriber",
					"event", "bus_publish_drop",
					"module", "internal/platform/messaging",
					"layer", "platform",
					"topic", topic,
					"event_id", event.EventID,
				)
			}
		}
	}

	if k.logger != nil {
		k.logger.Info("event published",
			"event", "bus_publish",
			"module", "internal/platform/messaging",
			"layer", "platform",
			"topic", topic,
			"event_id", event.EventID,
			"event_type", event.EventType,
		)
	}
	return nil
}

// Subscribe registers a channel on topic until ctx is cancelled.
// Cancellation is the only unsubscription path; a vanished consumer is
// silently removed, never treated as a publisher error.
func (k *Kafka) Subscribe(ctx context.Context, topic string) (<-chan events.Envelope, error) {
	ch := make(chan events.Envelope, k.buffer)

	k.mu.Lock()
	k.subscribers[topic] = append(k.subscribers[topic], ch)
	k.mu.Unlock()

	go func() {
		<-ctx.Done()
		k.removeSubscriber(topic, ch)
	}()
	return ch, nil
}

func (k *Kafka) removeSubscriber(topic string, target chan events.Envelope) {
	k.mu.Lock()
	defer k.mu.Unlock()

	items := k.subscribers[topic]
	if len(items) == 0 {
		return
	}
	filtered := make([]chan events.Envelope, 0, len(items))
	for _, item := range items {
		if item != target {
			filtered = append(filtered, item)
		}
	}
	k.subscribers[topic] = filtered
}

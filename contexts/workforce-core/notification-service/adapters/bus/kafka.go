package bus

import (
	"context"

	"foreman/contexts/workforce-core/notification-service/ports"
	"foreman/internal/platform/messaging"
)

// KafkaBus adapts the platform messaging bus to the distributor's port,
// translating shared envelopes into distributor events. The forwarding
// goroutine closes the output channel on ctx cancellation, which the port
// contract promises.
type KafkaBus struct {
	Kafka *messaging.Kafka
}

func (b KafkaBus) Subscribe(ctx context.Context, topic string) (<-chan ports.Event, error) {
	source, err := b.Kafka.Subscribe(ctx, topic)
	if err != nil {
		return nil, err
	}

	out := make(chan ports.Event)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case envelope, ok := <-source:
				if !ok {
					return
				}
				event := ports.Event{
					EventID:     envelope.EventID,
					Kind:        envelope.EventType,
					OrgID:       envelope.OrgID,
					RecipientID: envelope.RecipientID,
					OccurredAt:  envelope.OccurredAtUTC,
					Payload:     envelope.Payload,
				}
				select {
				case <-ctx.Done():
					return
				case out <- event:
				}
			}
		}
	}()
	return out, nil
}

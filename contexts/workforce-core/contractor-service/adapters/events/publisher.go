package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"foreman/contexts/workforce-core/contractor-service/ports"
	"foreman/internal/platform/messaging"
	sharedevents "foreman/internal/shared/events"
)

// BusPublisher maps contractor lifecycle events onto the shared envelope and
// hands them to the notification bus. Topic is the organization ID, which
// keeps per-organization publish order intact end to end.
type BusPublisher struct {
	Bus    *messaging.Kafka
	Logger *slog.Logger
}

func (p BusPublisher) PublishContractorEvent(ctx context.Context, event ports.ContractorEvent) error {
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	envelope := sharedevents.Envelope{
		EventID:        event.EventID,
		EventType:      envelopeType(event.Kind),
		SourceService:  "workforce-core/contractor-service",
		OccurredAtUTC:  event.OccurredAt.UTC(),
		OrgID:          event.OrgID,
		RecipientID:    recipientFor(event),
		EntityType:     "contractor",
		EntityID:       event.ContractorID,
		PayloadVersion: 1,
		Payload:        payload,
	}

	if err := p.Bus.Publish(ctx, event.OrgID, envelope); err != nil {
		if p.Logger != nil {
			p.Logger.Error("contractor event publish failed",
				"event", "contractor_event_publish_failed",
				"module", "workforce-core/contractor-service",
				"layer", "adapter",
				"event_id", event.EventID,
				"error", err.Error(),
			)
		}
		return err
	}
	return nil
}

// Application events are broadcast to the organization so any boss can pick
// them up. Review outcomes are addressed to the contractor who applied.
func recipientFor(event ports.ContractorEvent) string {
	switch event.Kind {
	case ports.EventContractorApproved, ports.EventContractorRejected:
		return event.ContractorID
	default:
		return ""
	}
}

func envelopeType(kind string) string {
	switch kind {
	case ports.EventContractorApplied:
		return sharedevents.TypeContractorApplied
	case ports.EventContractorApproved:
		return sharedevents.TypeContractorApproved
	case ports.EventContractorRejected:
		return sharedevents.TypeContractorRejected
	default:
		return kind
	}
}

// LogPublisher is the no-bus fallback used by tests and tools that exercise
// the write path without a running distributor.
type LogPublisher struct {
	Logger *slog.Logger
}

func (p LogPublisher) PublishContractorEvent(_ context.Context, event ports.ContractorEvent) error {
	if p.Logger != nil {
		p.Logger.Info("contractor event",
			"event", "contractor_event",
			"module", "workforce-core/contractor-service",
			"layer", "adapter",
			"kind", event.Kind,
			"org_id", event.OrgID,
			"contractor_id", event.ContractorID,
			"occurred_at", event.OccurredAt.Format(time.RFC3339),
		)
	}
	return nil
}

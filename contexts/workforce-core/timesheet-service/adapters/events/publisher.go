package events

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"

	"foreman/contexts/workforce-core/timesheet-service/ports"
	"foreman/internal/platform/messaging"
	sharedevents "foreman/internal/shared/events"
)

// BusPublisher maps timesheet events onto the shared envelope and hands them
// to the notification bus. Topic is the organization ID.
type BusPublisher struct {
	Bus    *messaging.Kafka
	Logger *slog.Logger
}

func (p BusPublisher) PublishTimesheetEvent(ctx context.Context, event ports.TimesheetEvent) error {
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	envelope := sharedevents.Envelope{
		EventID:        event.EventID,
		EventType:      sharedevents.TypeTimesheetSubmitted,
		SourceService:  "workforce-core/timesheet-service",
		OccurredAtUTC:  event.OccurredAt.UTC(),
		OrgID:          event.OrgID,
		// Addressed to the submitting contractor: bosses receive every org
		// event, while other contractors must not see this one's pay.
		RecipientID:    event.ContractorID,
		EntityType:     "timesheet",
		EntityID:       event.TimesheetID,
		PayloadVersion: 1,
		Payload:        payload,
	}

	if err := p.Bus.Publish(ctx, event.OrgID, envelope); err != nil {
		if p.Logger != nil {
			p.Logger.Error("timesheet event publish failed",
				"event", "timesheet_event_publish_failed",
				"module", "workforce-core/timesheet-service",
				"layer", "adapter",
				"event_id", event.EventID,
				"error", err.Error(),
			)
		}
		return err
	}
	return nil
}

// LogPublisher is the no-bus fallback used by tests exercising the write
// path without a running distributor.
type LogPublisher struct {
	Logger *slog.Logger
}

func (p LogPublisher) PublishTimesheetEvent(_ context.Context, event ports.TimesheetEvent) error {
	if p.Logger != nil {
		p.Logger.Info("timesheet event",
			"event", "timesheet_event",
			"module", "workforce-core/timesheet-service",
			"layer", "adapter",
			"kind", event.Kind,
			"org_id", event.OrgID,
			"contractor_id", event.ContractorID,
			"period", event.Period,
		)
	}
	return nil
}

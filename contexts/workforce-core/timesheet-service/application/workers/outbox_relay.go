package workers

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	application "foreman/contexts/workforce-core/timesheet-service/application"
	"foreman/contexts/workforce-core/timesheet-service/ports"
)

// OutboxRelay drains committed timesheet events to the distributor. Rows
// exist only for durably committed upserts, so subscribers never hear about
// a submission the store failed to keep.
type OutboxRelay struct {
	Outbox    ports.OutboxRepository
	Publisher ports.EventPublisher
	Clock     ports.Clock
	BatchSize int
	Logger    *slog.Logger
}

func (r OutboxRelay) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(r.Logger)
	limit := r.BatchSize
	if limit <= 0 {
		limit = 100
	}

	pending, err := r.Outbox.ListPendingOutbox(ctx, limit)
	if err != nil {
		logger.Error("timesheet outbox list failed",
			"event", "timesheet_outbox_list_failed",
			"module", "workforce-core/timesheet-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}

	now := time.Now().UTC()
	if r.Clock != nil {
		now = r.Clock.Now().UTC()
	}

	for _, row := range pending {
		var event ports.TimesheetEvent
		if err := json.Unmarshal(row.Payload, &event); err != nil {
			// A malformed payload blocks publication of that event only;
			// the committed upsert stays untouched.
			logger.Error("timesheet outbox payload invalid",
				"event", "timesheet_outbox_payload_invalid",
				"module", "workforce-core/timesheet-service",
				"layer", "worker",
				"outbox_id", row.OutboxID,
				"error", err.Error(),
			)
			if err := r.Outbox.MarkOutboxPublished(ctx, row.OutboxID, now); err != nil {
				return err
			}
			continue
		}
		if err := r.Publisher.PublishTimesheetEvent(ctx, event); err != nil {
			logger.Error("timesheet outbox publish failed",
				"event", "timesheet_outbox_publish_failed",
				"module", "workforce-core/timesheet-service",
				"layer", "worker",
				"outbox_id", row.OutboxID,
				"error", err.Error(),
			)
			return err
		}
		if err := r.Outbox.MarkOutboxPublished(ctx, row.OutboxID, now); err != nil {
			return err
		}
	}
	return nil
}

package workers

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	application "foreman/contexts/workforce-core/contractor-service/application"
	"foreman/contexts/workforce-core/contractor-service/ports"
)

// OutboxRelay drains committed contractor events to the distributor. Rows
// only exist for durably committed mutations, so subscribers never hear
// about state the store failed to persist.
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
		logger.Error("contractor outbox list failed",
			"event", "contractor_outbox_list_failed",
			"module", "workforce-core/contractor-service",
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
		var event ports.ContractorEvent
		if err := json.Unmarshal(row.Payload, &event); err != nil {
			// A malformed payload blocks publication of that event only;
			// the committed mutation stays untouched.
			logger.Error("contractor outbox payload invalid",
				"event", "contractor_outbox_payload_invalid",
				"module", "workforce-core/contractor-service",
				"layer", "worker",
				"outbox_id", row.OutboxID,
				"error", err.Error(),
			)
			if err := r.Outbox.MarkOutboxPublished(ctx, row.OutboxID, now); err != nil {
				return err
			}
			continue
		}
		if err := r.Publisher.PublishContractorEvent(ctx, event); err != nil {
			logger.Error("contractor outbox publish failed",
				"event", "contractor_outbox_publish_failed",
				"module", "workforce-core/contractor-service",
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

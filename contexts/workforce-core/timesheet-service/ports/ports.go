package ports

import (
	"context"
	"time"

	"foreman/contexts/workforce-core/timesheet-service/domain/entities"
)

const (
	RoleBoss       = "boss"
	RoleContractor = "contractor"
)

// Actor is the authenticated caller as seen by this slice.
type Actor struct {
	UserID string
	Role   string
	OrgID  string
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// ContractorRef is the projection of a contractor this slice needs to accept
// a submission: whether the contractor is approved and at what current rate.
type ContractorRef struct {
	ContractorID string
	OrgID        string
	Approved     bool
	PayRate      *float64
}

// ContractorDirectory is implemented by bootstrap glue over the contractor
// slice. Lookups are org-scoped, so a foreign-org ID reads as absent.
type ContractorDirectory interface {
	GetContractor(ctx context.Context, orgID string, contractorID string) (ContractorRef, error)
}

// BlobStore persists raw attachment bytes and returns an opaque URL.
// Failures surface as-is; this slice never retries storage.
type BlobStore interface {
	Store(ctx context.Context, data []byte) (string, error)
}

// Filter narrows a listing. Zero values mean no constraint.
type Filter struct {
	ContractorID string
	Period       *entities.Period
}

// Repository is the timesheet ledger. Upsert keys on (contractor_id, period)
// so a resubmission replaces the stored row instead of duplicating it; the
// store, not an in-process lock, serializes concurrent resubmissions.
type Repository interface {
	UpsertTimesheet(ctx context.Context, sheet entities.Timesheet) (entities.Timesheet, error)
	GetTimesheet(ctx context.Context, orgID string, contractorID string, period entities.Period) (entities.Timesheet, error)
	ListTimesheets(ctx context.Context, orgID string, filter Filter) ([]entities.Timesheet, error)
	ContractorsWithTimesheet(ctx context.Context, orgID string, period entities.Period) (map[string]bool, error)
}

const EventTimesheetSubmitted = "timesheet.submitted"

// TimesheetEvent is the minimal projection published after a commit.
type TimesheetEvent struct {
	EventID      string    `json:"event_id"`
	Kind         string    `json:"kind"`
	OrgID        string    `json:"org_id"`
	ContractorID string    `json:"contractor_id"`
	TimesheetID  string    `json:"timesheet_id"`
	Period       string    `json:"period"`
	TotalHours   float64   `json:"total_hours"`
	EstimatedPay float64   `json:"estimated_pay"`
	OccurredAt   time.Time `json:"occurred_at"`
}

type EventPublisher interface {
	PublishTimesheetEvent(ctx context.Context, event TimesheetEvent) error
}

// OutboxRow is a committed-but-unpublished event persisted alongside its
// mutation, drained by the relay worker in commit order.
type OutboxRow struct {
	OutboxID  string
	EventType string
	Payload   []byte
}

type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxRow, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, now time.Time) error
}

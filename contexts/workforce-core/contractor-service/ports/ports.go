package ports

import (
	"context"
	"time"

	"foreman/contexts/workforce-core/contractor-service/domain/entities"
)

const (
	RoleBoss       = "boss"
	RoleContractor = "contractor"
)

// Actor is the authenticated principal as seen by this module. The access
// guard runs at the transport edge; commands re-check role and scope here so
// no entry point can reach the ledger unguarded.
type Actor struct {
	UserID string
	Role   string
	OrgID  string
}

// Period is a calendar month, the granularity timesheets are keyed by.
type Period struct {
	Year  int
	Month int
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

type ContractorFilter struct {
	States []entities.ApprovalState
}

// Repository is the contractor ledger. Lookups are org-scoped: an ID from
// another organization is indistinguishable from an absent one, so nothing
// leaks across tenants. TransitionApproval is a compare-and-set on the
// pending state; of two concurrent reviews exactly one wins and the other
// observes a state conflict.
type Repository interface {
	CreateOrganization(ctx context.Context, org entities.Organization) error
	GetOrganization(ctx context.Context, orgID string) (entities.Organization, error)

	CreateBoss(ctx context.Context, boss entities.Boss) error
	GetBoss(ctx context.Context, orgID string, bossID string) (entities.Boss, error)

	CreateContractor(ctx context.Context, contractor entities.Contractor) error
	GetContractor(ctx context.Context, orgID string, contractorID string) (entities.Contractor, error)
	ListContractors(ctx context.Context, orgID string, filter ContractorFilter) ([]entities.Contractor, error)
	TransitionApproval(
		ctx context.Context,
		orgID string,
		contractorID string,
		to entities.ApprovalState,
		bossID *string,
		now time.Time,
	) (entities.Contractor, error)
	SetPayRate(ctx context.Context, orgID string, contractorID string, rate float64, now time.Time) (entities.Contractor, error)
}

// TimesheetDirectory answers which contractors already have a timesheet for a
// period. The roster flag is computed from it on every read, never stored.
type TimesheetDirectory interface {
	ContractorsWithTimesheet(ctx context.Context, orgID string, period Period) (map[string]bool, error)
}

// Contractor lifecycle events, published only after the mutation committed.
const (
	EventContractorApplied  = "contractor.applied"
	EventContractorApproved = "contractor.approved"
	EventContractorRejected = "contractor.rejected"
)

// ContractorEvent is the minimal projection shipped to subscribers.
type ContractorEvent struct {
	EventID      string
	Kind         string
	OrgID        string
	ContractorID string
	Name         string
	BossID       string
	OccurredAt   time.Time
}

type EventPublisher interface {
	PublishContractorEvent(ctx context.Context, event ContractorEvent) error
}

// OutboxRow is a committed-but-unpublished event persisted alongside its
// mutation. The relay worker drains rows in commit order per organization.
type OutboxRow struct {
	OutboxID  string
	EventType string
	Payload   []byte
}

type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxRow, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, now time.Time) error
}

package events

import (
	"encoding/json"
	"time"
)

// Envelope is the shared event shape used in Foreman.
// Payloads are minimal projections keyed by event type, never full entities.
type Envelope struct {
	EventID        string          `json:"event_id"`
	EventType      string          `json:"event_type"`
	SourceService  string          `json:"source_service"`
	OccurredAtUTC  time.Time       `json:"occurred_at_utc"`
	OrgID          string          `json:"org_id"`
	RecipientID    string          `json:"recipient_id,omitempty"`
	EntityType     string          `json:"entity_type"`
	EntityID       string          `json:"entity_id"`
	PayloadVersion int             `json:"payload_version"`
	Payload        json.RawMessage `json:"payload"`
}

// Canonical event types emitted by the workforce core.
const (
	TypeContractorApplied  = "contractor.applied"
	TypeContractorApproved = "contractor.approved"
	TypeContractorRejected = "contractor.rejected"
	TypeTimesheetSubmitted = "timesheet.submitted"
)

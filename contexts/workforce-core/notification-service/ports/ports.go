package ports

import (
	"context"
	"time"
)

const (
	RoleBoss       = "boss"
	RoleContractor = "contractor"
)

// Event is the distributor's view of a published notification. RecipientID
// is empty for org-wide events and set when the event is addressed to one
// principal.
type Event struct {
	EventID     string
	Kind        string
	OrgID       string
	RecipientID string
	OccurredAt  time.Time
	Payload     []byte
}

// Subscription identifies one connected listener. Role decides visibility:
// a boss sees every event in the organization, a contractor sees org-wide
// events plus events addressed to them.
type Subscription struct {
	OrgID  string
	UserID string
	Role   string
}

// Bus is the underlying publish/subscribe fabric, topic per organization.
// The returned channel closes when ctx is cancelled.
type Bus interface {
	Subscribe(ctx context.Context, topic string) (<-chan Event, error)
}

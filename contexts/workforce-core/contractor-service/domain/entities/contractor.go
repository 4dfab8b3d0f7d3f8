package entities

import (
	"strings"
	"time"
)

type ApprovalState string

const (
	ApprovalStatePending  ApprovalState = "pending"
	ApprovalStateApproved ApprovalState = "approved"
	ApprovalStateRejected ApprovalState = "rejected"
)

func IsValidApprovalState(state ApprovalState) bool {
	switch state {
	case ApprovalStatePending, ApprovalStateApproved, ApprovalStateRejected:
		return true
	default:
		return false
	}
}

// Organization is the tenancy boundary. Every boss, contractor and timesheet
// belongs to exactly one organization; cross-org references are rejected at
// write time.
type Organization struct {
	OrgID     string
	Name      string
	CreatedAt time.Time
}

type Boss struct {
	BossID    string
	OrgID     string
	Name      string
	Email     string
	CreatedAt time.Time
}

// Contractor is an application record until a boss reviews it. BossID is set
// on approval only, so BossID != nil must hold exactly when the state is
// approved. PayRate stays unset until a boss assigns one.
type Contractor struct {
	ContractorID  string
	OrgID         string
	Name          string
	Email         string
	BossID        *string
	PayRate       *float64
	ApprovalState ApprovalState
	AppliedAt     time.Time
	UpdatedAt     time.Time
}

func (c Contractor) ValidateCreate() bool {
	return strings.TrimSpace(c.OrgID) != "" &&
		strings.TrimSpace(c.Name) != "" &&
		strings.TrimSpace(c.Email) != ""
}

// InvariantHolds reports whether the boss link matches the approval state.
func (c Contractor) InvariantHolds() bool {
	return (c.ApprovalState == ApprovalStateApproved) == (c.BossID != nil)
}

func (c Contractor) HasPayRate() bool {
	return c.PayRate != nil && *c.PayRate > 0
}

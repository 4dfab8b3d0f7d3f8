package entities

import "strings"

// Roles recognized by the workforce core. Bosses and contractors are disjoint
// record kinds that share nothing beyond identity and contact fields.
const (
	RoleBoss       = "boss"
	RoleContractor = "contractor"
)

func IsValidRole(role string) bool {
	switch role {
	case RoleBoss, RoleContractor:
		return true
	default:
		return false
	}
}

// Principal is an authenticated actor. There is no ambient session state;
// every guarded call receives the principal explicitly.
type Principal struct {
	UserID string
	Role   string
	OrgID  string
}

func (p Principal) Validate() bool {
	return strings.TrimSpace(p.UserID) != "" &&
		strings.TrimSpace(p.OrgID) != "" &&
		IsValidRole(p.Role)
}

func (p Principal) IsBoss() bool {
	return p.Role == RoleBoss
}

func (p Principal) IsContractor() bool {
	return p.Role == RoleContractor
}

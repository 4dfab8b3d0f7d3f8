package application

import (
	"log/slog"
	"strings"

	"foreman/contexts/identity-access/access-service/domain/entities"
	domainerrors "foreman/contexts/identity-access/access-service/domain/errors"
)

// Actions guarded by the workforce core. Every read and mutation surface
// names one of these before any ledger access happens.
const (
	ActionListContractors  = "contractors:list"
	ActionReviewContractor = "contractors:review"
	ActionSetPayRate       = "contractors:set-rate"
	ActionSubmitTimesheet  = "timesheets:submit"
	ActionListTimesheets   = "timesheets:list"
	ActionSubscribeEvents  = "events:subscribe"
)

// knownActions rejects typo'd action strings before the permission table is
// consulted, so a miswired route surfaces as its own error, not a denial.
var knownActions = []string{
	ActionListContractors,
	ActionReviewContractor,
	ActionSetPayRate,
	ActionSubmitTimesheet,
	ActionListTimesheets,
	ActionSubscribeEvents,
}

// rolePermissions maps roles to the actions they may ever perform.
// Org and ownership scoping is applied on top of this table.
var rolePermissions = map[string][]string{
	entities.RoleBoss: {
		ActionListContractors,
		ActionReviewContractor,
		ActionSetPayRate,
		ActionListTimesheets,
		ActionSubscribeEvents,
	},
	entities.RoleContractor: {
		ActionSubmitTimesheet,
		ActionListTimesheets,
		ActionSubscribeEvents,
	},
}

// Target identifies the resource scope of a guarded call. OwnerUserID is set
// for resources owned by a single contractor (their application, their
// timesheets); it is empty for org-wide resources.
type Target struct {
	OrgID       string
	OwnerUserID string
}

// Guard is the single allow/deny decision point. It is a pure function of the
// principal and the requested scope; denials perform no data access.
type Guard struct {
	Logger *slog.Logger
}

func (g Guard) CanAct(principal entities.Principal, action string, target Target) error {
	if !principal.Validate() {
		return domainerrors.ErrAuthFailed
	}
	if !containsAction(knownActions, action) {
		return domainerrors.ErrUnknownAction
	}

	perms, ok := rolePermissions[principal.Role]
	if !ok {
		return domainerrors.ErrForbidden
	}
	if !containsAction(perms, action) {
		g.deny(principal, action, "role lacks action")
		return domainerrors.ErrForbidden
	}

	if strings.TrimSpace(target.OrgID) != "" && target.OrgID != principal.OrgID {
		g.deny(principal, action, "org scope mismatch")
		return domainerrors.ErrForbidden
	}

	// Contractors act only on their own records, even inside their org.
	if principal.IsContractor() &&
		strings.TrimSpace(target.OwnerUserID) != "" &&
		target.OwnerUserID != principal.UserID {
		g.deny(principal, action, "ownership mismatch")
		return domainerrors.ErrForbidden
	}

	return nil
}

func (g Guard) deny(principal entities.Principal, action string, reason string) {
	ResolveLogger(g.Logger).Warn("access denied",
		"event", "access_guard_denied",
		"module", "identity-access/access-service",
		"layer", "application",
		"role", principal.Role,
		"action", action,
		"reason", reason,
	)
}

func containsAction(perms []string, action string) bool {
	for _, p := range perms {
		if p == action {
			return true
		}
	}
	return false
}

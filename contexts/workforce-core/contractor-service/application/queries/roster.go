package queries

import (
	"context"
	"log/slog"
	"strings"

	application "foreman/contexts/workforce-core/contractor-service/application"
	"foreman/contexts/workforce-core/contractor-service/domain/entities"
	domainerrors "foreman/contexts/workforce-core/contractor-service/domain/errors"
	"foreman/contexts/workforce-core/contractor-service/ports"
)

// RosterEntry is a contractor annotated with whether a timesheet exists for
// the requested period. The flag is computed on read, never stored.
type RosterEntry struct {
	Contractor   entities.Contractor
	HasTimesheet bool
}

type DropdownFilter struct {
	IncludePending  bool
	IncludeRejected bool
}

type ListContractorsUseCase struct {
	Repo       ports.Repository
	Timesheets ports.TimesheetDirectory
	Logger     *slog.Logger
}

// Roster lists every contractor in the boss's organization for dashboard
// views, flagging the ones that already submitted for the period.
func (uc ListContractorsUseCase) Roster(ctx context.Context, actor ports.Actor, period ports.Period) ([]RosterEntry, error) {
	if actor.Role != ports.RoleBoss || strings.TrimSpace(actor.OrgID) == "" {
		return nil, domainerrors.ErrForbidden
	}

	contractors, err := uc.Repo.ListContractors(ctx, actor.OrgID, ports.ContractorFilter{})
	if err != nil {
		return nil, err
	}

	submitted := map[string]bool{}
	if uc.Timesheets != nil {
		submitted, err = uc.Timesheets.ContractorsWithTimesheet(ctx, actor.OrgID, period)
		if err != nil {
			return nil, err
		}
	}

	entries := make([]RosterEntry, 0, len(contractors))
	for _, contractor := range contractors {
		entries = append(entries, RosterEntry{
			Contractor:   contractor,
			HasTimesheet: submitted[contractor.ContractorID],
		})
	}

	application.ResolveLogger(uc.Logger).Debug("roster listed",
		"event", "contractor_roster_listed",
		"module", "workforce-core/contractor-service",
		"layer", "application",
		"org_id", actor.OrgID,
		"count", len(entries),
	)
	return entries, nil
}

// Dropdown lists contractors for selection widgets. Approved contractors are
// always included; pending and rejected ones only on request.
func (uc ListContractorsUseCase) Dropdown(ctx context.Context, actor ports.Actor, filter DropdownFilter) ([]entities.Contractor, error) {
	if actor.Role != ports.RoleBoss || strings.TrimSpace(actor.OrgID) == "" {
		return nil, domainerrors.ErrForbidden
	}

	states := []entities.ApprovalState{entities.ApprovalStateApproved}
	if filter.IncludePending {
		states = append(states, entities.ApprovalStatePending)
	}
	if filter.IncludeRejected {
		states = append(states, entities.ApprovalStateRejected)
	}

	return uc.Repo.ListContractors(ctx, actor.OrgID, ports.ContractorFilter{States: states})
}

package queries

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"foreman/contexts/workforce-core/timesheet-service/domain/entities"
	domainerrors "foreman/contexts/workforce-core/timesheet-service/domain/errors"
	"foreman/contexts/workforce-core/timesheet-service/ports"
)

// ListTimesheetsUseCase reads the timesheet ledger. A boss reads anything in
// their organization, a contractor reads only their own history; results are
// ordered most recent period first.
type ListTimesheetsUseCase struct {
	Repo   ports.Repository
	Logger *slog.Logger
}

func (uc ListTimesheetsUseCase) Execute(ctx context.Context, actor ports.Actor, filter ports.Filter) ([]entities.Timesheet, error) {
	if strings.TrimSpace(actor.OrgID) == "" || strings.TrimSpace(actor.UserID) == "" {
		return nil, domainerrors.ErrForbidden
	}
	switch actor.Role {
	case ports.RoleBoss:
	case ports.RoleContractor:
		// Self only. A contractor asking for someone else is denied before
		// any repository access.
		if filter.ContractorID != "" && filter.ContractorID != actor.UserID {
			return nil, domainerrors.ErrForbidden
		}
		filter.ContractorID = actor.UserID
	default:
		return nil, domainerrors.ErrForbidden
	}

	sheets, err := uc.Repo.ListTimesheets(ctx, actor.OrgID, filter)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(sheets, func(i, j int) bool {
		if sheets[i].Period != sheets[j].Period {
			return sheets[j].Period.Before(sheets[i].Period)
		}
		return sheets[i].ContractorID < sheets[j].ContractorID
	})
	return sheets, nil
}

// HasTimesheets reports which contractors in the organization already
// submitted for the period. The roster view consumes this through a
// directory port wired in bootstrap.
func (uc ListTimesheetsUseCase) HasTimesheets(ctx context.Context, orgID string, period entities.Period) (map[string]bool, error) {
	return uc.Repo.ContractorsWithTimesheet(ctx, orgID, period)
}

package bootstrap

import (
	"context"
	"errors"

	contractorentities "foreman/contexts/workforce-core/contractor-service/domain/entities"
	contractorerrors "foreman/contexts/workforce-core/contractor-service/domain/errors"
	contractorports "foreman/contexts/workforce-core/contractor-service/ports"
	timesheetentities "foreman/contexts/workforce-core/timesheet-service/domain/entities"
	timesheeterrors "foreman/contexts/workforce-core/timesheet-service/domain/errors"
	timesheetports "foreman/contexts/workforce-core/timesheet-service/ports"
)

// The two workforce slices never import each other. These glue adapters are
// the only bridge: each one narrows a repository to the projection the other
// slice's port asks for, translating sentinels across the boundary.

type contractorDirectory struct {
	repo contractorports.Repository
}

var _ timesheetports.ContractorDirectory = contractorDirectory{}

func (d contractorDirectory) GetContractor(ctx context.Context, orgID string, contractorID string) (timesheetports.ContractorRef, error) {
	contractor, err := d.repo.GetContractor(ctx, orgID, contractorID)
	if err != nil {
		if errors.Is(err, contractorerrors.ErrContractorNotFound) {
			return timesheetports.ContractorRef{}, timesheeterrors.ErrContractorNotFound
		}
		return timesheetports.ContractorRef{}, err
	}
	return timesheetports.ContractorRef{
		ContractorID: contractor.ContractorID,
		OrgID:        contractor.OrgID,
		Approved:     contractor.ApprovalState == contractorentities.ApprovalStateApproved,
		PayRate:      contractor.PayRate,
	}, nil
}

type timesheetDirectory struct {
	repo timesheetports.Repository
}

var _ contractorports.TimesheetDirectory = timesheetDirectory{}

func (d timesheetDirectory) ContractorsWithTimesheet(ctx context.Context, orgID string, period contractorports.Period) (map[string]bool, error) {
	return d.repo.ContractorsWithTimesheet(ctx, orgID, timesheetentities.Period{
		Year:  period.Year,
		Month: period.Month,
	})
}

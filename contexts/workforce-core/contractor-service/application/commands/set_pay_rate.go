package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "foreman/contexts/workforce-core/contractor-service/application"
	"foreman/contexts/workforce-core/contractor-service/domain/entities"
	domainerrors "foreman/contexts/workforce-core/contractor-service/domain/errors"
	"foreman/contexts/workforce-core/contractor-service/ports"
)

// SetPayRateUseCase assigns a contractor's hourly rate. The change is
// forward-looking only: timesheets pin the rate at submission time, so an
// update never re-prices existing submissions.
type SetPayRateUseCase struct {
	Repo         ports.Repository
	Clock        ports.Clock
	WriteTimeout time.Duration
	Logger       *slog.Logger
}

func (uc SetPayRateUseCase) Execute(ctx context.Context, actor ports.Actor, contractorID string, rate float64) (entities.Contractor, error) {
	contractorID = strings.TrimSpace(contractorID)
	if contractorID == "" {
		return entities.Contractor{}, domainerrors.ErrInvalidRequest
	}
	if actor.Role != ports.RoleBoss || strings.TrimSpace(actor.OrgID) == "" {
		return entities.Contractor{}, domainerrors.ErrForbidden
	}
	if rate <= 0 {
		return entities.Contractor{}, domainerrors.ErrInvalidRate
	}

	now := uc.Clock.Now().UTC()
	writeCtx, cancel := application.WithWriteTimeout(ctx, uc.WriteTimeout)
	defer cancel()
	contractor, err := uc.Repo.SetPayRate(writeCtx, actor.OrgID, contractorID, rate, now)
	if err != nil {
		return entities.Contractor{}, application.MapWriteError(err)
	}

	application.ResolveLogger(uc.Logger).Info("pay rate assigned",
		"event", "contractor_pay_rate_assigned",
		"module", "workforce-core/contractor-service",
		"layer", "application",
		"org_id", contractor.OrgID,
		"contractor_id", contractor.ContractorID,
		"rate", rate,
	)
	return contractor, nil
}

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

type ApplyContractorCommand struct {
	OrgID string
	Name  string
	Email string
}

// ApplyContractorUseCase registers a new application. The record starts
// pending with no boss and no pay rate; only a boss review moves it on.
type ApplyContractorUseCase struct {
	Repo         ports.Repository
	Publisher    ports.EventPublisher
	Clock        ports.Clock
	IDGen        ports.IDGenerator
	WriteTimeout time.Duration
	Logger       *slog.Logger
}

func (uc ApplyContractorUseCase) Execute(ctx context.Context, cmd ApplyContractorCommand) (entities.Contractor, error) {
	logger := application.ResolveLogger(uc.Logger)

	contractor := entities.Contractor{
		OrgID: strings.TrimSpace(cmd.OrgID),
		Name:  strings.TrimSpace(cmd.Name),
		Email: strings.ToLower(strings.TrimSpace(cmd.Email)),
	}
	if !contractor.ValidateCreate() {
		return entities.Contractor{}, domainerrors.ErrInvalidRequest
	}

	if _, err := uc.Repo.GetOrganization(ctx, contractor.OrgID); err != nil {
		return entities.Contractor{}, err
	}

	contractorID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Contractor{}, err
	}

	now := uc.Clock.Now().UTC()
	contractor.ContractorID = contractorID
	contractor.ApprovalState = entities.ApprovalStatePending
	contractor.AppliedAt = now
	contractor.UpdatedAt = now

	writeCtx, cancel := application.WithWriteTimeout(ctx, uc.WriteTimeout)
	defer cancel()
	if err := uc.Repo.CreateContractor(writeCtx, contractor); err != nil {
		return entities.Contractor{}, application.MapWriteError(err)
	}

	uc.publish(ctx, ports.ContractorEvent{
		Kind:         ports.EventContractorApplied,
		OrgID:        contractor.OrgID,
		ContractorID: contractor.ContractorID,
		Name:         contractor.Name,
		OccurredAt:   now,
	})

	logger.Info("contractor applied",
		"event", "contractor_applied",
		"module", "workforce-core/contractor-service",
		"layer", "application",
		"org_id", contractor.OrgID,
		"contractor_id", contractor.ContractorID,
	)
	return contractor, nil
}

// publish runs after the commit; a distribution failure is logged and must
// not roll back or fail the already-committed mutation.
func (uc ApplyContractorUseCase) publish(ctx context.Context, event ports.ContractorEvent) {
	if uc.Publisher == nil {
		return
	}
	if err := uc.Publisher.PublishContractorEvent(ctx, event); err != nil {
		application.ResolveLogger(uc.Logger).Error("contractor event publish failed",
			"event", "contractor_event_publish_failed",
			"module", "workforce-core/contractor-service",
			"layer", "application",
			"kind", event.Kind,
			"contractor_id", event.ContractorID,
			"error", err.Error(),
		)
	}
}

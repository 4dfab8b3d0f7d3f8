package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "foreman/contexts/workforce-core/contractor-service/application"
	"foreman/contexts/workforce-core/contractor-service/domain/entities"
	domainerrors "foreman/contexts/workforce-core/contractor-service/domain/errors"
	"foreman/contexts/workforce-core/contractor-service/domain/services"
	"foreman/contexts/workforce-core/contractor-service/ports"
)

// ReviewContractorUseCase owns the approval state machine. The repository
// transition is a compare-and-set on the pending state, so two concurrent
// reviews of the same contractor resolve to exactly one winner; the loser
// fails with a state conflict and no event.
type ReviewContractorUseCase struct {
	Repo         ports.Repository
	Publisher    ports.EventPublisher
	Clock        ports.Clock
	WriteTimeout time.Duration
	Logger       *slog.Logger
}

func (uc ReviewContractorUseCase) Approve(ctx context.Context, actor ports.Actor, contractorID string) (entities.Contractor, error) {
	return uc.review(ctx, actor, contractorID, entities.ApprovalStateApproved)
}

func (uc ReviewContractorUseCase) Reject(ctx context.Context, actor ports.Actor, contractorID string) (entities.Contractor, error) {
	return uc.review(ctx, actor, contractorID, entities.ApprovalStateRejected)
}

func (uc ReviewContractorUseCase) review(
	ctx context.Context,
	actor ports.Actor,
	contractorID string,
	to entities.ApprovalState,
) (entities.Contractor, error) {
	logger := application.ResolveLogger(uc.Logger)

	contractorID = strings.TrimSpace(contractorID)
	if contractorID == "" {
		return entities.Contractor{}, domainerrors.ErrInvalidRequest
	}
	if actor.Role != ports.RoleBoss || strings.TrimSpace(actor.OrgID) == "" {
		return entities.Contractor{}, domainerrors.ErrForbidden
	}

	// The acting boss must exist in the same organization before it can be
	// linked on approval.
	boss, err := uc.Repo.GetBoss(ctx, actor.OrgID, actor.UserID)
	if err != nil {
		return entities.Contractor{}, domainerrors.ErrForbidden
	}

	// The domain rule decides the move up front; the repository CAS
	// re-checks it under the write, so concurrent reviews still resolve
	// to exactly one winner.
	current, err := uc.Repo.GetContractor(ctx, actor.OrgID, contractorID)
	if err != nil {
		return entities.Contractor{}, err
	}
	if err := services.Transition(current.ApprovalState, to); err != nil {
		return entities.Contractor{}, err
	}

	var bossID *string
	if to == entities.ApprovalStateApproved {
		bossID = &boss.BossID
	}

	now := uc.Clock.Now().UTC()
	writeCtx, cancel := application.WithWriteTimeout(ctx, uc.WriteTimeout)
	defer cancel()
	contractor, err := uc.Repo.TransitionApproval(writeCtx, actor.OrgID, contractorID, to, bossID, now)
	if err != nil {
		return entities.Contractor{}, application.MapWriteError(err)
	}

	kind := ports.EventContractorApproved
	logEvent := "contractor_approved"
	if to == entities.ApprovalStateRejected {
		kind = ports.EventContractorRejected
		logEvent = "contractor_rejected"
	}
	uc.publish(ctx, ports.ContractorEvent{
		Kind:         kind,
		OrgID:        contractor.OrgID,
		ContractorID: contractor.ContractorID,
		Name:         contractor.Name,
		BossID:       boss.BossID,
		OccurredAt:   now,
	})

	logger.Info("contractor reviewed",
		"event", logEvent,
		"module", "workforce-core/contractor-service",
		"layer", "application",
		"org_id", contractor.OrgID,
		"contractor_id", contractor.ContractorID,
		"boss_id", boss.BossID,
	)
	return contractor, nil
}

func (uc ReviewContractorUseCase) publish(ctx context.Context, event ports.ContractorEvent) {
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

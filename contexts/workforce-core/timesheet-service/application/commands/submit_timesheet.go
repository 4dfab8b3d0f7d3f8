package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "foreman/contexts/workforce-core/timesheet-service/application"
	"foreman/contexts/workforce-core/timesheet-service/domain/entities"
	domainerrors "foreman/contexts/workforce-core/timesheet-service/domain/errors"
	"foreman/contexts/workforce-core/timesheet-service/domain/services"
	"foreman/contexts/workforce-core/timesheet-service/ports"
)

type SubmitTimesheetCommand struct {
	Period     entities.Period
	HoursByDay map[int]float64
	ImageRefs  []string
	// Attachments are raw bytes stored through the blob store before the
	// ledger write; their URLs append after ImageRefs.
	Attachments [][]byte
}

// SubmitTimesheetUseCase accepts a contractor's submission for one period.
// Only the owning contractor may submit, only once approved, and only with a
// pay rate already assigned; the current rate is pinned onto the row so later
// rate changes never re-price it. The repository upsert keys on
// (contractor_id, period), so resubmission replaces the stored row.
type SubmitTimesheetUseCase struct {
	Repo         ports.Repository
	Directory    ports.ContractorDirectory
	Blobs        ports.BlobStore
	Publisher    ports.EventPublisher
	Clock        ports.Clock
	IDGen        ports.IDGenerator
	WriteTimeout time.Duration
	Logger       *slog.Logger
}

func (uc SubmitTimesheetUseCase) Execute(ctx context.Context, actor ports.Actor, cmd SubmitTimesheetCommand) (entities.Timesheet, error) {
	logger := application.ResolveLogger(uc.Logger)

	if actor.Role != ports.RoleContractor || strings.TrimSpace(actor.UserID) == "" || strings.TrimSpace(actor.OrgID) == "" {
		return entities.Timesheet{}, domainerrors.ErrForbidden
	}
	if err := services.ValidateHours(cmd.Period, cmd.HoursByDay); err != nil {
		return entities.Timesheet{}, err
	}

	contractor, err := uc.Directory.GetContractor(ctx, actor.OrgID, actor.UserID)
	if err != nil {
		return entities.Timesheet{}, err
	}
	if !contractor.Approved {
		return entities.Timesheet{}, domainerrors.ErrContractorNotApproved
	}
	if contractor.PayRate == nil {
		return entities.Timesheet{}, domainerrors.ErrRateNotSet
	}

	imageURLs := append([]string(nil), cmd.ImageRefs...)
	for _, data := range cmd.Attachments {
		url, err := uc.Blobs.Store(ctx, data)
		if err != nil {
			logger.Error("attachment store failed",
				"event", "timesheet_attachment_store_failed",
				"module", "workforce-core/timesheet-service",
				"layer", "application",
				"contractor_id", actor.UserID,
				"error", err.Error(),
			)
			return entities.Timesheet{}, domainerrors.ErrStorage
		}
		imageURLs = append(imageURLs, url)
	}

	timesheetID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Timesheet{}, err
	}

	rate := *contractor.PayRate
	hours := copyHours(cmd.HoursByDay)
	totalHours := services.TotalHours(hours)

	sheet := entities.Timesheet{
		TimesheetID:      timesheetID,
		OrgID:            actor.OrgID,
		ContractorID:     actor.UserID,
		Period:           cmd.Period,
		HoursByDay:       hours,
		ImageURLs:        imageURLs,
		RateAtSubmission: rate,
		TotalHours:       totalHours,
		EstimatedPay:     services.EstimatedPay(totalHours, rate),
		SubmittedAt:      uc.Clock.Now().UTC(),
	}

	writeCtx, cancel := application.WithWriteTimeout(ctx, uc.WriteTimeout)
	defer cancel()

	stored, err := uc.Repo.UpsertTimesheet(writeCtx, sheet)
	if err != nil {
		return entities.Timesheet{}, application.MapWriteError(err)
	}

	logger.Info("timesheet submitted",
		"event", "timesheet_submitted",
		"module", "workforce-core/timesheet-service",
		"layer", "application",
		"org_id", stored.OrgID,
		"contractor_id", stored.ContractorID,
		"period", stored.Period.String(),
		"total_hours", stored.TotalHours,
	)

	uc.publish(ctx, ports.TimesheetEvent{
		Kind:         ports.EventTimesheetSubmitted,
		OrgID:        stored.OrgID,
		ContractorID: stored.ContractorID,
		TimesheetID:  stored.TimesheetID,
		Period:       stored.Period.String(),
		TotalHours:   stored.TotalHours,
		EstimatedPay: stored.EstimatedPay,
		OccurredAt:   stored.SubmittedAt,
	})
	return stored, nil
}

// publish runs after the committed write. A publication failure is logged
// and never rolls the mutation back.
func (uc SubmitTimesheetUseCase) publish(ctx context.Context, event ports.TimesheetEvent) {
	if uc.Publisher == nil {
		return
	}
	if err := uc.Publisher.PublishTimesheetEvent(ctx, event); err != nil {
		application.ResolveLogger(uc.Logger).Error("timesheet event publish failed",
			"event", "timesheet_event_publish_failed",
			"module", "workforce-core/timesheet-service",
			"layer", "application",
			"event_id", event.EventID,
			"error", err.Error(),
		)
	}
}

func copyHours(hoursByDay map[int]float64) map[int]float64 {
	copied := make(map[int]float64, len(hoursByDay))
	for day, hours := range hoursByDay {
		copied[day] = hours
	}
	return copied
}

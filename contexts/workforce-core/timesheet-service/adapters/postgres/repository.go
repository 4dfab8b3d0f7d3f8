package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"foreman/contexts/workforce-core/timesheet-service/domain/entities"
	domainerrors "foreman/contexts/workforce-core/timesheet-service/domain/errors"
	"foreman/contexts/workforce-core/timesheet-service/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"
)

// Repository is the durable timesheet ledger. The unique key on
// (contractor_id, period) makes resubmission a row replacement at the
// database, so concurrent submissions serialize there instead of behind an
// in-process lock. Outbox rows ride the same transaction as the upsert.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&timesheetModel{},
		&outboxModel{},
	)
}

func (r *Repository) UpsertTimesheet(ctx context.Context, sheet entities.Timesheet) (entities.Timesheet, error) {
	row, err := timesheetModelFromEntity(sheet)
	if err != nil {
		return entities.Timesheet{}, err
	}

	var stored entities.Timesheet
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The conflict action keeps the original timesheet_id, so a
		// resubmission replaces content without changing row identity.
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "contractor_id"}, {Name: "period"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"hours_by_day",
				"image_urls",
				"rate_at_submission",
				"total_hours",
				"estimated_pay",
				"submitted_at",
			}),
		}).Create(&row).Error
		if err != nil {
			return err
		}

		var current timesheetModel
		err = tx.Where("contractor_id = ? AND period = ?", row.ContractorID, row.Period).
			First(&current).
			Error
		if err != nil {
			return err
		}
		stored, err = current.toEntity()
		if err != nil {
			return err
		}

		return r.appendOutbox(tx, ports.TimesheetEvent{
			Kind:         ports.EventTimesheetSubmitted,
			OrgID:        stored.OrgID,
			ContractorID: stored.ContractorID,
			TimesheetID:  stored.TimesheetID,
			Period:       stored.Period.String(),
			TotalHours:   stored.TotalHours,
			EstimatedPay: stored.EstimatedPay,
			OccurredAt:   stored.SubmittedAt,
		})
	})
	if err != nil {
		return entities.Timesheet{}, err
	}
	return stored, nil
}

func (r *Repository) GetTimesheet(ctx context.Context, orgID string, contractorID string, period entities.Period) (entities.Timesheet, error) {
	var row timesheetModel
	err := r.db.WithContext(ctx).
		Where("org_id = ? AND contractor_id = ? AND period = ?",
			strings.TrimSpace(orgID), strings.TrimSpace(contractorID), period.String()).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Timesheet{}, domainerrors.ErrTimesheetNotFound
		}
		return entities.Timesheet{}, err
	}
	return row.toEntity()
}

func (r *Repository) ListTimesheets(ctx context.Context, orgID string, filter ports.Filter) ([]entities.Timesheet, error) {
	tx := r.db.WithContext(ctx).Model(&timesheetModel{}).
		Where("org_id = ?", strings.TrimSpace(orgID))
	if filter.ContractorID != "" {
		tx = tx.Where("contractor_id = ?", strings.TrimSpace(filter.ContractorID))
	}
	if filter.Period != nil {
		tx = tx.Where("period = ?", filter.Period.String())
	}

	var rows []timesheetModel
	if err := tx.Order("period DESC, contractor_id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]entities.Timesheet, 0, len(rows))
	for _, row := range rows {
		sheet, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		items = append(items, sheet)
	}
	return items, nil
}

func (r *Repository) ContractorsWithTimesheet(ctx context.Context, orgID string, period entities.Period) (map[string]bool, error) {
	var contractorIDs []string
	err := r.db.WithContext(ctx).Model(&timesheetModel{}).
		Where("org_id = ? AND period = ?", strings.TrimSpace(orgID), period.String()).
		Pluck("contractor_id", &contractorIDs).
		Error
	if err != nil {
		return nil, err
	}

	submitted := make(map[string]bool, len(contractorIDs))
	for _, contractorID := range contractorIDs {
		submitted[contractorID] = true
	}
	return submitted, nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxRow, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []outboxModel
	err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	items := make([]ports.OutboxRow, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.OutboxRow{
			OutboxID:  row.OutboxID,
			EventType: row.EventType,
			Payload:   row.Payload,
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, now time.Time) error {
	published := now.UTC()
	result := r.db.WithContext(ctx).Model(&outboxModel{}).
		Where("outbox_id = ? AND status = ?", strings.TrimSpace(outboxID), outboxStatusPending).
		Updates(map[string]any{
			"status":       outboxStatusPublished,
			"published_at": &published,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrTimesheetNotFound
	}
	return nil
}

func (r *Repository) appendOutbox(tx *gorm.DB, event ports.TimesheetEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	row := outboxModel{
		OutboxID:  newOutboxID(),
		EventType: event.Kind,
		OrgID:     event.OrgID,
		Payload:   payload,
		Status:    outboxStatusPending,
		CreatedAt: time.Now().UTC(),
	}
	return tx.Create(&row).Error
}

package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"foreman/contexts/workforce-core/contractor-service/domain/entities"
	domainerrors "foreman/contexts/workforce-core/contractor-service/domain/errors"
	"foreman/contexts/workforce-core/contractor-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"
)

// Repository is the durable contractor ledger. Conflicting writes serialize
// in the database: the approval transition is a conditional update on the
// pending state and application uniqueness rides on a (org_id, email) key.
// Outbox rows are written in the same transaction as the state change.
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
		&organizationModel{},
		&bossModel{},
		&contractorModel{},
		&outboxModel{},
	)
}

func (r *Repository) CreateOrganization(ctx context.Context, org entities.Organization) error {
	row := organizationModel{
		OrgID:     strings.TrimSpace(org.OrgID),
		Name:      strings.TrimSpace(org.Name),
		CreatedAt: org.CreatedAt.UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrInvalidRequest
		}
		return err
	}
	return nil
}

func (r *Repository) GetOrganization(ctx context.Context, orgID string) (entities.Organization, error) {
	var row organizationModel
	err := r.db.WithContext(ctx).
		Where("org_id = ?", strings.TrimSpace(orgID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Organization{}, domainerrors.ErrOrgNotFound
		}
		return entities.Organization{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) CreateBoss(ctx context.Context, boss entities.Boss) error {
	row := bossModel{
		BossID:    strings.TrimSpace(boss.BossID),
		OrgID:     strings.TrimSpace(boss.OrgID),
		Name:      strings.TrimSpace(boss.Name),
		Email:     strings.ToLower(strings.TrimSpace(boss.Email)),
		CreatedAt: boss.CreatedAt.UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrInvalidRequest
		}
		return err
	}
	return nil
}

func (r *Repository) GetBoss(ctx context.Context, orgID string, bossID string) (entities.Boss, error) {
	var row bossModel
	err := r.db.WithContext(ctx).
		Where("org_id = ? AND boss_id = ?", strings.TrimSpace(orgID), strings.TrimSpace(bossID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Boss{}, domainerrors.ErrForbidden
		}
		return entities.Boss{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) CreateContractor(ctx context.Context, contractor entities.Contractor) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := contractorModelFromEntity(contractor)
		if err := tx.Create(&row).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrContractorExists
			}
			return err
		}
		return r.appendOutbox(tx, ports.ContractorEvent{
			Kind:         ports.EventContractorApplied,
			OrgID:        contractor.OrgID,
			ContractorID: contractor.ContractorID,
			Name:         contractor.Name,
			OccurredAt:   contractor.AppliedAt,
		})
	})
}

func (r *Repository) GetContractor(ctx context.Context, orgID string, contractorID string) (entities.Contractor, error) {
	var row contractorModel
	err := r.db.WithContext(ctx).
		Where("org_id = ? AND contractor_id = ?", strings.TrimSpace(orgID), strings.TrimSpace(contractorID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Contractor{}, domainerrors.ErrContractorNotFound
		}
		return entities.Contractor{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListContractors(ctx context.Context, orgID string, filter ports.ContractorFilter) ([]entities.Contractor, error) {
	tx := r.db.WithContext(ctx).Model(&contractorModel{}).
		Where("org_id = ?", strings.TrimSpace(orgID))
	if len(filter.States) > 0 {
		states := make([]string, 0, len(filter.States))
		for _, state := range filter.States {
			states = append(states, string(state))
		}
		tx = tx.Where("approval_state IN ?", states)
	}

	var rows []contractorModel
	if err := tx.Order("applied_at ASC, contractor_id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]entities.Contractor, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

// TransitionApproval is the compare-and-set review write: the UPDATE only
// matches while the row is still pending, so a concurrent reviewer loses
// with zero rows affected and surfaces a state conflict.
func (r *Repository) TransitionApproval(
	ctx context.Context,
	orgID string,
	contractorID string,
	to entities.ApprovalState,
	bossID *string,
	now time.Time,
) (entities.Contractor, error) {
	var reviewed entities.Contractor
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&contractorModel{}).
			Where("org_id = ? AND contractor_id = ? AND approval_state = ?",
				strings.TrimSpace(orgID), strings.TrimSpace(contractorID), string(entities.ApprovalStatePending)).
			Updates(map[string]any{
				"approval_state": string(to),
				"boss_id":        bossID,
				"updated_at":     now.UTC(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var row contractorModel
			err := tx.Where("org_id = ? AND contractor_id = ?",
				strings.TrimSpace(orgID), strings.TrimSpace(contractorID)).
				First(&row).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrContractorNotFound
			}
			if err != nil {
				return err
			}
			return domainerrors.ErrStateConflict
		}

		var row contractorModel
		if err := tx.Where("org_id = ? AND contractor_id = ?",
			strings.TrimSpace(orgID), strings.TrimSpace(contractorID)).
			First(&row).Error; err != nil {
			return err
		}
		reviewed = row.toEntity()

		kind := ports.EventContractorApproved
		if to == entities.ApprovalStateRejected {
			kind = ports.EventContractorRejected
		}
		event := ports.ContractorEvent{
			Kind:         kind,
			OrgID:        reviewed.OrgID,
			ContractorID: reviewed.ContractorID,
			Name:         reviewed.Name,
			OccurredAt:   now.UTC(),
		}
		if bossID != nil {
			event.BossID = *bossID
		}
		return r.appendOutbox(tx, event)
	})
	if err != nil {
		return entities.Contractor{}, err
	}
	return reviewed, nil
}

func (r *Repository) SetPayRate(ctx context.Context, orgID string, contractorID string, rate float64, now time.Time) (entities.Contractor, error) {
	result := r.db.WithContext(ctx).Model(&contractorModel{}).
		Where("org_id = ? AND contractor_id = ?", strings.TrimSpace(orgID), strings.TrimSpace(contractorID)).
		Updates(map[string]any{
			"pay_rate":   rate,
			"updated_at": now.UTC(),
		})
	if result.Error != nil {
		return entities.Contractor{}, result.Error
	}
	if result.RowsAffected == 0 {
		return entities.Contractor{}, domainerrors.ErrContractorNotFound
	}
	return r.GetContractor(ctx, orgID, contractorID)
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
		return domainerrors.ErrStateConflict
	}
	return nil
}

func (r *Repository) appendOutbox(tx *gorm.DB, event ports.ContractorEvent) error {
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

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

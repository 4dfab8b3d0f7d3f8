package postgresadapter

import (
	"time"

	"github.com/google/uuid"

	"foreman/contexts/workforce-core/contractor-service/domain/entities"
)

type organizationModel struct {
	OrgID     string    `gorm:"column:org_id;primaryKey"`
	Name      string    `gorm:"column:name"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (organizationModel) TableName() string { return "organizations" }

func (m organizationModel) toEntity() entities.Organization {
	return entities.Organization{
		OrgID:     m.OrgID,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
	}
}

type bossModel struct {
	BossID    string    `gorm:"column:boss_id;primaryKey"`
	OrgID     string    `gorm:"column:org_id;index"`
	Name      string    `gorm:"column:name"`
	Email     string    `gorm:"column:email"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (bossModel) TableName() string { return "bosses" }

func (m bossModel) toEntity() entities.Boss {
	return entities.Boss{
		BossID:    m.BossID,
		OrgID:     m.OrgID,
		Name:      m.Name,
		Email:     m.Email,
		CreatedAt: m.CreatedAt,
	}
}

type contractorModel struct {
	ContractorID  string    `gorm:"column:contractor_id;primaryKey"`
	OrgID         string    `gorm:"column:org_id;index;uniqueIndex:uq_contractor_org_email"`
	Name          string    `gorm:"column:name"`
	Email         string    `gorm:"column:email;uniqueIndex:uq_contractor_org_email"`
	BossID        *string   `gorm:"column:boss_id"`
	PayRate       *float64  `gorm:"column:pay_rate"`
	ApprovalState string    `gorm:"column:approval_state;index"`
	AppliedAt     time.Time `gorm:"column:applied_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (contractorModel) TableName() string { return "contractors" }

func contractorModelFromEntity(contractor entities.Contractor) contractorModel {
	return contractorModel{
		ContractorID:  contractor.ContractorID,
		OrgID:         contractor.OrgID,
		Name:          contractor.Name,
		Email:         contractor.Email,
		BossID:        contractor.BossID,
		PayRate:       contractor.PayRate,
		ApprovalState: string(contractor.ApprovalState),
		AppliedAt:     contractor.AppliedAt.UTC(),
		UpdatedAt:     contractor.UpdatedAt.UTC(),
	}
}

func (m contractorModel) toEntity() entities.Contractor {
	return entities.Contractor{
		ContractorID:  m.ContractorID,
		OrgID:         m.OrgID,
		Name:          m.Name,
		Email:         m.Email,
		BossID:        m.BossID,
		PayRate:       m.PayRate,
		ApprovalState: entities.ApprovalState(m.ApprovalState),
		AppliedAt:     m.AppliedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

type outboxModel struct {
	OutboxID    string     `gorm:"column:outbox_id;primaryKey"`
	EventType   string     `gorm:"column:event_type"`
	OrgID       string     `gorm:"column:org_id;index"`
	Payload     []byte     `gorm:"column:payload;type:jsonb"`
	Status      string     `gorm:"column:status;index"`
	RetryCount  int        `gorm:"column:retry_count"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	PublishedAt *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string { return "contractor_outbox" }

func newOutboxID() string {
	return uuid.NewString()
}

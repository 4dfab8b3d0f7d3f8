package postgresadapter

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"foreman/contexts/workforce-core/timesheet-service/domain/entities"
)

type timesheetModel struct {
	TimesheetID      string    `gorm:"column:timesheet_id;primaryKey"`
	OrgID            string    `gorm:"column:org_id;index"`
	ContractorID     string    `gorm:"column:contractor_id;uniqueIndex:uq_timesheet_contractor_period"`
	Period           string    `gorm:"column:period;uniqueIndex:uq_timesheet_contractor_period"`
	HoursByDay       []byte    `gorm:"column:hours_by_day;type:jsonb"`
	ImageURLs        []byte    `gorm:"column:image_urls;type:jsonb"`
	RateAtSubmission float64   `gorm:"column:rate_at_submission"`
	TotalHours       float64   `gorm:"column:total_hours"`
	EstimatedPay     float64   `gorm:"column:estimated_pay"`
	SubmittedAt      time.Time `gorm:"column:submitted_at"`
}

func (timesheetModel) TableName() string { return "timesheets" }

func timesheetModelFromEntity(sheet entities.Timesheet) (timesheetModel, error) {
	hours, err := json.Marshal(sheet.HoursByDay)
	if err != nil {
		return timesheetModel{}, err
	}
	urls, err := json.Marshal(sheet.ImageURLs)
	if err != nil {
		return timesheetModel{}, err
	}
	return timesheetModel{
		TimesheetID:      sheet.TimesheetID,
		OrgID:            sheet.OrgID,
		ContractorID:     sheet.ContractorID,
		Period:           sheet.Period.String(),
		HoursByDay:       hours,
		ImageURLs:        urls,
		RateAtSubmission: sheet.RateAtSubmission,
		TotalHours:       sheet.TotalHours,
		EstimatedPay:     sheet.EstimatedPay,
		SubmittedAt:      sheet.SubmittedAt.UTC(),
	}, nil
}

func (m timesheetModel) toEntity() (entities.Timesheet, error) {
	period, err := entities.ParsePeriod(m.Period)
	if err != nil {
		return entities.Timesheet{}, err
	}
	var hours map[int]float64
	if err := json.Unmarshal(m.HoursByDay, &hours); err != nil {
		return entities.Timesheet{}, err
	}
	var urls []string
	if len(m.ImageURLs) > 0 {
		if err := json.Unmarshal(m.ImageURLs, &urls); err != nil {
			return entities.Timesheet{}, err
		}
	}
	return entities.Timesheet{
		TimesheetID:      m.TimesheetID,
		OrgID:            m.OrgID,
		ContractorID:     m.ContractorID,
		Period:           period,
		HoursByDay:       hours,
		ImageURLs:        urls,
		RateAtSubmission: m.RateAtSubmission,
		TotalHours:       m.TotalHours,
		EstimatedPay:     m.EstimatedPay,
		SubmittedAt:      m.SubmittedAt,
	}, nil
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

func (outboxModel) TableName() string { return "timesheet_outbox" }

func newOutboxID() string {
	return uuid.NewString()
}

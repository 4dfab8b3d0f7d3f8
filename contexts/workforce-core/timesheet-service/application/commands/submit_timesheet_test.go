package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"foreman/contexts/workforce-core/timesheet-service/domain/entities"
	domainerrors "foreman/contexts/workforce-core/timesheet-service/domain/errors"
	"foreman/contexts/workforce-core/timesheet-service/ports"
)

// stalledRepo never completes a write: the upsert parks on the context so
// the write-timeout path is the only way out.
type stalledRepo struct{}

func (stalledRepo) UpsertTimesheet(ctx context.Context, _ entities.Timesheet) (entities.Timesheet, error) {
	<-ctx.Done()
	return entities.Timesheet{}, ctx.Err()
}

func (stalledRepo) GetTimesheet(context.Context, string, string, entities.Period) (entities.Timesheet, error) {
	return entities.Timesheet{}, domainerrors.ErrTimesheetNotFound
}

func (stalledRepo) ListTimesheets(context.Context, string, ports.Filter) ([]entities.Timesheet, error) {
	return nil, nil
}

func (stalledRepo) ContractorsWithTimesheet(context.Context, string, entities.Period) (map[string]bool, error) {
	return nil, nil
}

type approvedDirectory struct {
	rate float64
}

func (d approvedDirectory) GetContractor(_ context.Context, orgID string, contractorID string) (ports.ContractorRef, error) {
	rate := d.rate
	return ports.ContractorRef{
		ContractorID: contractorID,
		OrgID:        orgID,
		Approved:     true,
		PayRate:      &rate,
	}, nil
}

type countingPublisher struct {
	published int
}

func (p *countingPublisher) PublishTimesheetEvent(context.Context, ports.TimesheetEvent) error {
	p.published++
	return nil
}

type fixedClock struct{}

func (fixedClock) Now() time.Time {
	return time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
}

type staticIDGen struct{}

func (staticIDGen) NewID(context.Context) (string, error) {
	return "ts_000001", nil
}

// A submission whose durability write misses the bound must surface a
// timeout and must not tell subscribers about state that never committed.
func TestSubmitWriteTimeoutSuppressesEvent(t *testing.T) {
	publisher := &countingPublisher{}
	uc := SubmitTimesheetUseCase{
		Repo:         stalledRepo{},
		Directory:    approvedDirectory{rate: 20},
		Publisher:    publisher,
		Clock:        fixedClock{},
		IDGen:        staticIDGen{},
		WriteTimeout: 10 * time.Millisecond,
	}

	_, err := uc.Execute(context.Background(),
		ports.Actor{UserID: "c-1", Role: ports.RoleContractor, OrgID: "org-a"},
		SubmitTimesheetCommand{
			Period:     entities.Period{Year: 2024, Month: 3},
			HoursByDay: map[int]float64{1: 8},
		})
	if !errors.Is(err, domainerrors.ErrTimeout) {
		t.Fatalf("expected timeout from a stalled write, got %v", err)
	}
	if publisher.published != 0 {
		t.Fatalf("no event may be published for an uncommitted write, got %d", publisher.published)
	}
}

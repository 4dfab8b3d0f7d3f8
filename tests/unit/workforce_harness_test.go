package unit

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	contractorservice "foreman/contexts/workforce-core/contractor-service"
	contractormemory "foreman/contexts/workforce-core/contractor-service/adapters/memory"
	contractorentities "foreman/contexts/workforce-core/contractor-service/domain/entities"
	contractorerrors "foreman/contexts/workforce-core/contractor-service/domain/errors"
	contractorports "foreman/contexts/workforce-core/contractor-service/ports"
	contractorhttp "foreman/contexts/workforce-core/contractor-service/transport/http"
	timesheetservice "foreman/contexts/workforce-core/timesheet-service"
	timesheetmemory "foreman/contexts/workforce-core/timesheet-service/adapters/memory"
	timesheetentities "foreman/contexts/workforce-core/timesheet-service/domain/entities"
	timesheeterrors "foreman/contexts/workforce-core/timesheet-service/domain/errors"
	timesheetports "foreman/contexts/workforce-core/timesheet-service/ports"
	timesheethttp "foreman/contexts/workforce-core/timesheet-service/transport/http"
)

// workforce bundles both slices wired over in-memory stores the same way the
// composition root does it, so scenario tests can drive the full flow.
type workforce struct {
	contractors contractorservice.Module
	timesheets  timesheetservice.Module
	blobs       *timesheetmemory.BlobStore
}

type contractorDirectory struct {
	store *contractormemory.Store
}

func (d contractorDirectory) GetContractor(ctx context.Context, orgID string, contractorID string) (timesheetports.ContractorRef, error) {
	contractor, err := d.store.GetContractor(ctx, orgID, contractorID)
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
	store *timesheetmemory.Store
}

func (d timesheetDirectory) ContractorsWithTimesheet(ctx context.Context, orgID string, period contractorports.Period) (map[string]bool, error) {
	return d.store.ContractorsWithTimesheet(ctx, orgID, timesheetentities.Period{
		Year:  period.Year,
		Month: period.Month,
	})
}

func newWorkforce(
	contractorPublisher contractorports.EventPublisher,
	timesheetPublisher timesheetports.EventPublisher,
) workforce {
	now := time.Now().UTC()
	contractorStore := contractormemory.NewStore(contractormemory.Seed{
		Organizations: []contractorentities.Organization{
			{OrgID: "org-a", Name: "Org A", CreatedAt: now},
			{OrgID: "org-b", Name: "Org B", CreatedAt: now},
		},
		Bosses: []contractorentities.Boss{
			{BossID: "boss-a", OrgID: "org-a", Name: "Boss A", Email: "boss@org-a.test", CreatedAt: now},
			{BossID: "boss-b", OrgID: "org-b", Name: "Boss B", Email: "boss@org-b.test", CreatedAt: now},
		},
	})
	timesheetStore := timesheetmemory.NewStore()
	blobs := timesheetmemory.NewBlobStore()
	logger := slog.Default()

	contractors := contractorservice.NewModule(contractorservice.Dependencies{
		Repo:        contractorStore,
		Timesheets:  timesheetDirectory{store: timesheetStore},
		Publisher:   contractorPublisher,
		Clock:       contractorStore,
		IDGenerator: contractorStore,
		Logger:      logger,
	})
	contractors.Store = contractorStore

	timesheets := timesheetservice.NewModule(timesheetservice.Dependencies{
		Repo:        timesheetStore,
		Directory:   contractorDirectory{store: contractorStore},
		Blobs:       blobs,
		Publisher:   timesheetPublisher,
		Clock:       timesheetStore,
		IDGenerator: timesheetStore,
		Logger:      logger,
	})
	timesheets.Store = timesheetStore
	timesheets.Blobs = blobs

	return workforce{contractors: contractors, timesheets: timesheets, blobs: blobs}
}

func bossActor(org string, id string) contractorports.Actor {
	return contractorports.Actor{UserID: id, Role: contractorports.RoleBoss, OrgID: org}
}

func bossTimesheetActor(org string, id string) timesheetports.Actor {
	return timesheetports.Actor{UserID: id, Role: timesheetports.RoleBoss, OrgID: org}
}

func contractorActor(org string, id string) timesheetports.Actor {
	return timesheetports.Actor{UserID: id, Role: timesheetports.RoleContractor, OrgID: org}
}

// applyAndApprove walks a fresh application through approval and returns the
// contractor ID.
func applyAndApprove(t *testing.T, w workforce, org string, boss string, name string, email string) string {
	t.Helper()
	ctx := context.Background()

	applied, err := w.contractors.Handler.ApplyContractorHandler(ctx, org,
		contractorhttp.ApplyContractorRequest{Name: name, Email: email})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	contractorID := applied.Contractor.ContractorID

	if _, err := w.contractors.Handler.ApproveContractorHandler(ctx, bossActor(org, boss), contractorID); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	return contractorID
}

func submitTimesheet(t *testing.T, w workforce, org string, contractorID string, period string, hours map[int]float64) timesheethttp.TimesheetDTO {
	t.Helper()
	resp, err := w.timesheets.Handler.SubmitTimesheetHandler(context.Background(), contractorActor(org, contractorID),
		timesheethttp.SubmitTimesheetRequest{Period: period, HoursByDay: hours})
	if err != nil {
		t.Fatalf("submit timesheet failed: %v", err)
	}
	return resp.Timesheet
}

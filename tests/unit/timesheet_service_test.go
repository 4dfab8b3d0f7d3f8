package unit

import (
	"context"
	"errors"
	"testing"

	contractorhttp "foreman/contexts/workforce-core/contractor-service/transport/http"
	timesheeterrors "foreman/contexts/workforce-core/timesheet-service/domain/errors"
	timesheethttp "foreman/contexts/workforce-core/timesheet-service/transport/http"
)

// The rate-pinning walkthrough: submission is refused until a rate exists,
// the submission prices at the rate current at that moment, and later rate
// changes never touch the stored row.
func TestRatePinningLifecycle(t *testing.T) {
	w := newWorkforce(nil, nil)
	ctx := context.Background()
	contractorID := applyAndApprove(t, w, "org-a", "boss-a", "Ada", "ada@org-a.test")

	_, err := w.timesheets.Handler.SubmitTimesheetHandler(ctx, contractorActor("org-a", contractorID),
		timesheethttp.SubmitTimesheetRequest{Period: "2024-03", HoursByDay: map[int]float64{1: 8, 2: 8}})
	if !errors.Is(err, timesheeterrors.ErrRateNotSet) {
		t.Fatalf("expected rate not set before a boss assigns one, got %v", err)
	}

	if _, err := w.contractors.Handler.SetPayRateHandler(ctx, bossActor("org-a", "boss-a"), contractorID,
		contractorhttp.SetPayRateRequest{Rate: 20}); err != nil {
		t.Fatalf("set pay rate failed: %v", err)
	}

	sheet := submitTimesheet(t, w, "org-a", contractorID, "2024-03", map[int]float64{1: 8, 2: 8})
	if sheet.TotalHours != 16 {
		t.Fatalf("expected 16 total hours, got %v", sheet.TotalHours)
	}
	if sheet.EstimatedPay != 320 {
		t.Fatalf("expected estimated pay 320, got %v", sheet.EstimatedPay)
	}
	if sheet.RateAtSubmission != 20 {
		t.Fatalf("expected pinned rate 20, got %v", sheet.RateAtSubmission)
	}

	if _, err := w.contractors.Handler.SetPayRateHandler(ctx, bossActor("org-a", "boss-a"), contractorID,
		contractorhttp.SetPayRateRequest{Rate: 25}); err != nil {
		t.Fatalf("rate change failed: %v", err)
	}

	listed, err := w.timesheets.Handler.ListTimesheetsHandler(ctx, contractorActor("org-a", contractorID), "", "")
	if err != nil {
		t.Fatalf("list timesheets failed: %v", err)
	}
	if len(listed.Items) != 1 {
		t.Fatalf("expected one stored timesheet, got %d", len(listed.Items))
	}
	if listed.Items[0].EstimatedPay != 320 || listed.Items[0].RateAtSubmission != 20 {
		t.Fatalf("rate change must not re-price the stored timesheet, got pay %v at rate %v",
			listed.Items[0].EstimatedPay, listed.Items[0].RateAtSubmission)
	}
}

func TestResubmissionReplacesNotDuplicates(t *testing.T) {
	w := newWorkforce(nil, nil)
	ctx := context.Background()
	contractorID := applyAndApprove(t, w, "org-a", "boss-a", "Ada", "ada@org-a.test")
	if _, err := w.contractors.Handler.SetPayRateHandler(ctx, bossActor("org-a", "boss-a"), contractorID,
		contractorhttp.SetPayRateRequest{Rate: 20}); err != nil {
		t.Fatalf("set pay rate failed: %v", err)
	}

	first := submitTimesheet(t, w, "org-a", contractorID, "2024-03", map[int]float64{1: 8})
	second := submitTimesheet(t, w, "org-a", contractorID, "2024-03", map[int]float64{2: 4, 3: 4})

	if first.TimesheetID != second.TimesheetID {
		t.Fatalf("resubmission must keep the row identity, got %s then %s", first.TimesheetID, second.TimesheetID)
	}

	listed, err := w.timesheets.Handler.ListTimesheetsHandler(ctx, contractorActor("org-a", contractorID), "", "2024-03")
	if err != nil {
		t.Fatalf("list timesheets failed: %v", err)
	}
	if len(listed.Items) != 1 {
		t.Fatalf("expected exactly one row for the period, got %d", len(listed.Items))
	}
	stored := listed.Items[0]
	if stored.TotalHours != 8 {
		t.Fatalf("expected the later submission's hours, got %v", stored.TotalHours)
	}
	if _, ok := stored.HoursByDay[1]; ok {
		t.Fatal("the earlier submission's hours must be fully replaced")
	}
}

func TestSubmitValidation(t *testing.T) {
	w := newWorkforce(nil, nil)
	ctx := context.Background()
	contractorID := applyAndApprove(t, w, "org-a", "boss-a", "Ada", "ada@org-a.test")
	if _, err := w.contractors.Handler.SetPayRateHandler(ctx, bossActor("org-a", "boss-a"), contractorID,
		contractorhttp.SetPayRateRequest{Rate: 20}); err != nil {
		t.Fatalf("set pay rate failed: %v", err)
	}

	submit := func(period string, hours map[int]float64) error {
		_, err := w.timesheets.Handler.SubmitTimesheetHandler(ctx, contractorActor("org-a", contractorID),
			timesheethttp.SubmitTimesheetRequest{Period: period, HoursByDay: hours})
		return err
	}

	// April has 30 days, so day 32 can never be valid.
	if err := submit("2024-04", map[int]float64{32: 5}); !errors.Is(err, timesheeterrors.ErrInvalidHours) {
		t.Fatalf("expected invalid hours for day 32, got %v", err)
	}
	if err := submit("2024-04", map[int]float64{1: 25}); !errors.Is(err, timesheeterrors.ErrInvalidHours) {
		t.Fatalf("expected invalid hours for a 25 hour day, got %v", err)
	}
	if err := submit("2024-04", map[int]float64{}); !errors.Is(err, timesheeterrors.ErrEmptyTimesheet) {
		t.Fatalf("expected empty timesheet error, got %v", err)
	}
	if err := submit("april", map[int]float64{1: 8}); !errors.Is(err, timesheeterrors.ErrInvalidRequest) {
		t.Fatalf("expected invalid request for a malformed period, got %v", err)
	}
}

func TestSubmitRequiresApproval(t *testing.T) {
	w := newWorkforce(nil, nil)
	ctx := context.Background()

	applied, err := w.contractors.Handler.ApplyContractorHandler(ctx, "org-a",
		contractorhttp.ApplyContractorRequest{Name: "Ada", Email: "ada@org-a.test"})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	_, err = w.timesheets.Handler.SubmitTimesheetHandler(ctx, contractorActor("org-a", applied.Contractor.ContractorID),
		timesheethttp.SubmitTimesheetRequest{Period: "2024-03", HoursByDay: map[int]float64{1: 8}})
	if !errors.Is(err, timesheeterrors.ErrContractorNotApproved) {
		t.Fatalf("expected not-approved rejection for a pending contractor, got %v", err)
	}
}

func TestListTimesheetsConfinement(t *testing.T) {
	w := newWorkforce(nil, nil)
	ctx := context.Background()

	ada := applyAndApprove(t, w, "org-a", "boss-a", "Ada", "ada@org-a.test")
	ben := applyAndApprove(t, w, "org-a", "boss-a", "Ben", "ben@org-a.test")
	eve := applyAndApprove(t, w, "org-b", "boss-b", "Eve", "eve@org-b.test")
	for _, id := range []string{ada, ben} {
		if _, err := w.contractors.Handler.SetPayRateHandler(ctx, bossActor("org-a", "boss-a"), id,
			contractorhttp.SetPayRateRequest{Rate: 15}); err != nil {
			t.Fatalf("set pay rate failed: %v", err)
		}
	}
	if _, err := w.contractors.Handler.SetPayRateHandler(ctx, bossActor("org-b", "boss-b"), eve,
		contractorhttp.SetPayRateRequest{Rate: 15}); err != nil {
		t.Fatalf("set pay rate failed: %v", err)
	}

	submitTimesheet(t, w, "org-a", ada, "2024-03", map[int]float64{1: 8})
	submitTimesheet(t, w, "org-a", ben, "2024-03", map[int]float64{2: 6})
	submitTimesheet(t, w, "org-b", eve, "2024-03", map[int]float64{3: 4})

	// A contractor sees only their own rows, even asking for someone else.
	own, err := w.timesheets.Handler.ListTimesheetsHandler(ctx, contractorActor("org-a", ada), "", "")
	if err != nil {
		t.Fatalf("self listing failed: %v", err)
	}
	if len(own.Items) != 1 || own.Items[0].ContractorID != ada {
		t.Fatalf("contractor must see exactly their own rows, got %+v", own.Items)
	}
	if _, err := w.timesheets.Handler.ListTimesheetsHandler(ctx, contractorActor("org-a", ada), ben, ""); !errors.Is(err, timesheeterrors.ErrForbidden) {
		t.Fatalf("expected forbidden for another contractor's history, got %v", err)
	}

	// A boss sees the whole org and nothing beyond it.
	orgWide, err := w.timesheets.Handler.ListTimesheetsHandler(ctx, bossTimesheetActor("org-a", "boss-a"), "", "")
	if err != nil {
		t.Fatalf("boss listing failed: %v", err)
	}
	if len(orgWide.Items) != 2 {
		t.Fatalf("expected two rows for org-a, got %d", len(orgWide.Items))
	}
	for _, item := range orgWide.Items {
		if item.OrgID != "org-a" {
			t.Fatalf("boss listing leaked a foreign-org row: %+v", item)
		}
	}
}

func TestHistoryOrderedMostRecentFirst(t *testing.T) {
	w := newWorkforce(nil, nil)
	ctx := context.Background()
	contractorID := applyAndApprove(t, w, "org-a", "boss-a", "Ada", "ada@org-a.test")
	if _, err := w.contractors.Handler.SetPayRateHandler(ctx, bossActor("org-a", "boss-a"), contractorID,
		contractorhttp.SetPayRateRequest{Rate: 20}); err != nil {
		t.Fatalf("set pay rate failed: %v", err)
	}

	submitTimesheet(t, w, "org-a", contractorID, "2024-01", map[int]float64{1: 8})
	submitTimesheet(t, w, "org-a", contractorID, "2024-03", map[int]float64{1: 8})
	submitTimesheet(t, w, "org-a", contractorID, "2024-02", map[int]float64{1: 8})

	listed, err := w.timesheets.Handler.ListTimesheetsHandler(ctx, contractorActor("org-a", contractorID), "", "")
	if err != nil {
		t.Fatalf("list timesheets failed: %v", err)
	}
	got := []string{}
	for _, item := range listed.Items {
		got = append(got, item.Period)
	}
	want := []string{"2024-03", "2024-02", "2024-01"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}

func TestAttachmentsStoredBeforeSubmission(t *testing.T) {
	w := newWorkforce(nil, nil)
	ctx := context.Background()
	contractorID := applyAndApprove(t, w, "org-a", "boss-a", "Ada", "ada@org-a.test")
	if _, err := w.contractors.Handler.SetPayRateHandler(ctx, bossActor("org-a", "boss-a"), contractorID,
		contractorhttp.SetPayRateRequest{Rate: 20}); err != nil {
		t.Fatalf("set pay rate failed: %v", err)
	}

	uploaded, err := w.timesheets.Handler.UploadAttachmentHandler(ctx, contractorActor("org-a", contractorID), []byte("receipt"))
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	if _, ok := w.blobs.Get(uploaded.URL); !ok {
		t.Fatalf("uploaded bytes not retrievable at %s", uploaded.URL)
	}

	resp, err := w.timesheets.Handler.SubmitTimesheetHandler(ctx, contractorActor("org-a", contractorID),
		timesheethttp.SubmitTimesheetRequest{
			Period:     "2024-04",
			HoursByDay: map[int]float64{1: 8},
			ImageRefs:  []string{uploaded.URL},
		})
	if err != nil {
		t.Fatalf("submit with attachment failed: %v", err)
	}
	if len(resp.Timesheet.ImageURLs) != 1 || resp.Timesheet.ImageURLs[0] != uploaded.URL {
		t.Fatalf("expected the attachment URL on the stored row, got %v", resp.Timesheet.ImageURLs)
	}
}

func TestInlineAttachmentsStoredWithSubmission(t *testing.T) {
	w := newWorkforce(nil, nil)
	ctx := context.Background()
	contractorID := applyAndApprove(t, w, "org-a", "boss-a", "Ada", "ada@org-a.test")
	if _, err := w.contractors.Handler.SetPayRateHandler(ctx, bossActor("org-a", "boss-a"), contractorID,
		contractorhttp.SetPayRateRequest{Rate: 20}); err != nil {
		t.Fatalf("set pay rate failed: %v", err)
	}

	resp, err := w.timesheets.Handler.SubmitTimesheetHandler(ctx, contractorActor("org-a", contractorID),
		timesheethttp.SubmitTimesheetRequest{
			Period:      "2024-03",
			HoursByDay:  map[int]float64{1: 8},
			Attachments: [][]byte{[]byte("receipt")},
		})
	if err != nil {
		t.Fatalf("submit with inline attachment failed: %v", err)
	}
	if len(resp.Timesheet.ImageURLs) != 1 {
		t.Fatalf("expected one stored attachment URL, got %v", resp.Timesheet.ImageURLs)
	}
	data, ok := w.blobs.Get(resp.Timesheet.ImageURLs[0])
	if !ok || string(data) != "receipt" {
		t.Fatalf("attachment bytes not retrievable at %s", resp.Timesheet.ImageURLs[0])
	}
}

func TestStorageFailureWritesNothing(t *testing.T) {
	w := newWorkforce(nil, nil)
	ctx := context.Background()
	contractorID := applyAndApprove(t, w, "org-a", "boss-a", "Ada", "ada@org-a.test")
	if _, err := w.contractors.Handler.SetPayRateHandler(ctx, bossActor("org-a", "boss-a"), contractorID,
		contractorhttp.SetPayRateRequest{Rate: 20}); err != nil {
		t.Fatalf("set pay rate failed: %v", err)
	}

	w.blobs.Fail = true
	_, err := w.timesheets.Handler.UploadAttachmentHandler(ctx, contractorActor("org-a", contractorID), []byte("receipt"))
	if !errors.Is(err, timesheeterrors.ErrStorage) {
		t.Fatalf("expected storage error, got %v", err)
	}

	// The inline path fails the same way, before any ledger write.
	_, err = w.timesheets.Handler.SubmitTimesheetHandler(ctx, contractorActor("org-a", contractorID),
		timesheethttp.SubmitTimesheetRequest{
			Period:      "2024-03",
			HoursByDay:  map[int]float64{1: 8},
			Attachments: [][]byte{[]byte("receipt")},
		})
	if !errors.Is(err, timesheeterrors.ErrStorage) {
		t.Fatalf("expected storage error on inline submit, got %v", err)
	}
	w.blobs.Fail = false

	listed, err := w.timesheets.Handler.ListTimesheetsHandler(ctx, contractorActor("org-a", contractorID), "", "")
	if err != nil {
		t.Fatalf("list timesheets failed: %v", err)
	}
	if len(listed.Items) != 0 {
		t.Fatalf("no timesheet row may exist after a storage failure, got %d", len(listed.Items))
	}
}

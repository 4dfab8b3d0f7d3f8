package httpadapter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"foreman/contexts/workforce-core/timesheet-service/application/commands"
	"foreman/contexts/workforce-core/timesheet-service/application/queries"
	"foreman/contexts/workforce-core/timesheet-service/domain/entities"
	domainerrors "foreman/contexts/workforce-core/timesheet-service/domain/errors"
	"foreman/contexts/workforce-core/timesheet-service/ports"
	httptransport "foreman/contexts/workforce-core/timesheet-service/transport/http"
)

type Handler struct {
	SubmitTimesheet commands.SubmitTimesheetUseCase
	ListTimesheets  queries.ListTimesheetsUseCase
	Blobs           ports.BlobStore
	Logger          *slog.Logger
}

func (h Handler) SubmitTimesheetHandler(
	ctx context.Context,
	actor ports.Actor,
	req httptransport.SubmitTimesheetRequest,
) (httptransport.SubmitTimesheetResponse, error) {
	period, err := entities.ParsePeriod(req.Period)
	if err != nil {
		return httptransport.SubmitTimesheetResponse{}, domainerrors.ErrInvalidRequest
	}
	sheet, err := h.SubmitTimesheet.Execute(ctx, actor, commands.SubmitTimesheetCommand{
		Period:      period,
		HoursByDay:  req.HoursByDay,
		ImageRefs:   append([]string(nil), req.ImageRefs...),
		Attachments: req.Attachments,
	})
	if err != nil {
		return httptransport.SubmitTimesheetResponse{}, err
	}
	return httptransport.SubmitTimesheetResponse{Timesheet: mapTimesheet(sheet)}, nil
}

func (h Handler) ListTimesheetsHandler(
	ctx context.Context,
	actor ports.Actor,
	contractorID string,
	period string,
) (httptransport.ListTimesheetsResponse, error) {
	filter := ports.Filter{ContractorID: strings.TrimSpace(contractorID)}
	if strings.TrimSpace(period) != "" {
		parsed, err := entities.ParsePeriod(period)
		if err != nil {
			return httptransport.ListTimesheetsResponse{}, domainerrors.ErrInvalidRequest
		}
		filter.Period = &parsed
	}

	sheets, err := h.ListTimesheets.Execute(ctx, actor, filter)
	if err != nil {
		return httptransport.ListTimesheetsResponse{}, err
	}
	items := make([]httptransport.TimesheetDTO, 0, len(sheets))
	for _, sheet := range sheets {
		items = append(items, mapTimesheet(sheet))
	}
	return httptransport.ListTimesheetsResponse{Items: items}, nil
}

// UploadAttachmentHandler stores raw attachment bytes ahead of a submission
// and returns the opaque URL to reference in image_refs.
func (h Handler) UploadAttachmentHandler(
	ctx context.Context,
	actor ports.Actor,
	data []byte,
) (httptransport.UploadAttachmentResponse, error) {
	if actor.Role != ports.RoleContractor || strings.TrimSpace(actor.UserID) == "" {
		return httptransport.UploadAttachmentResponse{}, domainerrors.ErrForbidden
	}
	if len(data) == 0 {
		return httptransport.UploadAttachmentResponse{}, domainerrors.ErrInvalidRequest
	}
	url, err := h.Blobs.Store(ctx, data)
	if err != nil {
		return httptransport.UploadAttachmentResponse{}, domainerrors.ErrStorage
	}
	return httptransport.UploadAttachmentResponse{URL: url}, nil
}

func mapTimesheet(sheet entities.Timesheet) httptransport.TimesheetDTO {
	return httptransport.TimesheetDTO{
		TimesheetID:      sheet.TimesheetID,
		OrgID:            sheet.OrgID,
		ContractorID:     sheet.ContractorID,
		Period:           sheet.Period.String(),
		HoursByDay:       sheet.HoursByDay,
		ImageURLs:        sheet.ImageURLs,
		RateAtSubmission: sheet.RateAtSubmission,
		TotalHours:       sheet.TotalHours,
		EstimatedPay:     sheet.EstimatedPay,
		SubmittedAt:      sheet.SubmittedAt.UTC().Format(time.RFC3339),
	}
}

package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	accessapp "foreman/contexts/identity-access/access-service/application"
	"foreman/contexts/identity-access/access-service/domain/entities"
	timesheeterrors "foreman/contexts/workforce-core/timesheet-service/domain/errors"
	timesheetports "foreman/contexts/workforce-core/timesheet-service/ports"
	timesheethttp "foreman/contexts/workforce-core/timesheet-service/transport/http"
)

// Attachment uploads are capped; anything larger is a client error, not a
// storage failure.
const maxAttachmentBytes = 8 << 20

func timesheetActor(principal entities.Principal) timesheetports.Actor {
	return timesheetports.Actor{
		UserID: principal.UserID,
		Role:   principal.Role,
		OrgID:  principal.OrgID,
	}
}

func (s *Server) handleSubmitTimesheet(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.resolvePrincipal(r)
	if !ok {
		writeUnauthorized(w)
		return
	}
	target := accessapp.Target{OrgID: principal.OrgID, OwnerUserID: principal.UserID}
	if err := s.access.Guard.CanAct(principal, accessapp.ActionSubmitTimesheet, target); err != nil {
		writeGuardError(w, err)
		return
	}

	var req timesheethttp.SubmitTimesheetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.timesheets.Handler.SubmitTimesheetHandler(r.Context(), timesheetActor(principal), req)
	if err != nil {
		writeTimesheetDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListTimesheets(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.resolvePrincipal(r)
	if !ok {
		writeUnauthorized(w)
		return
	}

	query := r.URL.Query()
	target := accessapp.Target{OrgID: principal.OrgID}
	if principal.IsContractor() {
		target.OwnerUserID = principal.UserID
	}
	if err := s.access.Guard.CanAct(principal, accessapp.ActionListTimesheets, target); err != nil {
		writeGuardError(w, err)
		return
	}

	resp, err := s.timesheets.Handler.ListTimesheetsHandler(
		r.Context(),
		timesheetActor(principal),
		query.Get("contractor_id"),
		query.Get("period"),
	)
	if err != nil {
		writeTimesheetDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUploadAttachment(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.resolvePrincipal(r)
	if !ok {
		writeUnauthorized(w)
		return
	}
	target := accessapp.Target{OrgID: principal.OrgID, OwnerUserID: principal.UserID}
	if err := s.access.Guard.CanAct(principal, accessapp.ActionSubmitTimesheet, target); err != nil {
		writeGuardError(w, err)
		return
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxAttachmentBytes+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "could not read attachment body")
		return
	}
	if len(data) > maxAttachmentBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "attachment_too_large", "attachment exceeds the size limit")
		return
	}

	resp, err := s.timesheets.Handler.UploadAttachmentHandler(r.Context(), timesheetActor(principal), data)
	if err != nil {
		writeTimesheetDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func writeTimesheetDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, timesheeterrors.ErrTimesheetNotFound):
		writeError(w, http.StatusNotFound, "timesheet_not_found", err.Error())
	case errors.Is(err, timesheeterrors.ErrContractorNotFound):
		writeError(w, http.StatusNotFound, "contractor_not_found", err.Error())
	case errors.Is(err, timesheeterrors.ErrContractorNotApproved):
		writeError(w, http.StatusConflict, "contractor_not_approved", err.Error())
	case errors.Is(err, timesheeterrors.ErrInvalidHours):
		writeError(w, http.StatusUnprocessableEntity, "invalid_hours", err.Error())
	case errors.Is(err, timesheeterrors.ErrEmptyTimesheet):
		writeError(w, http.StatusUnprocessableEntity, "empty_timesheet", err.Error())
	case errors.Is(err, timesheeterrors.ErrRateNotSet):
		writeError(w, http.StatusUnprocessableEntity, "rate_not_set", err.Error())
	case errors.Is(err, timesheeterrors.ErrInvalidRequest):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, timesheeterrors.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, timesheeterrors.ErrTimeout):
		writeError(w, http.StatusGatewayTimeout, "timeout", err.Error())
	case errors.Is(err, timesheeterrors.ErrStorage):
		writeError(w, http.StatusBadGateway, "storage_error", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

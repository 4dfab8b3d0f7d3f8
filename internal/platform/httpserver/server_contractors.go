package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	accessapp "foreman/contexts/identity-access/access-service/application"
	"foreman/contexts/identity-access/access-service/domain/entities"
	contractorerrors "foreman/contexts/workforce-core/contractor-service/domain/errors"
	contractorports "foreman/contexts/workforce-core/contractor-service/ports"
	contractorhttp "foreman/contexts/workforce-core/contractor-service/transport/http"
)

func contractorActor(principal entities.Principal) contractorports.Actor {
	return contractorports.Actor{
		UserID: principal.UserID,
		Role:   principal.Role,
		OrgID:  principal.OrgID,
	}
}

// Applying is the one unauthenticated surface: the applicant has no
// principal yet. The target organization comes from the path.
func (s *Server) handleApplyContractor(w http.ResponseWriter, r *http.Request) {
	var req contractorhttp.ApplyContractorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.contractors.Handler.ApplyContractorHandler(r.Context(), r.PathValue("org_id"), req)
	if err != nil {
		writeContractorDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleRoster(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.resolvePrincipal(r)
	if !ok {
		writeUnauthorized(w)
		return
	}
	if err := s.access.Guard.CanAct(principal, accessapp.ActionListContractors, accessapp.Target{OrgID: principal.OrgID}); err != nil {
		writeGuardError(w, err)
		return
	}

	period := r.URL.Query().Get("period")
	if period == "" {
		period = time.Now().UTC().Format("2006-01")
	}

	resp, err := s.contractors.Handler.RosterHandler(r.Context(), contractorActor(principal), period)
	if err != nil {
		writeContractorDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDropdown(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.resolvePrincipal(r)
	if !ok {
		writeUnauthorized(w)
		return
	}
	if err := s.access.Guard.CanAct(principal, accessapp.ActionListContractors, accessapp.Target{OrgID: principal.OrgID}); err != nil {
		writeGuardError(w, err)
		return
	}

	query := r.URL.Query()
	resp, err := s.contractors.Handler.DropdownHandler(
		r.Context(),
		contractorActor(principal),
		query.Get("include_pending") == "true",
		query.Get("include_rejected") == "true",
	)
	if err != nil {
		writeContractorDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleApproveContractor(w http.ResponseWriter, r *http.Request) {
	s.handleReview(w, r, true)
}

func (s *Server) handleRejectContractor(w http.ResponseWriter, r *http.Request) {
	s.handleReview(w, r, false)
}

func (s *Server) handleReview(w http.ResponseWriter, r *http.Request, approve bool) {
	principal, ok := s.resolvePrincipal(r)
	if !ok {
		writeUnauthorized(w)
		return
	}
	if err := s.access.Guard.CanAct(principal, accessapp.ActionReviewContractor, accessapp.Target{OrgID: principal.OrgID}); err != nil {
		writeGuardError(w, err)
		return
	}

	contractorID := r.PathValue("contractor_id")
	var (
		resp contractorhttp.ReviewContractorResponse
		err  error
	)
	if approve {
		resp, err = s.contractors.Handler.ApproveContractorHandler(r.Context(), contractorActor(principal), contractorID)
	} else {
		resp, err = s.contractors.Handler.RejectContractorHandler(r.Context(), contractorActor(principal), contractorID)
	}
	if err != nil {
		writeContractorDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSetPayRate(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.resolvePrincipal(r)
	if !ok {
		writeUnauthorized(w)
		return
	}
	if err := s.access.Guard.CanAct(principal, accessapp.ActionSetPayRate, accessapp.Target{OrgID: principal.OrgID}); err != nil {
		writeGuardError(w, err)
		return
	}

	var req contractorhttp.SetPayRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.contractors.Handler.SetPayRateHandler(
		r.Context(),
		contractorActor(principal),
		r.PathValue("contractor_id"),
		req,
	)
	if err != nil {
		writeContractorDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeContractorDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, contractorerrors.ErrOrgNotFound):
		writeError(w, http.StatusNotFound, "org_not_found", err.Error())
	case errors.Is(err, contractorerrors.ErrContractorNotFound):
		writeError(w, http.StatusNotFound, "contractor_not_found", err.Error())
	case errors.Is(err, contractorerrors.ErrContractorExists):
		writeError(w, http.StatusConflict, "contractor_exists", err.Error())
	case errors.Is(err, contractorerrors.ErrStateConflict):
		writeError(w, http.StatusConflict, "state_conflict", err.Error())
	case errors.Is(err, contractorerrors.ErrInvalidRate):
		writeError(w, http.StatusUnprocessableEntity, "invalid_rate", err.Error())
	case errors.Is(err, contractorerrors.ErrInvalidRequest):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, contractorerrors.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, contractorerrors.ErrTimeout):
		writeError(w, http.StatusGatewayTimeout, "timeout", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

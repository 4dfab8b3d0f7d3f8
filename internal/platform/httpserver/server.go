package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	accessservice "foreman/contexts/identity-access/access-service"
	accesserrors "foreman/contexts/identity-access/access-service/domain/errors"
	"foreman/contexts/identity-access/access-service/domain/entities"
	accessports "foreman/contexts/identity-access/access-service/ports"
	contractorservice "foreman/contexts/workforce-core/contractor-service"
	notificationservice "foreman/contexts/workforce-core/notification-service"
	timesheetservice "foreman/contexts/workforce-core/timesheet-service"
	_ "foreman/internal/platform/httpserver/docs"
)

// Server exposes the workforce core over HTTP. Identity is resolved from
// trusted headers through the access module, and every route consults the
// guard before any handler touches a ledger.
type Server struct {
	mux           *http.ServeMux
	logger        *slog.Logger
	addr          string
	access        accessservice.Module
	contractors   contractorservice.Module
	timesheets    timesheetservice.Module
	notifications notificationservice.Module
}

func New(
	access accessservice.Module,
	contractors contractorservice.Module,
	timesheets timesheetservice.Module,
	notifications notificationservice.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:           http.NewServeMux(),
		logger:        logger,
		addr:          addr,
		access:        access,
		contractors:   contractors,
		timesheets:    timesheets,
		notifications: notifications,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Handler exposes the mux for httptest-driven tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /api/workforce/v1/orgs/{org_id}/applications", s.handleApplyContractor)
	s.mux.HandleFunc("GET /api/workforce/v1/contractors", s.handleRoster)
	s.mux.HandleFunc("GET /api/workforce/v1/contractors/dropdown", s.handleDropdown)
	s.mux.HandleFunc("POST /api/workforce/v1/contractors/{contractor_id}/approve", s.handleApproveContractor)
	s.mux.HandleFunc("POST /api/workforce/v1/contractors/{contractor_id}/reject", s.handleRejectContractor)
	s.mux.HandleFunc("PUT /api/workforce/v1/contractors/{contractor_id}/pay-rate", s.handleSetPayRate)
	s.mux.HandleFunc("POST /api/workforce/v1/timesheets", s.handleSubmitTimesheet)
	s.mux.HandleFunc("GET /api/workforce/v1/timesheets", s.handleListTimesheets)
	s.mux.HandleFunc("POST /api/workforce/v1/attachments", s.handleUploadAttachment)
	s.mux.HandleFunc("GET /api/workforce/v1/events", s.handleStreamEvents)
}

// resolvePrincipal authenticates the trusted identity headers. Routes that
// require a caller fail with 401 before any guard or ledger access.
func (s *Server) resolvePrincipal(r *http.Request) (entities.Principal, bool) {
	principal, err := s.access.Identity.Authenticate(r.Context(), accessports.Credentials{
		UserID: r.Header.Get("X-User-Id"),
		Role:   r.Header.Get("X-User-Role"),
		OrgID:  r.Header.Get("X-Org-Id"),
	})
	if err != nil {
		return entities.Principal{}, false
	}
	return principal, true
}

func writeUnauthorized(w http.ResponseWriter) {
	writeError(w, http.StatusUnauthorized, "missing_identity",
		"X-User-Id, X-User-Role and X-Org-Id headers are required")
}

func writeGuardError(w http.ResponseWriter, err error) {
	if errors.Is(err, accesserrors.ErrAuthFailed) {
		writeUnauthorized(w)
		return
	}
	writeError(w, http.StatusForbidden, "forbidden", "action not permitted for this principal")
}

func writeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

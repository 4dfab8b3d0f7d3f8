package httpserver

import (
	"net/http"

	accessapp "foreman/contexts/identity-access/access-service/application"
	notificationports "foreman/contexts/workforce-core/notification-service/ports"
)

// handleStreamEvents upgrades the request to a server-sent event stream.
// The subscription lives for the connection and is scoped to the caller's
// organization and identity.
func (s *Server) handleStreamEvents(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.resolvePrincipal(r)
	if !ok {
		writeUnauthorized(w)
		return
	}
	if err := s.access.Guard.CanAct(principal, accessapp.ActionSubscribeEvents, accessapp.Target{OrgID: principal.OrgID}); err != nil {
		writeGuardError(w, err)
		return
	}

	err := s.notifications.Handler.StreamEventsHandler(w, r, notificationports.Subscription{
		OrgID:  principal.OrgID,
		UserID: principal.UserID,
		Role:   principal.Role,
	})
	if err != nil {
		// The stream handler only fails before the first byte is written,
		// so an error response is still possible here.
		s.logger.Warn("event stream rejected",
			"event", "event_stream_rejected",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"org_id", principal.OrgID,
			"error", err.Error(),
		)
		writeError(w, http.StatusBadRequest, "invalid_subscription", err.Error())
	}
}

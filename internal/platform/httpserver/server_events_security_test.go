package httpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestEventStreamRequiresIdentityHeaders(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/workforce/v1/events", nil)

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestEventStreamRejectsUnknownRole(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/workforce/v1/events", nil)
	identify(req, "admin-1", "admin", "org-a")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for an unrecognized role, got %d body=%s", rr.Code, rr.Body.String())
	}
}

// A cancelled request context makes the stream terminate immediately, which
// lets this test assert the SSE handshake without holding a connection open.
func TestEventStreamOpensForBoss(t *testing.T) {
	server := newTestServer()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := httptest.NewRequest(http.MethodGet, "/api/workforce/v1/events", nil).WithContext(ctx)
	identify(req, "boss-a", "boss", "org-a")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		t.Fatalf("expected an event-stream content type, got %q", ct)
	}
}

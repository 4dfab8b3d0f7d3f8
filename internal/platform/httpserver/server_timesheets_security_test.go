package httpserver

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSubmitTimesheetRequiresIdentityHeaders(t *testing.T) {
	server := newTestServer()
	body := []byte(`{"period":"2024-03","hours_by_day":{"1":8}}`)
	req := httptest.NewRequest(http.MethodPost, "/api/workforce/v1/timesheets", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestSubmitTimesheetRejectsBossRole(t *testing.T) {
	server := newTestServer()
	body := []byte(`{"period":"2024-03","hours_by_day":{"1":8}}`)
	req := httptest.NewRequest(http.MethodPost, "/api/workforce/v1/timesheets", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	identify(req, "boss-a", "boss", "org-a")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestSubmitTimesheetUnknownContractorAnswersNotFound(t *testing.T) {
	server := newTestServer()
	body := []byte(`{"period":"2024-03","hours_by_day":{"1":8}}`)
	req := httptest.NewRequest(http.MethodPost, "/api/workforce/v1/timesheets", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	identify(req, "ghost", "contractor", "org-a")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for an unknown contractor, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestListTimesheetsRequiresIdentityHeaders(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/workforce/v1/timesheets", nil)

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestUploadAttachmentRejectsBossRole(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/api/workforce/v1/attachments", bytes.NewReader([]byte("receipt")))
	identify(req, "boss-a", "boss", "org-a")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestUploadAttachmentCapsBodySize(t *testing.T) {
	server := newTestServer()
	oversized := bytes.Repeat([]byte("x"), maxAttachmentBytes+1)
	req := httptest.NewRequest(http.MethodPost, "/api/workforce/v1/attachments", bytes.NewReader(oversized))
	identify(req, "contractor-1", "contractor", "org-a")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d body=%s", rr.Code, rr.Body.String())
	}
}

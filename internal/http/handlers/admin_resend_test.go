package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/presq/leadcapture/internal/notify"
	"github.com/presq/leadcapture/internal/store"
)

type mockNotifier struct {
	resendResult *notify.ResendResult
	resendErr    error
	health       notify.HealthStatus
	lastID       string
	lastType     notify.EmailType
}

func (m *mockNotifier) Resend(_ context.Context, submissionID string, emailType notify.EmailType) (*notify.ResendResult, error) {
	m.lastID = submissionID
	m.lastType = emailType
	if m.resendErr != nil {
		return nil, m.resendErr
	}
	return m.resendResult, nil
}

func (m *mockNotifier) HealthCheck(_ context.Context) notify.HealthStatus {
	return m.health
}

func postResend(t *testing.T, h *AdminResendHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/admin/notifications/resend", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Resend(rec, req)
	return rec
}

func TestAdminResendSuccess(t *testing.T) {
	notifier := &mockNotifier{resendResult: &notify.ResendResult{
		SubmissionID: "SUB_1756400000000_a1b2c3",
		EmailType:    notify.EmailTypeAdmin,
		Admin:        &notify.SendResult{Sent: true, MessageID: "msg-1"},
	}}
	h := NewAdminResendHandler(notifier, testLogger())

	rec := postResend(t, h, `{"submissionId":"SUB_1756400000000_a1b2c3","emailType":"admin"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if notifier.lastID != "SUB_1756400000000_a1b2c3" || notifier.lastType != notify.EmailTypeAdmin {
		t.Errorf("notifier called with %q %q", notifier.lastID, notifier.lastType)
	}
	var result notify.ResendResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.Admin == nil || !result.Admin.Sent {
		t.Errorf("admin result = %+v", result.Admin)
	}
}

func TestAdminResendDefaultsToBoth(t *testing.T) {
	notifier := &mockNotifier{resendResult: &notify.ResendResult{}}
	h := NewAdminResendHandler(notifier, testLogger())

	rec := postResend(t, h, `{"submissionId":"SUB_1_aaaaaa"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if notifier.lastType != notify.EmailTypeBoth {
		t.Errorf("email type = %q", notifier.lastType)
	}
}

func TestAdminResendMissingSubmissionID(t *testing.T) {
	h := NewAdminResendHandler(&mockNotifier{}, testLogger())

	rec := postResend(t, h, `{"emailType":"admin"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestAdminResendInvalidEmailType(t *testing.T) {
	h := NewAdminResendHandler(&mockNotifier{}, testLogger())

	rec := postResend(t, h, `{"submissionId":"SUB_1_aaaaaa","emailType":"everyone"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestAdminResendNotFound(t *testing.T) {
	notifier := &mockNotifier{resendErr: store.ErrSubmissionNotFound}
	h := NewAdminResendHandler(notifier, testLogger())

	rec := postResend(t, h, `{"submissionId":"SUB_999_zzzzzz"}`)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestAdminResendInternalError(t *testing.T) {
	notifier := &mockNotifier{resendErr: errors.New("smtp down")}
	h := NewAdminResendHandler(notifier, testLogger())

	rec := postResend(t, h, `{"submissionId":"SUB_1_aaaaaa"}`)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, rec.Code)
	}
	if strings.Contains(rec.Body.String(), "smtp") {
		t.Error("internal detail leaked in response")
	}
}

func TestHealthLiveness(t *testing.T) {
	h := NewHealthHandler(nil, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.Liveness(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status = %q", body["status"])
	}
}

func TestHealthEmailHealthy(t *testing.T) {
	notifier := &mockNotifier{health: notify.HealthStatus{Status: "healthy", Provider: "ses", Timestamp: "2025-08-28T12:00:00Z"}}
	h := NewHealthHandler(notifier, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/health/email", nil)
	rec := httptest.NewRecorder()
	h.Email(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	var status notify.HealthStatus
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if status.Status != "healthy" || status.Provider != "ses" {
		t.Errorf("status = %+v", status)
	}
}

func TestHealthEmailUnhealthy(t *testing.T) {
	notifier := &mockNotifier{health: notify.HealthStatus{Status: "unhealthy", Error: "invalid api key"}}
	h := NewHealthHandler(notifier, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/health/email", nil)
	rec := httptest.NewRecorder()
	h.Email(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status %d, got %d", http.StatusServiceUnavailable, rec.Code)
	}
}

func TestHealthEmailNotConfigured(t *testing.T) {
	h := NewHealthHandler(nil, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/health/email", nil)
	rec := httptest.NewRecorder()
	h.Email(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status %d, got %d", http.StatusServiceUnavailable, rec.Code)
	}
}

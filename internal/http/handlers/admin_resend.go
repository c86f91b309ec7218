package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/presq/leadcapture/internal/notify"
	"github.com/presq/leadcapture/internal/store"
	"github.com/presq/leadcapture/pkg/logging"
)

// Notifier is the notification pipeline surface the admin endpoints need.
type Notifier interface {
	Resend(ctx context.Context, submissionID string, emailType notify.EmailType) (*notify.ResendResult, error)
	HealthCheck(ctx context.Context) notify.HealthStatus
}

// AdminResendHandler exposes the manual notification resend operation.
type AdminResendHandler struct {
	notifier Notifier
	logger   *logging.Logger
}

func NewAdminResendHandler(notifier Notifier, logger *logging.Logger) *AdminResendHandler {
	if notifier == nil {
		panic("handlers: notifier required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &AdminResendHandler{notifier: notifier, logger: logger}
}

// ResendRequest selects the submission and which emails to re-dispatch.
type ResendRequest struct {
	SubmissionID string `json:"submissionId"`
	EmailType    string `json:"emailType,omitempty"`
}

// Resend handles POST /admin/notifications/resend.
func (h *AdminResendHandler) Resend(w http.ResponseWriter, r *http.Request) {
	var req ResendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.SubmissionID == "" {
		jsonError(w, "missing submissionId", http.StatusBadRequest)
		return
	}
	emailType, err := notify.ParseEmailType(req.EmailType)
	if err != nil {
		jsonError(w, "emailType must be admin, customer, or both", http.StatusBadRequest)
		return
	}

	result, err := h.notifier.Resend(r.Context(), req.SubmissionID, emailType)
	if err != nil {
		if errors.Is(err, store.ErrSubmissionNotFound) {
			jsonError(w, "submission not found", http.StatusNotFound)
			return
		}
		h.logger.Error("resend failed", "submission_id", req.SubmissionID, "error", err)
		jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

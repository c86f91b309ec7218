package handlers

import (
	"net/http"
	"time"

	"github.com/presq/leadcapture/pkg/logging"
)

// HealthHandler serves liveness and email gateway health endpoints.
type HealthHandler struct {
	notifier Notifier
	logger   *logging.Logger
}

func NewHealthHandler(notifier Notifier, logger *logging.Logger) *HealthHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &HealthHandler{notifier: notifier, logger: logger}
}

// Liveness handles GET /health.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Email handles GET /health/email: verifies gateway connectivity and
// credentials without sending a message.
func (h *HealthHandler) Email(w http.ResponseWriter, r *http.Request) {
	if h.notifier == nil {
		jsonError(w, "email service not configured", http.StatusServiceUnavailable)
		return
	}
	status := h.notifier.HealthCheck(r.Context())
	code := http.StatusOK
	if status.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, status)
}

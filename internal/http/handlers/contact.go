package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/presq/leadcapture/internal/observability/metrics"
	"github.com/presq/leadcapture/internal/store"
	"github.com/presq/leadcapture/internal/submissions"
	"github.com/presq/leadcapture/pkg/logging"
)

// UserMessageNotConfigured is shown when the backing services are missing.
const UserMessageNotConfigured = "Contact form service is not properly configured. Please try again later or contact us directly."

// SubmissionStore is the write-path surface the contact handler needs.
type SubmissionStore interface {
	CreateSubmission(ctx context.Context, sub *submissions.Submission) error
	LogAnalyticsEvent(ctx context.Context, event submissions.AnalyticsEvent) error
	LogError(ctx context.Context, errorType string, cause error, logCtx map[string]any) error
}

// EventPublisher announces persisted submissions to the notification queue.
type EventPublisher interface {
	PublishSubmissionCreated(ctx context.Context, sub *submissions.Submission) error
}

// SessionProvider resolves a visitor key into a stable session id.
type SessionProvider interface {
	GetOrCreate(ctx context.Context, visitorKey string) (string, error)
}

// ContactRequest is the public contact form payload: the form fields plus the
// ambient browser state the client captures alongside them.
type ContactRequest struct {
	submissions.FormData

	PageURL          string                        `json:"pageUrl,omitempty"`
	Referrer         string                        `json:"referrer,omitempty"`
	UTMSource        string                        `json:"utmSource,omitempty"`
	UTMMedium        string                        `json:"utmMedium,omitempty"`
	UTMCampaign      string                        `json:"utmCampaign,omitempty"`
	ScreenResolution *submissions.ScreenResolution `json:"screenResolution,omitempty"`
	Timezone         string                        `json:"timezone,omitempty"`
}

// ContactResponse is the success payload returned to the form.
type ContactResponse struct {
	Success bool        `json:"success"`
	Data    ContactData `json:"data"`
	Message string      `json:"message"`
}

// ContactData summarizes the stored record for the client.
type ContactData struct {
	SubmissionID    string `json:"submissionId"`
	CompanyID       string `json:"companyId"`
	Source          string `json:"source"`
	Timestamp       string `json:"timestamp"`
	LeadScore       int    `json:"leadScore"`
	CustomerSegment string `json:"customerSegment"`
	UrgencyLevel    string `json:"urgencyLevel"`
	Subject         string `json:"subject"`
}

// ValidationErrorResponse carries field-level violations back to the form.
type ValidationErrorResponse struct {
	Success bool                     `json:"success"`
	Errors  []submissions.FieldError `json:"errors"`
}

// FailureResponse carries a user-safe failure message.
type FailureResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// ContactHandler accepts public contact form submissions.
type ContactHandler struct {
	builder   *submissions.Builder
	store     SubmissionStore
	publisher EventPublisher
	sessions  SessionProvider
	logger    *logging.Logger
	metrics   *metrics.PipelineMetrics
	now       func() time.Time
}

// NewContactHandler creates the contact submission handler. A nil store or
// publisher marks the deployment as unconfigured; requests then get the
// generic configuration-error message instead of a crash.
func NewContactHandler(builder *submissions.Builder, st SubmissionStore, publisher EventPublisher, sessions SessionProvider, logger *logging.Logger, m *metrics.PipelineMetrics) *ContactHandler {
	if builder == nil {
		panic("handlers: builder required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &ContactHandler{
		builder:   builder,
		store:     st,
		publisher: publisher,
		sessions:  sessions,
		logger:    logger,
		metrics:   m,
		now:       time.Now,
	}
}

// Submit handles POST /contact.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	if h.store == nil || h.publisher == nil {
		h.logger.Error("contact form not configured", "store", h.store != nil, "publisher", h.publisher != nil)
		writeJSON(w, http.StatusServiceUnavailable, FailureResponse{Success: false, Error: UserMessageNotConfigured})
		return
	}

	cctx := h.clientContext(r, &req)
	sub, validation := h.builder.Build(req.FormData, cctx)
	if validation != nil {
		h.metrics.ObserveSubmission("invalid", "")
		writeJSON(w, http.StatusBadRequest, ValidationErrorResponse{Success: false, Errors: validation.Errors})
		return
	}

	if err := h.store.CreateSubmission(r.Context(), sub); err != nil {
		h.persistenceFailure(w, r, sub, err)
		return
	}

	if err := h.publisher.PublishSubmissionCreated(r.Context(), sub); err != nil {
		// The record is stored; the submitter's request already succeeded.
		// Notifications can be replayed via the admin resend endpoint.
		h.logger.Error("submission created event publish failed",
			"submission_id", sub.SubmissionID, "error", err)
		h.logBestEffort(sub, "event_publish_failed", err)
	}

	h.logAnalytics(sub)
	h.metrics.ObserveSubmission("created", sub.Priority)

	writeJSON(w, http.StatusCreated, ContactResponse{
		Success: true,
		Data: ContactData{
			SubmissionID:    sub.SubmissionID,
			CompanyID:       sub.CompanyID,
			Source:          sub.Source,
			Timestamp:       h.now().UTC().Format(time.RFC3339),
			LeadScore:       sub.LeadScore,
			CustomerSegment: sub.CustomerSegment,
			UrgencyLevel:    sub.UrgencyLevel,
			Subject:         sub.Subject,
		},
		Message: "Your message has been sent successfully! We'll respond within 24 hours.",
	})
}

func (h *ContactHandler) clientContext(r *http.Request, req *ContactRequest) submissions.ClientContext {
	sessionID := ""
	if h.sessions != nil {
		visitorKey := r.Header.Get("X-Visitor-Key")
		id, err := h.sessions.GetOrCreate(r.Context(), visitorKey)
		if err != nil {
			// A session is nice-to-have tracking context, not a precondition.
			h.logger.Warn("session resolution failed", "error", err)
		} else {
			sessionID = id
		}
	}

	return submissions.ClientContext{
		SessionID:        sessionID,
		UserAgent:        r.UserAgent(),
		Referrer:         req.Referrer,
		PageURL:          req.PageURL,
		UTMSource:        req.UTMSource,
		UTMMedium:        req.UTMMedium,
		UTMCampaign:      req.UTMCampaign,
		ScreenResolution: req.ScreenResolution,
		Timezone:         req.Timezone,
	}
}

func (h *ContactHandler) persistenceFailure(w http.ResponseWriter, r *http.Request, sub *submissions.Submission, err error) {
	h.logger.Error("submission persistence failed",
		"submission_id", sub.SubmissionID, "error", err)
	h.metrics.ObserveSubmission("persistence_failed", sub.Priority)
	h.logBestEffort(sub, "submission_create_failed", err)

	userMessage := store.UserMessagePersistenceFailure
	var gwErr *store.GatewayError
	if errors.As(err, &gwErr) && gwErr.UserMessage != "" {
		userMessage = gwErr.UserMessage
	}
	writeJSON(w, http.StatusInternalServerError, FailureResponse{Success: false, Error: userMessage})
}

// logAnalytics records the submission event off the request path. Failures
// are downgraded to warnings and never reach the submitter.
func (h *ContactHandler) logAnalytics(sub *submissions.Submission) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		event := submissions.AnalyticsEvent{
			EventName: "contact_form_submission",
			EventData: map[string]any{
				"submissionId":    sub.SubmissionID,
				"leadScore":       sub.LeadScore,
				"customerSegment": sub.CustomerSegment,
				"estimatedValue":  sub.EstimatedValue,
				"urgencyLevel":    sub.UrgencyLevel,
			},
			CompanyID: sub.CompanyID,
			Source:    sub.Source,
			SessionID: sub.SessionID,
			PageURL:   sub.PageURL,
			UserAgent: sub.UserAgent,
		}
		if err := h.store.LogAnalyticsEvent(ctx, event); err != nil {
			h.logger.Warn("analytics event logging failed",
				"submission_id", sub.SubmissionID, "error", err)
		}
	}()
}

func (h *ContactHandler) logBestEffort(sub *submissions.Submission, errorType string, cause error) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.store.LogError(ctx, errorType, cause, map[string]any{
			"submissionId": sub.SubmissionID,
			"sessionId":    sub.SessionID,
		}); err != nil {
			h.logger.Warn("error logging failed", "error", err)
		}
	}()
}

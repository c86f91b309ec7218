package notify

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/presq/leadcapture/internal/observability/metrics"
	"github.com/presq/leadcapture/internal/store"
	"github.com/presq/leadcapture/internal/submissions"
	"github.com/presq/leadcapture/pkg/logging"
)

// EmailType selects which notification emails an operation targets.
type EmailType string

const (
	EmailTypeAdmin    EmailType = "admin"
	EmailTypeCustomer EmailType = "customer"
	EmailTypeBoth     EmailType = "both"
)

// ParseEmailType validates a caller-supplied email type, defaulting to both.
func ParseEmailType(s string) (EmailType, error) {
	switch EmailType(s) {
	case EmailTypeAdmin, EmailTypeCustomer, EmailTypeBoth:
		return EmailType(s), nil
	case "":
		return EmailTypeBoth, nil
	default:
		return "", fmt.Errorf("notify: invalid email type %q", s)
	}
}

// Store is the subset of the persistence gateway the pipeline needs.
type Store interface {
	GetSubmission(ctx context.Context, submissionID string) (*submissions.Submission, error)
	RecordEmailStatus(ctx context.Context, submissionID string, status submissions.EmailNotifications) error
	LogError(ctx context.Context, errorType string, cause error, logCtx map[string]any) error
}

// SendResult is the outcome of one email dispatch.
type SendResult struct {
	Sent      bool   `json:"sent"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
}

// ResendResult summarizes a manual resend run.
type ResendResult struct {
	SubmissionID string      `json:"submissionId"`
	EmailType    EmailType   `json:"emailType"`
	Admin        *SendResult `json:"admin,omitempty"`
	Customer     *SendResult `json:"customer,omitempty"`
}

// HealthStatus reports email gateway readiness.
type HealthStatus struct {
	Status    string `json:"status"`
	Provider  string `json:"provider"`
	Timestamp string `json:"timestamp"`
	Error     string `json:"error,omitempty"`
}

// Service runs the notification pipeline: render, dispatch, record.
type Service struct {
	sender   EmailSender
	store    Store
	identity Identity
	provider string
	logger   *logging.Logger
	metrics  *metrics.PipelineMetrics
	now      func() time.Time
}

func NewService(sender EmailSender, st Store, identity Identity, provider string, logger *logging.Logger, m *metrics.PipelineMetrics) *Service {
	if sender == nil {
		panic("notify: sender required")
	}
	if st == nil {
		panic("notify: store required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		sender:   sender,
		store:    st,
		identity: identity,
		provider: provider,
		logger:   logger,
		metrics:  m,
		now:      time.Now,
	}
}

// WithClock overrides the wall clock, for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// HandleSubmissionCreated runs the automatic pipeline for a freshly stored
// submission: both emails dispatched concurrently, each outcome collected
// independently, then a single status write-back. A status row already
// present means a redelivered event; the run is skipped without error.
func (s *Service) HandleSubmissionCreated(ctx context.Context, sub *submissions.Submission) error {
	if sub == nil {
		return errors.New("notify: submission required")
	}
	start := s.now()

	admin, customer := s.dispatchBoth(ctx, sub, false)

	status := submissions.EmailNotifications{
		AdminEmailSent:    admin.Sent,
		CustomerEmailSent: customer.Sent,
		AdminMessageID:    admin.MessageID,
		CustomerMessageID: customer.MessageID,
		AdminError:        admin.Error,
		CustomerError:     customer.Error,
		SentAt:            s.now().UTC().Format(time.RFC3339Nano),
	}

	outcome := "success"
	if !admin.Sent || !customer.Sent {
		outcome = "partial"
	}
	if !admin.Sent && !customer.Sent {
		outcome = "failed"
	}

	err := s.store.RecordEmailStatus(ctx, sub.SubmissionID, status)
	switch {
	case err == nil:
	case errors.Is(err, store.ErrStatusAlreadyRecorded):
		s.logger.Warn("email status already recorded, skipping",
			"submission_id", sub.SubmissionID)
	default:
		s.metrics.ObserveNotifyLatency("status_write_failed", s.now().Sub(start).Seconds())
		return fmt.Errorf("notify: record email status for %s: %w", sub.SubmissionID, err)
	}

	s.metrics.ObserveNotifyLatency(outcome, s.now().Sub(start).Seconds())
	s.logger.Info("notification pipeline complete",
		"submission_id", sub.SubmissionID,
		"admin_sent", admin.Sent,
		"customer_sent", customer.Sent,
		"outcome", outcome)
	return nil
}

// Resend re-dispatches one or both notification emails for an existing
// submission. The stored status sub-object records the original run only and
// is never modified here.
func (s *Service) Resend(ctx context.Context, submissionID string, emailType EmailType) (*ResendResult, error) {
	sub, err := s.store.GetSubmission(ctx, submissionID)
	if err != nil {
		return nil, err
	}

	result := &ResendResult{SubmissionID: submissionID, EmailType: emailType}
	switch emailType {
	case EmailTypeAdmin:
		r := s.sendAdmin(ctx, sub, true)
		result.Admin = &r
	case EmailTypeCustomer:
		r := s.sendCustomer(ctx, sub)
		result.Customer = &r
	case EmailTypeBoth:
		admin, customer := s.dispatchBoth(ctx, sub, true)
		result.Admin = &admin
		result.Customer = &customer
	default:
		return nil, fmt.Errorf("notify: invalid email type %q", emailType)
	}

	s.logger.Info("manual resend complete",
		"submission_id", submissionID,
		"email_type", string(emailType))
	return result, nil
}

// HealthCheck verifies email gateway connectivity and credentials without
// sending a message.
func (s *Service) HealthCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "healthy",
		Provider:  s.provider,
		Timestamp: s.now().UTC().Format(time.RFC3339),
	}
	if err := s.sender.Verify(ctx); err != nil {
		status.Status = "unhealthy"
		status.Error = err.Error()
		s.logger.Error("email gateway health check failed", "error", err)
	}
	return status
}

// dispatchBoth sends the admin alert and customer acknowledgment
// concurrently. A failure on one never blocks or fails the other.
func (s *Service) dispatchBoth(ctx context.Context, sub *submissions.Submission, resent bool) (admin, customer SendResult) {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		admin = s.sendAdmin(ctx, sub, resent)
	}()
	go func() {
		defer wg.Done()
		customer = s.sendCustomer(ctx, sub)
	}()
	wg.Wait()
	return admin, customer
}

func (s *Service) sendAdmin(ctx context.Context, sub *submissions.Submission, resent bool) SendResult {
	body, err := RenderAdminEmail(sub, s.identity)
	if err != nil {
		return s.failure(ctx, sub, "admin", err)
	}
	msg := EmailMessage{
		To:      s.identity.AdminEmail,
		ToName:  s.identity.CompanyName + " Admin",
		CC:      s.identity.CCEmails,
		Subject: AdminSubject(sub, resent),
		HTML:    body,
	}
	messageID, err := s.sender.Send(ctx, msg)
	if err != nil {
		return s.failure(ctx, sub, "admin", err)
	}
	s.metrics.ObserveEmail("admin", "sent")
	return SendResult{Sent: true, MessageID: messageID}
}

func (s *Service) sendCustomer(ctx context.Context, sub *submissions.Submission) SendResult {
	body, err := RenderCustomerEmail(sub, s.identity)
	if err != nil {
		return s.failure(ctx, sub, "customer", err)
	}
	msg := EmailMessage{
		To:      sub.Email,
		ToName:  sub.FullName,
		Subject: CustomerSubject(s.identity),
		HTML:    body,
	}
	messageID, err := s.sender.Send(ctx, msg)
	if err != nil {
		return s.failure(ctx, sub, "customer", err)
	}
	s.metrics.ObserveEmail("customer", "sent")
	return SendResult{Sent: true, MessageID: messageID}
}

// failure records a per-email failure: metric, structured log, best-effort
// error document. The returned result lets the caller keep settling.
func (s *Service) failure(ctx context.Context, sub *submissions.Submission, emailType string, cause error) SendResult {
	s.metrics.ObserveEmail(emailType, "failed")
	s.logger.Error("notification email failed",
		"submission_id", sub.SubmissionID,
		"email_type", emailType,
		"error", cause)
	if err := s.store.LogError(ctx, emailType+"_email_failed", cause, map[string]any{
		"submissionId": sub.SubmissionID,
		"emailType":    emailType,
	}); err != nil {
		s.logger.Warn("error document write failed", "error", err)
	}
	return SendResult{Sent: false, Error: cause.Error()}
}

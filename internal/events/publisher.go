package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/presq/leadcapture/internal/submissions"
	"github.com/presq/leadcapture/pkg/logging"
)

// Sender is the subset of Queue the publisher needs.
type Sender interface {
	Send(ctx context.Context, body string) error
}

// Publisher emits submission lifecycle events. It stands in for the document
// store's change feed: the write path publishes after a successful create so
// the notification pipeline fires once per record.
type Publisher struct {
	queue  Sender
	logger *logging.Logger
}

// NewPublisher creates a queue-backed publisher.
func NewPublisher(queue Sender, logger *logging.Logger) *Publisher {
	if queue == nil {
		panic("events: queue cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Publisher{
		queue:  queue,
		logger: logger,
	}
}

// PublishSubmissionCreated announces a freshly persisted submission.
func (p *Publisher) PublishSubmissionCreated(ctx context.Context, sub *submissions.Submission) error {
	if sub == nil {
		return fmt.Errorf("events: submission cannot be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	envelope := Envelope{
		ID:         uuid.New().String(),
		Type:       TypeSubmissionCreated,
		CompanyID:  sub.CompanyID,
		OccurredAt: time.Now().UTC(),
		SubmissionCreated: &SubmissionCreatedV1{
			SubmissionID: sub.SubmissionID,
			Submission:   sub,
		},
	}

	body, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("events: marshal envelope: %w", err)
	}

	if err := p.queue.Send(ctx, string(body)); err != nil {
		return fmt.Errorf("events: failed to publish submission created: %w", err)
	}

	p.logger.Debug("submission created event published",
		"event_id", envelope.ID,
		"submission_id", sub.SubmissionID,
	)
	return nil
}

// Decode parses a queue message body back into an envelope.
func Decode(body string) (*Envelope, error) {
	var envelope Envelope
	if err := json.Unmarshal([]byte(body), &envelope); err != nil {
		return nil, fmt.Errorf("events: decode envelope: %w", err)
	}
	if envelope.Type == "" {
		return nil, fmt.Errorf("events: envelope missing type")
	}
	return &envelope, nil
}

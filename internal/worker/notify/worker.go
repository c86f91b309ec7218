// Package notifyworker consumes submission-created events and runs the
// notification pipeline once per record.
package notifyworker

import (
	"context"
	"time"

	"github.com/presq/leadcapture/internal/events"
	"github.com/presq/leadcapture/internal/submissions"
	"github.com/presq/leadcapture/pkg/logging"
)

// Consumer is the queue surface the worker polls.
type Consumer interface {
	Receive(ctx context.Context, maxMessages int, waitSeconds int) ([]events.Message, error)
	Delete(ctx context.Context, receiptHandle string) error
}

// Handler runs the notification pipeline for one submission.
type Handler interface {
	HandleSubmissionCreated(ctx context.Context, sub *submissions.Submission) error
}

// Worker polls the event queue and dispatches each submission-created event
// to the notification pipeline.
type Worker struct {
	queue       Consumer
	handler     Handler
	logger      *logging.Logger
	maxMessages int
	waitSeconds int
	backoff     time.Duration
}

// Option customizes a Worker.
type Option func(*Worker)

// WithBatchSize sets how many messages each poll requests.
func WithBatchSize(n int) Option {
	return func(w *Worker) {
		if n > 0 {
			w.maxMessages = n
		}
	}
}

// WithWaitSeconds sets the long-poll duration.
func WithWaitSeconds(n int) Option {
	return func(w *Worker) {
		if n >= 0 {
			w.waitSeconds = n
		}
	}
}

// WithReceiveBackoff sets the sleep after a failed poll.
func WithReceiveBackoff(d time.Duration) Option {
	return func(w *Worker) {
		if d > 0 {
			w.backoff = d
		}
	}
}

func New(queue Consumer, handler Handler, logger *logging.Logger, opts ...Option) *Worker {
	if queue == nil {
		panic("notifyworker: queue required")
	}
	if handler == nil {
		panic("notifyworker: handler required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	w := &Worker{
		queue:       queue,
		handler:     handler,
		logger:      logger,
		maxMessages: 10,
		waitSeconds: 20,
		backoff:     5 * time.Second,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run polls until ctx is canceled.
func (w *Worker) Run(ctx context.Context) {
	w.logger.Info("notify worker started",
		"batch_size", w.maxMessages, "wait_seconds", w.waitSeconds)
	for {
		if ctx.Err() != nil {
			w.logger.Info("notify worker stopped")
			return
		}
		messages, err := w.queue.Receive(ctx, w.maxMessages, w.waitSeconds)
		if err != nil {
			if ctx.Err() != nil {
				w.logger.Info("notify worker stopped")
				return
			}
			w.logger.Error("queue receive failed", "error", err)
			select {
			case <-ctx.Done():
			case <-time.After(w.backoff):
			}
			continue
		}
		for _, msg := range messages {
			w.process(ctx, msg)
		}
	}
}

// process handles one message. Malformed messages are deleted so they cannot
// poison the queue; handler failures leave the message for redelivery.
func (w *Worker) process(ctx context.Context, msg events.Message) {
	envelope, err := events.Decode(msg.Body)
	if err != nil {
		w.logger.Error("dropping malformed event", "message_id", msg.ID, "error", err)
		w.delete(ctx, msg)
		return
	}
	if envelope.Type != events.TypeSubmissionCreated || envelope.SubmissionCreated == nil ||
		envelope.SubmissionCreated.Submission == nil {
		w.logger.Warn("dropping unexpected event", "message_id", msg.ID, "type", envelope.Type)
		w.delete(ctx, msg)
		return
	}

	sub := envelope.SubmissionCreated.Submission
	if err := w.handler.HandleSubmissionCreated(ctx, sub); err != nil {
		w.logger.Error("notification pipeline failed, message will be redelivered",
			"message_id", msg.ID,
			"submission_id", envelope.SubmissionCreated.SubmissionID,
			"error", err)
		return
	}
	w.delete(ctx, msg)
}

func (w *Worker) delete(ctx context.Context, msg events.Message) {
	if err := w.queue.Delete(ctx, msg.ReceiptHandle); err != nil {
		w.logger.Error("queue delete failed", "message_id", msg.ID, "error", err)
	}
}

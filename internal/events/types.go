package events

import (
	"time"

	"github.com/presq/leadcapture/internal/submissions"
)

// TypeSubmissionCreated identifies the record-created event emitted after a
// successful submission write.
const TypeSubmissionCreated = "submission.created.v1"

// Envelope wraps every event on the queue with routing metadata.
type Envelope struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	CompanyID  string    `json:"companyId"`
	OccurredAt time.Time `json:"occurredAt"`

	SubmissionCreated *SubmissionCreatedV1 `json:"submissionCreated,omitempty"`
}

// SubmissionCreatedV1 carries the full submission so the notification worker
// does not need a read path for the automatic trigger.
type SubmissionCreatedV1 struct {
	SubmissionID string                  `json:"submissionId"`
	Submission   *submissions.Submission `json:"submission"`
}

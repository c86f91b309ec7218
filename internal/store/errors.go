package store

import "errors"

var (
	// ErrDuplicateSubmission is returned when a submission id already exists.
	ErrDuplicateSubmission = errors.New("store: submission id already exists")

	// ErrSubmissionNotFound is returned when a submission cannot be loaded.
	ErrSubmissionNotFound = errors.New("store: submission not found")

	// ErrStatusAlreadyRecorded is returned when the notification status has
	// already been written for a submission.
	ErrStatusAlreadyRecorded = errors.New("store: email notification status already recorded")
)

// UserMessagePersistenceFailure is shown to the submitter when the primary
// write fails. Internal diagnostics are logged, never surfaced.
const UserMessagePersistenceFailure = "Sorry, there was an error sending your message. Please try again or contact us directly."

// GatewayError pairs a user-safe message with the internal cause of a
// persistence failure.
type GatewayError struct {
	UserMessage string
	Err         error
}

func (e *GatewayError) Error() string {
	return e.Err.Error()
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

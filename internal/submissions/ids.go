package submissions

import (
	"crypto/rand"
	"fmt"
	"time"
)

const idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// NewSubmissionID generates a globally unique submission identifier in the
// form SUB_<unix-millis>_<6-char-suffix>. Uniqueness is enforced by the store
// gateway's conditional create, not by the generator.
func NewSubmissionID() string {
	return fmt.Sprintf("SUB_%d_%s", time.Now().UnixMilli(), randomSuffix(6))
}

// NewSessionID generates a visitor session identifier in the form
// session_<unix-millis>_<6-char-suffix>. The session store keeps it stable for
// the life of the browser session.
func NewSessionID() string {
	return fmt.Sprintf("session_%d_%s", time.Now().UnixMilli(), randomSuffix(6))
}

func randomSuffix(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failure means the process is in a bad state; fall back
		// to a time-derived suffix rather than returning an empty id.
		return fmt.Sprintf("%06d", time.Now().UnixNano()%1000000)
	}
	for i, b := range buf {
		buf[i] = idAlphabet[int(b)%len(idAlphabet)]
	}
	return string(buf)
}

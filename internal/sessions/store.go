// Package sessions tracks anonymous visitor sessions so that repeat
// submissions from the same browser share a session id.
package sessions

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/presq/leadcapture/internal/submissions"
)

// DefaultTTL matches the lifetime of a browser tab session: long enough to
// cover a form revisit, short enough to stay anonymous.
const DefaultTTL = 24 * time.Hour

// Session is the stored visitor session record.
type Session struct {
	SessionID string `json:"sessionId"`
	CreatedAt string `json:"createdAt"`
}

// Store keeps visitor sessions in redis, keyed by an opaque visitor key
// derived from the request.
type Store struct {
	redis *redis.Client
	ttl   time.Duration
	now   func() time.Time
	newID func() string
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if client == nil {
		panic("sessions: redis client cannot be nil")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		redis: client,
		ttl:   ttl,
		now:   time.Now,
		newID: submissions.NewSessionID,
	}
}

// GetOrCreate returns the visitor's current session id, minting one when the
// key is unseen or expired. The TTL is renewed on every hit so an active
// visitor keeps one session.
func (s *Store) GetOrCreate(ctx context.Context, visitorKey string) (string, error) {
	if visitorKey == "" {
		// No stable visitor identity: mint a throwaway session.
		return s.newID(), nil
	}

	key := sessionKey(visitorKey)
	data, err := s.redis.Get(ctx, key).Bytes()
	if err == nil {
		var sess Session
		if jsonErr := json.Unmarshal(data, &sess); jsonErr == nil && sess.SessionID != "" {
			if expErr := s.redis.Expire(ctx, key, s.ttl).Err(); expErr != nil {
				return "", fmt.Errorf("sessions: failed to renew session: %w", expErr)
			}
			return sess.SessionID, nil
		}
		// Corrupt record, fall through and replace it.
	} else if err != redis.Nil {
		return "", fmt.Errorf("sessions: failed to load session: %w", err)
	}

	sess := Session{
		SessionID: s.newID(),
		CreatedAt: s.now().UTC().Format(time.RFC3339),
	}
	payload, err := json.Marshal(sess)
	if err != nil {
		return "", fmt.Errorf("sessions: failed to marshal session: %w", err)
	}
	if err := s.redis.Set(ctx, key, payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("sessions: failed to persist session: %w", err)
	}
	return sess.SessionID, nil
}

func sessionKey(visitorKey string) string {
	return fmt.Sprintf("session:%s", visitorKey)
}

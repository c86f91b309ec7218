package sessions

import (
	"context"
	"regexp"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sessionIDPattern = regexp.MustCompile(`^session_\d+_[a-z0-9]{6}$`)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewStore(client, time.Hour), mr
}

func TestGetOrCreateMintsSession(t *testing.T) {
	store, mr := newTestStore(t)

	id, err := store.GetOrCreate(context.Background(), "visitor-1")
	require.NoError(t, err)
	assert.Regexp(t, sessionIDPattern, id)
	assert.True(t, mr.Exists("session:visitor-1"), "expected session key stored")
}

func TestGetOrCreateReturnsExistingSession(t *testing.T) {
	store, _ := newTestStore(t)

	first, err := store.GetOrCreate(context.Background(), "visitor-1")
	require.NoError(t, err)
	second, err := store.GetOrCreate(context.Background(), "visitor-1")
	require.NoError(t, err)
	assert.Equal(t, first, second, "session should be stable across requests")
}

func TestGetOrCreateDistinctVisitors(t *testing.T) {
	store, _ := newTestStore(t)

	a, err := store.GetOrCreate(context.Background(), "visitor-a")
	require.NoError(t, err)
	b, err := store.GetOrCreate(context.Background(), "visitor-b")
	require.NoError(t, err)
	assert.NotEqual(t, a, b, "distinct visitors must not share a session")
}

func TestGetOrCreateRenewsTTL(t *testing.T) {
	store, mr := newTestStore(t)

	_, err := store.GetOrCreate(context.Background(), "visitor-1")
	require.NoError(t, err)
	mr.FastForward(30 * time.Minute)
	_, err = store.GetOrCreate(context.Background(), "visitor-1")
	require.NoError(t, err)
	// Renewal pushes the deadline back out to the full TTL.
	assert.Equal(t, time.Hour, mr.TTL("session:visitor-1"))
}

func TestGetOrCreateExpiredSession(t *testing.T) {
	store, mr := newTestStore(t)

	first, err := store.GetOrCreate(context.Background(), "visitor-1")
	require.NoError(t, err)
	mr.FastForward(2 * time.Hour)
	second, err := store.GetOrCreate(context.Background(), "visitor-1")
	require.NoError(t, err)
	assert.NotEqual(t, first, second, "expected a fresh session after expiry")
}

func TestGetOrCreateEmptyVisitorKey(t *testing.T) {
	store, mr := newTestStore(t)

	id, err := store.GetOrCreate(context.Background(), "")
	require.NoError(t, err)
	assert.Regexp(t, sessionIDPattern, id)
	assert.Empty(t, mr.Keys(), "anonymous session must not be persisted")
}

func TestGetOrCreateCorruptRecord(t *testing.T) {
	store, mr := newTestStore(t)

	require.NoError(t, mr.Set("session:visitor-1", "not json"))
	id, err := store.GetOrCreate(context.Background(), "visitor-1")
	require.NoError(t, err)
	assert.Regexp(t, sessionIDPattern, id)
}

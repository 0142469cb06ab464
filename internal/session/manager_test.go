package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestManager(t *testing.T) (*Manager, *MemoryStore, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	store := NewMemoryStore()
	return NewManager(store, 7*24*time.Hour, WithClock(clock.Now)), store, clock
}

func TestManagerCreateAndLookup(t *testing.T) {
	ctx := context.Background()
	m, _, clock := newTestManager(t)

	sess, err := m.Create(ctx, 42)
	require.NoError(t, err)
	assert.Len(t, sess.Token, 64)
	assert.Equal(t, int64(42), sess.UserID)
	assert.Equal(t, clock.now.Add(7*24*time.Hour), sess.ExpiresAt)

	got, err := m.Lookup(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, sess, got)
}

func TestManagerMultipleSessionsPerUser(t *testing.T) {
	ctx := context.Background()
	m, store, _ := newTestManager(t)

	first, err := m.Create(ctx, 1)
	require.NoError(t, err)
	second, err := m.Create(ctx, 1)
	require.NoError(t, err)

	assert.NotEqual(t, first.Token, second.Token)
	assert.Equal(t, 2, store.Len())
}

func TestManagerLookupUnknown(t *testing.T) {
	m, _, _ := newTestManager(t)

	_, err := m.Lookup(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestManagerLookupExpiredEvicts(t *testing.T) {
	ctx := context.Background()
	m, store, clock := newTestManager(t)

	sess, err := m.Create(ctx, 7)
	require.NoError(t, err)

	clock.Advance(7*24*time.Hour + time.Second)

	_, err = m.Lookup(ctx, sess.Token)
	assert.ErrorIs(t, err, ErrExpired)
	assert.Equal(t, 0, store.Len())

	_, err = m.Lookup(ctx, sess.Token)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestManagerLookupPastExpiryEntry(t *testing.T) {
	ctx := context.Background()
	m, store, clock := newTestManager(t)

	require.NoError(t, store.Save(ctx, Session{Token: "old", UserID: 3, ExpiresAt: clock.now.Add(-time.Minute)}))

	_, err := m.Lookup(ctx, "old")
	assert.ErrorIs(t, err, ErrExpired)

	_, err = store.Get(ctx, "old")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestManagerInvalidateIdempotent(t *testing.T) {
	ctx := context.Background()
	m, _, _ := newTestManager(t)

	sess, err := m.Create(ctx, 9)
	require.NoError(t, err)

	require.NoError(t, m.Invalidate(ctx, sess.Token))
	require.NoError(t, m.Invalidate(ctx, sess.Token))

	_, err = m.Lookup(ctx, sess.Token)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreSweep(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Now()

	require.NoError(t, store.Save(ctx, Session{Token: "live", UserID: 1, ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, store.Save(ctx, Session{Token: "dead", UserID: 1, ExpiresAt: now.Add(-time.Hour)}))

	removed, err := store.Sweep(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = store.Get(ctx, "live")
	require.NoError(t, err)
	_, err = store.Get(ctx, "dead")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNewStore(t *testing.T) {
	store, err := NewStore(StoreTypeMemory)
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)

	_, err = NewStore(StoreTypeRedis)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewStore("etcd")
	assert.ErrorIs(t, err, ErrInvalidStoreType)
}

func TestContextRoundTrip(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	sess := Session{Token: "abc", UserID: 5}
	got, ok := FromContext(NewContext(context.Background(), sess))
	require.True(t, ok)
	assert.Equal(t, sess, got)
}

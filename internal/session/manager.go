package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cleverai/api/internal/security"
)

// Manager issues, resolves and revokes sessions on top of a Store.
type Manager struct {
	store Store
	ttl   time.Duration
	now   func() time.Time
}

type ManagerOption func(*Manager)

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.now = now
	}
}

func NewManager(store Store, ttl time.Duration, opts ...ManagerOption) *Manager {
	m := &Manager{
		store: store,
		ttl:   ttl,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) TTL() time.Duration {
	return m.ttl
}

func (m *Manager) Create(ctx context.Context, userID int64) (Session, error) {
	token, err := security.GenerateSessionToken()
	if err != nil {
		return Session{}, err
	}

	sess := Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: m.now().Add(m.ttl),
	}
	if err := m.store.Save(ctx, sess); err != nil {
		return Session{}, fmt.Errorf("save session: %w", err)
	}
	return sess, nil
}

// Lookup returns ErrNotFound for unknown tokens. An expired session is deleted
// and reported as ErrExpired; later lookups of the same token see ErrNotFound.
func (m *Manager) Lookup(ctx context.Context, token string) (Session, error) {
	sess, err := m.store.Get(ctx, token)
	if err != nil {
		return Session{}, err
	}

	if sess.Expired(m.now()) {
		if err := m.store.Delete(ctx, token); err != nil {
			return Session{}, fmt.Errorf("evict expired session: %w", err)
		}
		return Session{}, ErrExpired
	}
	return sess, nil
}

// Invalidate is idempotent.
func (m *Manager) Invalidate(ctx context.Context, token string) error {
	if err := m.store.Delete(ctx, token); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

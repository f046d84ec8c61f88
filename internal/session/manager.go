// Package session mints, validates, and revokes per-installation session
// tokens with a fixed time-to-live. Expiry is evaluated lazily on each
// validity check; there is no background eviction, so a session transitions
// to expired only when observed.
package session

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/guardline/guardline-core/internal/domain"
	"github.com/guardline/guardline-core/internal/ports"
)

// tokenBytes gives 256 bits of entropy per token. Anything predictable, such
// as identity plus clock time, would permit session forgery.
const tokenBytes = 32

// Manager owns the session lifecycle against the key-value store. Validity
// is recomputed on every check; the is_logged_in flag is written alongside
// for cheap UI reads but never trusted as an answer.
type Manager struct {
	store ports.SessionStore
	ttl   time.Duration
	nowFn func() time.Time
}

func NewManager(store ports.SessionStore, ttl time.Duration) *Manager {
	return &Manager{
		store: store,
		ttl:   ttl,
		nowFn: func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the manager's clock. Test seam only.
func (m *Manager) WithClock(nowFn func() time.Time) *Manager {
	m.nowFn = nowFn
	return m
}

// Create mints a fresh token from the CSPRNG, persists the session record
// bound to the authenticated user, and returns the token.
func (m *Manager) Create(ctx context.Context, installationID string, userID uuid.UUID) (string, error) {
	raw := make([]byte, tokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	token := base64.RawURLEncoding.EncodeToString(raw)

	record := domain.Session{
		Token:     token,
		UserID:    userID,
		CreatedAt: m.nowFn(),
		Active:    true,
	}
	if err := m.store.Put(ctx, installationID, record); err != nil {
		return "", fmt.Errorf("%w: write session: %v", domain.ErrStorageUnavailable, err)
	}
	if err := m.store.SetLoggedInFlag(ctx, installationID, true); err != nil {
		return "", fmt.Errorf("%w: write login flag: %v", domain.ErrStorageUnavailable, err)
	}
	return token, nil
}

// IsValid reports whether the stored session is active and inside its TTL.
// Missing records, parse failures, and storage errors all answer false.
func (m *Manager) IsValid(ctx context.Context, installationID string) bool {
	record, err := m.store.Get(ctx, installationID)
	if err != nil {
		return false
	}
	return m.valid(record)
}

// Authenticate additionally requires the presented token to match the stored
// one and returns the bound user. Used by request handlers carrying a bearer
// token; the zero UUID with false means deny.
func (m *Manager) Authenticate(ctx context.Context, installationID, token string) (uuid.UUID, bool) {
	if token == "" {
		return uuid.Nil, false
	}
	record, err := m.store.Get(ctx, installationID)
	if err != nil {
		return uuid.Nil, false
	}
	if !m.valid(record) || subtle.ConstantTimeCompare([]byte(record.Token), []byte(token)) != 1 {
		return uuid.Nil, false
	}
	return record.UserID, true
}

func (m *Manager) valid(record domain.Session) bool {
	if !record.Active || record.Token == "" || record.CreatedAt.IsZero() {
		return false
	}
	return m.nowFn().Sub(record.CreatedAt) < m.ttl
}

// Invalidate clears the stored token and drops the login flag. Idempotent:
// invalidating an absent session is a no-op, not an error.
func (m *Manager) Invalidate(ctx context.Context, installationID string) error {
	if err := m.store.Clear(ctx, installationID); err != nil {
		return fmt.Errorf("%w: clear session: %v", domain.ErrStorageUnavailable, err)
	}
	if err := m.store.SetLoggedInFlag(ctx, installationID, false); err != nil {
		return fmt.Errorf("%w: write login flag: %v", domain.ErrStorageUnavailable, err)
	}
	return nil
}

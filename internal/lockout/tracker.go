// Package lockout tracks failed authentication attempts per installation and
// enforces a timed lockout window. State is derived, not stored: whether an
// installation is locked is evaluated at query time from the persisted
// counter, and the transition back to open happens lazily on read. There is
// no background sweep; adding one would race with these reads.
package lockout

import (
	"context"
	"fmt"
	"time"

	"github.com/guardline/guardline-core/internal/domain"
	"github.com/guardline/guardline-core/internal/ports"
)

// Tracker evaluates the per-installation attempt counter against the
// configured threshold and window. Every storage failure is reported as
// storage-unavailable and treated by callers as deny.
type Tracker struct {
	store       ports.AttemptStore
	maxAttempts int
	window      time.Duration
	nowFn       func() time.Time
}

func NewTracker(store ports.AttemptStore, maxAttempts int, window time.Duration) *Tracker {
	return &Tracker{
		store:       store,
		maxAttempts: maxAttempts,
		window:      window,
		nowFn:       func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the tracker's clock. Test seam only.
func (t *Tracker) WithClock(nowFn func() time.Time) *Tracker {
	t.nowFn = nowFn
	return t
}

// evaluate reads the counter and applies the lazy open transition: once the
// lockout window has elapsed since the last failure, the counter is reset to
// zero before the state is reported.
func (t *Tracker) evaluate(ctx context.Context, installationID string) (domain.AttemptState, error) {
	state, err := t.store.Get(ctx, installationID)
	if err != nil {
		return domain.AttemptState{}, fmt.Errorf("%w: read attempts: %v", domain.ErrStorageUnavailable, err)
	}
	if state.FailedCount >= t.maxAttempts && t.nowFn().Sub(state.LastAttemptAt) >= t.window {
		if err := t.store.Reset(ctx, installationID); err != nil {
			return domain.AttemptState{}, fmt.Errorf("%w: reset attempts: %v", domain.ErrStorageUnavailable, err)
		}
		state = domain.AttemptState{}
	}
	return state, nil
}

// CanAttempt reports whether a login attempt is currently allowed. Storage
// errors fail closed: the answer is false together with the error, never a
// silent permit.
func (t *Tracker) CanAttempt(ctx context.Context, installationID string) (bool, error) {
	state, err := t.evaluate(ctx, installationID)
	if err != nil {
		return false, err
	}
	return state.FailedCount < t.maxAttempts, nil
}

// RecordFailure increments the counter and stamps the attempt time. It does
// not itself transition state; lockout is derived on the next query.
func (t *Tracker) RecordFailure(ctx context.Context, installationID string) error {
	state, err := t.store.Get(ctx, installationID)
	if err != nil {
		return fmt.Errorf("%w: read attempts: %v", domain.ErrStorageUnavailable, err)
	}
	state.FailedCount++
	state.LastAttemptAt = t.nowFn()
	if err := t.store.Put(ctx, installationID, state); err != nil {
		return fmt.Errorf("%w: write attempts: %v", domain.ErrStorageUnavailable, err)
	}
	return nil
}

// Reset zeroes the counter. Called on successful authentication.
func (t *Tracker) Reset(ctx context.Context, installationID string) error {
	if err := t.store.Reset(ctx, installationID); err != nil {
		return fmt.Errorf("%w: reset attempts: %v", domain.ErrStorageUnavailable, err)
	}
	return nil
}

// RemainingAttempts returns how many failures are left before lockout,
// clamped at zero, for user-facing feedback.
func (t *Tracker) RemainingAttempts(ctx context.Context, installationID string) (int, error) {
	state, err := t.evaluate(ctx, installationID)
	if err != nil {
		return 0, err
	}
	remaining := t.maxAttempts - state.FailedCount
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

// LockoutRemaining returns whole minutes until the window reopens, clamped
// at zero. A zero result means attempts are allowed again.
func (t *Tracker) LockoutRemaining(ctx context.Context, installationID string) (int, error) {
	state, err := t.evaluate(ctx, installationID)
	if err != nil {
		return 0, err
	}
	if state.FailedCount < t.maxAttempts {
		return 0, nil
	}
	left := t.window - t.nowFn().Sub(state.LastAttemptAt)
	if left <= 0 {
		return 0, nil
	}
	minutes := int(left.Minutes())
	if left%time.Minute != 0 {
		minutes++
	}
	return minutes, nil
}

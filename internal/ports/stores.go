package ports

import (
	"context"

	"github.com/guardline/guardline-core/internal/domain"
)

// AttemptStore persists the per-installation failed-login counter in the
// key-value store. Reads of an absent installation must yield a zero-valued
// state, not an error; real errors mean the store is unreachable and the
// caller fails closed.
type AttemptStore interface {
	Get(ctx context.Context, installationID string) (domain.AttemptState, error)
	Put(ctx context.Context, installationID string, state domain.AttemptState) error
	Reset(ctx context.Context, installationID string) error
}

// SessionStore persists the per-installation session record and the coarse
// is_logged_in mirror flag. An absent session reads back as a zero-valued
// Session with Active false.
type SessionStore interface {
	Get(ctx context.Context, installationID string) (domain.Session, error)
	Put(ctx context.Context, installationID string, session domain.Session) error
	Clear(ctx context.Context, installationID string) error
	SetLoggedInFlag(ctx context.Context, installationID string, loggedIn bool) error
}

// TwoFactorStore keeps a user's second-factor opt-in state. The secret is
// stored only while enabled and is cleared on disable.
type TwoFactorStore interface {
	Get(ctx context.Context, userID string) (domain.TwoFactorState, error)
	Put(ctx context.Context, userID string, state domain.TwoFactorState) error
	Clear(ctx context.Context, userID string) error
}

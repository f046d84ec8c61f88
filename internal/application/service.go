// Package application hosts the security facade: the single object the rest
// of the application calls into for login, session, two-factor, and report
// submission flows. It composes the validation engine, the lockout tracker,
// and the session manager over the external collaborator ports.
package application

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/guardline/guardline-core/internal/domain"
	"github.com/guardline/guardline-core/internal/lockout"
	"github.com/guardline/guardline-core/internal/ports"
	"github.com/guardline/guardline-core/internal/session"
)

// Config carries the policy values the facade reads directly. Lockout
// policy lives in the injected tracker; the agency API key is enforced at
// the transport layer.
type Config struct {
	SessionTTL          time.Duration
	AttachmentAllowList []string
}

// Service is the security facade. It is an explicitly constructed instance
// injected into transports, never a process-wide singleton, so tests can
// swap every collaborator for a fake.
type Service struct {
	cfg           Config
	tracker       *lockout.Tracker
	sessions      *session.Manager
	identity      ports.IdentityProvider
	reports       ports.ReportStore
	loginAttempts ports.LoginAttemptRepository
	twoFactor     ports.TwoFactorStore
	secondFactor  ports.SecondFactorVerifier
	nowFn         func() time.Time
}

type Dependencies struct {
	Config        Config
	Tracker       *lockout.Tracker
	Sessions      *session.Manager
	Identity      ports.IdentityProvider
	Reports       ports.ReportStore
	LoginAttempts ports.LoginAttemptRepository
	TwoFactor     ports.TwoFactorStore
	SecondFactor  ports.SecondFactorVerifier
}

func NewService(deps Dependencies) *Service {
	return &Service{
		cfg:           deps.Config,
		tracker:       deps.Tracker,
		sessions:      deps.Sessions,
		identity:      deps.Identity,
		reports:       deps.Reports,
		loginAttempts: deps.LoginAttempts,
		twoFactor:     deps.TwoFactor,
		secondFactor:  deps.SecondFactor,
		nowFn:         func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the facade clock. Test seam only.
func (s *Service) WithClock(nowFn func() time.Time) *Service {
	s.nowFn = nowFn
	return s
}

// authenticate resolves an installation/token pair to the bound user.
// Any invalid, expired, or missing session answers ErrSessionExpired so
// callers uniformly redirect to re-authentication.
func (s *Service) authenticate(ctx context.Context, auth Auth) (uuid.UUID, error) {
	if auth.InstallationID == "" || auth.Token == "" {
		return uuid.Nil, domain.ErrUnauthorized
	}
	userID, valid := s.sessions.Authenticate(ctx, auth.InstallationID, auth.Token)
	if !valid {
		return uuid.Nil, domain.ErrSessionExpired
	}
	return userID, nil
}

package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/guardline/guardline-core/internal/domain"
	"github.com/guardline/guardline-core/internal/obs"
	"github.com/guardline/guardline-core/internal/ports"
	"github.com/guardline/guardline-core/internal/validation"
)

// Register creates a credential record with the built-in identity provider.
// Email, password, and display name all pass through the validation engine
// first; the password policy failure carries the specific missing class.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (RegisterResponse, error) {
	email := validation.ValidateEmail(req.Email)
	if !email.Valid {
		return RegisterResponse{}, &domain.ValidationError{Field: "email", Reason: string(email.Reason)}
	}
	password := validation.ValidatePasswordStrength(req.Password)
	if !password.Valid {
		return RegisterResponse{}, &domain.ValidationError{Field: "password", Reason: string(password.Reason)}
	}
	name := validation.ValidateDisplayName(req.DisplayName)
	if !name.Valid {
		return RegisterResponse{}, &domain.ValidationError{Field: "display_name", Reason: string(name.Reason)}
	}

	credential, err := s.identity.Register(ctx, ports.RegisterParams{
		Email:        email.Normalized,
		Password:     req.Password,
		DisplayName:  name.Normalized,
		RegisteredAt: s.nowFn(),
	})
	if err != nil {
		return RegisterResponse{}, err
	}
	return RegisterResponse{UserID: credential.UserID}, nil
}

// AttemptLogin is the guarded login flow. The lockout check runs first; a
// locked installation never reaches the identity provider, which saves the
// external call and avoids leaking whether the credentials would have been
// valid. A crash between the tracker reset and session creation leaves no
// session, which is safe: the user simply retries.
func (s *Service) AttemptLogin(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	installationID := strings.TrimSpace(req.InstallationID)
	if installationID == "" {
		return LoginResponse{}, fmt.Errorf("%w: installation_id is required", domain.ErrInvalidInput)
	}

	allowed, err := s.tracker.CanAttempt(ctx, installationID)
	if err != nil {
		return LoginResponse{}, err
	}
	if !allowed {
		remaining, remErr := s.tracker.LockoutRemaining(ctx, installationID)
		if remErr != nil {
			return LoginResponse{}, remErr
		}
		slog.Default().WarnContext(ctx, "login blocked by lockout",
			"module", "application",
			"operation", "attempt_login",
			"outcome", "blocked",
			"installation_id", installationID,
			"remaining_minutes", remaining,
		)
		obs.CountLogin("locked")
		return LoginResponse{}, &domain.LockedOutError{RemainingMinutes: remaining}
	}

	credential, err := s.identity.VerifyCredentials(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrAuthenticationFailed) {
			s.recordFailure(ctx, nil, installationID, req, "INVALID_CREDENTIALS")
			obs.CountLogin("failure")
			return LoginResponse{}, domain.ErrAuthenticationFailed
		}
		return LoginResponse{}, fmt.Errorf("%w: verify credentials: %v", domain.ErrStorageUnavailable, err)
	}

	twoFactor, err := s.twoFactor.Get(ctx, credential.UserID.String())
	if err != nil {
		// 2FA state unreadable: deny rather than skip the second factor.
		return LoginResponse{}, fmt.Errorf("%w: read 2fa state: %v", domain.ErrStorageUnavailable, err)
	}
	if twoFactor.Enabled {
		if strings.TrimSpace(req.TwoFactorCode) == "" {
			return LoginResponse{}, domain.ErrTwoFactorRequired
		}
		if !s.secondFactor.Verify(strings.TrimSpace(req.TwoFactorCode), twoFactor.Secret) {
			s.recordFailure(ctx, &credential.UserID, installationID, req, "INVALID_2FA_CODE")
			obs.CountLogin("failure")
			return LoginResponse{}, domain.ErrAuthenticationFailed
		}
	}

	if err := s.tracker.Reset(ctx, installationID); err != nil {
		return LoginResponse{}, err
	}
	token, err := s.sessions.Create(ctx, installationID, credential.UserID)
	if err != nil {
		return LoginResponse{}, err
	}

	s.recordAttempt(ctx, &credential.UserID, installationID, req, "SUCCESS", "")
	obs.CountLogin("success")

	return LoginResponse{
		Token:     token,
		UserID:    credential.UserID,
		ExpiresIn: int64(s.cfg.SessionTTL.Seconds()),
	}, nil
}

// Logout invalidates the installation's session and signals the identity
// provider to sign out. Idempotent end to end.
func (s *Service) Logout(ctx context.Context, installationID string) error {
	if strings.TrimSpace(installationID) == "" {
		return fmt.Errorf("%w: installation_id is required", domain.ErrInvalidInput)
	}
	if err := s.sessions.Invalidate(ctx, installationID); err != nil {
		return err
	}
	return s.identity.SignOut(ctx)
}

// CurrentSessionValid delegates the lazy TTL check to the session manager.
// Validity is recomputed on every call, never cached.
func (s *Service) CurrentSessionValid(ctx context.Context, installationID string) bool {
	return s.sessions.IsValid(ctx, installationID)
}

// Status reports user-facing lockout feedback for an installation.
func (s *Service) Status(ctx context.Context, installationID string) (LoginStatus, error) {
	allowed, err := s.tracker.CanAttempt(ctx, installationID)
	if err != nil {
		return LoginStatus{}, err
	}
	remaining, err := s.tracker.RemainingAttempts(ctx, installationID)
	if err != nil {
		return LoginStatus{}, err
	}
	minutes, err := s.tracker.LockoutRemaining(ctx, installationID)
	if err != nil {
		return LoginStatus{}, err
	}
	return LoginStatus{
		Allowed:           allowed,
		RemainingAttempts: remaining,
		LockoutMinutes:    minutes,
	}, nil
}

// LoginHistory lists the caller's recent authentication outcomes.
func (s *Service) LoginHistory(ctx context.Context, auth Auth, q LoginHistoryQuery) ([]LoginHistoryItem, error) {
	userID, err := s.authenticate(ctx, auth)
	if err != nil {
		return nil, err
	}

	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit <= 0 || q.Limit > 100 {
		q.Limit = 20
	}
	offset := (q.Page - 1) * q.Limit

	var since *time.Time
	if q.Days > 0 {
		t := s.nowFn().Add(-time.Duration(q.Days) * 24 * time.Hour)
		since = &t
	}

	attempts, err := s.loginAttempts.ListByUser(ctx, userID, q.Limit, offset, since, strings.ToUpper(strings.TrimSpace(q.Status)))
	if err != nil {
		return nil, err
	}

	result := make([]LoginHistoryItem, 0, len(attempts))
	for _, attempt := range attempts {
		result = append(result, LoginHistoryItem{
			ID:            attempt.ID,
			Timestamp:     attempt.AttemptAt,
			Status:        attempt.Status,
			FailureReason: attempt.FailureReason,
			IPAddress:     attempt.IPAddress,
		})
	}
	return result, nil
}

// recordFailure bumps the lockout counter and writes the audit row, both
// under the same normalized installation ID the lockout check reads. The
// tracker write happening first keeps the security counter authoritative
// even when the audit insert fails.
func (s *Service) recordFailure(ctx context.Context, userID *uuid.UUID, installationID string, req LoginRequest, reason string) {
	if err := s.tracker.RecordFailure(ctx, installationID); err != nil {
		slog.Default().ErrorContext(ctx, "failed to record lockout failure",
			"module", "application",
			"operation", "record_failure",
			"outcome", "failure",
			"error", err,
		)
	}
	if remaining, err := s.tracker.RemainingAttempts(ctx, installationID); err == nil && remaining == 0 {
		obs.CountLockout()
	}
	s.recordAttempt(ctx, userID, installationID, req, "FAILED", reason)
}

// recordAttempt persists the audit row; audit write failures are logged and
// swallowed so they cannot break the login flow itself.
func (s *Service) recordAttempt(ctx context.Context, userID *uuid.UUID, installationID string, req LoginRequest, status, reason string) {
	if err := s.loginAttempts.Insert(ctx, domain.LoginAttempt{
		UserID:         userID,
		InstallationID: installationID,
		AttemptAt:      s.nowFn(),
		IPAddress:      req.IPAddress,
		Status:         status,
		FailureReason:  reason,
		UserAgent:      req.UserAgent,
	}); err != nil {
		slog.Default().WarnContext(ctx, "failed to persist login attempt",
			"module", "application",
			"operation", "record_attempt",
			"outcome", "failure",
			"status", status,
			"error", err,
		)
	}
}

package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/guardline/guardline-core/internal/domain"
)

// Setup2FA provisions a TOTP secret for the authenticated caller and
// enables the second factor. The secret and enrollment URL are returned
// exactly once, at provisioning time; afterwards only the enabled flag is
// observable.
func (s *Service) Setup2FA(ctx context.Context, auth Auth, accountName string) (TwoFactorSetupResponse, error) {
	userID, err := s.authenticate(ctx, auth)
	if err != nil {
		return TwoFactorSetupResponse{}, err
	}

	secret, enrollmentURL, err := s.secondFactor.Provision(accountName)
	if err != nil {
		return TwoFactorSetupResponse{}, fmt.Errorf("provision second factor: %w", err)
	}

	state := domain.TwoFactorState{Enabled: true, Secret: secret}
	if err := s.twoFactor.Put(ctx, userID.String(), state); err != nil {
		return TwoFactorSetupResponse{}, fmt.Errorf("%w: store 2fa state: %v", domain.ErrStorageUnavailable, err)
	}

	slog.Default().InfoContext(ctx, "two-factor enabled",
		"module", "application",
		"operation", "setup_2fa",
		"outcome", "success",
		"user_id", userID,
	)

	return TwoFactorSetupResponse{Secret: secret, EnrollmentURL: enrollmentURL}, nil
}

// Disable2FA turns the second factor off. A valid current TOTP code is
// required so a stolen session alone cannot weaken the account.
func (s *Service) Disable2FA(ctx context.Context, auth Auth, code string) error {
	userID, err := s.authenticate(ctx, auth)
	if err != nil {
		return err
	}

	state, err := s.twoFactor.Get(ctx, userID.String())
	if err != nil {
		return fmt.Errorf("%w: read 2fa state: %v", domain.ErrStorageUnavailable, err)
	}
	if !state.Enabled {
		return nil
	}
	if !s.secondFactor.Verify(strings.TrimSpace(code), state.Secret) {
		return domain.ErrAuthenticationFailed
	}

	if err := s.twoFactor.Clear(ctx, userID.String()); err != nil {
		return fmt.Errorf("%w: clear 2fa state: %v", domain.ErrStorageUnavailable, err)
	}

	slog.Default().InfoContext(ctx, "two-factor disabled",
		"module", "application",
		"operation", "disable_2fa",
		"outcome", "success",
		"user_id", userID,
	)
	return nil
}

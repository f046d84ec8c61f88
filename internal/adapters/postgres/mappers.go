package postgres

import (
	"github.com/guardline/guardline-core/internal/domain"
)

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func toDomainCredential(rec credentialModel) domain.Credential {
	return domain.Credential{
		UserID:       rec.UserID,
		Email:        rec.Email,
		PasswordHash: rec.PasswordHash,
		DisplayName:  rec.DisplayName,
		IsActive:     rec.IsActive,
		CreatedAt:    rec.CreatedAt,
		UpdatedAt:    rec.UpdatedAt,
	}
}

func toDomainLoginAttempt(rec loginAttemptModel) domain.LoginAttempt {
	return domain.LoginAttempt{
		ID:             rec.ID,
		UserID:         rec.UserID,
		InstallationID: rec.InstallationID,
		AttemptAt:      rec.AttemptAt,
		IPAddress:      derefString(rec.IPAddress),
		Status:         rec.Status,
		FailureReason:  rec.FailureReason,
		UserAgent:      rec.UserAgent,
	}
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// Credential is the authentication identity record held by the built-in
// identity provider. It keeps only verification-relevant state so session and
// report flows stay service-owned.
type Credential struct {
	UserID       uuid.UUID
	Email        string
	PasswordHash string
	DisplayName  string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session is the per-installation login session. Validity is always derived
// at read time: Active must be true and Now-CreatedAt must be under the
// configured TTL. There is no background expiry job. UserID binds the
// installation to the identity that authenticated it.
type Session struct {
	Token     string
	UserID    uuid.UUID
	CreatedAt time.Time
	Active    bool
}

// AttemptState is the per-installation failed-login record. It is created
// lazily on the first failure and reset, never deleted. Whether the
// installation is locked is derived from it at query time, not stored.
type AttemptState struct {
	FailedCount   int
	LastAttemptAt time.Time
}

// TwoFactorState holds a user's opt-in second factor. The secret is present
// only while enabled and is never logged or returned after provisioning.
type TwoFactorState struct {
	Enabled bool
	Secret  string
}

// Report statuses. Reports are immutable once accepted except for
// agency-side status transitions, and are never deleted for evidentiary
// retention reasons.
const (
	ReportStatusSubmitted   = "SUBMITTED"
	ReportStatusUnderReview = "UNDER_REVIEW"
	ReportStatusResolved    = "RESOLVED"
	ReportStatusDismissed   = "DISMISSED"
)

// ValidReportStatus reports whether s is one of the lifecycle statuses.
func ValidReportStatus(s string) bool {
	switch s {
	case ReportStatusSubmitted, ReportStatusUnderReview, ReportStatusResolved, ReportStatusDismissed:
		return true
	}
	return false
}

// IncidentReport is the business record accepted by the core after every
// field has passed validation and sanitization. Only sanitized values are
// ever persisted.
type IncidentReport struct {
	ReportID      string
	UserID        uuid.UUID
	Title         string
	Description   string
	Country       string
	City          string
	ContactNumber string
	Attachments   []string
	Status        string
	SubmittedAt   time.Time
	UpdatedAt     time.Time
}

// LoginAttempt records authentication outcomes for audit and history queries.
// The explicit model keeps abuse-signal generation deterministic.
type LoginAttempt struct {
	ID             int64
	UserID         *uuid.UUID
	InstallationID string
	AttemptAt      time.Time
	IPAddress      string
	Status         string
	FailureReason  string
	UserAgent      string
}

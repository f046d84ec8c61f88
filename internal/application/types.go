package application

import (
	"time"

	"github.com/google/uuid"
)

// Auth identifies an authenticated caller: the installation plus the bearer
// session token it presented.
type Auth struct {
	InstallationID string
	Token          string
}

type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

type RegisterResponse struct {
	UserID uuid.UUID `json:"user_id"`
}

type LoginRequest struct {
	InstallationID string `json:"installation_id"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	TwoFactorCode  string `json:"two_factor_code,omitempty"`
	IPAddress      string `json:"ip_address,omitempty"`
	UserAgent      string `json:"user_agent,omitempty"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	UserID    uuid.UUID `json:"user_id"`
	ExpiresIn int64     `json:"expires_in"`
}

// LoginStatus is user-facing lockout feedback: how many attempts remain and
// how long until a locked installation reopens.
type LoginStatus struct {
	Allowed           bool `json:"allowed"`
	RemainingAttempts int  `json:"remaining_attempts"`
	LockoutMinutes    int  `json:"lockout_remaining_minutes"`
}

type ReportRequest struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Country       string   `json:"country"`
	City          string   `json:"city"`
	ContactNumber string   `json:"contact_number"`
	Attachments   []string `json:"attachments,omitempty"`
}

type ReportResponse struct {
	ReportID    string    `json:"report_id"`
	Status      string    `json:"status"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type ReportItem struct {
	ReportID      string    `json:"report_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Country       string    `json:"country"`
	City          string    `json:"city"`
	ContactNumber string    `json:"contact_number"`
	Attachments   []string  `json:"attachments,omitempty"`
	Status        string    `json:"status"`
	SubmittedAt   time.Time `json:"submitted_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type TwoFactorSetupResponse struct {
	Secret        string `json:"secret"`
	EnrollmentURL string `json:"enrollment_url"`
}

type LoginHistoryQuery struct {
	Page   int
	Limit  int
	Days   int
	Status string
}

type LoginHistoryItem struct {
	ID            int64     `json:"id"`
	Timestamp     time.Time `json:"timestamp"`
	Status        string    `json:"status"`
	FailureReason string    `json:"failure_reason,omitempty"`
	IPAddress     string    `json:"ip_address,omitempty"`
}

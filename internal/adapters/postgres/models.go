package postgres

import (
	"time"

	"github.com/google/uuid"
)

type credentialModel struct {
	UserID       uuid.UUID `gorm:"column:user_id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email        string    `gorm:"column:email"`
	PasswordHash string    `gorm:"column:password_hash"`
	DisplayName  string    `gorm:"column:display_name"`
	IsActive     bool      `gorm:"column:is_active"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (credentialModel) TableName() string { return "credentials" }

type loginAttemptModel struct {
	ID             int64      `gorm:"column:id;primaryKey"`
	UserID         *uuid.UUID `gorm:"column:user_id"`
	InstallationID string     `gorm:"column:installation_id"`
	AttemptAt      time.Time  `gorm:"column:attempt_at"`
	IPAddress      *string    `gorm:"column:ip_address"`
	Status         string     `gorm:"column:status"`
	FailureReason  string     `gorm:"column:failure_reason"`
	UserAgent      string     `gorm:"column:user_agent"`
}

func (loginAttemptModel) TableName() string { return "login_attempts" }

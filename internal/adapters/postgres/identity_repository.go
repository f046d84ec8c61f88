package postgres

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/guardline/guardline-core/internal/domain"
	"github.com/guardline/guardline-core/internal/ports"
)

// passwordHasher is the credential hashing contract the repository needs.
// Declared here so the adapter stays swappable in tests.
type passwordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// IdentityRepository is the Postgres-backed identity provider. A hosted
// authentication service can replace it behind ports.IdentityProvider
// without touching the facade.
type IdentityRepository struct {
	db     *gorm.DB
	hasher passwordHasher
}

func NewIdentityRepository(db *gorm.DB, hasher passwordHasher) *IdentityRepository {
	return &IdentityRepository{db: db, hasher: hasher}
}

// VerifyCredentials resolves the identifier and compares the secret. Every
// failure path collapses to ErrAuthenticationFailed so callers cannot
// distinguish unknown accounts from wrong passwords.
func (r *IdentityRepository) VerifyCredentials(ctx context.Context, identifier, secret string) (domain.Credential, error) {
	var rec credentialModel
	email := strings.ToLower(strings.TrimSpace(identifier))
	if err := r.db.WithContext(ctx).Where("email = ?", email).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Credential{}, domain.ErrAuthenticationFailed
		}
		return domain.Credential{}, err
	}
	if !rec.IsActive {
		return domain.Credential{}, domain.ErrAuthenticationFailed
	}
	if err := r.hasher.Compare(rec.PasswordHash, secret); err != nil {
		return domain.Credential{}, domain.ErrAuthenticationFailed
	}
	return toDomainCredential(rec), nil
}

func (r *IdentityRepository) Register(ctx context.Context, params ports.RegisterParams) (domain.Credential, error) {
	hash, err := r.hasher.Hash(params.Password)
	if err != nil {
		return domain.Credential{}, err
	}
	rec := credentialModel{
		Email:        params.Email,
		PasswordHash: hash,
		DisplayName:  params.DisplayName,
		IsActive:     true,
		CreatedAt:    params.RegisteredAt,
		UpdatedAt:    params.RegisteredAt,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.Credential{}, domain.ErrConflict
		}
		return domain.Credential{}, err
	}
	return toDomainCredential(rec), nil
}

// SignOut exists for provider symmetry. The local provider holds no
// server-side token state; hosted providers revoke refresh tokens here.
func (r *IdentityRepository) SignOut(_ context.Context) error {
	return nil
}

package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/guardline/guardline-core/internal/domain"
)

// RegisterParams captures the inputs for creating a credential record. The
// password arrives pre-validated; hashing is the provider's concern.
type RegisterParams struct {
	Email        string
	Password     string
	DisplayName  string
	RegisteredAt time.Time
}

// IdentityProvider is the credential-and-identity collaborator the facade
// delegates to. The default adapter is Postgres-backed; a hosted
// authentication service satisfies the same contract.
type IdentityProvider interface {
	VerifyCredentials(ctx context.Context, identifier, secret string) (domain.Credential, error)
	Register(ctx context.Context, params RegisterParams) (domain.Credential, error)
	SignOut(ctx context.Context) error
}

// LoginAttemptRepository stores login outcomes used by the audit trail and
// history endpoint.
type LoginAttemptRepository interface {
	Insert(ctx context.Context, attempt domain.LoginAttempt) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int, since *time.Time, status string) ([]domain.LoginAttempt, error)
}

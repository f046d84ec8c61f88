package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/guardline/guardline-core/internal/domain"
)

// ReportStore is the document datastore contract for accepted incident
// reports. Insert returns the generated identifier. Reports are never
// deleted; UpdateStatus is the only mutation after acceptance.
type ReportStore interface {
	Insert(ctx context.Context, report domain.IncidentReport) (string, error)
	GetByID(ctx context.Context, reportID string) (domain.IncidentReport, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.IncidentReport, error)
	UpdateStatus(ctx context.Context, reportID, status string, updatedAt time.Time) error
}

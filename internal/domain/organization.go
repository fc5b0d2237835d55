package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Organization представляет организацию-арендатора, владеющую сотрудниками.
type Organization struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}

// OrganizationRepository определяет контракт для работы с организациями.
type OrganizationRepository interface {
	Create(ctx context.Context, organization *Organization) (*Organization, error)
	GetByID(ctx context.Context, organizationID uuid.UUID) (*Organization, error)
}

package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EmployeeStatus представляет внутренний статус сотрудника.
type EmployeeStatus string

const (
	EmployeeStatusActive     EmployeeStatus = "active"
	EmployeeStatusSuspended  EmployeeStatus = "suspended"
	EmployeeStatusOffboarded EmployeeStatus = "offboarded"
)

// Employee представляет сущность сотрудника организации.
type Employee struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	ExternalID     *string
	Email          string
	Name           string
	Title          *string
	Phone          *string
	HiredAt        *time.Time
	OffboardedAt   *time.Time
	Status         EmployeeStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// EmployeeRepository определяет контракт для работы с хранилищем сотрудников.
type EmployeeRepository interface {
	FindByExternalID(ctx context.Context, organizationID uuid.UUID, externalID string) (*Employee, error)
	FindByEmail(ctx context.Context, organizationID uuid.UUID, email string) (*Employee, error)
	Create(ctx context.Context, employee *Employee) (*Employee, error)
	Update(ctx context.Context, employee *Employee) (*Employee, error)
	ListByOrganization(ctx context.Context, organizationID uuid.UUID, limit, offset int) ([]*Employee, error)
}

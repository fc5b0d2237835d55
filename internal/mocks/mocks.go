package mocks

import (
	"context"
	"time"

	"directory-sync-service/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Моки доменных контрактов для unit-тестов.

type OrganizationRepository struct {
	mock.Mock
}

func (m *OrganizationRepository) Create(ctx context.Context, organization *domain.Organization) (*domain.Organization, error) {
	args := m.Called(ctx, organization)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}

func (m *OrganizationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}

type IntegrationRepository struct {
	mock.Mock
}

func (m *IntegrationRepository) Create(ctx context.Context, integration *domain.Integration) (*domain.Integration, error) {
	args := m.Called(ctx, integration)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Integration), args.Error(1)
}

func (m *IntegrationRepository) GetByID(ctx context.Context, integrationID uuid.UUID) (*domain.Integration, error) {
	args := m.Called(ctx, integrationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Integration), args.Error(1)
}

func (m *IntegrationRepository) GetSyncState(ctx context.Context, integrationID uuid.UUID) (*domain.IntegrationSyncState, error) {
	args := m.Called(ctx, integrationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IntegrationSyncState), args.Error(1)
}

func (m *IntegrationRepository) ResetSyncState(ctx context.Context, integrationID uuid.UUID, totalBatches, totalUsers int, message string) error {
	args := m.Called(ctx, integrationID, totalBatches, totalUsers, message)
	return args.Error(0)
}

func (m *IntegrationRepository) AdvanceSyncProgress(ctx context.Context, integrationID uuid.UUID, totalBatches, totalUsers int, stats *domain.BatchStats) (*domain.IntegrationSyncState, error) {
	args := m.Called(ctx, integrationID, totalBatches, totalUsers, stats)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IntegrationSyncState), args.Error(1)
}

func (m *IntegrationRepository) SetSyncMessage(ctx context.Context, integrationID uuid.UUID, batchesCompleted int, message string) error {
	args := m.Called(ctx, integrationID, batchesCompleted, message)
	return args.Error(0)
}

type EmployeeRepository struct {
	mock.Mock
}

func (m *EmployeeRepository) FindByExternalID(ctx context.Context, organizationID uuid.UUID, externalID string) (*domain.Employee, error) {
	args := m.Called(ctx, organizationID, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *EmployeeRepository) FindByEmail(ctx context.Context, organizationID uuid.UUID, email string) (*domain.Employee, error) {
	args := m.Called(ctx, organizationID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *EmployeeRepository) Create(ctx context.Context, employee *domain.Employee) (*domain.Employee, error) {
	args := m.Called(ctx, employee)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *EmployeeRepository) Update(ctx context.Context, employee *domain.Employee) (*domain.Employee, error) {
	args := m.Called(ctx, employee)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *EmployeeRepository) ListByOrganization(ctx context.Context, organizationID uuid.UUID, limit, offset int) ([]*domain.Employee, error) {
	args := m.Called(ctx, organizationID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Employee), args.Error(1)
}

type DirectoryFetcher struct {
	mock.Mock
}

func (m *DirectoryFetcher) FetchDirectoryUsers(ctx context.Context, integration *domain.Integration) ([]domain.DirectoryUser, error) {
	args := m.Called(ctx, integration)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DirectoryUser), args.Error(1)
}

type TaskQueue struct {
	mock.Mock
}

func (m *TaskQueue) Enqueue(ctx context.Context, taskName string, payload any) error {
	args := m.Called(ctx, taskName, payload)
	return args.Error(0)
}

func (m *TaskQueue) EnqueueAt(ctx context.Context, taskName string, payload any, runAt time.Time) error {
	args := m.Called(ctx, taskName, payload, runAt)
	return args.Error(0)
}

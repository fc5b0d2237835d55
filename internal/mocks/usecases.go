package mocks

import (
	"context"

	"directory-sync-service/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Моки usecase-контрактов для тестов HTTP-обработчиков.

type OrganizationUseCase struct {
	mock.Mock
}

func (m *OrganizationUseCase) CreateOrganization(ctx context.Context, name string) (*domain.Organization, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}

type IntegrationUseCase struct {
	mock.Mock
}

func (m *IntegrationUseCase) CreateIntegration(ctx context.Context, organizationID uuid.UUID, provider, displayName string) (*domain.Integration, error) {
	args := m.Called(ctx, organizationID, provider, displayName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Integration), args.Error(1)
}

func (m *IntegrationUseCase) GetIntegration(ctx context.Context, integrationID uuid.UUID) (*domain.Integration, error) {
	args := m.Called(ctx, integrationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Integration), args.Error(1)
}

func (m *IntegrationUseCase) GetSyncState(ctx context.Context, integrationID uuid.UUID) (*domain.IntegrationSyncState, error) {
	args := m.Called(ctx, integrationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IntegrationSyncState), args.Error(1)
}

type EmployeeUseCase struct {
	mock.Mock
}

func (m *EmployeeUseCase) ListEmployees(ctx context.Context, organizationID uuid.UUID, limit, offset int) ([]*domain.Employee, error) {
	args := m.Called(ctx, organizationID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Employee), args.Error(1)
}

type SyncScheduler struct {
	mock.Mock
}

func (m *SyncScheduler) StartSync(ctx context.Context, integrationID uuid.UUID) (*domain.SyncStarted, error) {
	args := m.Called(ctx, integrationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SyncStarted), args.Error(1)
}

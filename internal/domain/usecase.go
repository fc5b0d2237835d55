package domain

import (
	"context"

	"github.com/google/uuid"
)

// SyncScheduler определяет запуск полной синхронизации каталога.
type SyncScheduler interface {
	StartSync(ctx context.Context, integrationID uuid.UUID) (*SyncStarted, error)
}

// BatchReconciler определяет идемпотентную сверку одной партии каталога
// с хранилищем сотрудников.
type BatchReconciler interface {
	ReconcileBatch(ctx context.Context, batch *SyncBatch) (*BatchStats, error)
}

// ProgressAggregator определяет слияние итогов завершенной партии
// в общее состояние синхронизации интеграции.
type ProgressAggregator interface {
	CompleteBatch(ctx context.Context, batch *SyncBatch, stats *BatchStats)
}

// IntegrationUseCase определяет бизнес-логику для работы с интеграциями.
type IntegrationUseCase interface {
	CreateIntegration(ctx context.Context, organizationID uuid.UUID, provider, displayName string) (*Integration, error)
	GetIntegration(ctx context.Context, integrationID uuid.UUID) (*Integration, error)
	GetSyncState(ctx context.Context, integrationID uuid.UUID) (*IntegrationSyncState, error)
}

// EmployeeUseCase определяет бизнес-логику для работы с сотрудниками.
type EmployeeUseCase interface {
	ListEmployees(ctx context.Context, organizationID uuid.UUID, limit, offset int) ([]*Employee, error)
}

// OrganizationUseCase определяет бизнес-логику для работы с организациями.
type OrganizationUseCase interface {
	CreateOrganization(ctx context.Context, name string) (*Organization, error)
}

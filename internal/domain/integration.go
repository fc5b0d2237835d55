package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Integration представляет подключение каталога провайдера к организации.
type Integration struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	Provider       string
	DisplayName    string
	CreatedAt      time.Time
}

// BatchStats представляет итоги сверки одной партии.
type BatchStats struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
	Errors  int `json:"errors"`
	// ErrorMessages хранит только первые сообщения об ошибках,
	// остальные отбрасываются ради ограничения размера состояния.
	ErrorMessages []string `json:"error_messages,omitempty"`
}

// IntegrationSyncState представляет накопленный прогресс полной синхронизации
// одной интеграции. Единственное разделяемое между партиями состояние.
type IntegrationSyncState struct {
	IntegrationID    uuid.UUID
	BatchesCompleted int
	TotalBatches     int
	TotalUsers       int
	ProgressPercent  int
	LastBatchStats   *BatchStats
	LastSyncMessage  string
	UpdatedAt        time.Time
}

// IntegrationRepository определяет контракт для работы с интеграциями
// и их состоянием синхронизации.
type IntegrationRepository interface {
	Create(ctx context.Context, integration *Integration) (*Integration, error)
	GetByID(ctx context.Context, integrationID uuid.UUID) (*Integration, error)
	GetSyncState(ctx context.Context, integrationID uuid.UUID) (*IntegrationSyncState, error)
	// ResetSyncState обнуляет состояние в начале новой полной синхронизации.
	ResetSyncState(ctx context.Context, integrationID uuid.UUID, totalBatches, totalUsers int, message string) error
	// AdvanceSyncProgress атомарно увеличивает счетчик завершенных партий
	// на единицу и возвращает новое состояние.
	AdvanceSyncProgress(ctx context.Context, integrationID uuid.UUID, totalBatches, totalUsers int, stats *BatchStats) (*IntegrationSyncState, error)
	// SetSyncMessage записывает сообщение о прогрессе, только если счетчик
	// партий не ушел вперед с момента вычисления сообщения.
	SetSyncMessage(ctx context.Context, integrationID uuid.UUID, batchesCompleted int, message string) error
}

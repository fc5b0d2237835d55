package usecase

import (
	"context"
	"fmt"

	"directory-sync-service/internal/domain"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// SyncScheduler реализует запуск полной синхронизации каталога: получает
// список пользователей у провайдера, нарезает его на батчи и ставит батчи
// в очередь задач.
type SyncScheduler struct {
	integrationRepo domain.IntegrationRepository
	fetcher         domain.DirectoryFetcher
	queue           domain.TaskQueue
	batchSize       int
	log             *logrus.Logger
}

// NewSyncScheduler создает новый экземпляр SyncScheduler.
func NewSyncScheduler(integrationRepo domain.IntegrationRepository, fetcher domain.DirectoryFetcher, queue domain.TaskQueue, batchSize int, log *logrus.Logger) domain.SyncScheduler {
	if batchSize <= 0 {
		batchSize = 100
	}

	return &SyncScheduler{
		integrationRepo: integrationRepo,
		fetcher:         fetcher,
		queue:           queue,
		batchSize:       batchSize,
		log:             log,
	}
}

// StartSync запускает полную синхронизацию интеграции.
func (uc *SyncScheduler) StartSync(ctx context.Context, integrationID uuid.UUID) (*domain.SyncStarted, error) {
	// 1. Проверяем, что интеграция существует
	integration, err := uc.integrationRepo.GetByID(ctx, integrationID)
	if err != nil {
		return nil, err
	}

	// 2. Получаем полный список пользователей каталога
	users, err := uc.fetcher.FetchDirectoryUsers(ctx, integration)
	if err != nil {
		uc.log.WithError(err).WithField("integration_id", integrationID).Error("directory listing failed")
		return nil, domain.ErrDirectoryUnavailable
	}

	// 3. Пустой каталог: фиксируем завершенную синхронизацию без батчей
	if len(users) == 0 {
		message := "Sync complete: directory returned no users"
		if err := uc.integrationRepo.ResetSyncState(ctx, integrationID, 0, 0, message); err != nil {
			return nil, err
		}
		return &domain.SyncStarted{IntegrationID: integrationID}, nil
	}

	// 4. Сбрасываем состояние прогресса под новый прогон
	totalBatches := (len(users) + uc.batchSize - 1) / uc.batchSize
	message := fmt.Sprintf("Sync started: %d users in %d batches", len(users), totalBatches)
	if err := uc.integrationRepo.ResetSyncState(ctx, integrationID, totalBatches, len(users), message); err != nil {
		return nil, err
	}

	// 5. Нарезаем список на батчи и ставим их в очередь
	for i := 0; i < totalBatches; i++ {
		start := i * uc.batchSize
		end := start + uc.batchSize
		if end > len(users) {
			end = len(users)
		}

		batch := &domain.SyncBatch{
			IntegrationID:  integration.ID,
			OrganizationID: integration.OrganizationID,
			Users:          users[start:end],
			BatchNumber:    i,
			TotalBatches:   totalBatches,
			TotalUsers:     len(users),
		}
		if err := uc.queue.Enqueue(ctx, domain.TaskReconcileBatch, batch); err != nil {
			return nil, err
		}
	}

	uc.log.WithFields(logrus.Fields{
		"integration_id": integrationID,
		"total_users":    len(users),
		"total_batches":  totalBatches,
	}).Info("directory sync scheduled")

	return &domain.SyncStarted{
		IntegrationID: integrationID,
		TotalUsers:    len(users),
		TotalBatches:  totalBatches,
	}, nil
}

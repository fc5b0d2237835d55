package usecase

import (
	"context"
	"fmt"

	"directory-sync-service/internal/domain"

	"github.com/sirupsen/logrus"
)

// ProgressAggregator реализует учет завершенных батчей и обновление
// видимого дашборду прогресса синхронизации.
type ProgressAggregator struct {
	integrationRepo domain.IntegrationRepository
	log             *logrus.Logger
}

// NewProgressAggregator создает новый экземпляр ProgressAggregator.
func NewProgressAggregator(integrationRepo domain.IntegrationRepository, log *logrus.Logger) domain.ProgressAggregator {
	return &ProgressAggregator{
		integrationRepo: integrationRepo,
		log:             log,
	}
}

// CompleteBatch фиксирует завершение батча. Обновление прогресса не должно
// проваливать уже выполненную сверку, поэтому ошибки здесь только логируются.
func (uc *ProgressAggregator) CompleteBatch(ctx context.Context, batch *domain.SyncBatch, stats *domain.BatchStats) {
	log := uc.log.WithFields(logrus.Fields{
		"integration_id": batch.IntegrationID,
		"batch":          batch.BatchNumber,
	})

	// 1. Атомарно двигаем счетчик завершенных батчей и процент прогресса
	state, err := uc.integrationRepo.AdvanceSyncProgress(ctx, batch.IntegrationID, batch.TotalBatches, batch.TotalUsers, stats)
	if err != nil {
		log.WithError(err).Error("failed to advance sync progress")
		return
	}

	// 2. Обновляем сообщение; защита по счетчику отбрасывает устаревшие
	message := fmt.Sprintf("Processed %d of %d batches", state.BatchesCompleted, state.TotalBatches)
	if state.BatchesCompleted >= state.TotalBatches {
		message = fmt.Sprintf("Sync complete: %d users processed", state.TotalUsers)
	}
	if err := uc.integrationRepo.SetSyncMessage(ctx, batch.IntegrationID, state.BatchesCompleted, message); err != nil {
		log.WithError(err).Error("failed to set sync message")
		return
	}

	if state.BatchesCompleted >= state.TotalBatches {
		log.WithField("total_users", state.TotalUsers).Info("directory sync finished")
	}
}

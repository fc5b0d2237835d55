package usecase_test

import (
	"context"
	"errors"
	"testing"

	"directory-sync-service/internal/domain"
	"directory-sync-service/internal/mocks"
	"directory-sync-service/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

func TestProgressAggregator_CompleteBatch_Intermediate(t *testing.T) {
	ctx := context.Background()
	integrationID := uuid.New()
	batch := &domain.SyncBatch{IntegrationID: integrationID, BatchNumber: 1, TotalBatches: 4, TotalUsers: 400}
	stats := &domain.BatchStats{Created: 100}

	mockIntegrationRepo := &mocks.IntegrationRepository{}
	mockIntegrationRepo.On("AdvanceSyncProgress", mock.Anything, integrationID, 4, 400, stats).
		Return(&domain.IntegrationSyncState{
			IntegrationID:    integrationID,
			BatchesCompleted: 2,
			TotalBatches:     4,
			TotalUsers:       400,
			ProgressPercent:  50,
		}, nil)
	mockIntegrationRepo.On("SetSyncMessage", mock.Anything, integrationID, 2, "Processed 2 of 4 batches").Return(nil)

	uc := usecase.NewProgressAggregator(mockIntegrationRepo, newTestLogger())
	uc.CompleteBatch(ctx, batch, stats)

	mockIntegrationRepo.AssertExpectations(t)
}

func TestProgressAggregator_CompleteBatch_Final(t *testing.T) {
	ctx := context.Background()
	integrationID := uuid.New()
	batch := &domain.SyncBatch{IntegrationID: integrationID, BatchNumber: 3, TotalBatches: 4, TotalUsers: 400}
	stats := &domain.BatchStats{Updated: 100}

	mockIntegrationRepo := &mocks.IntegrationRepository{}
	mockIntegrationRepo.On("AdvanceSyncProgress", mock.Anything, integrationID, 4, 400, stats).
		Return(&domain.IntegrationSyncState{
			IntegrationID:    integrationID,
			BatchesCompleted: 4,
			TotalBatches:     4,
			TotalUsers:       400,
			ProgressPercent:  100,
		}, nil)
	mockIntegrationRepo.On("SetSyncMessage", mock.Anything, integrationID, 4, "Sync complete: 400 users processed").Return(nil)

	uc := usecase.NewProgressAggregator(mockIntegrationRepo, newTestLogger())
	uc.CompleteBatch(ctx, batch, stats)

	mockIntegrationRepo.AssertExpectations(t)
}

func TestProgressAggregator_CompleteBatch_AdvanceFails(t *testing.T) {
	ctx := context.Background()
	integrationID := uuid.New()
	batch := &domain.SyncBatch{IntegrationID: integrationID, TotalBatches: 4, TotalUsers: 400}

	mockIntegrationRepo := &mocks.IntegrationRepository{}
	mockIntegrationRepo.On("AdvanceSyncProgress", mock.Anything, integrationID, 4, 400, mock.Anything).
		Return(nil, errors.New("connection reset"))

	uc := usecase.NewProgressAggregator(mockIntegrationRepo, newTestLogger())
	uc.CompleteBatch(ctx, batch, &domain.BatchStats{})

	mockIntegrationRepo.AssertNotCalled(t, "SetSyncMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestProgressAggregator_CompleteBatch_SetMessageFailureSwallowed(t *testing.T) {
	ctx := context.Background()
	integrationID := uuid.New()
	batch := &domain.SyncBatch{IntegrationID: integrationID, TotalBatches: 2, TotalUsers: 50}

	mockIntegrationRepo := &mocks.IntegrationRepository{}
	mockIntegrationRepo.On("AdvanceSyncProgress", mock.Anything, integrationID, 2, 50, mock.Anything).
		Return(&domain.IntegrationSyncState{
			IntegrationID:    integrationID,
			BatchesCompleted: 1,
			TotalBatches:     2,
			TotalUsers:       50,
			ProgressPercent:  50,
		}, nil)
	mockIntegrationRepo.On("SetSyncMessage", mock.Anything, integrationID, 1, mock.Anything).
		Return(errors.New("connection reset"))

	uc := usecase.NewProgressAggregator(mockIntegrationRepo, newTestLogger())

	// Обновление сообщения не критично: паники и побочных вызовов быть не должно
	uc.CompleteBatch(ctx, batch, &domain.BatchStats{})

	mockIntegrationRepo.AssertExpectations(t)
}

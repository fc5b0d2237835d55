package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"directory-sync-service/internal/domain"
	"directory-sync-service/internal/mocks"
	"directory-sync-service/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func makeDirectoryUsers(n int) []domain.DirectoryUser {
	users := make([]domain.DirectoryUser, 0, n)
	for i := 0; i < n; i++ {
		users = append(users, domain.DirectoryUser{
			ExternalID: fmt.Sprintf("g-%d", i),
			Email:      fmt.Sprintf("user%d@corp.test", i),
			FullName:   fmt.Sprintf("User %d", i),
			Status:     "active",
		})
	}
	return users
}

func TestSyncScheduler_StartSync_SplitsUsersIntoBatches(t *testing.T) {
	ctx := context.Background()
	integrationID := uuid.New()
	orgID := uuid.New()
	integration := &domain.Integration{ID: integrationID, OrganizationID: orgID, Provider: "google"}

	mockIntegrationRepo := &mocks.IntegrationRepository{}
	mockFetcher := &mocks.DirectoryFetcher{}
	mockQueue := &mocks.TaskQueue{}

	mockIntegrationRepo.On("GetByID", mock.Anything, integrationID).Return(integration, nil)
	mockFetcher.On("FetchDirectoryUsers", mock.Anything, integration).Return(makeDirectoryUsers(250), nil)
	mockIntegrationRepo.On("ResetSyncState", mock.Anything, integrationID, 3, 250, "Sync started: 250 users in 3 batches").Return(nil)

	var captured []*domain.SyncBatch
	mockQueue.On("Enqueue", mock.Anything, domain.TaskReconcileBatch, mock.Anything).
		Run(func(args mock.Arguments) {
			captured = append(captured, args.Get(2).(*domain.SyncBatch))
		}).
		Return(nil)

	uc := usecase.NewSyncScheduler(mockIntegrationRepo, mockFetcher, mockQueue, 100, newTestLogger())

	result, err := uc.StartSync(ctx, integrationID)

	assert.NoError(t, err)
	assert.Equal(t, &domain.SyncStarted{IntegrationID: integrationID, TotalUsers: 250, TotalBatches: 3}, result)

	assert.Len(t, captured, 3)
	assert.Len(t, captured[0].Users, 100)
	assert.Len(t, captured[1].Users, 100)
	assert.Len(t, captured[2].Users, 50)
	for i, batch := range captured {
		assert.Equal(t, i, batch.BatchNumber)
		assert.Equal(t, 3, batch.TotalBatches)
		assert.Equal(t, 250, batch.TotalUsers)
		assert.Equal(t, integrationID, batch.IntegrationID)
		assert.Equal(t, orgID, batch.OrganizationID)
	}
	// Батчи покрывают список без пропусков и дублей
	assert.Equal(t, "user0@corp.test", captured[0].Users[0].Email)
	assert.Equal(t, "user100@corp.test", captured[1].Users[0].Email)
	assert.Equal(t, "user249@corp.test", captured[2].Users[49].Email)

	mockIntegrationRepo.AssertExpectations(t)
	mockQueue.AssertExpectations(t)
}

func TestSyncScheduler_StartSync_ExactMultipleOfBatchSize(t *testing.T) {
	ctx := context.Background()
	integrationID := uuid.New()
	integration := &domain.Integration{ID: integrationID, OrganizationID: uuid.New(), Provider: "google"}

	mockIntegrationRepo := &mocks.IntegrationRepository{}
	mockFetcher := &mocks.DirectoryFetcher{}
	mockQueue := &mocks.TaskQueue{}

	mockIntegrationRepo.On("GetByID", mock.Anything, integrationID).Return(integration, nil)
	mockFetcher.On("FetchDirectoryUsers", mock.Anything, integration).Return(makeDirectoryUsers(200), nil)
	mockIntegrationRepo.On("ResetSyncState", mock.Anything, integrationID, 2, 200, mock.Anything).Return(nil)
	mockQueue.On("Enqueue", mock.Anything, domain.TaskReconcileBatch, mock.Anything).Return(nil)

	uc := usecase.NewSyncScheduler(mockIntegrationRepo, mockFetcher, mockQueue, 100, newTestLogger())

	result, err := uc.StartSync(ctx, integrationID)

	assert.NoError(t, err)
	assert.Equal(t, 2, result.TotalBatches)
	mockQueue.AssertNumberOfCalls(t, "Enqueue", 2)
}

func TestSyncScheduler_StartSync_EmptyDirectory(t *testing.T) {
	ctx := context.Background()
	integrationID := uuid.New()
	integration := &domain.Integration{ID: integrationID, OrganizationID: uuid.New(), Provider: "google"}

	mockIntegrationRepo := &mocks.IntegrationRepository{}
	mockFetcher := &mocks.DirectoryFetcher{}
	mockQueue := &mocks.TaskQueue{}

	mockIntegrationRepo.On("GetByID", mock.Anything, integrationID).Return(integration, nil)
	mockFetcher.On("FetchDirectoryUsers", mock.Anything, integration).Return([]domain.DirectoryUser{}, nil)
	mockIntegrationRepo.On("ResetSyncState", mock.Anything, integrationID, 0, 0, "Sync complete: directory returned no users").Return(nil)

	uc := usecase.NewSyncScheduler(mockIntegrationRepo, mockFetcher, mockQueue, 100, newTestLogger())

	result, err := uc.StartSync(ctx, integrationID)

	assert.NoError(t, err)
	assert.Equal(t, &domain.SyncStarted{IntegrationID: integrationID}, result)
	mockQueue.AssertNotCalled(t, "Enqueue", mock.Anything, mock.Anything, mock.Anything)
	mockIntegrationRepo.AssertExpectations(t)
}

func TestSyncScheduler_StartSync_DirectoryUnavailable(t *testing.T) {
	ctx := context.Background()
	integrationID := uuid.New()
	integration := &domain.Integration{ID: integrationID, OrganizationID: uuid.New(), Provider: "google"}

	mockIntegrationRepo := &mocks.IntegrationRepository{}
	mockFetcher := &mocks.DirectoryFetcher{}
	mockQueue := &mocks.TaskQueue{}

	mockIntegrationRepo.On("GetByID", mock.Anything, integrationID).Return(integration, nil)
	mockFetcher.On("FetchDirectoryUsers", mock.Anything, integration).Return(nil, errors.New("googleapi: 503"))

	uc := usecase.NewSyncScheduler(mockIntegrationRepo, mockFetcher, mockQueue, 100, newTestLogger())

	result, err := uc.StartSync(ctx, integrationID)

	assert.ErrorIs(t, err, domain.ErrDirectoryUnavailable)
	assert.Nil(t, result)
	mockIntegrationRepo.AssertNotCalled(t, "ResetSyncState", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSyncScheduler_StartSync_IntegrationNotFound(t *testing.T) {
	ctx := context.Background()
	integrationID := uuid.New()

	mockIntegrationRepo := &mocks.IntegrationRepository{}
	mockFetcher := &mocks.DirectoryFetcher{}
	mockQueue := &mocks.TaskQueue{}

	mockIntegrationRepo.On("GetByID", mock.Anything, integrationID).Return(nil, domain.ErrIntegrationNotFound)

	uc := usecase.NewSyncScheduler(mockIntegrationRepo, mockFetcher, mockQueue, 100, newTestLogger())

	result, err := uc.StartSync(ctx, integrationID)

	assert.ErrorIs(t, err, domain.ErrIntegrationNotFound)
	assert.Nil(t, result)
	mockFetcher.AssertNotCalled(t, "FetchDirectoryUsers", mock.Anything, mock.Anything)
}

func TestSyncScheduler_StartSync_EnqueueFails(t *testing.T) {
	ctx := context.Background()
	integrationID := uuid.New()
	integration := &domain.Integration{ID: integrationID, OrganizationID: uuid.New(), Provider: "google"}
	enqueueErr := errors.New("connection refused")

	mockIntegrationRepo := &mocks.IntegrationRepository{}
	mockFetcher := &mocks.DirectoryFetcher{}
	mockQueue := &mocks.TaskQueue{}

	mockIntegrationRepo.On("GetByID", mock.Anything, integrationID).Return(integration, nil)
	mockFetcher.On("FetchDirectoryUsers", mock.Anything, integration).Return(makeDirectoryUsers(10), nil)
	mockIntegrationRepo.On("ResetSyncState", mock.Anything, integrationID, 1, 10, mock.Anything).Return(nil)
	mockQueue.On("Enqueue", mock.Anything, domain.TaskReconcileBatch, mock.Anything).Return(enqueueErr)

	uc := usecase.NewSyncScheduler(mockIntegrationRepo, mockFetcher, mockQueue, 100, newTestLogger())

	result, err := uc.StartSync(ctx, integrationID)

	assert.ErrorIs(t, err, enqueueErr)
	assert.Nil(t, result)
}

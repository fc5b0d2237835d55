package usecase

import (
	"context"
	"strings"

	"directory-sync-service/internal/domain"

	"github.com/google/uuid"
)

// supportedProviders перечисляет провайдеры каталогов, для которых
// реализован DirectoryFetcher.
var supportedProviders = map[string]bool{
	"google": true,
}

// IntegrationUseCase реализует бизнес-логику для работы с интеграциями каталогов.
type IntegrationUseCase struct {
	integrationRepo domain.IntegrationRepository
	orgRepo         domain.OrganizationRepository
}

// NewIntegrationUseCase создает новый экземпляр IntegrationUseCase.
func NewIntegrationUseCase(integrationRepo domain.IntegrationRepository, orgRepo domain.OrganizationRepository) domain.IntegrationUseCase {
	return &IntegrationUseCase{
		integrationRepo: integrationRepo,
		orgRepo:         orgRepo,
	}
}

// CreateIntegration подключает каталог провайдера к организации.
func (uc *IntegrationUseCase) CreateIntegration(ctx context.Context, organizationID uuid.UUID, provider, displayName string) (*domain.Integration, error) {
	// Валидация входных данных
	provider = strings.ToLower(strings.TrimSpace(provider))
	if !supportedProviders[provider] {
		return nil, domain.ErrInvalidProvider
	}

	// 1. Проверяем, что организация существует
	if _, err := uc.orgRepo.GetByID(ctx, organizationID); err != nil {
		return nil, err
	}

	// 2. Создаем интеграцию
	if strings.TrimSpace(displayName) == "" {
		displayName = provider
	}
	return uc.integrationRepo.Create(ctx, &domain.Integration{
		OrganizationID: organizationID,
		Provider:       provider,
		DisplayName:    displayName,
	})
}

// GetIntegration возвращает интеграцию по ID.
func (uc *IntegrationUseCase) GetIntegration(ctx context.Context, integrationID uuid.UUID) (*domain.Integration, error) {
	return uc.integrationRepo.GetByID(ctx, integrationID)
}

// GetSyncState возвращает состояние синхронизации интеграции.
func (uc *IntegrationUseCase) GetSyncState(ctx context.Context, integrationID uuid.UUID) (*domain.IntegrationSyncState, error) {
	// 1. Проверяем, что интеграция существует
	if _, err := uc.integrationRepo.GetByID(ctx, integrationID); err != nil {
		return nil, err
	}

	// 2. Читаем состояние; его нет, пока синхронизация ни разу не запускалась
	return uc.integrationRepo.GetSyncState(ctx, integrationID)
}

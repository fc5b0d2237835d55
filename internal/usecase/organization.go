package usecase

import (
	"context"
	"strings"

	"directory-sync-service/internal/domain"
)

// OrganizationUseCase реализует бизнес-логику для работы с организациями.
type OrganizationUseCase struct {
	orgRepo domain.OrganizationRepository
}

// NewOrganizationUseCase создает новый экземпляр OrganizationUseCase.
func NewOrganizationUseCase(orgRepo domain.OrganizationRepository) domain.OrganizationUseCase {
	return &OrganizationUseCase{orgRepo: orgRepo}
}

// CreateOrganization создает новую организацию.
func (uc *OrganizationUseCase) CreateOrganization(ctx context.Context, name string) (*domain.Organization, error) {
	// Валидация входных данных
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidOrganizationName
	}

	return uc.orgRepo.Create(ctx, &domain.Organization{Name: name})
}

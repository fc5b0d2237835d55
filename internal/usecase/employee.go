package usecase

import (
	"context"

	"directory-sync-service/internal/domain"

	"github.com/google/uuid"
)

const (
	defaultEmployeePageSize = 100
	maxEmployeePageSize     = 500
)

// EmployeeUseCase реализует бизнес-логику для чтения сотрудников.
type EmployeeUseCase struct {
	employeeRepo domain.EmployeeRepository
	orgRepo      domain.OrganizationRepository
}

// NewEmployeeUseCase создает новый экземпляр EmployeeUseCase.
func NewEmployeeUseCase(employeeRepo domain.EmployeeRepository, orgRepo domain.OrganizationRepository) domain.EmployeeUseCase {
	return &EmployeeUseCase{
		employeeRepo: employeeRepo,
		orgRepo:      orgRepo,
	}
}

// ListEmployees возвращает страницу сотрудников организации.
func (uc *EmployeeUseCase) ListEmployees(ctx context.Context, organizationID uuid.UUID, limit, offset int) ([]*domain.Employee, error) {
	// Валидация пагинации
	if limit <= 0 || limit > maxEmployeePageSize {
		limit = defaultEmployeePageSize
	}
	if offset < 0 {
		offset = 0
	}

	// 1. Проверяем, что организация существует
	if _, err := uc.orgRepo.GetByID(ctx, organizationID); err != nil {
		return nil, err
	}

	// 2. Читаем страницу сотрудников
	return uc.employeeRepo.ListByOrganization(ctx, organizationID, limit, offset)
}

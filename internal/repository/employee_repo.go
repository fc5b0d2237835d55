package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"directory-sync-service/internal/domain"

	"github.com/google/uuid"
)

const employeeColumns = `id, organization_id, external_id, email, name, title, phone, hired_at, offboarded_at, status, created_at, updated_at`

// EmployeeRepository реализует взаимодействие с данными сотрудников в PostgreSQL.
type EmployeeRepository struct {
	db *sql.DB
}

// NewEmployeeRepository создает новый экземпляр EmployeeRepository.
func NewEmployeeRepository(db *sql.DB) domain.EmployeeRepository {
	return &EmployeeRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (*domain.Employee, error) {
	var employee domain.Employee
	err := row.Scan(
		&employee.ID,
		&employee.OrganizationID,
		&employee.ExternalID,
		&employee.Email,
		&employee.Name,
		&employee.Title,
		&employee.Phone,
		&employee.HiredAt,
		&employee.OffboardedAt,
		&employee.Status,
		&employee.CreatedAt,
		&employee.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

// FindByExternalID возвращает сотрудника по внешнему идентификатору провайдера.
func (r *EmployeeRepository) FindByExternalID(ctx context.Context, organizationID uuid.UUID, externalID string) (*domain.Employee, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+employeeColumns+`
		FROM employees
		WHERE organization_id = $1 AND external_id = $2`,
		organizationID, externalID,
	)

	employee, err := scanEmployee(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to find employee by external id: %w", err)
	}

	return employee, nil
}

// FindByEmail возвращает сотрудника по email.
func (r *EmployeeRepository) FindByEmail(ctx context.Context, organizationID uuid.UUID, email string) (*domain.Employee, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+employeeColumns+`
		FROM employees
		WHERE organization_id = $1 AND email = $2`,
		organizationID, email,
	)

	employee, err := scanEmployee(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to find employee by email: %w", err)
	}

	return employee, nil
}

// Create создает нового сотрудника.
func (r *EmployeeRepository) Create(ctx context.Context, employee *domain.Employee) (*domain.Employee, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO employees (organization_id, external_id, email, name, title, phone, hired_at, offboarded_at, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+employeeColumns,
		employee.OrganizationID,
		employee.ExternalID,
		employee.Email,
		employee.Name,
		employee.Title,
		employee.Phone,
		employee.HiredAt,
		employee.OffboardedAt,
		employee.Status,
	)

	created, err := scanEmployee(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrEmployeeAlreadyExists
		}
		if isForeignKeyViolation(err) {
			return nil, domain.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}

	return created, nil
}

// Update обновляет данные сотрудника.
func (r *EmployeeRepository) Update(ctx context.Context, employee *domain.Employee) (*domain.Employee, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE employees
		SET external_id = $2, email = $3, name = $4, title = $5, phone = $6,
		    hired_at = $7, offboarded_at = $8, status = $9, updated_at = now()
		WHERE id = $1
		RETURNING `+employeeColumns,
		employee.ID,
		employee.ExternalID,
		employee.Email,
		employee.Name,
		employee.Title,
		employee.Phone,
		employee.HiredAt,
		employee.OffboardedAt,
		employee.Status,
	)

	updated, err := scanEmployee(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEmployeeNotFound
		}
		if isUniqueViolation(err) {
			return nil, domain.ErrEmployeeAlreadyExists
		}
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}

	return updated, nil
}

// ListByOrganization возвращает сотрудников организации с пагинацией.
func (r *EmployeeRepository) ListByOrganization(ctx context.Context, organizationID uuid.UUID, limit, offset int) ([]*domain.Employee, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+employeeColumns+`
		FROM employees
		WHERE organization_id = $1
		ORDER BY name, id
		LIMIT $2 OFFSET $3`,
		organizationID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	employees := make([]*domain.Employee, 0)
	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, employee)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return employees, nil
}

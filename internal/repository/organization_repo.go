package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"directory-sync-service/internal/domain"

	"github.com/google/uuid"
)

// OrganizationRepository реализует взаимодействие с данными организаций в PostgreSQL.
type OrganizationRepository struct {
	db *sql.DB
}

// NewOrganizationRepository создает новый экземпляр OrganizationRepository.
func NewOrganizationRepository(db *sql.DB) domain.OrganizationRepository {
	return &OrganizationRepository{db: db}
}

// Create создает новую организацию.
func (r *OrganizationRepository) Create(ctx context.Context, organization *domain.Organization) (*domain.Organization, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO organizations (name)
		VALUES ($1)
		RETURNING id, name, created_at`,
		organization.Name,
	)

	var created domain.Organization
	if err := row.Scan(&created.ID, &created.Name, &created.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}

	return &created, nil
}

// GetByID возвращает организацию по ID.
func (r *OrganizationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, created_at
		FROM organizations
		WHERE id = $1`,
		id,
	)

	var organization domain.Organization
	if err := row.Scan(&organization.ID, &organization.Name, &organization.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}

	return &organization, nil
}

package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"directory-sync-service/internal/domain"

	"github.com/google/uuid"
)

// IntegrationRepository реализует взаимодействие с данными интеграций в PostgreSQL.
type IntegrationRepository struct {
	db *sql.DB
}

// NewIntegrationRepository создает новый экземпляр IntegrationRepository.
func NewIntegrationRepository(db *sql.DB) domain.IntegrationRepository {
	return &IntegrationRepository{db: db}
}

// Create создает новую интеграцию каталога для организации.
func (r *IntegrationRepository) Create(ctx context.Context, integration *domain.Integration) (*domain.Integration, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO integrations (organization_id, provider, display_name)
		VALUES ($1, $2, $3)
		RETURNING id, organization_id, provider, display_name, created_at`,
		integration.OrganizationID, integration.Provider, integration.DisplayName,
	)

	var created domain.Integration
	err := row.Scan(&created.ID, &created.OrganizationID, &created.Provider, &created.DisplayName, &created.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrIntegrationAlreadyExists
		}
		if isForeignKeyViolation(err) {
			return nil, domain.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to create integration: %w", err)
	}

	return &created, nil
}

// GetByID возвращает интеграцию по ID.
func (r *IntegrationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Integration, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, organization_id, provider, display_name, created_at
		FROM integrations
		WHERE id = $1`,
		id,
	)

	var integration domain.Integration
	err := row.Scan(&integration.ID, &integration.OrganizationID, &integration.Provider, &integration.DisplayName, &integration.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrIntegrationNotFound
		}
		return nil, fmt.Errorf("failed to get integration: %w", err)
	}

	return &integration, nil
}

// GetSyncState возвращает текущее состояние синхронизации интеграции.
func (r *IntegrationRepository) GetSyncState(ctx context.Context, integrationID uuid.UUID) (*domain.IntegrationSyncState, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT integration_id, batches_completed, total_batches, total_users, progress_percent, last_batch_stats, last_sync_message, updated_at
		FROM integration_sync_state
		WHERE integration_id = $1`,
		integrationID,
	)

	state, err := scanSyncState(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSyncStateNotFound
		}
		return nil, fmt.Errorf("failed to get sync state: %w", err)
	}

	return state, nil
}

// ResetSyncState сбрасывает состояние синхронизации к началу нового прогона.
func (r *IntegrationRepository) ResetSyncState(ctx context.Context, integrationID uuid.UUID, totalBatches, totalUsers int, message string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO integration_sync_state (integration_id, batches_completed, total_batches, total_users, progress_percent, last_batch_stats, last_sync_message, updated_at)
		VALUES ($1, 0, $2, $3, CASE WHEN $2 = 0 THEN 100 ELSE 0 END, NULL, $4, now())
		ON CONFLICT (integration_id) DO UPDATE SET
			batches_completed = 0,
			total_batches     = EXCLUDED.total_batches,
			total_users       = EXCLUDED.total_users,
			progress_percent  = EXCLUDED.progress_percent,
			last_batch_stats  = NULL,
			last_sync_message = EXCLUDED.last_sync_message,
			updated_at        = now()`,
		integrationID, totalBatches, totalUsers, message,
	)
	if err != nil {
		return fmt.Errorf("failed to reset sync state: %w", err)
	}

	return nil
}

// AdvanceSyncProgress атомарно увеличивает счетчик завершенных батчей и
// пересчитывает процент прогресса. Возвращает состояние после инкремента,
// поэтому конкурирующие воркеры никогда не затирают счетчик друг друга.
func (r *IntegrationRepository) AdvanceSyncProgress(ctx context.Context, integrationID uuid.UUID, totalBatches, totalUsers int, stats *domain.BatchStats) (*domain.IntegrationSyncState, error) {
	statsJSON, err := json.Marshal(stats)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal batch stats: %w", err)
	}

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO integration_sync_state (integration_id, batches_completed, total_batches, total_users, progress_percent, last_batch_stats, updated_at)
		VALUES ($1, 1, $2, $3, LEAST(round(100.0 / $2), 100)::int, $4, now())
		ON CONFLICT (integration_id) DO UPDATE SET
			batches_completed = integration_sync_state.batches_completed + 1,
			total_batches     = EXCLUDED.total_batches,
			total_users       = EXCLUDED.total_users,
			progress_percent  = LEAST(round(100.0 * (integration_sync_state.batches_completed + 1) / EXCLUDED.total_batches), 100)::int,
			last_batch_stats  = EXCLUDED.last_batch_stats,
			updated_at        = now()
		RETURNING integration_id, batches_completed, total_batches, total_users, progress_percent, last_batch_stats, last_sync_message, updated_at`,
		integrationID, totalBatches, totalUsers, statsJSON,
	)

	state, err := scanSyncState(row)
	if err != nil {
		return nil, fmt.Errorf("failed to advance sync progress: %w", err)
	}

	return state, nil
}

// SetSyncMessage записывает человекочитаемое сообщение о ходе синхронизации.
// Обновление выполняется только пока счетчик батчей не ушел вперед, чтобы
// устаревшее сообщение не перекрыло более свежее.
func (r *IntegrationRepository) SetSyncMessage(ctx context.Context, integrationID uuid.UUID, batchesCompleted int, message string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE integration_sync_state
		SET last_sync_message = $3, updated_at = now()
		WHERE integration_id = $1 AND batches_completed = $2`,
		integrationID, batchesCompleted, message,
	)
	if err != nil {
		return fmt.Errorf("failed to set sync message: %w", err)
	}

	return nil
}

func scanSyncState(row rowScanner) (*domain.IntegrationSyncState, error) {
	var (
		state     domain.IntegrationSyncState
		statsJSON []byte
	)
	err := row.Scan(
		&state.IntegrationID,
		&state.BatchesCompleted,
		&state.TotalBatches,
		&state.TotalUsers,
		&state.ProgressPercent,
		&statsJSON,
		&state.LastSyncMessage,
		&state.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(statsJSON) > 0 {
		var stats domain.BatchStats
		if err := json.Unmarshal(statsJSON, &stats); err != nil {
			return nil, fmt.Errorf("failed to unmarshal batch stats: %w", err)
		}
		state.LastBatchStats = &stats
	}

	return &state, nil
}

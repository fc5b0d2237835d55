package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TaskReconcileBatch — имя задачи сверки одной партии в очереди.
const TaskReconcileBatch = "directory.reconcile-batch"

// SyncBatch представляет одну партию записей каталога. Живет только в рамках
// одной единицы работы: производится планировщиком, потребляется сверкой.
type SyncBatch struct {
	IntegrationID  uuid.UUID       `json:"integration_id"`
	OrganizationID uuid.UUID       `json:"organization_id"`
	Users          []DirectoryUser `json:"users"`
	BatchNumber    int             `json:"batch_number"`
	TotalBatches   int             `json:"total_batches"`
	TotalUsers     int             `json:"total_users"`
}

// SyncStarted представляет итог запуска полной синхронизации.
type SyncStarted struct {
	IntegrationID uuid.UUID `json:"integration_id"`
	TotalUsers    int       `json:"total_users"`
	TotalBatches  int       `json:"total_batches"`
}

// TaskQueue определяет контракт очереди задач. Очередь гарантирует
// как-минимум-однократное исполнение, поэтому обработчики обязаны быть
// идемпотентными.
type TaskQueue interface {
	Enqueue(ctx context.Context, taskName string, payload any) error
	EnqueueAt(ctx context.Context, taskName string, payload any, runAt time.Time) error
}

// DecodeSyncBatch разбирает и валидирует полезную нагрузку задачи сверки
// один раз на границе единицы работы. Некорректная нагрузка — это
// ErrMalformedTaskPayload, такую задачу нет смысла повторять.
func DecodeSyncBatch(payload []byte) (*SyncBatch, error) {
	var batch SyncBatch
	if err := json.Unmarshal(payload, &batch); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedTaskPayload, err)
	}

	if batch.IntegrationID == uuid.Nil {
		return nil, fmt.Errorf("%w: missing integration id", ErrMalformedTaskPayload)
	}
	if batch.OrganizationID == uuid.Nil {
		return nil, fmt.Errorf("%w: missing organization id", ErrMalformedTaskPayload)
	}
	if batch.TotalBatches <= 0 {
		return nil, fmt.Errorf("%w: total batches must be positive", ErrMalformedTaskPayload)
	}
	if batch.BatchNumber < 0 || batch.BatchNumber >= batch.TotalBatches {
		return nil, fmt.Errorf("%w: batch number %d out of range [0, %d)", ErrMalformedTaskPayload, batch.BatchNumber, batch.TotalBatches)
	}

	return &batch, nil
}

package taskqueue

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// errNoTask сигнализирует, что готовых к выполнению задач нет.
var errNoTask = errors.New("no task ready")

type task struct {
	id       int64
	name     string
	payload  []byte
	attempts int
}

// Queue хранит отложенные задачи в PostgreSQL. Воркеры забирают задачи
// через FOR UPDATE SKIP LOCKED, поэтому несколько экземпляров сервиса
// могут разбирать одну очередь без двойной обработки.
type Queue struct {
	db *sql.DB
}

// NewQueue создает новый экземпляр Queue.
func NewQueue(db *sql.DB) *Queue {
	return &Queue{db: db}
}

// Enqueue ставит задачу в очередь на немедленное выполнение.
func (q *Queue) Enqueue(ctx context.Context, taskName string, payload any) error {
	return q.EnqueueAt(ctx, taskName, payload, time.Now())
}

// EnqueueAt ставит задачу в очередь на выполнение не ранее указанного времени.
func (q *Queue) EnqueueAt(ctx context.Context, taskName string, payload any, runAt time.Time) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal task payload: %w", err)
	}

	_, err = q.db.ExecContext(ctx, `
		INSERT INTO tasks (name, payload, run_at)
		VALUES ($1, $2, $3)`,
		taskName, body, runAt,
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue task: %w", err)
	}

	return nil
}

// claim забирает самую раннюю готовую задачу и берет на нее аренду.
// Пока аренда не истекла, другие воркеры задачу не видят; если воркер
// упадет, задача вернется в очередь после истечения аренды.
func (q *Queue) claim(ctx context.Context, lease time.Duration) (*task, error) {
	tx, err := q.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// 1. Берем самую раннюю готовую задачу, пропуская занятые строки
	row := tx.QueryRowContext(ctx, `
		SELECT id, name, payload, attempts
		FROM tasks
		WHERE run_at <= now() AND (locked_until IS NULL OR locked_until <= now())
		ORDER BY run_at, id
		LIMIT 1
		FOR UPDATE SKIP LOCKED`)

	var t task
	err = row.Scan(&t.id, &t.name, &t.payload, &t.attempts)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errNoTask
		}
		return nil, fmt.Errorf("failed to claim task: %w", err)
	}

	// 2. Берем аренду и фиксируем попытку
	_, err = tx.ExecContext(ctx, `
		UPDATE tasks
		SET attempts = attempts + 1, locked_until = $2
		WHERE id = $1`,
		t.id, time.Now().Add(lease),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to lease task: %w", err)
	}
	t.attempts++

	// 3. Коммитим транзакцию
	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &t, nil
}

// complete удаляет выполненную задачу из очереди.
func (q *Queue) complete(ctx context.Context, taskID int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, taskID)
	if err != nil {
		return fmt.Errorf("failed to complete task: %w", err)
	}

	return nil
}

// retry возвращает задачу в очередь с отложенным временем запуска.
func (q *Queue) retry(ctx context.Context, taskID int64, delay time.Duration) error {
	_, err := q.db.ExecContext(ctx, `
		UPDATE tasks
		SET run_at = $2, locked_until = NULL
		WHERE id = $1`,
		taskID, time.Now().Add(delay),
	)
	if err != nil {
		return fmt.Errorf("failed to reschedule task: %w", err)
	}

	return nil
}

// release снимает аренду с задачи, не откладывая ее. Используется при
// остановке пула, чтобы незавершенная задача сразу досталась другому воркеру.
func (q *Queue) release(ctx context.Context, taskID int64) error {
	_, err := q.db.ExecContext(ctx, `
		UPDATE tasks
		SET locked_until = NULL
		WHERE id = $1`,
		taskID,
	)
	if err != nil {
		return fmt.Errorf("failed to release task: %w", err)
	}

	return nil
}

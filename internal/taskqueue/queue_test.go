package taskqueue

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"testing"
	"time"

	"directory-sync-service/internal/database"
	"directory-sync-service/internal/metrics"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type QueueTestSuite struct {
	suite.Suite
	db    *sql.DB
	queue *Queue
	ctx   context.Context
}

func (suite *QueueTestSuite) SetupSuite() {
	suite.ctx = context.Background()

	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		"postgres", "password", "localhost", "5433", "directory_sync_test",
	)

	var err error
	suite.db, err = sql.Open("pgx", dsn)
	if err != nil {
		log.Fatalf("Failed to connect to test database: %v", err)
	}

	err = suite.db.Ping()
	if err != nil {
		log.Fatalf("Failed to ping test database: %v", err)
	}

	err = database.MigrateDB(suite.db)
	if err != nil {
		log.Fatalf("Failed to migrate test database: %v", err)
	}

	suite.queue = NewQueue(suite.db)
	suite.cleanQueue()
}

func (suite *QueueTestSuite) TearDownTest() {
	suite.cleanQueue()
}

func (suite *QueueTestSuite) TearDownSuite() {
	if suite.db != nil {
		suite.db.Close()
	}
}

func (suite *QueueTestSuite) cleanQueue() {
	_, err := suite.db.ExecContext(suite.ctx, "DELETE FROM tasks")
	if err != nil {
		log.Printf("Failed to clean tasks table: %v", err)
	}
}

type testPayload struct {
	Value string `json:"value"`
}

func (suite *QueueTestSuite) newPool(maxAttempts int) *Pool {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return NewPool(suite.queue, PoolConfig{MaxAttempts: maxAttempts}, logger, metrics.NewSyncMetrics(prometheus.NewRegistry()))
}

func (suite *QueueTestSuite) countTasks() int {
	var count int
	err := suite.db.QueryRowContext(suite.ctx, "SELECT count(*) FROM tasks").Scan(&count)
	assert.NoError(suite.T(), err)
	return count
}

func (suite *QueueTestSuite) TestClaimComplete() {
	err := suite.queue.Enqueue(suite.ctx, "reconcile_batch", testPayload{Value: "batch-1"})
	assert.NoError(suite.T(), err)

	claimed, err := suite.queue.claim(suite.ctx, time.Minute)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "reconcile_batch", claimed.name)
	assert.Equal(suite.T(), 1, claimed.attempts)
	assert.JSONEq(suite.T(), `{"value": "batch-1"}`, string(claimed.payload))

	err = suite.queue.complete(suite.ctx, claimed.id)
	assert.NoError(suite.T(), err)

	_, err = suite.queue.claim(suite.ctx, time.Minute)
	assert.ErrorIs(suite.T(), err, errNoTask)
}

func (suite *QueueTestSuite) TestLeaseHidesClaimedTask() {
	err := suite.queue.Enqueue(suite.ctx, "reconcile_batch", testPayload{Value: "batch-1"})
	assert.NoError(suite.T(), err)

	claimed, err := suite.queue.claim(suite.ctx, time.Minute)
	assert.NoError(suite.T(), err)

	// Пока аренда не истекла, задача невидима для других воркеров
	_, err = suite.queue.claim(suite.ctx, time.Minute)
	assert.ErrorIs(suite.T(), err, errNoTask)

	err = suite.queue.release(suite.ctx, claimed.id)
	assert.NoError(suite.T(), err)

	// После снятия аренды задача снова доступна, счетчик попыток сохранен
	reclaimed, err := suite.queue.claim(suite.ctx, time.Minute)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), claimed.id, reclaimed.id)
	assert.Equal(suite.T(), 2, reclaimed.attempts)
}

func (suite *QueueTestSuite) TestExpiredLeaseReclaimable() {
	err := suite.queue.Enqueue(suite.ctx, "reconcile_batch", testPayload{Value: "batch-1"})
	assert.NoError(suite.T(), err)

	claimed, err := suite.queue.claim(suite.ctx, -time.Second)
	assert.NoError(suite.T(), err)

	// Истекшая аренда означает упавший воркер: задачу можно забрать снова
	reclaimed, err := suite.queue.claim(suite.ctx, time.Minute)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), claimed.id, reclaimed.id)
	assert.Equal(suite.T(), 2, reclaimed.attempts)
}

func (suite *QueueTestSuite) TestRetryDelaysTask() {
	err := suite.queue.Enqueue(suite.ctx, "reconcile_batch", testPayload{Value: "batch-1"})
	assert.NoError(suite.T(), err)

	claimed, err := suite.queue.claim(suite.ctx, time.Minute)
	assert.NoError(suite.T(), err)

	err = suite.queue.retry(suite.ctx, claimed.id, time.Hour)
	assert.NoError(suite.T(), err)

	// Задача отложена на час и сейчас не видна
	_, err = suite.queue.claim(suite.ctx, time.Minute)
	assert.ErrorIs(suite.T(), err, errNoTask)

	err = suite.queue.retry(suite.ctx, claimed.id, 0)
	assert.NoError(suite.T(), err)

	reclaimed, err := suite.queue.claim(suite.ctx, time.Minute)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), claimed.id, reclaimed.id)
}

func (suite *QueueTestSuite) TestEnqueueAtSchedulesForFuture() {
	err := suite.queue.EnqueueAt(suite.ctx, "reconcile_batch", testPayload{Value: "later"}, time.Now().Add(time.Hour))
	assert.NoError(suite.T(), err)

	_, err = suite.queue.claim(suite.ctx, time.Minute)
	assert.ErrorIs(suite.T(), err, errNoTask)
}

func (suite *QueueTestSuite) TestClaimOrderedByRunAt() {
	now := time.Now()
	err := suite.queue.EnqueueAt(suite.ctx, "reconcile_batch", testPayload{Value: "second"}, now.Add(-time.Minute))
	assert.NoError(suite.T(), err)
	err = suite.queue.EnqueueAt(suite.ctx, "reconcile_batch", testPayload{Value: "first"}, now.Add(-time.Hour))
	assert.NoError(suite.T(), err)

	claimed, err := suite.queue.claim(suite.ctx, time.Minute)
	assert.NoError(suite.T(), err)
	assert.JSONEq(suite.T(), `{"value": "first"}`, string(claimed.payload))

	claimed, err = suite.queue.claim(suite.ctx, time.Minute)
	assert.NoError(suite.T(), err)
	assert.JSONEq(suite.T(), `{"value": "second"}`, string(claimed.payload))
}

func (suite *QueueTestSuite) TestRunTaskRetriesUntilMaxAttempts() {
	pool := suite.newPool(2)
	calls := 0
	pool.Register("reconcile_batch", func(ctx context.Context, payload []byte) error {
		calls++
		return errors.New("store unavailable")
	})

	err := suite.queue.Enqueue(suite.ctx, "reconcile_batch", testPayload{Value: "batch-1"})
	assert.NoError(suite.T(), err)

	claimed, err := suite.queue.claim(suite.ctx, time.Minute)
	assert.NoError(suite.T(), err)
	pool.runTask(suite.ctx, 0, claimed)

	// Первая неудача: задача отложена с задержкой и пока не видна
	_, err = suite.queue.claim(suite.ctx, time.Minute)
	assert.ErrorIs(suite.T(), err, errNoTask)

	_, err = suite.db.ExecContext(suite.ctx, "UPDATE tasks SET run_at = now()")
	assert.NoError(suite.T(), err)

	claimed, err = suite.queue.claim(suite.ctx, time.Minute)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 2, claimed.attempts)
	pool.runTask(suite.ctx, 0, claimed)

	// Вторая неудача исчерпывает лимит попыток, задача удаляется
	assert.Equal(suite.T(), 2, calls)
	assert.Equal(suite.T(), 0, suite.countTasks())
}

func (suite *QueueTestSuite) TestRunTaskPermanentErrorNotRetried() {
	pool := suite.newPool(5)
	calls := 0
	pool.Register("reconcile_batch", func(ctx context.Context, payload []byte) error {
		calls++
		return Permanent(errors.New("malformed payload"))
	})

	err := suite.queue.Enqueue(suite.ctx, "reconcile_batch", testPayload{Value: "broken"})
	assert.NoError(suite.T(), err)

	claimed, err := suite.queue.claim(suite.ctx, time.Minute)
	assert.NoError(suite.T(), err)
	pool.runTask(suite.ctx, 0, claimed)

	// Неустранимая ошибка не ставит задачу на повтор
	assert.Equal(suite.T(), 1, calls)
	assert.Equal(suite.T(), 0, suite.countTasks())
}

func (suite *QueueTestSuite) TestRunTaskSuccessCompletes() {
	pool := suite.newPool(5)
	var seen []byte
	pool.Register("reconcile_batch", func(ctx context.Context, payload []byte) error {
		seen = payload
		return nil
	})

	err := suite.queue.Enqueue(suite.ctx, "reconcile_batch", testPayload{Value: "batch-1"})
	assert.NoError(suite.T(), err)

	claimed, err := suite.queue.claim(suite.ctx, time.Minute)
	assert.NoError(suite.T(), err)
	pool.runTask(suite.ctx, 0, claimed)

	assert.JSONEq(suite.T(), `{"value": "batch-1"}`, string(seen))
	assert.Equal(suite.T(), 0, suite.countTasks())
}

func TestQueueTestSuite(t *testing.T) {
	if os.Getenv("RUN_INTEGRATION_TESTS") != "1" {
		t.Skip("Skipping integration test. Set RUN_INTEGRATION_TESTS=1 to run.")
	}
	suite.Run(t, new(QueueTestSuite))
}

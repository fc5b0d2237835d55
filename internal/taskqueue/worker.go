package taskqueue

import (
	"context"
	"errors"
	"time"

	"directory-sync-service/internal/metrics"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Handler обрабатывает полезную нагрузку задачи одного типа.
type Handler func(ctx context.Context, payload []byte) error

// PermanentError помечает ошибку обработки как неустранимую:
// задача удаляется из очереди без повторных попыток.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return e.Err.Error() }

func (e *PermanentError) Unwrap() error { return e.Err }

// Permanent оборачивает ошибку, чтобы пул не повторял задачу.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &PermanentError{Err: err}
}

// PoolConfig определяет параметры пула воркеров.
type PoolConfig struct {
	Workers      int
	PollInterval time.Duration
	TaskLease    time.Duration
	MaxAttempts  int
}

// Pool опрашивает очередь и выполняет зарегистрированные задачи
// фиксированным числом воркеров.
type Pool struct {
	queue       *Queue
	cfg         PoolConfig
	log         *logrus.Logger
	syncMetrics *metrics.SyncMetrics
	handlers    map[string]Handler

	cancel context.CancelFunc
	group  *errgroup.Group
}

// NewPool создает пул воркеров, подставляя значения по умолчанию
// вместо незаданных параметров.
func NewPool(queue *Queue, cfg PoolConfig, log *logrus.Logger, syncMetrics *metrics.SyncMetrics) *Pool {
	if cfg.Workers <= 0 {
		cfg.Workers = 5
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = time.Second
	}
	if cfg.TaskLease <= 0 {
		cfg.TaskLease = 5 * time.Minute
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}

	return &Pool{
		queue:       queue,
		cfg:         cfg,
		log:         log,
		syncMetrics: syncMetrics,
		handlers:    make(map[string]Handler),
	}
}

// Register привязывает обработчик к имени задачи. Вызывается до Start.
func (p *Pool) Register(taskName string, handler Handler) {
	p.handlers[taskName] = handler
}

// Start запускает воркеры и сразу возвращает управление.
func (p *Pool) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)
	p.group, ctx = errgroup.WithContext(ctx)

	for i := 0; i < p.cfg.Workers; i++ {
		workerID := i
		p.group.Go(func() error {
			p.runWorker(ctx, workerID)
			return nil
		})
	}

	p.log.WithField("workers", p.cfg.Workers).Info("task pool started")
}

// Stop останавливает воркеры и дожидается завершения текущих задач.
func (p *Pool) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
	if p.group != nil {
		_ = p.group.Wait()
	}

	p.log.Info("task pool stopped")
}

func (p *Pool) runWorker(ctx context.Context, workerID int) {
	ticker := time.NewTicker(p.cfg.PollInterval)
	defer ticker.Stop()

	for {
		// Выгребаем все готовые задачи, затем ждем следующего тика
		for p.runNext(ctx, workerID) {
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// runNext выполняет одну готовую задачу. Возвращает false, когда очередь
// пуста или контекст отменен.
func (p *Pool) runNext(ctx context.Context, workerID int) bool {
	if ctx.Err() != nil {
		return false
	}

	t, err := p.queue.claim(ctx, p.cfg.TaskLease)
	if err != nil {
		if !errors.Is(err, errNoTask) && ctx.Err() == nil {
			p.log.WithError(err).Error("failed to claim task")
		}
		return false
	}

	p.runTask(ctx, workerID, t)
	return true
}

func (p *Pool) runTask(ctx context.Context, workerID int, t *task) {
	log := p.log.WithFields(logrus.Fields{
		"worker":  workerID,
		"task_id": t.id,
		"task":    t.name,
		"attempt": t.attempts,
	})

	handler, ok := p.handlers[t.name]
	if !ok {
		log.Error("no handler registered for task, dropping")
		p.drop(t)
		return
	}

	err := handler(ctx, t.payload)
	if err == nil {
		// Фиксируем результат отдельным контекстом, чтобы остановка пула
		// не оставила выполненную задачу на повторный прогон
		if cerr := p.queue.complete(context.Background(), t.id); cerr != nil {
			log.WithError(cerr).Error("failed to complete task")
			return
		}
		p.syncMetrics.TasksTotal.WithLabelValues(t.name, "ok").Inc()
		return
	}

	// Пул останавливается: возвращаем задачу в очередь без задержки
	if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		log.Info("task interrupted by shutdown, releasing")
		if rerr := p.queue.release(context.Background(), t.id); rerr != nil {
			log.WithError(rerr).Error("failed to release task")
		}
		return
	}

	var permanent *PermanentError
	if errors.As(err, &permanent) {
		log.WithError(err).Error("task failed permanently, dropping")
		p.drop(t)
		return
	}

	if t.attempts >= p.cfg.MaxAttempts {
		log.WithError(err).Error("task failed after max attempts, dropping")
		p.drop(t)
		return
	}

	delay := backoff(t.attempts)
	log.WithError(err).WithField("delay", delay.String()).Warn("task failed, retrying")
	if rerr := p.queue.retry(context.Background(), t.id, delay); rerr != nil {
		log.WithError(rerr).Error("failed to reschedule task")
		return
	}
	p.syncMetrics.TasksTotal.WithLabelValues(t.name, "retried").Inc()
}

func (p *Pool) drop(t *task) {
	if err := p.queue.complete(context.Background(), t.id); err != nil {
		p.log.WithError(err).WithField("task_id", t.id).Error("failed to drop task")
		return
	}
	p.syncMetrics.TasksTotal.WithLabelValues(t.name, "dropped").Inc()
}

// backoff возвращает экспоненциальную задержку перед повторной попыткой:
// 1s, 2s, 4s, 8s и далее до пяти минут.
func backoff(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	delay := time.Duration(1<<uint(attempt-1)) * time.Second
	if delay > 5*time.Minute {
		delay = 5 * time.Minute
	}
	return delay
}

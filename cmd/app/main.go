package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"directory-sync-service/internal/config"
	"directory-sync-service/internal/database"
	"directory-sync-service/internal/directory"
	"directory-sync-service/internal/domain"
	"directory-sync-service/internal/handler"
	"directory-sync-service/internal/metrics"
	"directory-sync-service/internal/repository"
	"directory-sync-service/internal/taskqueue"
	"directory-sync-service/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

func main() {
	// Логгер
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Конфиг
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Warnf(".env not found: %v", err)
	}

	// База данных (database/sql)
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		logger.Fatalf("Database connection failed: %v", err)
	}
	defer db.Close()
	logger.Info("Database connected")

	// Метрики
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	syncMetrics := metrics.NewSyncMetrics(registry)

	// Репозитории и очередь задач
	orgRepo := repository.NewOrganizationRepository(db)
	integrationRepo := repository.NewIntegrationRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	queue := taskqueue.NewQueue(db)

	// Клиент каталога Google Workspace
	credentials, err := os.ReadFile(cfg.GoogleCredentialsFile)
	if err != nil {
		logger.Warnf("Google credentials not loaded, sync will fail until provided: %v", err)
	}
	fetcher := directory.NewGoogleFetcher(directory.GoogleConfig{
		Credentials:    credentials,
		Subject:        cfg.GoogleAdminSubject,
		CustomerID:     cfg.GoogleCustomerID,
		PageSize:       cfg.GooglePageSize,
		IncludeDeleted: cfg.SyncIncludeDeleted,
	}, logger)

	// Use Cases
	orgUC := usecase.NewOrganizationUseCase(orgRepo)
	integrationUC := usecase.NewIntegrationUseCase(integrationRepo, orgRepo)
	employeeUC := usecase.NewEmployeeUseCase(employeeRepo, orgRepo)
	scheduler := usecase.NewSyncScheduler(integrationRepo, fetcher, queue, cfg.SyncBatchSize, logger)
	reconciler := usecase.NewBatchReconciler(employeeRepo, logger, syncMetrics)
	progress := usecase.NewProgressAggregator(integrationRepo, logger)

	// Пул воркеров очереди
	pool := taskqueue.NewPool(queue, taskqueue.PoolConfig{
		Workers:      cfg.QueueWorkers,
		PollInterval: cfg.QueuePollInterval,
		TaskLease:    cfg.QueueTaskLease,
		MaxAttempts:  cfg.QueueMaxAttempts,
	}, logger, syncMetrics)

	pool.Register(domain.TaskReconcileBatch, func(ctx context.Context, payload []byte) error {
		batch, err := domain.DecodeSyncBatch(payload)
		if err != nil {
			// Нечитаемую нагрузку нет смысла повторять
			return taskqueue.Permanent(err)
		}

		stats, err := reconciler.ReconcileBatch(ctx, batch)
		if err != nil {
			return err
		}

		progress.CompleteBatch(ctx, batch, stats)
		return nil
	})

	pool.Start(context.Background())

	// Echo + Handlers
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(handler.LoggingMiddleware(logger))

	// Handlers
	apiHandler := handler.NewAPIHandler(orgUC, integrationUC, scheduler, employeeUC, logger)
	apiHandler.RegisterRoutes(e)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	// Запуск сервера
	go func() {
		if err := e.Start(":" + cfg.ServerPort); err != nil {
			logger.Infof("Server stopped: %v", err)
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Errorf("Server shutdown failed: %v", err)
	}

	// Дожидаемся текущих задач, незавершенные вернутся в очередь
	pool.Stop()

	logger.Info("Server exited")
}

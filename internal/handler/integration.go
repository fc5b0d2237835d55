package handler

import (
	"net/http"

	"directory-sync-service/internal/domain"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// IntegrationHandler обрабатывает HTTP-запросы для интеграций каталогов
// и запуска синхронизации.
type IntegrationHandler struct {
	*BaseHandler
	integrationUseCase domain.IntegrationUseCase
	scheduler          domain.SyncScheduler
}

// NewIntegrationHandler создает новый экземпляр IntegrationHandler
func NewIntegrationHandler(integrationUseCase domain.IntegrationUseCase, scheduler domain.SyncScheduler, logger *logrus.Logger) *IntegrationHandler {
	return &IntegrationHandler{
		BaseHandler:        NewBaseHandler(logger),
		integrationUseCase: integrationUseCase,
		scheduler:          scheduler,
	}
}

// PostIntegration обрабатывает подключение каталога к организации
func (h *IntegrationHandler) PostIntegration(c echo.Context) error {
	logEntry := h.logRequest(c, "create_integration")
	logEntry.Info("Creating integration")

	var req CreateIntegrationRequest
	if err := c.Bind(&req); err != nil {
		logEntry.WithError(err).Warn("Failed to bind request")
		return c.JSON(http.StatusBadRequest, toErrorResponse("INVALID_REQUEST", err.Error()))
	}

	logEntry = logEntry.WithFields(logrus.Fields{
		"organization_id": req.OrganizationID,
		"provider":        req.Provider,
	})

	integration, err := h.integrationUseCase.CreateIntegration(c.Request().Context(), req.OrganizationID, req.Provider, req.DisplayName)
	if err != nil {
		logEntry.WithError(err).Error("Failed to create integration")
		if httpErr, exists := domain.ToHTTPError(err); exists {
			return c.JSON(getHTTPStatusCode(err), toAPIErrorResponse(httpErr))
		}
		return c.JSON(http.StatusInternalServerError, toErrorResponse("INTERNAL_ERROR", err.Error()))
	}

	logEntry.WithField("integration_id", integration.ID).Info("Integration created successfully")
	return c.JSON(http.StatusCreated, toAPIIntegration(integration))
}

// GetIntegration обрабатывает получение интеграции по ID
func (h *IntegrationHandler) GetIntegration(c echo.Context) error {
	logEntry := h.logRequest(c, "get_integration")

	integrationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		logEntry.WithError(err).Warn("Invalid integration id")
		return c.JSON(http.StatusBadRequest, toErrorResponse("INVALID_REQUEST", "integration id must be a valid UUID"))
	}

	integration, err := h.integrationUseCase.GetIntegration(c.Request().Context(), integrationID)
	if err != nil {
		logEntry.WithError(err).Warn("Integration not found")
		if httpErr, exists := domain.ToHTTPError(err); exists {
			return c.JSON(getHTTPStatusCode(err), toAPIErrorResponse(httpErr))
		}
		return c.JSON(http.StatusInternalServerError, toErrorResponse("INTERNAL_ERROR", err.Error()))
	}

	return c.JSON(http.StatusOK, toAPIIntegration(integration))
}

// PostIntegrationSync обрабатывает запуск полной синхронизации каталога.
// Сверка выполняется асинхронно, поэтому ответ — 202 Accepted.
func (h *IntegrationHandler) PostIntegrationSync(c echo.Context) error {
	logEntry := h.logRequest(c, "start_sync")

	integrationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		logEntry.WithError(err).Warn("Invalid integration id")
		return c.JSON(http.StatusBadRequest, toErrorResponse("INVALID_REQUEST", "integration id must be a valid UUID"))
	}

	logEntry = logEntry.WithField("integration_id", integrationID)
	logEntry.Info("Starting directory sync")

	started, err := h.scheduler.StartSync(c.Request().Context(), integrationID)
	if err != nil {
		logEntry.WithError(err).Error("Failed to start sync")
		if httpErr, exists := domain.ToHTTPError(err); exists {
			return c.JSON(getHTTPStatusCode(err), toAPIErrorResponse(httpErr))
		}
		return c.JSON(http.StatusInternalServerError, toErrorResponse("INTERNAL_ERROR", err.Error()))
	}

	logEntry.WithFields(logrus.Fields{
		"total_users":   started.TotalUsers,
		"total_batches": started.TotalBatches,
	}).Info("Directory sync scheduled")
	return c.JSON(http.StatusAccepted, toAPISyncStarted(started))
}

// GetIntegrationSync обрабатывает получение состояния синхронизации
func (h *IntegrationHandler) GetIntegrationSync(c echo.Context) error {
	logEntry := h.logRequest(c, "get_sync_state")

	integrationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		logEntry.WithError(err).Warn("Invalid integration id")
		return c.JSON(http.StatusBadRequest, toErrorResponse("INVALID_REQUEST", "integration id must be a valid UUID"))
	}

	state, err := h.integrationUseCase.GetSyncState(c.Request().Context(), integrationID)
	if err != nil {
		logEntry.WithError(err).Warn("Sync state not available")
		if httpErr, exists := domain.ToHTTPError(err); exists {
			return c.JSON(getHTTPStatusCode(err), toAPIErrorResponse(httpErr))
		}
		return c.JSON(http.StatusInternalServerError, toErrorResponse("INTERNAL_ERROR", err.Error()))
	}

	return c.JSON(http.StatusOK, toAPISyncState(state))
}

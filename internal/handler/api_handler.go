package handler

import (
	"directory-sync-service/internal/domain"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type APIHandler struct {
	*OrganizationHandler
	*IntegrationHandler
	*EmployeeHandler
}

func NewAPIHandler(
	orgUseCase domain.OrganizationUseCase,
	integrationUseCase domain.IntegrationUseCase,
	scheduler domain.SyncScheduler,
	employeeUseCase domain.EmployeeUseCase,
	logger *logrus.Logger,
) *APIHandler {

	return &APIHandler{
		OrganizationHandler: NewOrganizationHandler(orgUseCase, logger),
		IntegrationHandler:  NewIntegrationHandler(integrationUseCase, scheduler, logger),
		EmployeeHandler:     NewEmployeeHandler(employeeUseCase, logger),
	}
}

// RegisterRoutes привязывает маршруты API к обработчикам.
func (h *APIHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/organizations", h.PostOrganization)
	e.GET("/organizations/:id/employees", h.GetOrganizationEmployees)

	e.POST("/integrations", h.PostIntegration)
	e.GET("/integrations/:id", h.GetIntegration)
	e.POST("/integrations/:id/sync", h.PostIntegrationSync)
	e.GET("/integrations/:id/sync", h.GetIntegrationSync)
}

package handler

import (
	"net/http"
	"strconv"

	"directory-sync-service/internal/domain"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// EmployeeHandler обрабатывает HTTP-запросы для чтения сотрудников
type EmployeeHandler struct {
	*BaseHandler
	employeeUseCase domain.EmployeeUseCase
}

// NewEmployeeHandler создает новый экземпляр EmployeeHandler
func NewEmployeeHandler(employeeUseCase domain.EmployeeUseCase, logger *logrus.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		BaseHandler:     NewBaseHandler(logger),
		employeeUseCase: employeeUseCase,
	}
}

// GetOrganizationEmployees обрабатывает получение сотрудников организации
func (h *EmployeeHandler) GetOrganizationEmployees(c echo.Context) error {
	logEntry := h.logRequest(c, "list_employees")

	organizationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		logEntry.WithError(err).Warn("Invalid organization id")
		return c.JSON(http.StatusBadRequest, toErrorResponse("INVALID_REQUEST", "organization id must be a valid UUID"))
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	employees, err := h.employeeUseCase.ListEmployees(c.Request().Context(), organizationID, limit, offset)
	if err != nil {
		logEntry.WithError(err).Error("Failed to list employees")
		if httpErr, exists := domain.ToHTTPError(err); exists {
			return c.JSON(getHTTPStatusCode(err), toAPIErrorResponse(httpErr))
		}
		return c.JSON(http.StatusInternalServerError, toErrorResponse("INTERNAL_ERROR", err.Error()))
	}

	logEntry.WithFields(logrus.Fields{
		"organization_id": organizationID,
		"count":           len(employees),
	}).Info("Employees listed successfully")
	return c.JSON(http.StatusOK, EmployeeListResponse{
		Employees: toAPIEmployees(employees),
		Count:     len(employees),
	})
}

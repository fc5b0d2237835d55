package handler

import (
	"net/http"

	"directory-sync-service/internal/domain"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// OrganizationHandler обрабатывает HTTP-запросы для управления организациями
type OrganizationHandler struct {
	*BaseHandler
	orgUseCase domain.OrganizationUseCase
}

// NewOrganizationHandler создает новый экземпляр OrganizationHandler
func NewOrganizationHandler(orgUseCase domain.OrganizationUseCase, logger *logrus.Logger) *OrganizationHandler {
	return &OrganizationHandler{
		BaseHandler: NewBaseHandler(logger),
		orgUseCase:  orgUseCase,
	}
}

// PostOrganization обрабатывает создание новой организации
func (h *OrganizationHandler) PostOrganization(c echo.Context) error {
	logEntry := h.logRequest(c, "create_organization")
	logEntry.Info("Creating organization")

	var req CreateOrganizationRequest
	if err := c.Bind(&req); err != nil {
		logEntry.WithError(err).Warn("Failed to bind request")
		return c.JSON(http.StatusBadRequest, toErrorResponse("INVALID_REQUEST", err.Error()))
	}

	organization, err := h.orgUseCase.CreateOrganization(c.Request().Context(), req.Name)
	if err != nil {
		logEntry.WithError(err).Error("Failed to create organization")
		if httpErr, exists := domain.ToHTTPError(err); exists {
			return c.JSON(getHTTPStatusCode(err), toAPIErrorResponse(httpErr))
		}
		return c.JSON(http.StatusInternalServerError, toErrorResponse("INTERNAL_ERROR", err.Error()))
	}

	logEntry.WithField("organization_id", organization.ID).Info("Organization created successfully")
	return c.JSON(http.StatusCreated, toAPIOrganization(organization))
}

package handler

import (
	"net/http"

	"directory-sync-service/internal/domain"
)

// Вспомогательные функции преобразования доменных моделей в API модели

func toAPIOrganization(organization *domain.Organization) OrganizationResponse {
	return OrganizationResponse{
		ID:        organization.ID,
		Name:      organization.Name,
		CreatedAt: organization.CreatedAt,
	}
}

func toAPIIntegration(integration *domain.Integration) IntegrationResponse {
	return IntegrationResponse{
		ID:             integration.ID,
		OrganizationID: integration.OrganizationID,
		Provider:       integration.Provider,
		DisplayName:    integration.DisplayName,
		CreatedAt:      integration.CreatedAt,
	}
}

func toAPISyncStarted(started *domain.SyncStarted) SyncStartedResponse {
	return SyncStartedResponse{
		IntegrationID: started.IntegrationID,
		TotalUsers:    started.TotalUsers,
		TotalBatches:  started.TotalBatches,
	}
}

func toAPISyncState(state *domain.IntegrationSyncState) SyncStateResponse {
	return SyncStateResponse{
		IntegrationID:    state.IntegrationID,
		BatchesCompleted: state.BatchesCompleted,
		TotalBatches:     state.TotalBatches,
		TotalUsers:       state.TotalUsers,
		ProgressPercent:  state.ProgressPercent,
		LastBatchStats:   state.LastBatchStats,
		LastSyncMessage:  state.LastSyncMessage,
		UpdatedAt:        state.UpdatedAt,
	}
}

func toAPIEmployee(employee *domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:             employee.ID,
		OrganizationID: employee.OrganizationID,
		ExternalID:     employee.ExternalID,
		Email:          employee.Email,
		Name:           employee.Name,
		Title:          employee.Title,
		Phone:          employee.Phone,
		HiredAt:        employee.HiredAt,
		OffboardedAt:   employee.OffboardedAt,
		Status:         string(employee.Status),
		UpdatedAt:      employee.UpdatedAt,
	}
}

func toAPIEmployees(employees []*domain.Employee) []EmployeeResponse {
	result := make([]EmployeeResponse, len(employees))
	for i, employee := range employees {
		result[i] = toAPIEmployee(employee)
	}
	return result
}

func toErrorResponse(code, message string) domain.ErrorResponse {
	return domain.ErrorResponse{
		Error: domain.HTTPError{
			Code:    code,
			Message: message,
		},
	}
}

func toAPIErrorResponse(httpErr domain.HTTPError) domain.ErrorResponse {
	return domain.ErrorResponse{Error: httpErr}
}

func getHTTPStatusCode(err error) int {
	switch err {
	// Conflict errors (409)
	case domain.ErrIntegrationAlreadyExists, domain.ErrEmployeeAlreadyExists:
		return http.StatusConflict

	// Not Found errors (404)
	case domain.ErrOrganizationNotFound, domain.ErrIntegrationNotFound,
		domain.ErrSyncStateNotFound, domain.ErrEmployeeNotFound:
		return http.StatusNotFound

	// Bad Request errors (400) - валидация
	case domain.ErrInvalidOrganizationName, domain.ErrInvalidProvider:
		return http.StatusBadRequest

	// Bad Gateway (502) - провайдер каталога не ответил
	case domain.ErrDirectoryUnavailable:
		return http.StatusBadGateway

	default:
		return http.StatusInternalServerError
	}
}

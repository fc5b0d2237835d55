package domain

import "errors"

// Domain errors (для бизнес-логики)
var (
	// Validation errors
	ErrInvalidOrganizationName = errors.New("invalid organization name")
	ErrInvalidProvider         = errors.New("invalid integration provider")
	ErrInvalidDirectoryUser    = errors.New("directory user has no email")

	// Organization errors
	ErrOrganizationNotFound = errors.New("organization not found")

	// Integration errors
	ErrIntegrationNotFound      = errors.New("integration not found")
	ErrIntegrationAlreadyExists = errors.New("integration already exists")
	ErrSyncStateNotFound        = errors.New("no sync has run for this integration")

	// Employee errors
	ErrEmployeeNotFound      = errors.New("employee not found")
	ErrEmployeeAlreadyExists = errors.New("employee already exists")

	// Sync errors
	ErrDirectoryUnavailable = errors.New("directory provider unavailable")
	ErrMalformedTaskPayload = errors.New("malformed task payload")
)

// HTTPError для единообразных ответов API
type HTTPError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error HTTPError `json:"error"`
}

// Маппинг domain ошибок в HTTP ошибки
var ErrorMapping = map[error]HTTPError{
	ErrInvalidOrganizationName:  {Code: "INVALID_REQUEST", Message: "organization name is required"},
	ErrInvalidProvider:          {Code: "INVALID_REQUEST", Message: "integration provider is required"},
	ErrOrganizationNotFound:     {Code: "NOT_FOUND", Message: "organization not found"},
	ErrIntegrationNotFound:      {Code: "NOT_FOUND", Message: "integration not found"},
	ErrIntegrationAlreadyExists: {Code: "INTEGRATION_EXISTS", Message: "integration for this provider already exists"},
	ErrSyncStateNotFound:        {Code: "NOT_FOUND", Message: "no sync has run for this integration"},
	ErrEmployeeNotFound:         {Code: "NOT_FOUND", Message: "employee not found"},
	ErrEmployeeAlreadyExists:    {Code: "EMPLOYEE_EXISTS", Message: "employee with this identity already exists"},
	ErrDirectoryUnavailable:     {Code: "DIRECTORY_UNAVAILABLE", Message: "directory provider request failed"},
}

// ToHTTPError преобразует domain ошибку в HTTP ошибку
func ToHTTPError(err error) (HTTPError, bool) {
	httpErr, exists := ErrorMapping[err]
	return httpErr, exists
}

package domain

import (
	"context"
	"strings"
	"time"
)

// Статусы пользователей каталога, как их отдает провайдер.
const (
	DirectoryStatusActive    = "active"
	DirectoryStatusSuspended = "suspended"
	DirectoryStatusArchived  = "archived"
	DirectoryStatusDeleted   = "deleted"
)

// DirectoryUser представляет одного человека по данным внешнего каталога.
type DirectoryUser struct {
	ExternalID  string     `json:"external_id"`
	Email       string     `json:"email"`
	FullName    string     `json:"full_name"`
	JobTitle    string     `json:"job_title,omitempty"`
	PhoneNumber string     `json:"phone_number,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	Status      string     `json:"status"`
}

// DirectoryFetcher определяет контракт для получения полного списка
// пользователей каталога одной интеграции.
type DirectoryFetcher interface {
	FetchDirectoryUsers(ctx context.Context, integration *Integration) ([]DirectoryUser, error)
}

// MapDirectoryStatus переводит статус провайдера во внутренний статус сотрудника.
// Неизвестные статусы считаются активными: незнакомое значение провайдера
// не должно выглядеть как оффбординг.
func MapDirectoryStatus(providerStatus string) EmployeeStatus {
	switch strings.ToLower(strings.TrimSpace(providerStatus)) {
	case DirectoryStatusActive:
		return EmployeeStatusActive
	case DirectoryStatusSuspended:
		return EmployeeStatusSuspended
	case DirectoryStatusArchived, DirectoryStatusDeleted:
		return EmployeeStatusOffboarded
	default:
		return EmployeeStatusActive
	}
}

package handler

import (
	"time"

	"directory-sync-service/internal/domain"

	"github.com/google/uuid"
)

// Модели запросов и ответов API

type CreateOrganizationRequest struct {
	Name string `json:"name"`
}

type OrganizationResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateIntegrationRequest struct {
	OrganizationID uuid.UUID `json:"organization_id"`
	Provider       string    `json:"provider"`
	DisplayName    string    `json:"display_name"`
}

type IntegrationResponse struct {
	ID             uuid.UUID `json:"id"`
	OrganizationID uuid.UUID `json:"organization_id"`
	Provider       string    `json:"provider"`
	DisplayName    string    `json:"display_name"`
	CreatedAt      time.Time `json:"created_at"`
}

type SyncStartedResponse struct {
	IntegrationID uuid.UUID `json:"integration_id"`
	TotalUsers    int       `json:"total_users"`
	TotalBatches  int       `json:"total_batches"`
}

type SyncStateResponse struct {
	IntegrationID    uuid.UUID          `json:"integration_id"`
	BatchesCompleted int                `json:"batches_completed"`
	TotalBatches     int                `json:"total_batches"`
	TotalUsers       int                `json:"total_users"`
	ProgressPercent  int                `json:"progress_percent"`
	LastBatchStats   *domain.BatchStats `json:"last_batch_stats,omitempty"`
	LastSyncMessage  string             `json:"last_sync_message"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

type EmployeeResponse struct {
	ID             uuid.UUID  `json:"id"`
	OrganizationID uuid.UUID  `json:"organization_id"`
	ExternalID     *string    `json:"external_id,omitempty"`
	Email          string     `json:"email"`
	Name           string     `json:"name"`
	Title          *string    `json:"title,omitempty"`
	Phone          *string    `json:"phone,omitempty"`
	HiredAt        *time.Time `json:"hired_at,omitempty"`
	OffboardedAt   *time.Time `json:"offboarded_at,omitempty"`
	Status         string     `json:"status"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type EmployeeListResponse struct {
	Employees []EmployeeResponse `json:"employees"`
	Count     int                `json:"count"`
}

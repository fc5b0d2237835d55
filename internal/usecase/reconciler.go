package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"directory-sync-service/internal/domain"
	"directory-sync-service/internal/metrics"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// maxBatchErrorMessages ограничивает число сообщений об ошибках,
// сохраняемых в статистике одного батча.
const maxBatchErrorMessages = 10

type reconcileOutcome string

const (
	outcomeCreated reconcileOutcome = "created"
	outcomeUpdated reconcileOutcome = "updated"
	outcomeSkipped reconcileOutcome = "skipped"
)

// errorCollector накапливает сообщения об ошибках отдельных записей батча.
type errorCollector struct {
	messages []string
}

func (c *errorCollector) add(email string, err error) {
	if len(c.messages) < maxBatchErrorMessages {
		c.messages = append(c.messages, fmt.Sprintf("%s: %v", email, err))
	}
}

// BatchReconciler реализует сверку одного батча пользователей каталога
// с таблицей сотрудников.
type BatchReconciler struct {
	employeeRepo domain.EmployeeRepository
	log          *logrus.Logger
	syncMetrics  *metrics.SyncMetrics
}

// NewBatchReconciler создает новый экземпляр BatchReconciler.
func NewBatchReconciler(employeeRepo domain.EmployeeRepository, log *logrus.Logger, syncMetrics *metrics.SyncMetrics) domain.BatchReconciler {
	return &BatchReconciler{
		employeeRepo: employeeRepo,
		log:          log,
		syncMetrics:  syncMetrics,
	}
}

// ReconcileBatch сверяет записи батча по одной. Ошибка отдельной записи
// попадает в статистику и не прерывает остальные; прервать батч может
// только отмена контекста.
func (uc *BatchReconciler) ReconcileBatch(ctx context.Context, batch *domain.SyncBatch) (*domain.BatchStats, error) {
	started := time.Now()
	stats := &domain.BatchStats{}
	collector := &errorCollector{}

	for i := range batch.Users {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		user := &batch.Users[i]
		outcome, err := uc.reconcileUser(ctx, batch.OrganizationID, user)
		if err != nil {
			stats.Errors++
			collector.add(user.Email, err)
			uc.syncMetrics.RecordsTotal.WithLabelValues("error").Inc()
			uc.log.WithError(err).WithFields(logrus.Fields{
				"integration_id": batch.IntegrationID,
				"email":          user.Email,
			}).Warn("failed to reconcile directory user")
			continue
		}

		switch outcome {
		case outcomeCreated:
			stats.Created++
		case outcomeUpdated:
			stats.Updated++
		case outcomeSkipped:
			stats.Skipped++
		}
		uc.syncMetrics.RecordsTotal.WithLabelValues(string(outcome)).Inc()
	}

	stats.ErrorMessages = collector.messages

	uc.syncMetrics.BatchesTotal.Inc()
	uc.syncMetrics.BatchDuration.Observe(time.Since(started).Seconds())

	uc.log.WithFields(logrus.Fields{
		"integration_id": batch.IntegrationID,
		"batch":          batch.BatchNumber,
		"created":        stats.Created,
		"updated":        stats.Updated,
		"skipped":        stats.Skipped,
		"errors":         stats.Errors,
	}).Info("batch reconciled")

	return stats, nil
}

func (uc *BatchReconciler) reconcileUser(ctx context.Context, organizationID uuid.UUID, user *domain.DirectoryUser) (reconcileOutcome, error) {
	// 1. Запись без email невозможно сопоставить с сотрудником
	if user.Email == "" {
		return "", domain.ErrInvalidDirectoryUser
	}

	// 2. Ищем сотрудника: сначала по внешнему идентификатору, затем по email
	existing, err := uc.findEmployee(ctx, organizationID, user)
	if err != nil {
		return "", err
	}

	target := domain.MapDirectoryStatus(user.Status)

	// 3. Сотрудника нет: создаем запись
	if existing == nil {
		if _, err := uc.employeeRepo.Create(ctx, newEmployee(organizationID, user, target)); err != nil {
			return "", err
		}
		return outcomeCreated, nil
	}

	// 4. Значимые поля не изменились: пропускаем запись
	if !needsUpdate(existing, user, target) {
		return outcomeSkipped, nil
	}

	// 5. Переносим данные каталога и сохраняем
	applyDirectoryUser(existing, user, target)
	if _, err := uc.employeeRepo.Update(ctx, existing); err != nil {
		return "", err
	}

	return outcomeUpdated, nil
}

// findEmployee ищет сотрудника по ключам каталога в порядке приоритета.
// Возвращает nil без ошибки, если сотрудник не найден ни по одному ключу.
func (uc *BatchReconciler) findEmployee(ctx context.Context, organizationID uuid.UUID, user *domain.DirectoryUser) (*domain.Employee, error) {
	if user.ExternalID != "" {
		employee, err := uc.employeeRepo.FindByExternalID(ctx, organizationID, user.ExternalID)
		if err == nil {
			return employee, nil
		}
		if !errors.Is(err, domain.ErrEmployeeNotFound) {
			return nil, err
		}
	}

	employee, err := uc.employeeRepo.FindByEmail(ctx, organizationID, user.Email)
	if err == nil {
		return employee, nil
	}
	if errors.Is(err, domain.ErrEmployeeNotFound) {
		return nil, nil
	}

	return nil, err
}

// needsUpdate проверяет поля, по которым запись каталога считается изменившейся.
func needsUpdate(employee *domain.Employee, user *domain.DirectoryUser, target domain.EmployeeStatus) bool {
	if employee.Status != target {
		return true
	}
	if employee.Email != user.Email {
		return true
	}
	if employee.Name != user.FullName {
		return true
	}
	if user.ExternalID != "" && (employee.ExternalID == nil || *employee.ExternalID != user.ExternalID) {
		return true
	}
	return false
}

func newEmployee(organizationID uuid.UUID, user *domain.DirectoryUser, target domain.EmployeeStatus) *domain.Employee {
	employee := &domain.Employee{
		OrganizationID: organizationID,
		ExternalID:     optional(user.ExternalID),
		Email:          user.Email,
		Name:           user.FullName,
		Title:          optional(user.JobTitle),
		Phone:          optional(user.PhoneNumber),
		HiredAt:        user.StartDate,
		Status:         target,
	}
	if target == domain.EmployeeStatusOffboarded {
		now := time.Now()
		employee.OffboardedAt = &now
	}

	return employee
}

// applyDirectoryUser переносит данные каталога на сотрудника. OffboardedAt
// выставляется один раз при переходе в offboarded и синхронизацией
// никогда не очищается.
func applyDirectoryUser(employee *domain.Employee, user *domain.DirectoryUser, target domain.EmployeeStatus) {
	if user.ExternalID != "" {
		employee.ExternalID = &user.ExternalID
	}
	employee.Email = user.Email
	employee.Name = user.FullName
	employee.Title = optional(user.JobTitle)
	employee.Phone = optional(user.PhoneNumber)
	if user.StartDate != nil {
		employee.HiredAt = user.StartDate
	}
	if target == domain.EmployeeStatusOffboarded && employee.OffboardedAt == nil {
		now := time.Now()
		employee.OffboardedAt = &now
	}
	employee.Status = target
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

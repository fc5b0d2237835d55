package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// SyncMetrics собирает показатели конвейера синхронизации каталога.
type SyncMetrics struct {
	RecordsTotal  *prometheus.CounterVec
	BatchesTotal  prometheus.Counter
	BatchDuration prometheus.Histogram
	TasksTotal    *prometheus.CounterVec
}

// NewSyncMetrics регистрирует метрики синхронизации в переданном реестре.
func NewSyncMetrics(reg prometheus.Registerer) *SyncMetrics {
	m := &SyncMetrics{
		RecordsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "directory_sync_records_total",
			Help: "Reconciled directory records by outcome.",
		}, []string{"outcome"}),
		BatchesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "directory_sync_batches_total",
			Help: "Reconciled directory batches.",
		}),
		BatchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "directory_sync_batch_duration_seconds",
			Help:    "Time spent reconciling one batch.",
			Buckets: prometheus.DefBuckets,
		}),
		TasksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "directory_sync_tasks_total",
			Help: "Queue task executions by result.",
		}, []string{"task", "result"}),
	}

	reg.MustRegister(m.RecordsTotal, m.BatchesTotal, m.BatchDuration, m.TasksTotal)

	return m
}

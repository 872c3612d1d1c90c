// Package metrics регистрирует счетчики Prometheus для цикла автоматизации.
// Отдаются через /metrics основного приложения.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CyclesTotal — количество завершенных циклов по исходу: completed, skipped, error.
	CyclesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "automation_cycles_total",
		Help: "Total automation cycles by outcome.",
	}, []string{"outcome"})

	// NotificationsSentTotal — количество отправленных уведомлений по типу.
	NotificationsSentTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "automation_notifications_sent_total",
		Help: "Total notifications successfully dispatched, by type.",
	}, []string{"type"})

	// NotificationErrorsTotal — количество ошибок отправки по типу.
	NotificationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "automation_notification_errors_total",
		Help: "Total notification dispatch errors, by type.",
	}, []string{"type"})

	// FetchErrorsTotal — количество подавленных ошибок чтения хранилища.
	// Выборка при ошибке заменяется пустым списком, счетчик фиксирует сам факт.
	FetchErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "automation_fetch_errors_total",
		Help: "Total suppressed storage fetch errors, by entity.",
	}, []string{"entity"})
)

package models

import "time"

// События жизненного цикла автоматизации.
const (
	EventAutomationStarted = "automation_started"
	EventAutomationStopped = "automation_stopped"
	EventCycleCompleted    = "cycle_completed"
	EventCycleError        = "cycle_error"
)

// Результаты отправки уведомления.
const (
	SendResultSuccess = "success"
	SendResultFailed  = "failed"
)

// AutomationLog — запись журнала о событии жизненного цикла автоматизации.
// Журнал только пополняется, записи не изменяются.
type AutomationLog struct {
	ID        int       // Идентификатор записи
	Event     string    // Событие: automation_started, automation_stopped, cycle_completed, cycle_error
	Details   string    // Дополнительное описание события
	Processed int       // Обработано кандидатов (для cycle_completed)
	Sent      int       // Отправлено уведомлений (для cycle_completed)
	Errors    int       // Ошибок отправки (для cycle_completed)
	CreatedAt time.Time // Время события
}

// NotificationLog — запись журнала об исходе отправки одного уведомления.
type NotificationLog struct {
	ID        int       // Идентификатор записи
	Type      string    // Тип уведомления
	ClientID  string    // Идентификатор клиента-получателя
	InvoiceID string    // Идентификатор счета
	Result    string    // Результат: success или failed
	Error     string    // Текст ошибки при неуспехе
	CreatedAt time.Time // Время отправки
}

// PerformanceReport — сводка по журналу уведомлений за период.
type PerformanceReport struct {
	PeriodDays int                 `json:"period_days"` // Глубина выборки в днях
	Total      int                 `json:"total"`       // Всего уведомлений
	Successful int                 `json:"successful"`  // Успешных отправок
	Failed     int                 `json:"failed"`      // Неуспешных отправок
	ByType     map[string]int      `json:"by_type"`     // Разбивка по типам
	ByDay      map[string]DayStats `json:"by_day"`      // Разбивка по календарным дням (ключ YYYY-MM-DD)
}

// DayStats — количество успешных и неуспешных отправок за один день.
type DayStats struct {
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
}

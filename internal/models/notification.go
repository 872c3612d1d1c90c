package models

import "time"

// Типы исходящих уведомлений.
const (
	NotificationOverdue    = "overdue"
	NotificationReminder   = "reminder"
	NotificationNewInvoice = "new_invoice"
)

// Priority задаёт порядок отправки уведомлений в рамках одного цикла.
// Меньшее значение — более срочное уведомление.
type Priority int

const (
	PriorityOverdue Priority = iota
	PriorityReminder
	PriorityNewInvoice
)

// Notification — кандидат на отправку, вычисляемый классификатором
// на каждом цикле. Не сохраняется как сущность: в журнал попадает
// только результат отправки.
type Notification struct {
	Type         string        // Тип уведомления: overdue, reminder или new_invoice
	Priority     Priority      // Приоритет отправки
	Invoice      *Invoice      // Счет, к которому относится уведомление
	Client       *Client       // Получатель
	Subscription *Subscription // Подписка, опционально
	DaysOffset   int           // Смещение в днях относительно срока оплаты
}

// CycleResult — итог одного цикла автоматизации.
type CycleResult struct {
	Processed  int        `json:"processed"`            // Количество кандидатов после дедупликации
	Sent       int        `json:"sent"`                 // Успешно отправлено
	Errors     int        `json:"errors"`               // Ошибок отправки
	Skipped    bool       `json:"skipped"`              // Цикл пропущен целиком
	SkipReason string     `json:"skip_reason,omitempty"` // Причина пропуска
	NextCheck  *time.Time `json:"next_check,omitempty"` // Ближайшее время следующей попытки
}

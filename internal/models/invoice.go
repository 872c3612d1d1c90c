package models

import "time"

// Статусы счета. Переходы: pending -> overdue (по дате),
// pending/overdue -> paid (внешнее событие). Обратных переходов нет.
const (
	InvoicePending = "pending"
	InvoiceOverdue = "overdue"
	InvoicePaid    = "paid"
)

// Invoice представляет счет, выставленный клиенту.
// Поле SubscriptionID может быть nil — счета допускаются и вне подписки.
type Invoice struct {
	ID             string     // Уникальный идентификатор счета (uuid)
	ClientID       string     // Идентификатор клиента
	SubscriptionID *string    // Идентификатор подписки, опционально
	Amount         int        // Сумма в минимальных единицах валюты
	DueDate        time.Time  // Дата, до которой счет должен быть оплачен
	Status         string     // Статус: pending, overdue или paid
	GenerationDate time.Time  // Дата выставления счета
	PaidAt         *time.Time // Дата оплаты, nil пока счет не оплачен
}

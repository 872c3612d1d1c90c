package models

import "time"

// Статусы подписки.
const (
	SubscriptionActive   = "active"
	SubscriptionInactive = "inactive"
)

// Правила повторения подписки.
const (
	RecurrenceDaily   = "daily"
	RecurrenceWeekly  = "weekly"
	RecurrenceMonthly = "monthly"
	RecurrenceCustom  = "custom"
)

// Subscription представляет регулярную подписку клиента.
// Счета генерируются только для активных подписок, дата следующего
// выставления хранится в NextInvoiceDate и продвигается генератором
// согласно правилу повторения.
type Subscription struct {
	ID                string    // Уникальный идентификатор подписки (uuid)
	ClientID          string    // Идентификатор клиента-владельца
	ServiceName       string    // Название услуги
	Amount            int       // Сумма в минимальных единицах валюты
	Recurrence        string    // Правило повторения: daily, weekly, monthly, custom
	CustomDays        int       // Интервал в днях для правила custom
	Status            string    // Статус: active или inactive
	NextInvoiceDate   time.Time // Дата следующего выставления счета
	PaymentWindowDays int       // Срок оплаты счета в днях с даты выставления
}

// DummySubscription используется для приёма данных из JSON-запроса,
// прежде чем конвертировать их в Subscription.
type DummySubscription struct {
	ClientID          string `json:"client_id" validate:"required,uuid"`                               // Идентификатор клиента
	ServiceName       string `json:"service_name" validate:"required"`                                 // Название услуги
	Amount            int    `json:"amount" validate:"required,gt=0"`                                  // Сумма (>0)
	Recurrence        string `json:"recurrence" validate:"required,oneof=daily weekly monthly custom"` // Правило повторения
	CustomDays        int    `json:"custom_days" validate:"omitempty,gt=0"`                            // Интервал для custom
	PaymentWindowDays int    `json:"payment_window_days" validate:"omitempty,gt=0"`                    // Срок оплаты в днях
}

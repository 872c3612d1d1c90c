package models

import "time"

// EmailJob — задание на дублирование уведомления по электронной почте.
// Публикуется циклом автоматизации в RabbitMQ и обрабатывается
// отдельным рассыльщиком.
type EmailJob struct {
	Type        string    `json:"type"`         // Тип уведомления
	ClientName  string    `json:"client_name"`  // Имя клиента
	ClientEmail string    `json:"client_email"` // Адрес получателя
	InvoiceID   string    `json:"invoice_id"`   // Идентификатор счета
	Amount      int       `json:"amount"`       // Сумма счета
	DueDate     time.Time `json:"due_date"`     // Срок оплаты
	DaysOffset  int       `json:"days_offset"`  // Смещение в днях относительно срока
}

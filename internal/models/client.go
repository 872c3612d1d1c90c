package models

import "time"

// Client представляет клиента малого бизнеса — получателя счетов
// и уведомлений. Клиент без телефона пропускается классификатором.
type Client struct {
	ID        string    // Уникальный идентификатор клиента (uuid)
	Name      string    // Имя или название клиента
	Email     string    // Адрес электронной почты, опционально
	Phone     string    // Телефон в формате E.164 для WhatsApp
	CreatedAt time.Time // Время создания записи
}

// DummyClient используется для приёма данных из JSON-запроса,
// прежде чем конвертировать их в Client.
type DummyClient struct {
	Name  string `json:"name" validate:"required"`         // Имя клиента
	Email string `json:"email" validate:"omitempty,email"` // Адрес электронной почты
	Phone string `json:"phone" validate:"omitempty,e164"`  // Телефон в формате E.164
}

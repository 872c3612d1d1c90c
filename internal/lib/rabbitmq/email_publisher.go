package rabbitmq

import (
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/billing-notifier/internal/models"
)

// EmailPublisher публикует задания на почтовые дубликаты уведомлений
// в очередь рассыльщика.
type EmailPublisher struct {
	ch *amqp.Channel
}

// NewEmailPublisher создает новый EmailPublisher.
func NewEmailPublisher(ch *amqp.Channel) *EmailPublisher {
	return &EmailPublisher{ch: ch}
}

// PublishEmailJob публикует задание с ключом маршрутизации email.
func (p *EmailPublisher) PublishEmailJob(job models.EmailJob) error {
	return PublishMessage(p.ch, Exchange, "email", job)
}

// Package emailsender собирает сервис почтовых дубликатов уведомлений:
// потребитель очереди RabbitMQ и SMTP-транспорт.
package emailsender

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/billing-notifier/internal/config"
	"github.com/magabrotheeeer/billing-notifier/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/billing-notifier/internal/lib/smtp"
	senderservice "github.com/magabrotheeeer/billing-notifier/internal/services/sender"
)

type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	senderService *senderservice.Service
	logger        *slog.Logger
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}

	queues := rabbitmq.GetNotificationQueues()
	ch, err := rabbitmq.SetupChannel(conn, queues)
	if err != nil {
		conn.Close()
		return nil, err
	}

	newTransport := smtp.NewTransport(cfg, logger)
	senderService := senderservice.NewService(newTransport, logger)

	return &App{
		conn:          conn,
		ch:            ch,
		senderService: senderService,
		logger:        logger,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumerMessage(ctx, a.ch, "notifications.email", a.logger, a.senderService.HandleEmailJob)
	if err != nil {
		a.logger.Error("failed to start notifications.email consumer", slog.Any("err", err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("email sender shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}

	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}

	return nil
}

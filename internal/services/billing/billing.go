// Package billing реализует генератор счетов: выставление новых счетов
// по активным подпискам согласно правилу повторения и перевод
// просроченных pending-счетов в статус overdue.
package billing

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/billing-notifier/internal/lib/sl"
	"github.com/magabrotheeeer/billing-notifier/internal/models"
)

// Storage описывает доступ к данным, необходимый генератору.
type Storage interface {
	FindSubscriptionsDueForInvoicing(ctx context.Context, day time.Time) ([]*models.Subscription, error)
	CreateInvoice(ctx context.Context, invoice models.Invoice) (string, error)
	UpdateNextInvoiceDate(ctx context.Context, id string, next time.Time) (int, error)
	MarkOverdueInvoices(ctx context.Context, day time.Time) (int, error)
}

// Service выполняет один проход генерации по вызову планировщика.
type Service struct {
	storage           Storage
	log               *slog.Logger
	paymentWindowDays int

	now func() time.Time
}

// NewService создает новый Service. paymentWindowDays используется
// для подписок, у которых собственный срок оплаты не задан.
func NewService(storage Storage, paymentWindowDays int, log *slog.Logger) *Service {
	return &Service{
		storage:           storage,
		log:               log,
		paymentWindowDays: paymentWindowDays,
		now:               time.Now,
	}
}

// Run выполняет один проход: сначала перевод просроченных счетов,
// затем выставление новых по подпискам.
func (s *Service) Run(ctx context.Context) error {
	const op = "billing.Run"

	overdue, err := s.MarkOverdue(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if overdue > 0 {
		s.log.Info("invoices marked overdue", slog.Int("count", overdue))
	}

	generated, err := s.GenerateInvoices(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if generated > 0 {
		s.log.Info("invoices generated", slog.Int("count", generated))
	}
	return nil
}

// MarkOverdue переводит pending-счета с истекшим сроком в overdue.
func (s *Service) MarkOverdue(ctx context.Context) (int, error) {
	const op = "billing.MarkOverdue"
	today := truncateToDay(s.now())
	count, err := s.storage.MarkOverdueInvoices(ctx, today)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// GenerateInvoices выставляет счета по активным подпискам, дата
// следующего выставления которых наступила, и продвигает эту дату.
// Ошибка по одной подписке не прерывает проход.
func (s *Service) GenerateInvoices(ctx context.Context) (int, error) {
	const op = "billing.GenerateInvoices"
	today := truncateToDay(s.now())

	subscriptions, err := s.storage.FindSubscriptionsDueForInvoicing(ctx, today)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	var generated int
	for _, sub := range subscriptions {
		window := sub.PaymentWindowDays
		if window <= 0 {
			window = s.paymentWindowDays
		}
		subscriptionID := sub.ID
		invoice := models.Invoice{
			ClientID:       sub.ClientID,
			SubscriptionID: &subscriptionID,
			Amount:         sub.Amount,
			DueDate:        today.AddDate(0, 0, window),
			Status:         models.InvoicePending,
			GenerationDate: today,
		}
		if _, err := s.storage.CreateInvoice(ctx, invoice); err != nil {
			s.log.Error("failed to create invoice",
				slog.String("subscription_id", sub.ID), sl.Err(err))
			continue
		}
		generated++

		next := NextDate(sub.Recurrence, sub.CustomDays, sub.NextInvoiceDate)
		if _, err := s.storage.UpdateNextInvoiceDate(ctx, sub.ID, next); err != nil {
			s.log.Error("failed to advance next invoice date",
				slog.String("subscription_id", sub.ID), sl.Err(err))
		}
	}
	return generated, nil
}

// NextDate возвращает следующую дату выставления счета по правилу
// повторения. Для custom с нулевым интервалом берется один день,
// чтобы дата гарантированно продвигалась.
func NextDate(recurrence string, customDays int, from time.Time) time.Time {
	switch recurrence {
	case models.RecurrenceDaily:
		return from.AddDate(0, 0, 1)
	case models.RecurrenceWeekly:
		return from.AddDate(0, 0, 7)
	case models.RecurrenceMonthly:
		return from.AddDate(0, 1, 0)
	default:
		if customDays <= 0 {
			customDays = 1
		}
		return from.AddDate(0, 0, customDays)
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/billing-notifier/internal/models"
)

// CreateSubscription вставляет новую подписку и возвращает её ID.
func (s *Storage) CreateSubscription(ctx context.Context, sub models.Subscription) (string, error) {
	const op = "storage.CreateSubscription"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	newID := uuid.New().String()
	query := `INSERT INTO subscriptions (id, client_id, service_name, amount, recurrence,
			      custom_days, status, next_invoice_date, payment_window_days)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING id`
	err := s.DB.QueryRowContext(ctx, query,
		newID, sub.ClientID, sub.ServiceName, sub.Amount, sub.Recurrence,
		sub.CustomDays, sub.Status, sub.NextInvoiceDate, sub.PaymentWindowDays).Scan(&newID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListSubscriptions возвращает все подписки без фильтрации.
func (s *Storage) ListSubscriptions(ctx context.Context) ([]*models.Subscription, error) {
	const op = "storage.ListSubscriptions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, client_id, service_name, amount, recurrence, custom_days,
			      status, next_invoice_date, payment_window_days
			  FROM subscriptions
			  ORDER BY next_invoice_date`
	return s.querySubscriptions(ctx, op, query)
}

// FindSubscriptionsDueForInvoicing возвращает активные подписки,
// дата следующего выставления которых не позже заданного дня.
func (s *Storage) FindSubscriptionsDueForInvoicing(ctx context.Context, day time.Time) ([]*models.Subscription, error) {
	const op = "storage.FindSubscriptionsDueForInvoicing"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, client_id, service_name, amount, recurrence, custom_days,
			      status, next_invoice_date, payment_window_days
			  FROM subscriptions
			  WHERE status = 'active' AND next_invoice_date <= $1
			  ORDER BY next_invoice_date`
	return s.querySubscriptions(ctx, op, query, day)
}

// UpdateNextInvoiceDate продвигает дату следующего выставления счета
// и возвращает количество изменённых строк.
func (s *Storage) UpdateNextInvoiceDate(ctx context.Context, id string, next time.Time) (int, error) {
	const op = "storage.UpdateNextInvoiceDate"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscriptions SET next_invoice_date = $1 WHERE id = $2`
	result, err := s.DB.ExecContext(ctx, query, next, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

func (s *Storage) querySubscriptions(ctx context.Context, op, query string, args ...any) ([]*models.Subscription, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	var result []*models.Subscription
	for rows.Next() {
		var sub models.Subscription
		if err := rows.Scan(&sub.ID, &sub.ClientID, &sub.ServiceName, &sub.Amount,
			&sub.Recurrence, &sub.CustomDays, &sub.Status, &sub.NextInvoiceDate,
			&sub.PaymentWindowDays); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

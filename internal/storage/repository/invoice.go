package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/billing-notifier/internal/models"
)

// CreateInvoice вставляет новый счет и возвращает его ID.
func (s *Storage) CreateInvoice(ctx context.Context, invoice models.Invoice) (string, error) {
	const op = "storage.CreateInvoice"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	newID := uuid.New().String()
	query := `INSERT INTO invoices (id, client_id, subscription_id, amount, due_date,
			      status, generation_date)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id`
	err := s.DB.QueryRowContext(ctx, query,
		newID, invoice.ClientID, invoice.SubscriptionID, invoice.Amount,
		invoice.DueDate, invoice.Status, invoice.GenerationDate).Scan(&newID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListInvoices возвращает все счета без фильтрации.
func (s *Storage) ListInvoices(ctx context.Context) ([]*models.Invoice, error) {
	const op = "storage.ListInvoices"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, client_id, subscription_id, amount, due_date, status,
			      generation_date, paid_at
			  FROM invoices
			  ORDER BY due_date`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	var result []*models.Invoice
	for rows.Next() {
		var invoice models.Invoice
		if err := rows.Scan(&invoice.ID, &invoice.ClientID, &invoice.SubscriptionID,
			&invoice.Amount, &invoice.DueDate, &invoice.Status,
			&invoice.GenerationDate, &invoice.PaidAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &invoice)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// MarkInvoicePaid переводит счет в статус paid и возвращает количество
// изменённых строк. Допустимы только переходы из pending и overdue.
func (s *Storage) MarkInvoicePaid(ctx context.Context, id string, paidAt time.Time) (int, error) {
	const op = "storage.MarkInvoicePaid"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE invoices
			  SET status = 'paid', paid_at = $1
			  WHERE id = $2 AND status IN ('pending', 'overdue')`
	result, err := s.DB.ExecContext(ctx, query, paidAt, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// MarkOverdueInvoices переводит просроченные pending-счета в статус overdue
// и возвращает количество изменённых строк. Обратных переходов нет.
func (s *Storage) MarkOverdueInvoices(ctx context.Context, day time.Time) (int, error) {
	const op = "storage.MarkOverdueInvoices"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE invoices
			  SET status = 'overdue'
			  WHERE status = 'pending' AND due_date < $1`
	result, err := s.DB.ExecContext(ctx, query, day)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

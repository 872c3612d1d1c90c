package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/magabrotheeeer/billing-notifier/internal/models"
)

// AppendAutomationLog добавляет запись о событии жизненного цикла
// автоматизации и возвращает её ID.
func (s *Storage) AppendAutomationLog(ctx context.Context, logEntry models.AutomationLog) (int, error) {
	const op = "storage.AppendAutomationLog"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO automation_logs (event, details, processed, sent, errors, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		logEntry.Event, logEntry.Details, logEntry.Processed, logEntry.Sent,
		logEntry.Errors, logEntry.CreatedAt).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// AppendNotificationLog добавляет запись об исходе отправки уведомления
// и возвращает её ID.
func (s *Storage) AppendNotificationLog(ctx context.Context, logEntry models.NotificationLog) (int, error) {
	const op = "storage.AppendNotificationLog"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO notification_logs (type, client_id, invoice_id, result, error, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		logEntry.Type, logEntry.ClientID, logEntry.InvoiceID, logEntry.Result,
		logEntry.Error, logEntry.CreatedAt).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListNotificationLogsSince возвращает записи журнала уведомлений,
// созданные не раньше cutoff, в порядке возрастания времени.
func (s *Storage) ListNotificationLogsSince(ctx context.Context, cutoff time.Time) ([]*models.NotificationLog, error) {
	const op = "storage.ListNotificationLogsSince"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, type, client_id, invoice_id, result, error, created_at
			  FROM notification_logs
			  WHERE created_at >= $1
			  ORDER BY created_at`
	rows, err := s.DB.QueryContext(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	var result []*models.NotificationLog
	for rows.Next() {
		var logEntry models.NotificationLog
		if err := rows.Scan(&logEntry.ID, &logEntry.Type, &logEntry.ClientID,
			&logEntry.InvoiceID, &logEntry.Result, &logEntry.Error,
			&logEntry.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &logEntry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// WasMessageSentToday проверяет по журналу, отправлялось ли клиенту
// сегодня успешное уведомление данного типа.
func (s *Storage) WasMessageSentToday(ctx context.Context, clientID, notificationType string, day time.Time) (bool, error) {
	const op = "storage.WasMessageSentToday"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	query := `SELECT EXISTS (
				SELECT 1 FROM notification_logs
				WHERE client_id = $1 AND type = $2 AND result = 'success'
				  AND created_at >= $3 AND created_at < $4
			  )`
	var exists bool
	err := s.DB.QueryRowContext(ctx, query,
		clientID, notificationType, dayStart, dayStart.AddDate(0, 0, 1)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

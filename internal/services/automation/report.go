package automation

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/billing-notifier/internal/models"
)

// PerformanceReport строит сводку по журналу уведомлений за последние
// days дней: итоги, разбивку по типам и гистограмму по календарным дням.
func (s *Service) PerformanceReport(ctx context.Context, days int) (*models.PerformanceReport, error) {
	const op = "automation.PerformanceReport"
	if days <= 0 {
		return nil, fmt.Errorf("%s: days must be positive", op)
	}

	cutoff := s.now().AddDate(0, 0, -days)
	logs, err := s.storage.ListNotificationLogsSince(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	report := &models.PerformanceReport{
		PeriodDays: days,
		ByType:     make(map[string]int),
		ByDay:      make(map[string]models.DayStats),
	}
	for _, logEntry := range logs {
		report.Total++
		report.ByType[logEntry.Type]++

		day := logEntry.CreatedAt.Format("2006-01-02")
		stats := report.ByDay[day]
		if logEntry.Result == models.SendResultSuccess {
			report.Successful++
			stats.Successful++
		} else {
			report.Failed++
			stats.Failed++
		}
		report.ByDay[day] = stats
	}
	return report, nil
}

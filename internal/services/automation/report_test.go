package automation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/billing-notifier/internal/models"
)

func logEntry(notificationType, result string, createdAt time.Time) *models.NotificationLog {
	return &models.NotificationLog{
		Type:      notificationType,
		ClientID:  "client-1",
		InvoiceID: "inv-1",
		Result:    result,
		CreatedAt: createdAt,
	}
}

func TestPerformanceReport(t *testing.T) {
	storage := new(MockStorage)
	channel := new(MockChannel)
	dedup := new(MockDedupCache)

	dayOne := workdayNoon.AddDate(0, 0, -1)
	dayTwo := workdayNoon.AddDate(0, 0, -2)
	logs := []*models.NotificationLog{
		logEntry(models.NotificationReminder, models.SendResultSuccess, dayOne),
		logEntry(models.NotificationReminder, models.SendResultSuccess, dayOne),
		logEntry(models.NotificationOverdue, models.SendResultFailed, dayOne),
		logEntry(models.NotificationOverdue, models.SendResultSuccess, dayTwo),
		logEntry(models.NotificationNewInvoice, models.SendResultSuccess, dayTwo),
	}

	cutoff := workdayNoon.AddDate(0, 0, -7)
	storage.On("ListNotificationLogsSince", mock.Anything, cutoff).Return(logs, nil)

	svc := newTestService(storage, channel, dedup, nil, DefaultConfig())
	report, err := svc.PerformanceReport(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, 7, report.PeriodDays)
	assert.Equal(t, 5, report.Total)
	assert.Equal(t, 4, report.Successful)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, map[string]int{
		models.NotificationReminder:   2,
		models.NotificationOverdue:    2,
		models.NotificationNewInvoice: 1,
	}, report.ByType)
	assert.Equal(t, map[string]models.DayStats{
		dayOne.Format("2006-01-02"): {Successful: 2, Failed: 1},
		dayTwo.Format("2006-01-02"): {Successful: 2},
	}, report.ByDay)
}

func TestPerformanceReport_EmptyPeriod(t *testing.T) {
	storage := new(MockStorage)
	channel := new(MockChannel)
	dedup := new(MockDedupCache)

	storage.On("ListNotificationLogsSince", mock.Anything, mock.Anything).
		Return([]*models.NotificationLog{}, nil)

	svc := newTestService(storage, channel, dedup, nil, DefaultConfig())
	report, err := svc.PerformanceReport(context.Background(), 30)

	require.NoError(t, err)
	assert.Equal(t, 0, report.Total)
	assert.Empty(t, report.ByType)
	assert.Empty(t, report.ByDay)
}

func TestPerformanceReport_RejectsNonPositivePeriod(t *testing.T) {
	storage := new(MockStorage)
	channel := new(MockChannel)
	dedup := new(MockDedupCache)

	svc := newTestService(storage, channel, dedup, nil, DefaultConfig())

	_, err := svc.PerformanceReport(context.Background(), 0)
	assert.Error(t, err)
	_, err = svc.PerformanceReport(context.Background(), -1)
	assert.Error(t, err)
}

func TestPerformanceReport_StorageError(t *testing.T) {
	storage := new(MockStorage)
	channel := new(MockChannel)
	dedup := new(MockDedupCache)

	storage.On("ListNotificationLogsSince", mock.Anything, mock.Anything).
		Return(nil, errors.New("db down"))

	svc := newTestService(storage, channel, dedup, nil, DefaultConfig())
	_, err := svc.PerformanceReport(context.Background(), 7)
	assert.Error(t, err)
}

package billing

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/billing-notifier/internal/models"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) FindSubscriptionsDueForInvoicing(ctx context.Context, day time.Time) ([]*models.Subscription, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Subscription), args.Error(1)
}

func (m *MockStorage) CreateInvoice(ctx context.Context, invoice models.Invoice) (string, error) {
	args := m.Called(ctx, invoice)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) UpdateNextInvoiceDate(ctx context.Context, id string, next time.Time) (int, error) {
	args := m.Called(ctx, id, next)
	return args.Int(0), args.Error(1)
}

func (m *MockStorage) MarkOverdueInvoices(ctx context.Context, day time.Time) (int, error) {
	args := m.Called(ctx, day)
	return args.Int(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

var generationDay = time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

func newTestService(storage *MockStorage) *Service {
	svc := NewService(storage, 7, newNoopLogger())
	svc.now = func() time.Time {
		return time.Date(2025, 4, 1, 7, 0, 0, 0, time.UTC)
	}
	return svc
}

func testSubscription(id string, window int) *models.Subscription {
	return &models.Subscription{
		ID:                id,
		ClientID:          "client-1",
		ServiceName:       "Hosting",
		Amount:            250000,
		Recurrence:        models.RecurrenceMonthly,
		Status:            models.SubscriptionActive,
		NextInvoiceDate:   generationDay,
		PaymentWindowDays: window,
	}
}

func TestGenerateInvoices_CreatesPendingInvoice(t *testing.T) {
	storage := new(MockStorage)
	sub := testSubscription("sub-1", 10)

	storage.On("FindSubscriptionsDueForInvoicing", mock.Anything, generationDay).
		Return([]*models.Subscription{sub}, nil)
	storage.On("CreateInvoice", mock.Anything, mock.MatchedBy(func(inv models.Invoice) bool {
		return inv.ClientID == "client-1" &&
			inv.Status == models.InvoicePending &&
			inv.Amount == 250000 &&
			inv.GenerationDate.Equal(generationDay) &&
			inv.DueDate.Equal(generationDay.AddDate(0, 0, 10)) &&
			inv.SubscriptionID != nil && *inv.SubscriptionID == "sub-1"
	})).Return("inv-1", nil)
	storage.On("UpdateNextInvoiceDate", mock.Anything, "sub-1", generationDay.AddDate(0, 1, 0)).
		Return(1, nil)

	svc := newTestService(storage)
	generated, err := svc.GenerateInvoices(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, generated)
	storage.AssertExpectations(t)
}

func TestGenerateInvoices_FallsBackToDefaultWindow(t *testing.T) {
	storage := new(MockStorage)
	sub := testSubscription("sub-1", 0)

	storage.On("FindSubscriptionsDueForInvoicing", mock.Anything, generationDay).
		Return([]*models.Subscription{sub}, nil)
	storage.On("CreateInvoice", mock.Anything, mock.MatchedBy(func(inv models.Invoice) bool {
		return inv.DueDate.Equal(generationDay.AddDate(0, 0, 7))
	})).Return("inv-1", nil)
	storage.On("UpdateNextInvoiceDate", mock.Anything, "sub-1", mock.Anything).Return(1, nil)

	svc := newTestService(storage)
	generated, err := svc.GenerateInvoices(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, generated)
}

func TestGenerateInvoices_ContinuesAfterFailure(t *testing.T) {
	storage := new(MockStorage)
	broken := testSubscription("sub-broken", 7)
	healthy := testSubscription("sub-healthy", 7)

	storage.On("FindSubscriptionsDueForInvoicing", mock.Anything, generationDay).
		Return([]*models.Subscription{broken, healthy}, nil)
	storage.On("CreateInvoice", mock.Anything, mock.MatchedBy(func(inv models.Invoice) bool {
		return *inv.SubscriptionID == "sub-broken"
	})).Return("", errors.New("insert failed"))
	storage.On("CreateInvoice", mock.Anything, mock.MatchedBy(func(inv models.Invoice) bool {
		return *inv.SubscriptionID == "sub-healthy"
	})).Return("inv-2", nil)
	storage.On("UpdateNextInvoiceDate", mock.Anything, "sub-healthy", mock.Anything).Return(1, nil)

	svc := newTestService(storage)
	generated, err := svc.GenerateInvoices(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, generated)
	storage.AssertNotCalled(t, "UpdateNextInvoiceDate", mock.Anything, "sub-broken", mock.Anything)
}

func TestRun_MarksOverdueBeforeGenerating(t *testing.T) {
	storage := new(MockStorage)

	storage.On("MarkOverdueInvoices", mock.Anything, generationDay).Return(3, nil)
	storage.On("FindSubscriptionsDueForInvoicing", mock.Anything, generationDay).
		Return([]*models.Subscription{}, nil)

	svc := newTestService(storage)
	err := svc.Run(context.Background())

	require.NoError(t, err)
	storage.AssertExpectations(t)
}

func TestRun_StopsOnMarkOverdueError(t *testing.T) {
	storage := new(MockStorage)

	storage.On("MarkOverdueInvoices", mock.Anything, generationDay).
		Return(0, errors.New("db down"))

	svc := newTestService(storage)
	err := svc.Run(context.Background())

	require.Error(t, err)
	storage.AssertNotCalled(t, "FindSubscriptionsDueForInvoicing", mock.Anything, mock.Anything)
}

func TestNextDate(t *testing.T) {
	from := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		recurrence string
		customDays int
		want       time.Time
	}{
		{name: "daily", recurrence: models.RecurrenceDaily, want: from.AddDate(0, 0, 1)},
		{name: "weekly", recurrence: models.RecurrenceWeekly, want: from.AddDate(0, 0, 7)},
		{name: "monthly", recurrence: models.RecurrenceMonthly, want: from.AddDate(0, 1, 0)},
		{name: "custom", recurrence: models.RecurrenceCustom, customDays: 10, want: from.AddDate(0, 0, 10)},
		{name: "custom without interval", recurrence: models.RecurrenceCustom, want: from.AddDate(0, 0, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextDate(tt.recurrence, tt.customDays, from))
		})
	}
}

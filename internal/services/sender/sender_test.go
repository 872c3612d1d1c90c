package sender

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/billing-notifier/internal/lib/smtp"
	"github.com/magabrotheeeer/billing-notifier/internal/models"
)

type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Connect() (smtp.Client, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(smtp.Client), args.Error(1)
}

func (m *MockTransport) GetSMTPUser() string {
	args := m.Called()
	return args.String(0)
}

type MockSMTPClient struct {
	mock.Mock
}

func (m *MockSMTPClient) Mail(from string) error {
	args := m.Called(from)
	return args.Error(0)
}

func (m *MockSMTPClient) Rcpt(to string) error {
	args := m.Called(to)
	return args.Error(0)
}

func (m *MockSMTPClient) Data() (io.WriteCloser, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.WriteCloser), args.Error(1)
}

func (m *MockSMTPClient) Close() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockSMTPClient) Quit() error {
	args := m.Called()
	return args.Error(0)
}

type writeCloser struct {
	bytes.Buffer
}

func (w *writeCloser) Close() error { return nil }

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func testJob() models.EmailJob {
	return models.EmailJob{
		Type:        models.NotificationReminder,
		ClientName:  "ООО Ромашка",
		ClientEmail: "client@example.com",
		InvoiceID:   "inv-1",
		Amount:      150000,
		DueDate:     time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC),
		DaysOffset:  3,
	}
}

func TestHandleEmailJob_SendsEmail(t *testing.T) {
	transport := new(MockTransport)
	client := new(MockSMTPClient)
	writer := &writeCloser{}

	transport.On("GetSMTPUser").Return("billing@example.com")
	transport.On("Connect").Return(client, nil)
	client.On("Mail", "billing@example.com").Return(nil)
	client.On("Rcpt", "client@example.com").Return(nil)
	client.On("Data").Return(writer, nil)
	client.On("Quit").Return(nil)
	client.On("Close").Return(nil)

	body, err := json.Marshal(testJob())
	require.NoError(t, err)

	svc := NewService(transport, newNoopLogger())
	require.NoError(t, svc.HandleEmailJob(body))

	sent := writer.String()
	assert.Contains(t, sent, "Subject: Напоминание об оплате счета")
	assert.Contains(t, sent, "To: client@example.com")
	assert.Contains(t, sent, "1500.00")
	assert.Contains(t, sent, "13.03.2025")
}

func TestHandleEmailJob_BadPayload(t *testing.T) {
	transport := new(MockTransport)

	svc := NewService(transport, newNoopLogger())
	err := svc.HandleEmailJob([]byte("{not json"))

	require.Error(t, err)
	transport.AssertNotCalled(t, "Connect")
}

func TestHandleEmailJob_ConnectError(t *testing.T) {
	transport := new(MockTransport)

	transport.On("GetSMTPUser").Return("billing@example.com")
	transport.On("Connect").Return(nil, errors.New("dial failed"))

	body, err := json.Marshal(testJob())
	require.NoError(t, err)

	svc := NewService(transport, newNoopLogger())
	assert.Error(t, svc.HandleEmailJob(body))
}

func TestComposeEmail(t *testing.T) {
	job := testJob()

	tests := []struct {
		name        string
		jobType     string
		wantSubject string
		wantInBody  string
	}{
		{
			name:        "overdue",
			jobType:     models.NotificationOverdue,
			wantSubject: "Счет просрочен",
			wantInBody:  "просрочен на 3 дн",
		},
		{
			name:        "reminder",
			jobType:     models.NotificationReminder,
			wantSubject: "Напоминание об оплате счета",
			wantInBody:  "должен быть оплачен до 13.03.2025",
		},
		{
			name:        "new invoice",
			jobType:     models.NotificationNewInvoice,
			wantSubject: "Выставлен новый счет",
			wantInBody:  "выставлен новый счет",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job.Type = tt.jobType
			subject, body := composeEmail(job)
			assert.Equal(t, tt.wantSubject, subject)
			assert.Contains(t, body, tt.wantInBody)
			assert.Contains(t, body, "ООО Ромашка")
		})
	}
}

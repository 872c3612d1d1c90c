package whatsapp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/billing-notifier/internal/models"
)

func testNotification(daysOffset int) models.Notification {
	return models.Notification{
		Client: &models.Client{Name: "ООО Ромашка", Phone: "+79991234567"},
		Invoice: &models.Invoice{
			Amount:  150000,
			DueDate: time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC),
		},
		DaysOffset: daysOffset,
	}
}

func TestOverdueBody(t *testing.T) {
	body := OverdueBody(testNotification(7))
	assert.Contains(t, body, "ООО Ромашка")
	assert.Contains(t, body, "1500.00")
	assert.Contains(t, body, "просрочен на 7 дн")
}

func TestReminderBody(t *testing.T) {
	body := ReminderBody(testNotification(2))
	assert.Contains(t, body, "оплачен через 2 дн")

	lastDay := ReminderBody(testNotification(0))
	assert.Contains(t, lastDay, "последний день оплаты")
}

func TestNewInvoiceBody(t *testing.T) {
	body := NewInvoiceBody(testNotification(7))
	assert.Contains(t, body, "новый счет")
	assert.Contains(t, body, "13.03.2025")
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "1500.00", formatAmount(150000))
	assert.Equal(t, "0.05", formatAmount(5))
	assert.Equal(t, "12.34", formatAmount(1234))
}

package automation

import (
	"slices"
	"sort"
	"time"

	"github.com/magabrotheeeer/billing-notifier/internal/models"
)

// Classify вычисляет кандидатов на отправку по снимкам счетов, клиентов
// и подписок. Рассматриваются только счета в статусах pending и overdue,
// принадлежащие клиентам с телефоном. Один счет может дать несколько
// уведомлений разных типов за цикл. Результат отсортирован по приоритету
// по возрастанию, порядок внутри приоритета стабилен.
func Classify(now time.Time, invoices []*models.Invoice, clients []*models.Client,
	subscriptions []*models.Subscription, cfg Config) []models.Notification {

	clientByID := make(map[string]*models.Client, len(clients))
	for _, client := range clients {
		clientByID[client.ID] = client
	}
	subscriptionByID := make(map[string]*models.Subscription, len(subscriptions))
	for _, sub := range subscriptions {
		subscriptionByID[sub.ID] = sub
	}

	var result []models.Notification
	for _, invoice := range invoices {
		if invoice.Status != models.InvoicePending && invoice.Status != models.InvoiceOverdue {
			continue
		}
		client, ok := clientByID[invoice.ClientID]
		if !ok || client.Phone == "" {
			continue
		}
		var subscription *models.Subscription
		if invoice.SubscriptionID != nil {
			subscription = subscriptionByID[*invoice.SubscriptionID]
		}

		daysDiff := daysBetween(now, invoice.DueDate)

		if daysDiff < 0 {
			daysOverdue := -daysDiff
			if slices.Contains(cfg.OverdueEscalation, daysOverdue) {
				result = append(result, models.Notification{
					Type:         models.NotificationOverdue,
					Priority:     models.PriorityOverdue,
					Invoice:      invoice,
					Client:       client,
					Subscription: subscription,
					DaysOffset:   daysOverdue,
				})
			}
		} else if daysDiff <= cfg.ReminderDays {
			result = append(result, models.Notification{
				Type:         models.NotificationReminder,
				Priority:     models.PriorityReminder,
				Invoice:      invoice,
				Client:       client,
				Subscription: subscription,
				DaysOffset:   daysDiff,
			})
		}

		if invoice.Status == models.InvoicePending && sameDay(invoice.GenerationDate, now) {
			result = append(result, models.Notification{
				Type:         models.NotificationNewInvoice,
				Priority:     models.PriorityNewInvoice,
				Invoice:      invoice,
				Client:       client,
				Subscription: subscription,
				DaysOffset:   daysDiff,
			})
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Priority < result[j].Priority
	})
	return result
}

// daysBetween возвращает разницу в календарных днях между from и to,
// положительную, если to в будущем.
func daysBetween(from, to time.Time) int {
	fromDay := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	toDay := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(toDay.Sub(fromDay).Hours() / 24)
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

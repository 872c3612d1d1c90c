// Package whatsapp реализует канал отправки уведомлений через WhatsApp
// поверх Twilio API. Каждому типу уведомления соответствует отдельный
// метод отправки с собственным шаблоном текста.
package whatsapp

import (
	"fmt"
	"log/slog"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/magabrotheeeer/billing-notifier/internal/config"
	"github.com/magabrotheeeer/billing-notifier/internal/models"
)

// Client отправляет WhatsApp-сообщения через Twilio.
type Client struct {
	api        *twilio.RestClient
	accountSID string
	fromNumber string
	log        *slog.Logger
}

// New создает новый Client с учетными данными из конфига.
func New(cfg config.Twilio, log *slog.Logger) *Client {
	return &Client{
		api: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.AccountSID,
			Password: cfg.AuthToken,
		}),
		accountSID: cfg.AccountSID,
		fromNumber: cfg.WhatsAppNumber,
		log:        log,
	}
}

// CheckConnection проверяет доступность Twilio API, запрашивая
// собственный аккаунт. Используется перед запуском цикла.
func (c *Client) CheckConnection() error {
	const op = "whatsapp.CheckConnection"
	if _, err := c.api.Api.FetchAccount(c.accountSID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// SendOverdueNotification отправляет уведомление о просроченном счете.
func (c *Client) SendOverdueNotification(n models.Notification) error {
	const op = "whatsapp.SendOverdueNotification"
	body := OverdueBody(n)
	if err := c.send(n.Client.Phone, body); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// SendReminderNotification отправляет напоминание о приближающемся сроке оплаты.
func (c *Client) SendReminderNotification(n models.Notification) error {
	const op = "whatsapp.SendReminderNotification"
	body := ReminderBody(n)
	if err := c.send(n.Client.Phone, body); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// SendNewInvoiceNotification отправляет уведомление о новом счете.
func (c *Client) SendNewInvoiceNotification(n models.Notification) error {
	const op = "whatsapp.SendNewInvoiceNotification"
	body := NewInvoiceBody(n)
	if err := c.send(n.Client.Phone, body); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (c *Client) send(phone, body string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo("whatsapp:" + phone)
	params.SetFrom("whatsapp:" + c.fromNumber)
	params.SetBody(body)

	resp, err := c.api.Api.CreateMessage(params)
	if err != nil {
		return err
	}
	if resp.Sid != nil {
		c.log.Info("whatsapp message sent", slog.String("sid", *resp.Sid))
	} else {
		c.log.Warn("whatsapp message sent without sid", slog.String("to", phone))
	}
	return nil
}

// OverdueBody формирует текст уведомления о просрочке.
func OverdueBody(n models.Notification) string {
	return fmt.Sprintf("Здравствуйте, %s!\n\nВаш счет на сумму %s просрочен на %d дн. "+
		"Пожалуйста, оплатите его как можно скорее.",
		n.Client.Name, formatAmount(n.Invoice.Amount), n.DaysOffset)
}

// ReminderBody формирует текст напоминания об оплате.
func ReminderBody(n models.Notification) string {
	if n.DaysOffset == 0 {
		return fmt.Sprintf("Здравствуйте, %s!\n\nСегодня последний день оплаты счета на сумму %s.",
			n.Client.Name, formatAmount(n.Invoice.Amount))
	}
	return fmt.Sprintf("Здравствуйте, %s!\n\nНапоминаем: счет на сумму %s должен быть оплачен через %d дн.",
		n.Client.Name, formatAmount(n.Invoice.Amount), n.DaysOffset)
}

// NewInvoiceBody формирует текст уведомления о новом счете.
func NewInvoiceBody(n models.Notification) string {
	return fmt.Sprintf("Здравствуйте, %s!\n\nВам выставлен новый счет на сумму %s со сроком оплаты до %s.",
		n.Client.Name, formatAmount(n.Invoice.Amount), n.Invoice.DueDate.Format("02.01.2006"))
}

func formatAmount(amount int) string {
	return fmt.Sprintf("%d.%02d", amount/100, amount%100)
}

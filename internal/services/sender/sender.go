// Package sender реализует рассыльщик почтовых дубликатов уведомлений.
// Задания поступают из RabbitMQ, отправка идет через SMTP транспорт.
package sender

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	smtptransport "github.com/magabrotheeeer/billing-notifier/internal/lib/smtp"
	"github.com/magabrotheeeer/billing-notifier/internal/lib/sl"
	"github.com/magabrotheeeer/billing-notifier/internal/models"
)

// Service отправляет письма по заданиям из очереди.
type Service struct {
	transport smtptransport.TransportInterface
	log       *slog.Logger
}

// NewService создает новый Service.
func NewService(transport smtptransport.TransportInterface, log *slog.Logger) *Service {
	return &Service{
		transport: transport,
		log:       log,
	}
}

// HandleEmailJob разбирает задание из очереди и отправляет письмо.
// Используется как обработчик потребителя RabbitMQ.
func (s *Service) HandleEmailJob(body []byte) error {
	var job models.EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		s.log.Error("failed to unmarshal email job", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	subject, bodyText := composeEmail(job)
	return s.sendEmail([]string{job.ClientEmail}, subject, bodyText)
}

// composeEmail формирует тему и текст письма по типу уведомления.
func composeEmail(job models.EmailJob) (string, string) {
	amount := fmt.Sprintf("%d.%02d", job.Amount/100, job.Amount%100)
	switch job.Type {
	case models.NotificationOverdue:
		return "Счет просрочен",
			fmt.Sprintf("Здравствуйте, %s!\n\nВаш счет на сумму %s просрочен на %d дн. "+
				"Пожалуйста, оплатите его как можно скорее.",
				job.ClientName, amount, job.DaysOffset)
	case models.NotificationReminder:
		return "Напоминание об оплате счета",
			fmt.Sprintf("Здравствуйте, %s!\n\nСчет на сумму %s должен быть оплачен до %s.",
				job.ClientName, amount, job.DueDate.Format("02.01.2006"))
	default:
		return "Выставлен новый счет",
			fmt.Sprintf("Здравствуйте, %s!\n\nВам выставлен новый счет на сумму %s "+
				"со сроком оплаты до %s.",
				job.ClientName, amount, job.DueDate.Format("02.01.2006"))
	}
}

func (s *Service) sendEmail(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer func() { _ = client.Close() }()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		s.log.Error("failed to set MAIL FROM", "from", s.transport.GetSMTPUser(), "error", sl.Err(err))
		return err
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", "recipient", addr, "error", sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get Data writer", sl.Err(err))
		return err
	}

	if _, err = wc.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write email body", sl.Err(err))
		return err
	}

	if err = wc.Close(); err != nil {
		s.log.Error("failed to close Data writer", sl.Err(err))
		return err
	}

	if err = client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP client", sl.Err(err))
		return err
	}

	s.log.Info("email sent successfully", "to", to)
	return nil
}

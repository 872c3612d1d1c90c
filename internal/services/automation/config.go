// Package automation реализует цикл автоматических уведомлений:
// классификацию счетов, дедупликацию, рабочие часы и диспетчеризацию
// сообщений во внешний канал с журналированием результатов.
package automation

import (
	"fmt"
	"time"

	appconfig "github.com/magabrotheeeer/billing-notifier/internal/config"
)

// Config — рабочая конфигурация цикла. В отличие от статического конфига
// приложения может частично обновляться на лету через UpdateConfig.
type Config struct {
	Enabled              bool          `json:"enabled"`
	CheckInterval        time.Duration `json:"check_interval"`
	BusinessHours        BusinessHours `json:"business_hours"`
	ReminderDays         int           `json:"reminder_days"`
	OverdueEscalation    []int         `json:"overdue_escalation"`
	MaxMessagesPerDay    int           `json:"max_messages_per_day"`
	DelayBetweenMessages time.Duration `json:"delay_between_messages"`
}

// ConfigPatch — частичное обновление конфигурации: nil-поля не меняются.
type ConfigPatch struct {
	Enabled              *bool          `json:"enabled"`
	CheckInterval        *time.Duration `json:"check_interval"`
	BusinessHours        *BusinessHours `json:"business_hours"`
	ReminderDays         *int           `json:"reminder_days"`
	OverdueEscalation    []int          `json:"overdue_escalation"`
	MaxMessagesPerDay    *int           `json:"max_messages_per_day"`
	DelayBetweenMessages *time.Duration `json:"delay_between_messages"`
}

// DefaultConfig возвращает конфигурацию по умолчанию:
// интервал 60с, рабочие часы [8,18) пн-пт, напоминания за 3 дня,
// эскалация просрочки на 1, 3, 7, 15 и 30 день.
func DefaultConfig() Config {
	return Config{
		Enabled:       true,
		CheckInterval: 60 * time.Second,
		BusinessHours: BusinessHours{
			StartHour: 8,
			EndHour:   18,
			WorkDays: []time.Weekday{
				time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
			},
		},
		ReminderDays:         3,
		OverdueEscalation:    []int{1, 3, 7, 15, 30},
		MaxMessagesPerDay:    100,
		DelayBetweenMessages: 5 * time.Second,
	}
}

// ConfigFromApp строит рабочую конфигурацию из статического конфига
// приложения. Дни недели заданы числами, 0 — воскресенье.
func ConfigFromApp(cfg appconfig.Automation) Config {
	workDays := make([]time.Weekday, 0, len(cfg.WorkDays))
	for _, d := range cfg.WorkDays {
		workDays = append(workDays, time.Weekday(d%7))
	}
	return Config{
		Enabled:       cfg.Enabled,
		CheckInterval: cfg.CheckInterval,
		BusinessHours: BusinessHours{
			StartHour: cfg.BusinessHoursStart,
			EndHour:   cfg.BusinessHoursEnd,
			WorkDays:  workDays,
		},
		ReminderDays:         cfg.ReminderDays,
		OverdueEscalation:    cfg.OverdueEscalation,
		MaxMessagesPerDay:    cfg.MaxMessagesPerDay,
		DelayBetweenMessages: cfg.DelayBetweenMessages,
	}
}

// Apply накладывает непустые поля патча на конфигурацию.
func (c Config) Apply(patch ConfigPatch) (Config, error) {
	const op = "automation.Config.Apply"
	if patch.Enabled != nil {
		c.Enabled = *patch.Enabled
	}
	if patch.CheckInterval != nil {
		if *patch.CheckInterval <= 0 {
			return c, fmt.Errorf("%s: check interval must be positive", op)
		}
		c.CheckInterval = *patch.CheckInterval
	}
	if patch.BusinessHours != nil {
		if err := patch.BusinessHours.Validate(); err != nil {
			return c, fmt.Errorf("%s: %w", op, err)
		}
		c.BusinessHours = *patch.BusinessHours
	}
	if patch.ReminderDays != nil {
		if *patch.ReminderDays < 0 {
			return c, fmt.Errorf("%s: reminder days must not be negative", op)
		}
		c.ReminderDays = *patch.ReminderDays
	}
	if patch.OverdueEscalation != nil {
		c.OverdueEscalation = patch.OverdueEscalation
	}
	if patch.MaxMessagesPerDay != nil {
		if *patch.MaxMessagesPerDay <= 0 {
			return c, fmt.Errorf("%s: max messages per day must be positive", op)
		}
		c.MaxMessagesPerDay = *patch.MaxMessagesPerDay
	}
	if patch.DelayBetweenMessages != nil {
		if *patch.DelayBetweenMessages < 0 {
			return c, fmt.Errorf("%s: delay between messages must not be negative", op)
		}
		c.DelayBetweenMessages = *patch.DelayBetweenMessages
	}
	return c, nil
}

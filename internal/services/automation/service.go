package automation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/magabrotheeeer/billing-notifier/internal/lib/sl"
	"github.com/magabrotheeeer/billing-notifier/internal/metrics"
	"github.com/magabrotheeeer/billing-notifier/internal/models"
)

// Ошибки предусловий управления циклом. Возвращаются вызывающему,
// решение о повторе остается за ним.
var (
	ErrAlreadyRunning  = errors.New("automation is already running")
	ErrNotRunning      = errors.New("automation is not running")
	ErrCycleInProgress = errors.New("automation cycle is already in progress")
)

// Storage описывает доступ к данным, необходимый циклу автоматизации.
type Storage interface {
	ListClients(ctx context.Context) ([]*models.Client, error)
	ListInvoices(ctx context.Context) ([]*models.Invoice, error)
	ListSubscriptions(ctx context.Context) ([]*models.Subscription, error)
	AppendAutomationLog(ctx context.Context, logEntry models.AutomationLog) (int, error)
	AppendNotificationLog(ctx context.Context, logEntry models.NotificationLog) (int, error)
	ListNotificationLogsSince(ctx context.Context, cutoff time.Time) ([]*models.NotificationLog, error)
	WasMessageSentToday(ctx context.Context, clientID, notificationType string, day time.Time) (bool, error)
}

// Channel описывает внешний канал доставки уведомлений.
type Channel interface {
	CheckConnection() error
	SendOverdueNotification(n models.Notification) error
	SendReminderNotification(n models.Notification) error
	SendNewInvoiceNotification(n models.Notification) error
}

// DedupCache описывает быстрый слой отметок об отправке.
type DedupCache interface {
	WasSentToday(ctx context.Context, clientID, notificationType string, day time.Time) (bool, error)
	MarkSentToday(ctx context.Context, clientID, notificationType string, day time.Time) error
	IncrDailyCount(ctx context.Context, day time.Time) (int, error)
	GetDailyCount(ctx context.Context, day time.Time) (int, error)
}

// Publisher описывает публикацию заданий на дублирование по почте.
type Publisher interface {
	PublishEmailJob(job models.EmailJob) error
}

// Stats — счетчики работы цикла, живут в памяти процесса.
type Stats struct {
	CyclesCompleted int        `json:"cycles_completed"`
	CyclesSkipped   int        `json:"cycles_skipped"`
	TotalProcessed  int        `json:"total_processed"`
	TotalSent       int        `json:"total_sent"`
	TotalErrors     int        `json:"total_errors"`
	LastCycleAt     *time.Time `json:"last_cycle_at,omitempty"`
	LastError       string     `json:"last_error,omitempty"`
	StartedAt       *time.Time `json:"started_at,omitempty"`
}

// Status — снимок состояния сервиса для панели управления.
type Status struct {
	Running bool   `json:"running"`
	Paused  bool   `json:"paused"`
	Config  Config `json:"config"`
	Stats   Stats  `json:"stats"`
}

// Service управляет циклом автоматических уведомлений. Все изменяемое
// состояние закрыто мьютексом: сервис дергают и тикер, и HTTP-обработчики.
type Service struct {
	storage   Storage
	channel   Channel
	dedup     DedupCache
	publisher Publisher
	log       *slog.Logger

	mu        sync.Mutex
	running   bool
	paused    bool
	inFlight  bool
	cfg       Config
	defaults  Config
	stats     Stats
	startedAt time.Time
	stopCh    chan struct{}

	// Подменяются в тестах.
	now   func() time.Time
	sleep func(d time.Duration)
}

// NewService создает новый Service. Publisher может быть nil —
// тогда дублирование по почте отключено.
func NewService(storage Storage, channel Channel, dedup DedupCache,
	publisher Publisher, cfg Config, log *slog.Logger) *Service {
	return &Service{
		storage:   storage,
		channel:   channel,
		dedup:     dedup,
		publisher: publisher,
		log:       log,
		cfg:       cfg,
		defaults:  cfg,
		now:       time.Now,
		sleep:     time.Sleep,
	}
}

// Start проверяет доступность канала, выполняет один цикл немедленно
// и запускает тикер с интервалом из конфигурации.
func (s *Service) Start(ctx context.Context) error {
	const op = "automation.Start"

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrAlreadyRunning
	}
	s.mu.Unlock()

	if err := s.channel.CheckConnection(); err != nil {
		return fmt.Errorf("%s: channel is not reachable: %w", op, err)
	}

	s.mu.Lock()
	s.running = true
	s.paused = false
	s.startedAt = s.now()
	startedAt := s.startedAt
	s.stats.StartedAt = &startedAt
	s.stopCh = make(chan struct{})
	stopCh := s.stopCh
	interval := s.cfg.CheckInterval
	s.mu.Unlock()

	s.appendAutomationLog(ctx, models.AutomationLog{
		Event: models.EventAutomationStarted,
	})
	s.log.Info("automation started", slog.Duration("interval", interval))

	// Цикл живет дольше вызова, которым его запустили: контекст
	// HTTP-запроса гаснет при возврате обработчика, поэтому аргумент
	// Start циклу не передается. Остановка приходит через stopCh.
	go s.loop(interval, stopCh)
	return nil
}

// Stop останавливает тикер. Цикл, уже находящийся в полете,
// не прерывается.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return ErrNotRunning
	}
	s.running = false
	s.paused = false
	close(s.stopCh)
	uptime := s.now().Sub(s.startedAt)
	s.mu.Unlock()

	s.appendAutomationLog(ctx, models.AutomationLog{
		Event:   models.EventAutomationStopped,
		Details: fmt.Sprintf("uptime %s", uptime.Round(time.Second)),
	})
	s.log.Info("automation stopped", slog.Duration("uptime", uptime))
	return nil
}

// Pause приостанавливает обработку тиков, не останавливая тикер.
func (s *Service) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = true
}

// Resume снимает паузу.
func (s *Service) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = false
}

// Status возвращает снимок состояния сервиса.
func (s *Service) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{
		Running: s.running,
		Paused:  s.paused,
		Config:  s.cfg,
		Stats:   s.stats,
	}
}

// UpdateConfig накладывает частичное обновление конфигурации.
// Если цикл запущен, выполняется перезапуск, чтобы новый интервал
// и рабочие часы применились атомарно.
func (s *Service) UpdateConfig(ctx context.Context, patch ConfigPatch) (Config, error) {
	const op = "automation.UpdateConfig"

	s.mu.Lock()
	updated, err := s.cfg.Apply(patch)
	if err != nil {
		s.mu.Unlock()
		return s.cfg, fmt.Errorf("%s: %w", op, err)
	}
	wasRunning := s.running
	s.mu.Unlock()

	if wasRunning {
		if err := s.Stop(ctx); err != nil {
			return updated, fmt.Errorf("%s: %w", op, err)
		}
	}

	s.mu.Lock()
	s.cfg = updated
	s.mu.Unlock()

	if wasRunning {
		if err := s.Start(ctx); err != nil {
			return updated, fmt.Errorf("%s: %w", op, err)
		}
	}
	return updated, nil
}

// Reset останавливает цикл, если он запущен, обнуляет счетчики
// и восстанавливает исходную конфигурацию.
func (s *Service) Reset(ctx context.Context) {
	if err := s.Stop(ctx); err != nil && !errors.Is(err, ErrNotRunning) {
		s.log.Error("failed to stop automation during reset", sl.Err(err))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats = Stats{}
	s.cfg = s.defaults
}

// RunCycle выполняет один цикл вручную, независимо от состояния тикера.
// Возвращает ErrCycleInProgress, если цикл уже в полете.
func (s *Service) RunCycle(ctx context.Context) (models.CycleResult, error) {
	if !s.beginCycle() {
		return models.CycleResult{}, ErrCycleInProgress
	}
	defer s.endCycle()
	return s.executeCycle(ctx)
}

// DryRun выполняет классификацию и дедупликацию без отправки,
// возвращая вычисленный план для осмотра.
func (s *Service) DryRun(ctx context.Context) ([]models.Notification, error) {
	now := s.now()
	s.mu.Lock()
	cfg := s.cfg
	s.mu.Unlock()

	invoices, clients, subscriptions := s.fetchSnapshots(ctx)
	candidates := Classify(now, invoices, clients, subscriptions, cfg)
	return s.filterDuplicates(ctx, now, candidates), nil
}

func (s *Service) loop(interval time.Duration, stopCh chan struct{}) {
	ctx := context.Background()
	s.tick(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.tick(ctx)
		case <-stopCh:
			return
		}
	}
}

// tick — обработчик одного срабатывания тикера. На паузе превращается
// в no-op; незавершенный предыдущий цикл приводит к пропуску тика.
func (s *Service) tick(ctx context.Context) {
	s.mu.Lock()
	if s.paused {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	if !s.beginCycle() {
		s.log.Warn("previous cycle still in flight, skipping tick")
		return
	}
	defer s.endCycle()
	_, _ = s.executeCycle(ctx)
}

func (s *Service) beginCycle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight {
		return false
	}
	s.inFlight = true
	return true
}

func (s *Service) endCycle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false
}

// executeCycle выполняет цикл и разносит результат по журналу,
// метрикам и счетчикам. Ошибка цикла не фатальна: тикер продолжит
// работу на следующем срабатывании.
func (s *Service) executeCycle(ctx context.Context) (models.CycleResult, error) {
	result, err := s.runCycle(ctx)

	s.mu.Lock()
	lastCycleAt := s.now()
	s.stats.LastCycleAt = &lastCycleAt
	switch {
	case err != nil:
		s.stats.TotalErrors++
		s.stats.LastError = err.Error()
	case result.Skipped:
		s.stats.CyclesSkipped++
	default:
		s.stats.CyclesCompleted++
		s.stats.TotalProcessed += result.Processed
		s.stats.TotalSent += result.Sent
		s.stats.TotalErrors += result.Errors
	}
	s.mu.Unlock()

	if err != nil {
		s.log.Error("automation cycle failed", sl.Err(err))
		metrics.CyclesTotal.WithLabelValues("error").Inc()
		s.appendAutomationLog(ctx, models.AutomationLog{
			Event:   models.EventCycleError,
			Details: err.Error(),
		})
		return result, err
	}

	if result.Skipped {
		metrics.CyclesTotal.WithLabelValues("skipped").Inc()
		return result, nil
	}

	metrics.CyclesTotal.WithLabelValues("completed").Inc()
	s.appendAutomationLog(ctx, models.AutomationLog{
		Event:     models.EventCycleCompleted,
		Processed: result.Processed,
		Sent:      result.Sent,
		Errors:    result.Errors,
	})
	return result, nil
}

func (s *Service) runCycle(ctx context.Context) (models.CycleResult, error) {
	const op = "automation.runCycle"
	now := s.now()

	s.mu.Lock()
	cfg := s.cfg
	s.mu.Unlock()

	if !cfg.Enabled {
		return models.CycleResult{Skipped: true, SkipReason: "automation disabled"}, nil
	}

	if !cfg.BusinessHours.Contains(now) {
		next := cfg.BusinessHours.NextOpen(now)
		s.log.Info("outside business hours, skipping cycle",
			slog.Time("next_check", next))
		return models.CycleResult{
			Skipped:    true,
			SkipReason: "outside business hours",
			NextCheck:  &next,
		}, nil
	}

	// Исчерпанный суточный бюджет известен до выборки: нет смысла
	// классифицировать то, что все равно не будет отправлено.
	if count, err := s.dedup.GetDailyCount(ctx, now); err != nil {
		s.log.Warn("failed to read daily counter", sl.Err(err))
	} else if count >= cfg.MaxMessagesPerDay {
		s.log.Info("daily message cap exhausted, skipping cycle",
			slog.Int("sent_today", count), slog.Int("cap", cfg.MaxMessagesPerDay))
		return models.CycleResult{
			Skipped:    true,
			SkipReason: "daily message cap reached",
		}, nil
	}

	if err := s.channel.CheckConnection(); err != nil {
		return models.CycleResult{}, fmt.Errorf("%s: channel is not connected: %w", op, err)
	}

	invoices, clients, subscriptions := s.fetchSnapshots(ctx)
	candidates := Classify(now, invoices, clients, subscriptions, cfg)
	notifications := s.filterDuplicates(ctx, now, candidates)

	result := models.CycleResult{Processed: len(notifications)}
	for i, notification := range notifications {
		count, err := s.dedup.IncrDailyCount(ctx, now)
		if err != nil {
			s.log.Warn("failed to advance daily counter", sl.Err(err))
		} else if count > cfg.MaxMessagesPerDay {
			s.log.Warn("daily message cap reached, deferring remaining notifications",
				slog.Int("cap", cfg.MaxMessagesPerDay))
			break
		}

		if err := s.dispatch(notification); err != nil {
			result.Errors++
			metrics.NotificationErrorsTotal.WithLabelValues(notification.Type).Inc()
			s.log.Error("failed to dispatch notification", sl.Type(notification.Type),
				slog.String("client_id", notification.Client.ID), sl.Err(err))
			s.appendNotificationLog(ctx, notification, models.SendResultFailed, err.Error(), now)
		} else {
			result.Sent++
			metrics.NotificationsSentTotal.WithLabelValues(notification.Type).Inc()
			if err := s.dedup.MarkSentToday(ctx, notification.Client.ID, notification.Type, now); err != nil {
				s.log.Warn("failed to mark notification as sent", sl.Err(err))
			}
			s.appendNotificationLog(ctx, notification, models.SendResultSuccess, "", now)
			s.publishEmailJob(notification)
		}

		if i < len(notifications)-1 {
			s.sleep(cfg.DelayBetweenMessages)
		}
	}

	s.log.Info("automation cycle completed",
		slog.Int("processed", result.Processed),
		slog.Int("sent", result.Sent),
		slog.Int("errors", result.Errors))
	return result, nil
}

// fetchSnapshots читает три снимка параллельно. Ошибка чтения
// подавляется до пустого списка, чтобы не останавливать цикл,
// но логируется и учитывается в метрике.
func (s *Service) fetchSnapshots(ctx context.Context) ([]*models.Invoice, []*models.Client, []*models.Subscription) {
	var (
		invoices      []*models.Invoice
		clients       []*models.Client
		subscriptions []*models.Subscription
	)

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		var err error
		if invoices, err = s.storage.ListInvoices(ctx); err != nil {
			s.suppressFetchError("invoices", err)
			invoices = nil
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if clients, err = s.storage.ListClients(ctx); err != nil {
			s.suppressFetchError("clients", err)
			clients = nil
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if subscriptions, err = s.storage.ListSubscriptions(ctx); err != nil {
			s.suppressFetchError("subscriptions", err)
			subscriptions = nil
		}
	}()
	wg.Wait()

	return invoices, clients, subscriptions
}

func (s *Service) suppressFetchError(entity string, err error) {
	metrics.FetchErrorsTotal.WithLabelValues(entity).Inc()
	s.log.Warn("fetch failed, proceeding with empty snapshot",
		slog.String("entity", entity), sl.Err(err))
}

// filterDuplicates убирает кандидатов, которым сегодня уже отправлялось
// уведомление того же типа. Порядок списка сохраняется. Сначала
// спрашивается Redis, при промахе или ошибке — журнал в PostgreSQL.
func (s *Service) filterDuplicates(ctx context.Context, now time.Time,
	candidates []models.Notification) []models.Notification {

	result := make([]models.Notification, 0, len(candidates))
	for _, candidate := range candidates {
		sent, err := s.dedup.WasSentToday(ctx, candidate.Client.ID, candidate.Type, now)
		if err != nil {
			s.log.Debug("dedup cache lookup failed, falling back to log store", sl.Err(err))
			sent = false
		}
		if !sent {
			sent, err = s.storage.WasMessageSentToday(ctx, candidate.Client.ID, candidate.Type, now)
			if err != nil {
				s.log.Warn("dedup log lookup failed, keeping candidate", sl.Err(err))
				sent = false
			}
		}
		if sent {
			s.log.Debug("duplicate notification dropped", sl.Type(candidate.Type),
				slog.String("client_id", candidate.Client.ID))
			continue
		}
		result = append(result, candidate)
	}
	return result
}

// dispatch направляет уведомление в метод канала, соответствующий типу.
// Нераспознанный тип — ошибка только этого элемента.
func (s *Service) dispatch(n models.Notification) error {
	switch n.Type {
	case models.NotificationOverdue:
		return s.channel.SendOverdueNotification(n)
	case models.NotificationReminder:
		return s.channel.SendReminderNotification(n)
	case models.NotificationNewInvoice:
		return s.channel.SendNewInvoiceNotification(n)
	default:
		return fmt.Errorf("unknown notification type: %s", n.Type)
	}
}

func (s *Service) publishEmailJob(n models.Notification) {
	if s.publisher == nil || n.Client.Email == "" {
		return
	}
	job := models.EmailJob{
		Type:        n.Type,
		ClientName:  n.Client.Name,
		ClientEmail: n.Client.Email,
		InvoiceID:   n.Invoice.ID,
		Amount:      n.Invoice.Amount,
		DueDate:     n.Invoice.DueDate,
		DaysOffset:  n.DaysOffset,
	}
	if err := s.publisher.PublishEmailJob(job); err != nil {
		s.log.Error("failed to publish email job", sl.Err(err))
	}
}

func (s *Service) appendAutomationLog(ctx context.Context, logEntry models.AutomationLog) {
	logEntry.CreatedAt = s.now()
	if _, err := s.storage.AppendAutomationLog(ctx, logEntry); err != nil {
		s.log.Error("failed to append automation log", sl.Err(err))
	}
}

func (s *Service) appendNotificationLog(ctx context.Context, n models.Notification,
	result, errText string, now time.Time) {
	logEntry := models.NotificationLog{
		Type:      n.Type,
		ClientID:  n.Client.ID,
		InvoiceID: n.Invoice.ID,
		Result:    result,
		Error:     errText,
		CreatedAt: now,
	}
	if _, err := s.storage.AppendNotificationLog(ctx, logEntry); err != nil {
		s.log.Error("failed to append notification log", sl.Err(err))
	}
}

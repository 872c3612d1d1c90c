// Package notifier собирает основное приложение: хранилище, кеш,
// канал WhatsApp, сервис автоматизации и HTTP-сервер панели управления.
package notifier

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/billing-notifier/internal/cache"
	"github.com/magabrotheeeer/billing-notifier/internal/config"
	"github.com/magabrotheeeer/billing-notifier/internal/lib/jwt"
	"github.com/magabrotheeeer/billing-notifier/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/billing-notifier/internal/lib/sl"
	"github.com/magabrotheeeer/billing-notifier/internal/migrations"
	"github.com/magabrotheeeer/billing-notifier/internal/services/automation"
	"github.com/magabrotheeeer/billing-notifier/internal/storage/repository"
	"github.com/magabrotheeeer/billing-notifier/internal/whatsapp"
)

// App — основное приложение.
type App struct {
	server     *http.Server
	logger     *slog.Logger
	db         *repository.Storage
	automation *automation.Service
	autostart  bool
}

// New собирает приложение по конфигурации. Очередь почтовых дубликатов
// подключается только при заданном RabbitMQURL.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	var publisher automation.Publisher
	if cfg.RabbitMQURL != "" {
		conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
		if err != nil {
			return nil, err
		}
		ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
		if err != nil {
			return nil, err
		}
		publisher = rabbitmq.NewEmailPublisher(ch)
	} else {
		logger.Warn("rabbitmq url is empty, email fan-out disabled")
	}

	channel := whatsapp.New(cfg.Twilio, logger)
	automationService := automation.NewService(db, channel, cacheRedis, publisher,
		automation.ConfigFromApp(cfg.Automation), logger)

	maker := jwt.NewMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, automationService, db, maker)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:     srv,
		logger:     logger,
		db:         db,
		automation: automationService,
		autostart:  cfg.Automation.Enabled,
	}, nil
}

// Run запускает HTTP-сервер и, если автоматизация включена в конфиге,
// сам цикл уведомлений. Блокируется до отмены контекста.
func (a *App) Run(ctx context.Context) error {
	if a.autostart {
		if err := a.automation.Start(ctx); err != nil {
			a.logger.Error("automation autostart failed", sl.Err(err))
		}
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		if err := a.automation.Stop(timeoutCtx); err != nil && !errors.Is(err, automation.ErrNotRunning) {
			a.logger.Error("failed to stop automation", sl.Err(err))
		}
		err := a.server.Shutdown(timeoutCtx)
		_ = a.db.DB.Close()
		return err
	}
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/magabrotheeeer/billing-notifier/internal/config"
	"github.com/magabrotheeeer/billing-notifier/internal/lib/sl"
	"github.com/magabrotheeeer/billing-notifier/internal/services/billing"
	"github.com/magabrotheeeer/billing-notifier/internal/storage/repository"
)

func waitForDB(db *repository.Storage) error {
	for range 10 {
		err := repository.CheckDatabaseReady(db)
		if err == nil {
			return nil // готово
		}
		time.Sleep(3 * time.Second)
	}
	return fmt.Errorf("database not ready after retries")
}

func main() {
	cfg := config.MustLoad()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	logger.Info("starting invoice-generator", slog.String("env", cfg.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		logger.Error("failed to connect to storage", sl.Err(err))
		os.Exit(1)
	}
	defer func() {
		_ = db.DB.Close()
	}()
	if err = waitForDB(db); err != nil {
		logger.Error("database is not ready", sl.Err(err))
		os.Exit(1)
	}

	billingService := billing.NewService(db, cfg.Billing.PaymentWindowDays, logger)

	// Первый прогон сразу, дальше по расписанию.
	if err = billingService.Run(ctx); err != nil {
		logger.Error("initial billing run failed", sl.Err(err))
	}

	c := cron.New()
	_, err = c.AddFunc(cfg.Billing.GenerateCronSpec, func() {
		if err := billingService.Run(ctx); err != nil {
			logger.Error("billing run failed", sl.Err(err))
		}
	})
	if err != nil {
		logger.Error("failed to schedule billing run", sl.Err(err))
		os.Exit(1)
	}
	c.Start()
	logger.Info("billing schedule registered", slog.String("spec", cfg.Billing.GenerateCronSpec))

	<-ctx.Done()
	<-c.Stop().Done()
	logger.Info("invoice-generator stopped gracefully")
}

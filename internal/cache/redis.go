// Package cache реализует быстрый слой дедупликации уведомлений на Redis:
// отметки об отправке (client, type, day) и суточный счетчик сообщений.
// Источником истины остаётся журнал в PostgreSQL, Redis — только ускорение.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/magabrotheeeer/billing-notifier/internal/config"
)

// Cache инкапсулирует клиент Redis.
type Cache struct {
	Db *redis.Client
}

// InitServer подключается к Redis по настройкам из конфига.
func InitServer(ctx context.Context, cfg config.RedisConnection) (*Cache, error) {
	const op = "cache.InitServer"
	db := redis.NewClient(&redis.Options{
		Addr:         cfg.AddressRedis,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.TimeoutRedis,
		WriteTimeout: cfg.TimeoutRedis,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Cache{Db: db}, nil
}

func sentKey(clientID, notificationType string, day time.Time) string {
	return fmt.Sprintf("sent:%s:%s:%s", clientID, notificationType, day.Format("2006-01-02"))
}

func counterKey(day time.Time) string {
	return fmt.Sprintf("daily_count:%s", day.Format("2006-01-02"))
}

// untilEndOfDay возвращает TTL до конца календарного дня.
func untilEndOfDay(day time.Time) time.Duration {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return dayStart.AddDate(0, 0, 1).Sub(day)
}

// WasSentToday проверяет отметку об отправке уведомления данного типа
// данному клиенту за календарный день.
func (c *Cache) WasSentToday(ctx context.Context, clientID, notificationType string, day time.Time) (bool, error) {
	const op = "cache.WasSentToday"
	_, err := c.Db.Get(ctx, sentKey(clientID, notificationType, day)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return true, nil
}

// MarkSentToday ставит отметку об отправке с TTL до конца дня.
func (c *Cache) MarkSentToday(ctx context.Context, clientID, notificationType string, day time.Time) error {
	const op = "cache.MarkSentToday"
	if err := c.Db.Set(ctx, sentKey(clientID, notificationType, day), "1", untilEndOfDay(day)).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// IncrDailyCount увеличивает суточный счетчик сообщений и возвращает
// новое значение. Ключ истекает в конце дня.
func (c *Cache) IncrDailyCount(ctx context.Context, day time.Time) (int, error) {
	const op = "cache.IncrDailyCount"
	count, err := c.Db.Incr(ctx, counterKey(day)).Result()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if count == 1 {
		if err := c.Db.Expire(ctx, counterKey(day), untilEndOfDay(day)).Err(); err != nil {
			return int(count), fmt.Errorf("%s: %w", op, err)
		}
	}
	return int(count), nil
}

// GetDailyCount возвращает текущее значение суточного счетчика.
func (c *Cache) GetDailyCount(ctx context.Context, day time.Time) (int, error) {
	const op = "cache.GetDailyCount"
	val, err := c.Db.Get(ctx, counterKey(day)).Int()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return val, nil
}

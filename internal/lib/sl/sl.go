// Package sl содержит вспомогательные функции для структурированного
// логирования через slog: единообразные атрибуты для ошибок и типов
// уведомлений.
package sl

import "log/slog"

// Err возвращает slog.Attr с ключом "error" и текстом ошибки.
//
// Пример:
//
//	log.Error("failed to dispatch notification", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// Type возвращает slog.Attr с ключом "type" и типом уведомления.
func Type(notificationType string) slog.Attr {
	return slog.Attr{
		Key:   "type",
		Value: slog.StringValue(notificationType),
	}
}

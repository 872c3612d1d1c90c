// Package cycle реализует HTTP-обработчик ручного запуска одного цикла.
package cycle

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/billing-notifier/internal/http/response"
	"github.com/magabrotheeeer/billing-notifier/internal/lib/sl"
	"github.com/magabrotheeeer/billing-notifier/internal/models"
	"github.com/magabrotheeeer/billing-notifier/internal/services/automation"
)

// Service описывает интерфейс управления автоматизацией.
type Service interface {
	RunCycle(ctx context.Context) (models.CycleResult, error)
}

// Handler управляет HTTP-запросами на ручной запуск цикла.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Выполнить один цикл
// @Description Запускает один цикл уведомлений вне расписания и возвращает его итог.
// @Tags Automation
// @Produce json
// @Success 200 {object} response.Response "Итог цикла"
// @Failure 409 {object} response.ErrorResponse "Цикл уже выполняется"
// @Failure 502 {object} response.ErrorResponse "Ошибка цикла"
// @Router /automation/cycle [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.automation.cycle"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	result, err := h.service.RunCycle(r.Context())
	if err != nil {
		if errors.Is(err, automation.ErrCycleInProgress) {
			log.Error("cycle is already in progress")
			render.Status(r, http.StatusConflict)
			render.JSON(w, r, response.Error("cycle is already in progress"))
			return
		}
		log.Error("cycle failed", sl.Err(err))
		render.Status(r, http.StatusBadGateway)
		render.JSON(w, r, response.Error("cycle failed"))
		return
	}

	log.Info("manual cycle completed",
		slog.Int("processed", result.Processed),
		slog.Int("sent", result.Sent),
		slog.Int("errors", result.Errors))
	render.JSON(w, r, response.OKWithData(result))
}

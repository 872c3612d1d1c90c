// Package start реализует HTTP-обработчик запуска цикла автоматизации.
package start

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/billing-notifier/internal/http/response"
	"github.com/magabrotheeeer/billing-notifier/internal/lib/sl"
	"github.com/magabrotheeeer/billing-notifier/internal/services/automation"
)

// Service описывает интерфейс управления автоматизацией.
type Service interface {
	Start(ctx context.Context) error
}

// Handler управляет HTTP-запросами на запуск автоматизации.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Запустить автоматизацию
// @Description Проверяет доступность канала, выполняет цикл немедленно и запускает тикер.
// @Tags Automation
// @Produce json
// @Success 200 {object} response.Response "Автоматизация запущена"
// @Failure 409 {object} response.ErrorResponse "Уже запущена"
// @Failure 502 {object} response.ErrorResponse "Канал недоступен"
// @Router /automation/start [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.automation.start"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := h.service.Start(r.Context()); err != nil {
		if errors.Is(err, automation.ErrAlreadyRunning) {
			log.Error("automation is already running")
			render.Status(r, http.StatusConflict)
			render.JSON(w, r, response.Error("automation is already running"))
			return
		}
		log.Error("failed to start automation", sl.Err(err))
		render.Status(r, http.StatusBadGateway)
		render.JSON(w, r, response.Error("could not start automation"))
		return
	}

	log.Info("automation started")
	render.JSON(w, r, response.OK())
}

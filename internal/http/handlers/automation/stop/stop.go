// Package stop реализует HTTP-обработчик остановки цикла автоматизации.
package stop

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
	Stop(ctx context.Context) error
}

// Handler управляет HTTP-запросами на остановку автоматизации.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Остановить автоматизацию
// @Description Останавливает тикер. Цикл в полете не прерывается.
// @Tags Automation
// @Produce json
// @Success 200 {object} response.Response "Автоматизация остановлена"
// @Failure 409 {object} response.ErrorResponse "Не запущена"
// @Router /automation/stop [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.automation.stop"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := h.service.Stop(r.Context()); err != nil {
		if errors.Is(err, automation.ErrNotRunning) {
			log.Error("automation is not running")
			render.Status(r, http.StatusConflict)
			render.JSON(w, r, response.Error("automation is not running"))
			return
		}
		log.Error("failed to stop automation", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not stop automation"))
		return
	}

	log.Info("automation stopped")
	render.JSON(w, r, response.OK())
}

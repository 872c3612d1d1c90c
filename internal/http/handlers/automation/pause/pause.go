// Package pause реализует HTTP-обработчик приостановки цикла автоматизации.
package pause

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/billing-notifier/internal/http/response"
)

// Service описывает интерфейс управления автоматизацией.
type Service interface {
	Pause()
}

// Handler управляет HTTP-запросами на приостановку автоматизации.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Приостановить автоматизацию
// @Description Ставит мягкую паузу: тикер продолжает работать, тики становятся no-op.
// @Tags Automation
// @Produce json
// @Success 200 {object} response.Response "Пауза установлена"
// @Router /automation/pause [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.automation.pause"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	h.service.Pause()
	log.Info("automation paused")
	render.JSON(w, r, response.OK())
}

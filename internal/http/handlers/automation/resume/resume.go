// Package resume реализует HTTP-обработчик снятия паузы автоматизации.
package resume

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/billing-notifier/internal/http/response"
)

// Service описывает интерфейс управления автоматизацией.
type Service interface {
	Resume()
}

// Handler управляет HTTP-запросами на снятие паузы.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Возобновить автоматизацию
// @Description Снимает мягкую паузу, тики снова обрабатываются.
// @Tags Automation
// @Produce json
// @Success 200 {object} response.Response "Пауза снята"
// @Router /automation/resume [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.automation.resume"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	h.service.Resume()
	log.Info("automation resumed")
	render.JSON(w, r, response.OK())
}

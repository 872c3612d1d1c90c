// Package status реализует HTTP-обработчик чтения состояния автоматизации.
package status

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/billing-notifier/internal/http/response"
	"github.com/magabrotheeeer/billing-notifier/internal/services/automation"
)

// Service описывает интерфейс управления автоматизацией.
type Service interface {
	Status() automation.Status
}

// Handler управляет HTTP-запросами на чтение состояния.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Состояние автоматизации
// @Description Возвращает снимок состояния: флаги, конфигурацию и счетчики.
// @Tags Automation
// @Produce json
// @Success 200 {object} response.Response "Снимок состояния"
// @Router /automation/status [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.automation.status"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	snapshot := h.service.Status()
	log.Info("status requested", slog.Bool("running", snapshot.Running))
	render.JSON(w, r, response.OKWithData(snapshot))
}

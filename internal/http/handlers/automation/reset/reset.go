// Package reset реализует HTTP-обработчик сброса автоматизации:
// остановка, обнуление счетчиков, восстановление исходной конфигурации.
package reset

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/billing-notifier/internal/http/response"
)

// Service описывает интерфейс управления автоматизацией.
type Service interface {
	Reset(ctx context.Context)
}

// Handler управляет HTTP-запросами на сброс.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Сбросить автоматизацию
// @Description Останавливает цикл, обнуляет счетчики и восстанавливает конфигурацию по умолчанию.
// @Tags Automation
// @Produce json
// @Success 200 {object} response.Response "Сброс выполнен"
// @Router /automation/reset [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.automation.reset"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	h.service.Reset(r.Context())
	log.Info("automation reset")
	render.JSON(w, r, response.OK())
}

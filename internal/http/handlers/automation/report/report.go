// Package report реализует HTTP-обработчик сводки по журналу уведомлений.
package report

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/billing-notifier/internal/http/response"
	"github.com/magabrotheeeer/billing-notifier/internal/lib/sl"
	"github.com/magabrotheeeer/billing-notifier/internal/models"
)

// Service описывает интерфейс построения сводки.
type Service interface {
	PerformanceReport(ctx context.Context, days int) (*models.PerformanceReport, error)
}

// Handler управляет HTTP-запросами на построение сводки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Сводка по уведомлениям
// @Description Возвращает итоги отправок за последние days дней (по умолчанию 7).
// @Tags Automation
// @Produce json
// @Param days query int false "Глубина выборки в днях"
// @Success 200 {object} response.Response "Сводка"
// @Failure 400 {object} response.ErrorResponse "Некорректный параметр days"
// @Failure 500 {object} response.ErrorResponse "Ошибка построения сводки"
// @Router /automation/report [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.automation.report"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	days := 7
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			log.Error("invalid days parameter", slog.String("days", raw))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("days must be a positive integer"))
			return
		}
		days = parsed
	}

	result, err := h.service.PerformanceReport(r.Context(), days)
	if err != nil {
		log.Error("failed to build report", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build report"))
		return
	}

	log.Info("report built", slog.Int("days", days), slog.Int("total", result.Total))
	render.JSON(w, r, response.OKWithData(result))
}

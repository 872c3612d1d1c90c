// Package dryrun реализует HTTP-обработчик пробного прогона:
// классификация и дедупликация без отправки сообщений.
package dryrun

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/billing-notifier/internal/http/response"
	"github.com/magabrotheeeer/billing-notifier/internal/lib/sl"
	"github.com/magabrotheeeer/billing-notifier/internal/models"
)

// Service описывает интерфейс управления автоматизацией.
type Service interface {
	DryRun(ctx context.Context) ([]models.Notification, error)
}

// planItem — элемент плана в ответе, без вложенных сущностей целиком.
type planItem struct {
	Type       string `json:"type"`
	ClientID   string `json:"client_id"`
	ClientName string `json:"client_name"`
	InvoiceID  string `json:"invoice_id"`
	Amount     int    `json:"amount"`
	DaysOffset int    `json:"days_offset"`
}

// Handler управляет HTTP-запросами на пробный прогон.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Пробный прогон
// @Description Возвращает план уведомлений, вычисленный без отправки.
// @Tags Automation
// @Produce json
// @Success 200 {object} response.Response "План уведомлений"
// @Failure 500 {object} response.ErrorResponse "Ошибка вычисления плана"
// @Router /automation/dry-run [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.automation.dryrun"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	plan, err := h.service.DryRun(r.Context())
	if err != nil {
		log.Error("failed to compute plan", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not compute plan"))
		return
	}

	items := make([]planItem, 0, len(plan))
	for _, n := range plan {
		items = append(items, planItem{
			Type:       n.Type,
			ClientID:   n.Client.ID,
			ClientName: n.Client.Name,
			InvoiceID:  n.Invoice.ID,
			Amount:     n.Invoice.Amount,
			DaysOffset: n.DaysOffset,
		})
	}

	log.Info("dry run computed", slog.Int("count", len(items)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"notifications": items,
	}))
}

// Package list реализует HTTP-обработчик списка счетов.
package list

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

// Storage описывает интерфейс чтения счетов из хранилища.
type Storage interface {
	ListInvoices(ctx context.Context) ([]*models.Invoice, error)
}

// Handler управляет HTTP-запросами на чтение списка счетов.
type Handler struct {
	log     *slog.Logger
	storage Storage
}

// New создает новый Handler.
func New(log *slog.Logger, storage Storage) *Handler {
	return &Handler{log: log, storage: storage}
}

// ServeHTTP godoc
// @Summary Список счетов
// @Description Возвращает все счета.
// @Tags Invoices
// @Produce json
// @Success 200 {object} response.Response "Список счетов"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /invoices [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.invoice.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	invoices, err := h.storage.ListInvoices(r.Context())
	if err != nil {
		log.Error("failed to list invoices", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list invoices"))
		return
	}

	log.Info("invoices listed", slog.Int("count", len(invoices)))
	render.JSON(w, r, response.OKWithData(invoices))
}

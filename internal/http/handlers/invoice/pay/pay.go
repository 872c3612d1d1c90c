// Package pay реализует HTTP-обработчик отметки счета оплаченным.
//
// Перевод в paid допустим только из статусов pending и overdue;
// для прочих счетов возвращается 404.
package pay

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/billing-notifier/internal/http/response"
	"github.com/magabrotheeeer/billing-notifier/internal/lib/sl"
)

// Storage описывает интерфейс перевода счета в статус paid.
type Storage interface {
	MarkInvoicePaid(ctx context.Context, id string, paidAt time.Time) (int, error)
}

// Handler управляет HTTP-запросами на оплату счетов.
type Handler struct {
	log     *slog.Logger
	storage Storage
}

// New создает новый Handler.
func New(log *slog.Logger, storage Storage) *Handler {
	return &Handler{log: log, storage: storage}
}

// ServeHTTP godoc
// @Summary Отметить счет оплаченным
// @Description Переводит счет из pending или overdue в paid.
// @Tags Invoices
// @Produce json
// @Param id path string true "Идентификатор счета"
// @Success 200 {object} response.Response "Счет оплачен"
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор"
// @Failure 404 {object} response.ErrorResponse "Счет не найден или уже оплачен"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /invoices/{id}/pay [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.invoice.pay"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		log.Error("invalid invoice id", slog.String("id", id))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid invoice id"))
		return
	}

	affected, err := h.storage.MarkInvoicePaid(r.Context(), id, time.Now())
	if err != nil {
		log.Error("failed to mark invoice paid", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not mark invoice paid"))
		return
	}
	if affected == 0 {
		log.Error("invoice not found or already paid", slog.String("id", id))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("invoice not found or already paid"))
		return
	}

	log.Info("invoice paid", slog.String("id", id))
	render.JSON(w, r, response.OK())
}

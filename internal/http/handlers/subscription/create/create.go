// Package create реализует HTTP-обработчик создания подписки.
//
// Дата первого выставления счета устанавливается в текущий день,
// подписка создается активной.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/billing-notifier/internal/http/response"
	"github.com/magabrotheeeer/billing-notifier/internal/lib/sl"
	"github.com/magabrotheeeer/billing-notifier/internal/models"
)

// Storage описывает интерфейс создания подписки в хранилище.
type Storage interface {
	CreateSubscription(ctx context.Context, sub models.Subscription) (string, error)
}

// Handler управляет HTTP-запросами на создание подписок.
type Handler struct {
	log      *slog.Logger
	storage  Storage
	validate *validator.Validate
}

// New создает новый Handler.
func New(log *slog.Logger, storage Storage) *Handler {
	return &Handler{
		log:      log,
		storage:  storage,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создать подписку
// @Description Создает новую активную подписку. Возвращает ID созданной записи.
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Param request body models.DummySubscription true "Данные подписки"
// @Success 200 {object} map[string]any "Успешное создание подписки"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /subscriptions [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummySubscription
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	if req.Recurrence == models.RecurrenceCustom && req.CustomDays <= 0 {
		log.Error("custom recurrence without custom_days")
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("custom recurrence requires custom_days"))
		return
	}

	now := time.Now()
	id, err := h.storage.CreateSubscription(r.Context(), models.Subscription{
		ClientID:          req.ClientID,
		ServiceName:       req.ServiceName,
		Amount:            req.Amount,
		Recurrence:        req.Recurrence,
		CustomDays:        req.CustomDays,
		Status:            models.SubscriptionActive,
		NextInvoiceDate:   time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		PaymentWindowDays: req.PaymentWindowDays,
	})
	if err != nil {
		log.Error("failed to create subscription", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create subscription"))
		return
	}

	log.Info("subscription created", slog.String("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"id": id,
	}))
}

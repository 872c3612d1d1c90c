// Package configupdate реализует HTTP-обработчик частичного обновления
// конфигурации автоматизации. Интервалы принимаются в миллисекундах,
// дни недели — числами, 0 — воскресенье. Если цикл запущен, сервис
// перезапускает его, чтобы изменения применились атомарно.
package configupdate

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
	"github.com/magabrotheeeer/billing-notifier/internal/services/automation"
)

// Service описывает интерфейс управления автоматизацией.
type Service interface {
	UpdateConfig(ctx context.Context, patch automation.ConfigPatch) (automation.Config, error)
}

// Request — частичное обновление конфигурации, nil-поля не меняются.
type Request struct {
	Enabled                *bool          `json:"enabled"`
	CheckIntervalMs        *int           `json:"check_interval_ms" validate:"omitempty,gt=0"`
	BusinessHours          *BusinessHours `json:"business_hours"`
	ReminderDays           *int           `json:"reminder_days" validate:"omitempty,gte=0"`
	OverdueEscalation      []int          `json:"overdue_escalation"`
	MaxMessagesPerDay      *int           `json:"max_messages_per_day" validate:"omitempty,gt=0"`
	DelayBetweenMessagesMs *int           `json:"delay_between_messages_ms" validate:"omitempty,gte=0"`
}

// BusinessHours — рабочее окно в запросе.
type BusinessHours struct {
	Start    int   `json:"start"`
	End      int   `json:"end"`
	WorkDays []int `json:"work_days"`
}

// Handler управляет HTTP-запросами на обновление конфигурации.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Обновить конфигурацию автоматизации
// @Description Накладывает частичное обновление. При работающем цикле выполняется перезапуск.
// @Tags Automation
// @Accept json
// @Produce json
// @Param request body Request true "Изменяемые поля"
// @Success 200 {object} response.Response "Новая конфигурация"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /automation/config [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.automation.configupdate"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
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

	updated, err := h.service.UpdateConfig(r.Context(), toPatch(req))
	if err != nil {
		log.Error("failed to update config", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("could not apply config"))
		return
	}

	log.Info("config updated")
	render.JSON(w, r, response.OKWithData(updated))
}

func toPatch(req Request) automation.ConfigPatch {
	patch := automation.ConfigPatch{
		Enabled:           req.Enabled,
		ReminderDays:      req.ReminderDays,
		OverdueEscalation: req.OverdueEscalation,
		MaxMessagesPerDay: req.MaxMessagesPerDay,
	}
	if req.CheckIntervalMs != nil {
		interval := time.Duration(*req.CheckIntervalMs) * time.Millisecond
		patch.CheckInterval = &interval
	}
	if req.DelayBetweenMessagesMs != nil {
		delay := time.Duration(*req.DelayBetweenMessagesMs) * time.Millisecond
		patch.DelayBetweenMessages = &delay
	}
	if req.BusinessHours != nil {
		workDays := make([]time.Weekday, 0, len(req.BusinessHours.WorkDays))
		for _, d := range req.BusinessHours.WorkDays {
			workDays = append(workDays, time.Weekday(d%7))
		}
		patch.BusinessHours = &automation.BusinessHours{
			StartHour: req.BusinessHours.Start,
			EndHour:   req.BusinessHours.End,
			WorkDays:  workDays,
		}
	}
	return patch
}

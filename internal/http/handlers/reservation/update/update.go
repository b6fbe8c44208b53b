// Package update реализует HTTP-обработчик изменения брони.
//
// Менять можно даты аренды и способ оплаты. Стоимость пересчитывается
// на сервере по новому периоду.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/luxurywheels/rental-service/internal/http/middlewarectx"
	"github.com/luxurywheels/rental-service/internal/http/response"
	"github.com/luxurywheels/rental-service/internal/lib/daterange"
	"github.com/luxurywheels/rental-service/internal/lib/sl"
	"github.com/luxurywheels/rental-service/internal/models"
)

// Service описывает интерфейс бизнес-логики изменения брони.
type Service interface {
	Modify(ctx context.Context, userID, id int, req models.DummyReservation) error
}

// Handler обрабатывает запросы на изменение брони.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Изменить бронь
// @Description Обновляет даты и способ оплаты собственной брони с пересчётом стоимости.
// @Tags Reservations
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path int true "Идентификатор брони"
// @Param request body models.DummyReservation true "Новые даты и способ оплаты"
// @Success 200 {object} response.Response "Бронь обновлена"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Бронь не найдена"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /alterar_reserva/{id} [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.reservation.update"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, ok := r.Context().Value(middlewarectx.UserID).(int)
	if !ok {
		log.Error("user id is missing in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid reservation id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid reservation id"))
		return
	}

	var req models.DummyReservation
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	if err := h.service.Modify(r.Context(), userID, id, req); err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			log.Error("reservation not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("reservation not found"))
		case errors.Is(err, models.ErrInvalidPaymentMethod):
			log.Error("invalid payment method")
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("unknown payment method"))
		case errors.Is(err, daterange.ErrFormat):
			log.Error("invalid date format")
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("dates must use the YYYY-MM-DD format"))
		case errors.Is(err, daterange.ErrRange):
			log.Error("invalid date range")
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("end date must be after start date"))
		default:
			log.Error("failed to update reservation", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to update reservation"))
		}
		return
	}

	log.Info("reservation updated", slog.Int("id", id))
	render.JSON(w, r, response.OK("reservation updated"))
}

// Package create реализует HTTP-обработчик создания брони.
//
// Стоимость рассчитывается на сервере как число суток, умноженное на
// суточную ставку автомобиля. При успехе автомобиль помечается недоступным,
// а бронь создаётся в статусе pending.
package create

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

// Service описывает интерфейс бизнес-логики создания брони.
type Service interface {
	Create(ctx context.Context, userID, vehicleID int, req models.DummyReservation) (int, error)
}

// Handler обрабатывает запросы на создание брони.
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
// @Summary Забронировать автомобиль
// @Description Создаёт бронь на указанный автомобиль и помечает его недоступным.
// @Tags Reservations
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param vehicleId path int true "Идентификатор автомобиля"
// @Param request body models.DummyReservation true "Даты аренды и способ оплаты"
// @Success 200 {object} response.Response "Бронь создана"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Автомобиль не найден"
// @Failure 409 {object} response.ErrorResponse "Автомобиль недоступен"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /reservar/{vehicleId} [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.reservation.create"
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

	vehicleID, err := strconv.Atoi(chi.URLParam(r, "vehicleId"))
	if err != nil {
		log.Error("invalid vehicle id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid vehicle id"))
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

	id, err := h.service.Create(r.Context(), userID, vehicleID, req)
	if err != nil {
		writeCreateError(w, r, log, err, vehicleID)
		return
	}

	log.Info("reservation created",
		slog.Int("id", id),
		slog.Int("vehicle_id", vehicleID))
	render.JSON(w, r, response.OKWithData("reservation created, awaiting confirmation", map[string]any{
		"id": id,
	}))
}

func writeCreateError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error, vehicleID int) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		log.Error("vehicle not found", slog.Int("vehicle_id", vehicleID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("vehicle not found"))
	case errors.Is(err, models.ErrVehicleNotAvailable):
		log.Error("vehicle is not available", slog.Int("vehicle_id", vehicleID))
		w.WriteHeader(http.StatusConflict)
		render.JSON(w, r, response.Error("vehicle is not available"))
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
		log.Error("failed to create reservation", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to create reservation"))
	}
}

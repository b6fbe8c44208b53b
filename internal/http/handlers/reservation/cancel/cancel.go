// Package cancel реализует HTTP-обработчик отмены брони.
//
// Отмена удаляет бронь и возвращает автомобиль в каталог доступных.
package cancel

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/luxurywheels/rental-service/internal/http/middlewarectx"
	"github.com/luxurywheels/rental-service/internal/http/response"
	"github.com/luxurywheels/rental-service/internal/lib/sl"
	"github.com/luxurywheels/rental-service/internal/models"
)

// Service описывает интерфейс бизнес-логики отмены брони.
type Service interface {
	Cancel(ctx context.Context, userID, id int) error
}

// Handler обрабатывает запросы на отмену брони.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Отменить бронь
// @Description Удаляет собственную бронь и возвращает автомобиль в число доступных.
// @Tags Reservations
// @Produce  json
// @Security BearerAuth
// @Param id path int true "Идентификатор брони"
// @Success 200 {object} response.Response "Бронь отменена"
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Бронь не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /cancelar_reserva/{id} [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.reservation.cancel"
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

	if err := h.service.Cancel(r.Context(), userID, id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			log.Error("reservation not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("reservation not found"))
			return
		}
		log.Error("failed to cancel reservation", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to cancel reservation"))
		return
	}

	log.Info("reservation cancelled", slog.Int("id", id))
	render.JSON(w, r, response.OK("reservation cancelled, the vehicle is available again"))
}

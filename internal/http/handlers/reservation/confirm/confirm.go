// Package confirm реализует HTTP-обработчик подтверждения брони.
//
// Подтверждение переводит бронь из статуса pending в confirmed. Повторное
// подтверждение не является ошибкой: обработчик сообщает, что бронь уже
// была подтверждена ранее.
package confirm

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/luxurywheels/rental-service/internal/http/response"
	"github.com/luxurywheels/rental-service/internal/lib/sl"
	"github.com/luxurywheels/rental-service/internal/models"
)

// Service описывает интерфейс бизнес-логики подтверждения брони.
type Service interface {
	Confirm(ctx context.Context, id int) (bool, error)
}

// Handler обрабатывает запросы на подтверждение брони.
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
// @Summary Подтвердить бронь
// @Description Переводит бронь из pending в confirmed. Уже подтверждённая бронь остаётся без изменений.
// @Tags Reservations
// @Produce  json
// @Security BearerAuth
// @Param id path int true "Идентификатор брони"
// @Success 200 {object} response.Response "Результат подтверждения"
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор"
// @Failure 404 {object} response.ErrorResponse "Бронь не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /confirmar_reserva/{id} [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.reservation.confirm"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid reservation id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid reservation id"))
		return
	}

	changed, err := h.service.Confirm(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			log.Error("reservation not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("reservation not found"))
			return
		}
		log.Error("failed to confirm reservation", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to confirm reservation"))
		return
	}

	if !changed {
		log.Info("reservation already confirmed", slog.Int("id", id))
		render.JSON(w, r, response.Info("reservation was already confirmed"))
		return
	}

	log.Info("reservation confirmed", slog.Int("id", id))
	render.JSON(w, r, response.OK("reservation confirmed"))
}

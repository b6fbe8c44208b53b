// Package list реализует HTTP-обработчик списка броней пользователя.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/luxurywheels/rental-service/internal/http/middlewarectx"
	"github.com/luxurywheels/rental-service/internal/http/response"
	"github.com/luxurywheels/rental-service/internal/lib/sl"
	"github.com/luxurywheels/rental-service/internal/models"
)

// Service описывает интерфейс бизнес-логики списка броней.
type Service interface {
	ListMine(ctx context.Context, userID int) ([]*models.ReservationWithVehicle, error)
}

// Handler обрабатывает запросы списка броней.
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
// @Summary Мои брони
// @Description Возвращает все брони текущего пользователя с маркой и моделью автомобиля.
// @Tags Reservations
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response "Список броней"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /minhas_reservas [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.reservation.list"
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

	// Идентичность, восстановленную SessionLoaderMiddleware, добавляем в лог.
	if user, ok := r.Context().Value(middlewarectx.User).(*models.SessionUser); ok {
		log = log.With(slog.String("user", user.Name))
	}

	reservations, err := h.service.ListMine(r.Context(), userID)
	if err != nil {
		log.Error("failed to list reservations", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list reservations"))
		return
	}

	log.Info("reservations listed",
		slog.Int("user_id", userID),
		slog.Int("count", len(reservations)))
	render.JSON(w, r, response.StatusOKWithData(reservations))
}

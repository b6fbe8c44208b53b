// Package list реализует HTTP-обработчик каталога доступных автомобилей.
//
// Фильтр принимается двумя способами: query-параметрами при GET-запросе
// и JSON-телом при POST-запросе. Оба варианта сводятся к одному набору
// ограничений каталога.
package list

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/luxurywheels/rental-service/internal/http/response"
	"github.com/luxurywheels/rental-service/internal/lib/sl"
	"github.com/luxurywheels/rental-service/internal/models"
)

// Service описывает интерфейс бизнес-логики каталога.
type Service interface {
	ListAvailable(ctx context.Context, filter models.DummyVehicleFilter) ([]*models.Vehicle, error)
}

// Handler обрабатывает запросы каталога.
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
// @Summary Каталог доступных автомобилей
// @Description Возвращает доступные автомобили. Фильтр передаётся query-параметрами (GET) или JSON-телом (POST).
// @Tags Vehicles
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param category query string false "Категория"
// @Param transmission query string false "Коробка передач"
// @Param type query string false "Тип кузова"
// @Param max_daily_rate query number false "Максимальная стоимость за сутки"
// @Param min_capacity query integer false "Минимальное количество мест"
// @Success 200 {object} response.Response "Список автомобилей"
// @Failure 400 {object} response.ErrorResponse "Некорректный фильтр"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /veiculos [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.vehicle.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	filter, err := h.parseFilter(r)
	if err != nil {
		log.Error("failed to parse filter", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid filter parameters"))
		return
	}

	if err := h.validate.Struct(filter); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	vehicles, err := h.service.ListAvailable(r.Context(), filter)
	if err != nil {
		log.Error("failed to list vehicles", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list vehicles"))
		return
	}

	log.Info("vehicles listed", slog.Int("count", len(vehicles)))
	render.JSON(w, r, response.StatusOKWithData(vehicles))
}

// parseFilter собирает фильтр каталога из query-параметров GET-запроса
// или JSON-тела POST-запроса.
func (h *Handler) parseFilter(r *http.Request) (models.DummyVehicleFilter, error) {
	var filter models.DummyVehicleFilter

	if r.Method == http.MethodPost {
		if err := json.NewDecoder(r.Body).Decode(&filter); err != nil && !errors.Is(err, io.EOF) {
			return filter, err
		}
		return filter, nil
	}

	q := r.URL.Query()
	filter.Category = q.Get("category")
	filter.Transmission = q.Get("transmission")
	filter.Type = q.Get("type")
	if raw := q.Get("max_daily_rate"); raw != "" {
		rate, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return filter, err
		}
		filter.MaxDailyRate = rate
	}
	if raw := q.Get("min_capacity"); raw != "" {
		capacity, err := strconv.Atoi(raw)
		if err != nil {
			return filter, err
		}
		filter.MinCapacity = capacity
	}
	return filter, nil
}

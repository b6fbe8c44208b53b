// Package home реализует HTTP-обработчик главной страницы сервиса.
package home

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/luxurywheels/rental-service/internal/http/response"
)

// Handler обрабатывает запросы к главной странице.
type Handler struct {
	log *slog.Logger
}

// New создает новый Handler с переданным логгером.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP godoc
// @Summary Главная страница
// @Description Возвращает приветственное сообщение сервиса аренды автомобилей.
// @Tags Home
// @Produce  json
// @Success 200 {object} response.Response "Приветствие"
// @Router / [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.home"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
	log.Debug("home page requested")

	render.JSON(w, r, response.OKWithData("welcome to luxury wheels", map[string]any{
		"service": "rental-service",
		"catalog": "/veiculos",
	}))
}

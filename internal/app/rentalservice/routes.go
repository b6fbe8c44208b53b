// Package rentalservice предоставляет маршруты для основного приложения.
package rentalservice

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/luxurywheels/rental-service/internal/http/handlers/auth/login"
	"github.com/luxurywheels/rental-service/internal/http/handlers/auth/logout"
	"github.com/luxurywheels/rental-service/internal/http/handlers/auth/register"
	"github.com/luxurywheels/rental-service/internal/http/handlers/home"
	reservationcancel "github.com/luxurywheels/rental-service/internal/http/handlers/reservation/cancel"
	reservationconfirm "github.com/luxurywheels/rental-service/internal/http/handlers/reservation/confirm"
	reservationcreate "github.com/luxurywheels/rental-service/internal/http/handlers/reservation/create"
	reservationlist "github.com/luxurywheels/rental-service/internal/http/handlers/reservation/list"
	reservationupdate "github.com/luxurywheels/rental-service/internal/http/handlers/reservation/update"
	vehiclelist "github.com/luxurywheels/rental-service/internal/http/handlers/vehicle/list"
	vehicleread "github.com/luxurywheels/rental-service/internal/http/handlers/vehicle/read"
	"github.com/luxurywheels/rental-service/internal/http/middlewarectx"
	"github.com/luxurywheels/rental-service/internal/lib/jwt"
	authservice "github.com/luxurywheels/rental-service/internal/services/auth"
	catalogservice "github.com/luxurywheels/rental-service/internal/services/catalog"
	rentalsvc "github.com/luxurywheels/rental-service/internal/services/rental"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, jwtMaker jwt.Maker, authService *authservice.AuthService, catalogService *catalogservice.CatalogService, rentalService *rentalsvc.RentalService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	// Открытые конечные точки. Register и login дополнительно смотрят на
	// Bearer-токен, если он есть: уже вошедший пользователь получает
	// информационный ответ вместо повторной регистрации или входа.
	r.Get("/", home.New(logger).ServeHTTP)
	r.Post("/register", register.New(logger, authService, jwtMaker, authService).ServeHTTP)
	r.Post("/login", login.New(logger, authService, jwtMaker, authService).ServeHTTP)

	// Группа с JWT аутентификацией
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.JWTMiddleware(jwtMaker, authService, logger))
		r.Use(middlewarectx.SessionLoaderMiddleware(authService, logger))
		r.Use(middlewarectx.RateLimitMiddleware(logger))
		r.Post("/logout", logout.New(logger, authService).ServeHTTP)
		r.Get("/veiculos", vehiclelist.New(logger, catalogService).ServeHTTP)
		r.Post("/veiculos", vehiclelist.New(logger, catalogService).ServeHTTP)
		r.Get("/veiculo/{id}", vehicleread.New(logger, catalogService).ServeHTTP)
		r.Post("/reservar/{vehicleId}", reservationcreate.New(logger, rentalService).ServeHTTP)
		r.Get("/minhas_reservas", reservationlist.New(logger, rentalService).ServeHTTP)
		r.Post("/alterar_reserva/{id}", reservationupdate.New(logger, rentalService).ServeHTTP)
		r.Post("/cancelar_reserva/{id}", reservationcancel.New(logger, rentalService).ServeHTTP)
		r.Post("/confirmar_reserva/{id}", reservationconfirm.New(logger, rentalService).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}

// Package services содержит бизнес-логику жизненного цикла брони:
// создание, просмотр, изменение, отмену и подтверждение.
package services

import (
	"context"
	"errors"
	"log/slog"

	catalogservice "github.com/luxurywheels/rental-service/internal/services/catalog"

	"github.com/luxurywheels/rental-service/internal/lib/daterange"
	"github.com/luxurywheels/rental-service/internal/models"
)

// ReservationRepository определяет методы для работы с бронями в хранилище.
type ReservationRepository interface {
	// GetVehicle возвращает автомобиль по ID или models.ErrNotFound.
	GetVehicle(ctx context.Context, id int) (*models.Vehicle, error)
	// CreateReservation атомарно вставляет бронь и снимает флаг доступности.
	CreateReservation(ctx context.Context, r models.Reservation) (int, error)
	// ListReservationsByUser возвращает брони пользователя с данными автомобиля.
	ListReservationsByUser(ctx context.Context, userID int) ([]*models.ReservationWithVehicle, error)
	// GetReservationForUser возвращает бронь пользователя или models.ErrNotFound.
	GetReservationForUser(ctx context.Context, id, userID int) (*models.Reservation, error)
	// UpdateReservation обновляет даты, стоимость и форму оплаты брони.
	UpdateReservation(ctx context.Context, r models.Reservation, id, userID int) error
	// CancelReservation атомарно восстанавливает доступность и удаляет бронь.
	CancelReservation(ctx context.Context, id, userID int) error
	// ConfirmReservation переводит бронь в confirmed; false — уже подтверждена.
	ConfirmReservation(ctx context.Context, id int) (bool, error)
}

// CacheInvalidator сбрасывает кешированные карточки автомобилей
// при изменении их доступности.
type CacheInvalidator interface {
	Invalidate(key string) error
}

// RentalService реализует жизненный цикл брони.
// Статусы: pending -> confirmed, в одну сторону; отмена удаляет бронь.
type RentalService struct {
	repo  ReservationRepository
	cache CacheInvalidator
	log   *slog.Logger
}

// NewRentalService создает новый экземпляр RentalService.
func NewRentalService(repo ReservationRepository, cache CacheInvalidator, log *slog.Logger) *RentalService {
	return &RentalService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Create создаёт бронь на доступный автомобиль.
//
// Порядок проверок: доступность автомобиля, форма оплаты, формат дат,
// порядок дат. Стоимость: целые сутки × суточная ставка. Вставка брони
// и снятие флага доступности атомарны на уровне хранилища.
func (s *RentalService) Create(ctx context.Context, userID, vehicleID int, req models.DummyReservation) (int, error) {
	vehicle, err := s.repo.GetVehicle(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return 0, models.ErrVehicleNotAvailable
		}
		return 0, err
	}
	if !vehicle.Available {
		return 0, models.ErrVehicleNotAvailable
	}

	if !models.ValidPaymentMethod(req.PaymentMethod) {
		return 0, models.ErrInvalidPaymentMethod
	}

	period, err := daterange.Parse(req.StartDate, req.EndDate)
	if err != nil {
		return 0, err
	}

	reservation := models.Reservation{
		UserID:        userID,
		VehicleID:     vehicleID,
		StartDate:     period.Start,
		EndDate:       period.End,
		TotalPrice:    period.TotalPrice(vehicle.DailyRate),
		PaymentMethod: req.PaymentMethod,
		Status:        models.StatusPending,
	}

	id, err := s.repo.CreateReservation(ctx, reservation)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new reservation",
		slog.Int("id", id), slog.Int("vehicle_id", vehicleID), slog.Int("user_id", userID))

	s.invalidateVehicle(vehicleID)
	return id, nil
}

// ListMine возвращает все брони пользователя с маркой и моделью автомобиля.
func (s *RentalService) ListMine(ctx context.Context, userID int) ([]*models.ReservationWithVehicle, error) {
	return s.repo.ListReservationsByUser(ctx, userID)
}

// Modify меняет даты и форму оплаты брони пользователя и пересчитывает
// стоимость по суточной ставке автомобиля. Флаг доступности и статус
// брони не затрагиваются.
func (s *RentalService) Modify(ctx context.Context, userID, id int, req models.DummyReservation) error {
	reservation, err := s.repo.GetReservationForUser(ctx, id, userID)
	if err != nil {
		return err
	}

	if !models.ValidPaymentMethod(req.PaymentMethod) {
		return models.ErrInvalidPaymentMethod
	}

	period, err := daterange.Parse(req.StartDate, req.EndDate)
	if err != nil {
		return err
	}

	vehicle, err := s.repo.GetVehicle(ctx, reservation.VehicleID)
	if err != nil {
		return err
	}

	updated := models.Reservation{
		StartDate:     period.Start,
		EndDate:       period.End,
		TotalPrice:    period.TotalPrice(vehicle.DailyRate),
		PaymentMethod: req.PaymentMethod,
	}
	if err := s.repo.UpdateReservation(ctx, updated, id, userID); err != nil {
		return err
	}
	s.log.Info("updated reservation", slog.Int("id", id), slog.Int("user_id", userID))
	return nil
}

// Cancel удаляет бронь пользователя и возвращает автомобиль в доступные.
func (s *RentalService) Cancel(ctx context.Context, userID, id int) error {
	reservation, err := s.repo.GetReservationForUser(ctx, id, userID)
	if err != nil {
		return err
	}
	if err := s.repo.CancelReservation(ctx, id, userID); err != nil {
		return err
	}
	s.log.Info("cancelled reservation", slog.Int("id", id), slog.Int("user_id", userID))

	s.invalidateVehicle(reservation.VehicleID)
	return nil
}

// Confirm переводит бронь в confirmed. Возвращает false без ошибки,
// если бронь уже подтверждена — повторное подтверждение является no-op.
// Подтверждение не ограничено владельцем брони.
func (s *RentalService) Confirm(ctx context.Context, id int) (bool, error) {
	changed, err := s.repo.ConfirmReservation(ctx, id)
	if err != nil {
		return false, err
	}
	if changed {
		s.log.Info("confirmed reservation", slog.Int("id", id))
	}
	return changed, nil
}

func (s *RentalService) invalidateVehicle(vehicleID int) {
	cacheKey := catalogservice.VehicleCacheKey(vehicleID)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate vehicle cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
}

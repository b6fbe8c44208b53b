package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/luxurywheels/rental-service/internal/models"
)

// CreateReservation вставляет бронь и снимает флаг доступности автомобиля
// в одной транзакции. Флаг снимается сравнением с обменом: если автомобиль
// уже занят (или не существует), транзакция откатывается с
// models.ErrVehicleNotAvailable — два конкурирующих создания брони
// не могут выиграть одновременно.
func (s *Storage) CreateReservation(ctx context.Context, r models.Reservation) (int, error) {
	const op = "storage.CreateReservation"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	res, err := tx.ExecContext(ctx,
		`UPDATE vehicles SET available = FALSE WHERE id = $1 AND available = TRUE`,
		r.VehicleID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return 0, fmt.Errorf("%s: %w", op, models.ErrVehicleNotAvailable)
	}

	var newID int
	query := `INSERT INTO reservations (user_id, vehicle_id, start_date, end_date,
			      total_price, payment_method, status)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id`
	if err = tx.QueryRowContext(ctx, query,
		r.UserID, r.VehicleID, r.StartDate, r.EndDate,
		r.TotalPrice, r.PaymentMethod, r.Status).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListReservationsByUser возвращает брони пользователя вместе с маркой
// и моделью автомобиля, в естественном порядке хранилища.
func (s *Storage) ListReservationsByUser(ctx context.Context, userID int) ([]*models.ReservationWithVehicle, error) {
	const op = "storage.ListReservationsByUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT r.id, r.user_id, r.vehicle_id, r.start_date, r.end_date,
			      r.total_price, r.payment_method, r.status, r.created_at,
			      v.brand, v.model
			  FROM reservations r
			  JOIN vehicles v ON r.vehicle_id = v.id
			  WHERE r.user_id = $1`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.ReservationWithVehicle
	for rows.Next() {
		var r models.ReservationWithVehicle
		if err = rows.Scan(&r.ID, &r.UserID, &r.VehicleID, &r.StartDate, &r.EndDate,
			&r.TotalPrice, &r.PaymentMethod, &r.Status, &r.CreatedAt,
			&r.Brand, &r.Model); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetReservationForUser возвращает бронь по ID, если она принадлежит пользователю.
// Чужая или несуществующая бронь неразличимы: обе дают models.ErrNotFound.
func (s *Storage) GetReservationForUser(ctx context.Context, id, userID int) (*models.Reservation, error) {
	const op = "storage.GetReservationForUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id, vehicle_id, start_date, end_date,
			      total_price, payment_method, status, created_at
			  FROM reservations
			  WHERE id = $1 AND user_id = $2`
	r := &models.Reservation{}
	row := s.DB.QueryRowContext(ctx, query, id, userID)
	if err := row.Scan(&r.ID, &r.UserID, &r.VehicleID, &r.StartDate, &r.EndDate,
		&r.TotalPrice, &r.PaymentMethod, &r.Status, &r.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return r, nil
}

// GetReservation возвращает бронь по ID без проверки владельца.
func (s *Storage) GetReservation(ctx context.Context, id int) (*models.Reservation, error) {
	const op = "storage.GetReservation"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id, vehicle_id, start_date, end_date,
			      total_price, payment_method, status, created_at
			  FROM reservations
			  WHERE id = $1`
	r := &models.Reservation{}
	row := s.DB.QueryRowContext(ctx, query, id)
	if err := row.Scan(&r.ID, &r.UserID, &r.VehicleID, &r.StartDate, &r.EndDate,
		&r.TotalPrice, &r.PaymentMethod, &r.Status, &r.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return r, nil
}

// UpdateReservation обновляет даты, стоимость и форму оплаты брони пользователя.
// Флаг доступности автомобиля и статус брони не меняются.
func (s *Storage) UpdateReservation(ctx context.Context, r models.Reservation, id, userID int) error {
	const op = "storage.UpdateReservation"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE reservations
			  SET start_date = $1, end_date = $2, total_price = $3, payment_method = $4
			  WHERE id = $5 AND user_id = $6`
	res, err := s.DB.ExecContext(ctx, query,
		r.StartDate, r.EndDate, r.TotalPrice, r.PaymentMethod, id, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	return nil
}

// CancelReservation восстанавливает флаг доступности автомобиля и удаляет
// бронь пользователя в одной транзакции.
func (s *Storage) CancelReservation(ctx context.Context, id, userID int) error {
	const op = "storage.CancelReservation"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var vehicleID int
	row := tx.QueryRowContext(ctx,
		`SELECT vehicle_id FROM reservations WHERE id = $1 AND user_id = $2`,
		id, userID)
	if err = row.Scan(&vehicleID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%s: %w", op, models.ErrNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err = tx.ExecContext(ctx,
		`UPDATE vehicles SET available = TRUE WHERE id = $1`, vehicleID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if _, err = tx.ExecContext(ctx,
		`DELETE FROM reservations WHERE id = $1`, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ConfirmReservation переводит бронь из pending в confirmed.
// Возвращает true, если статус поменялся, и false, если бронь уже подтверждена.
// Несуществующая бронь даёт models.ErrNotFound.
func (s *Storage) ConfirmReservation(ctx context.Context, id int) (bool, error) {
	const op = "storage.ConfirmReservation"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.DB.ExecContext(ctx,
		`UPDATE reservations SET status = $1 WHERE id = $2 AND status = $3`,
		models.StatusConfirmed, id, models.StatusPending)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if affected > 0 {
		return true, nil
	}

	var exists bool
	if err = s.DB.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM reservations WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if !exists {
		return false, fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	return false, nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/luxurywheels/rental-service/internal/models"
)

// ListAvailableVehicles возвращает доступные для брони автомобили,
// удовлетворяющие фильтру. Незаполненные поля фильтра не добавляют условий,
// порядок выдачи — естественный порядок хранилища.
func (s *Storage) ListAvailableVehicles(ctx context.Context, filter models.VehicleFilter) ([]*models.Vehicle, error) {
	const op = "storage.ListAvailableVehicles"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var sb strings.Builder
	sb.WriteString(`SELECT id, brand, model, category, transmission, vehicle_type,
			      daily_rate, capacity, available
			  FROM vehicles
			  WHERE available = TRUE`)
	var args []any

	if filter.Category != nil {
		args = append(args, *filter.Category)
		fmt.Fprintf(&sb, " AND category = $%d", len(args))
	}
	if filter.Transmission != nil {
		args = append(args, *filter.Transmission)
		fmt.Fprintf(&sb, " AND transmission = $%d", len(args))
	}
	if filter.Type != nil {
		args = append(args, *filter.Type)
		fmt.Fprintf(&sb, " AND vehicle_type = $%d", len(args))
	}
	if filter.MaxDailyRate != nil {
		args = append(args, *filter.MaxDailyRate)
		fmt.Fprintf(&sb, " AND daily_rate <= $%d", len(args))
	}
	if filter.MinCapacity != nil {
		args = append(args, *filter.MinCapacity)
		fmt.Fprintf(&sb, " AND capacity >= $%d", len(args))
	}

	rows, err := s.DB.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Vehicle
	for rows.Next() {
		var v models.Vehicle
		if err = rows.Scan(&v.ID, &v.Brand, &v.Model, &v.Category, &v.Transmission,
			&v.Type, &v.DailyRate, &v.Capacity, &v.Available); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &v)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetVehicle возвращает автомобиль по ID независимо от флага доступности:
// карточка автомобиля должна открываться и для уже забронированных машин.
// Если автомобиля нет, ошибка оборачивает models.ErrNotFound.
func (s *Storage) GetVehicle(ctx context.Context, id int) (*models.Vehicle, error) {
	const op = "storage.GetVehicle"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, brand, model, category, transmission, vehicle_type,
			      daily_rate, capacity, available
			  FROM vehicles
			  WHERE id = $1`
	v := &models.Vehicle{}
	row := s.DB.QueryRowContext(ctx, query, id)
	if err := row.Scan(&v.ID, &v.Brand, &v.Model, &v.Category, &v.Transmission,
		&v.Type, &v.DailyRate, &v.Capacity, &v.Available); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return v, nil
}

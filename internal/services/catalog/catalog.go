// Package services содержит бизнес-логику каталога автопарка и кеширования карточек.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/luxurywheels/rental-service/internal/models"
)

// VehicleRepository определяет методы для работы с автопарком в хранилище.
type VehicleRepository interface {
	// ListAvailableVehicles возвращает доступные автомобили по фильтру.
	ListAvailableVehicles(ctx context.Context, filter models.VehicleFilter) ([]*models.Vehicle, error)
	// GetVehicle возвращает автомобиль по ID независимо от доступности.
	GetVehicle(ctx context.Context, id int) (*models.Vehicle, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// CatalogService реализует бизнес-логику каталога автомобилей с кешированием карточек.
type CatalogService struct {
	repo  VehicleRepository
	cache Cache
	log   *slog.Logger
}

// NewCatalogService создает новый экземпляр CatalogService.
func NewCatalogService(repo VehicleRepository, cache Cache, log *slog.Logger) *CatalogService {
	return &CatalogService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// VehicleCacheKey строит ключ карточки автомобиля в кеше.
func VehicleCacheKey(id int) string {
	return fmt.Sprintf("vehicle:%d", id)
}

// ListAvailable возвращает доступные автомобили, удовлетворяющие фильтру.
// Кандидаты — только машины с поднятым флагом доступности.
func (s *CatalogService) ListAvailable(ctx context.Context, req models.DummyVehicleFilter) ([]*models.Vehicle, error) {
	return s.repo.ListAvailableVehicles(ctx, req.ToFilter())
}

// GetByID возвращает автомобиль по ID, используя кеш или репозиторий.
// Работает и для недоступных автомобилей (например, пока они забронированы).
func (s *CatalogService) GetByID(ctx context.Context, id int) (*models.Vehicle, error) {
	var result *models.Vehicle
	cacheKey := VehicleCacheKey(id)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read vehicle from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found {
		return result, nil
	}
	result, err = s.repo.GetVehicle(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to cache vehicle", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}

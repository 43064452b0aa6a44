package repository

import (
	"context"
	"time"

	"github.com/parquimetro-map/internal/domain"
)

// CacheRepository определяет методы для работы с кешем
type CacheRepository interface {
	// Get получает значение из кеша по ключу
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение в кеше с TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete удаляет значение из кеша
	Delete(ctx context.Context, key string) error

	// Exists проверяет существование ключа
	Exists(ctx context.Context, key string) (bool, error)

	// GetCity получает название города для координаты; found=false при промахе
	GetCity(ctx context.Context, coord domain.Coordinate) (city string, found bool, err error)

	// SetCity сохраняет название города для координаты
	SetCity(ctx context.Context, coord domain.Coordinate, city string, ttl time.Duration) error
}

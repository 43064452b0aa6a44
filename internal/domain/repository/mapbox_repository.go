package repository

import (
	"context"

	"github.com/parquimetro-map/internal/domain"
)

// MapboxRepository определяет методы для работы с Mapbox Geocoding API
type MapboxRepository interface {
	// ReverseGeocode возвращает ответ обратного геокодирования для координаты
	ReverseGeocode(ctx context.Context, coord domain.Coordinate) (*domain.GeocodingResponse, error)

	// Search выполняет прямой поиск с приоритетом рядом с proximity
	Search(ctx context.Context, query string, proximity domain.Coordinate, limit int) (*domain.GeocodingResponse, error)
}

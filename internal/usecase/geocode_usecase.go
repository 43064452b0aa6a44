package usecase

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/parquimetro-map/internal/domain"
	"github.com/parquimetro-map/internal/domain/repository"
	"github.com/parquimetro-map/internal/pkg/errors"
	"github.com/parquimetro-map/internal/pkg/metrics"
	"github.com/parquimetro-map/internal/usecase/dto"
)

// defaultSearchLimit - сколько результатов показывает контрол поиска
const defaultSearchLimit = 5

// GeocodeUseCase - use case для геокодирования через Mapbox
type GeocodeUseCase struct {
	mapboxRepo  repository.MapboxRepository
	cacheRepo   repository.CacheRepository // nil - без кеша
	logger      *zap.Logger
	cacheTTL    time.Duration
	searchLimit int
}

// NewGeocodeUseCase - создание нового GeocodeUseCase
func NewGeocodeUseCase(
	mapboxRepo repository.MapboxRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	cacheTTL time.Duration,
	searchLimit int,
) *GeocodeUseCase {
	if searchLimit <= 0 {
		searchLimit = defaultSearchLimit
	}
	return &GeocodeUseCase{
		mapboxRepo:  mapboxRepo,
		cacheRepo:   cacheRepo,
		logger:      logger,
		cacheTTL:    cacheTTL,
		searchLimit: searchLimit,
	}
}

// LocateCity возвращает название города для координаты.
// Пустая строка без ошибки - город в ответе не найден.
func (uc *GeocodeUseCase) LocateCity(ctx context.Context, coord domain.Coordinate) (string, error) {
	if !coord.IsValid() {
		return "", errors.ErrInvalidCoordinates
	}

	if uc.cacheRepo != nil {
		city, found, err := uc.cacheRepo.GetCity(ctx, coord)
		if err != nil {
			uc.logger.Warn("Failed to get city from cache", zap.Error(err))
		} else if found {
			metrics.CityLookupsTotal.WithLabelValues("cache_hit").Inc()
			return city, nil
		}
	}

	resp, err := uc.mapboxRepo.ReverseGeocode(ctx, coord)
	if err != nil {
		metrics.CityLookupsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("reverse geocode: %w", err)
	}

	city := resp.CityName()
	if city == "" {
		metrics.CityLookupsTotal.WithLabelValues("not_found").Inc()
		return "", nil
	}
	metrics.CityLookupsTotal.WithLabelValues("found").Inc()

	if uc.cacheRepo != nil {
		if err := uc.cacheRepo.SetCity(ctx, coord, city, uc.cacheTTL); err != nil {
			uc.logger.Warn("Failed to cache city", zap.Error(err))
		}
	}

	return city, nil
}

// AnnounceCity определяет город и пишет его в лог. Ошибки только логируются:
// определение города никогда не влияет на карту.
func (uc *GeocodeUseCase) AnnounceCity(ctx context.Context, sessionID uuid.UUID, coord domain.Coordinate) {
	city, err := uc.LocateCity(ctx, coord)
	if err != nil {
		uc.logger.Error("Error al obtener la ciudad",
			zap.String("session_id", sessionID.String()),
			zap.Stringer("coordinate", coord),
			zap.Error(err))
		return
	}
	if city == "" {
		uc.logger.Info("Ciudad no encontrada",
			zap.String("session_id", sessionID.String()),
			zap.Stringer("coordinate", coord))
		return
	}

	uc.logger.Info("Te encuentras en: "+city,
		zap.String("session_id", sessionID.String()),
		zap.String("city", city))
}

// ReverseGeocode - обратное геокодирование для HTTP API
func (uc *GeocodeUseCase) ReverseGeocode(ctx context.Context, req dto.ReverseGeocodeRequest) (*dto.ReverseGeocodeResponse, error) {
	coord := req.Coordinate()
	city, err := uc.LocateCity(ctx, coord)
	if err != nil {
		if stderrors.Is(err, errors.ErrInvalidCoordinates) {
			return nil, err
		}
		uc.logger.Error("Reverse geocoding failed", zap.Stringer("coordinate", coord), zap.Error(err))
		return nil, errors.ErrGeocodingFailed
	}

	return &dto.ReverseGeocodeResponse{
		City:       city,
		Coordinate: coord,
	}, nil
}

// Search - прямой поиск с приоритетом рядом с domain.SearchProximity
func (uc *GeocodeUseCase) Search(ctx context.Context, req dto.GeocodeSearchRequest) (*dto.GeocodeSearchResponse, error) {
	limit := req.Limit
	if limit == 0 {
		limit = uc.searchLimit
	}

	resp, err := uc.mapboxRepo.Search(ctx, req.Query, domain.SearchProximity, limit)
	if err != nil {
		uc.logger.Error("Forward geocoding failed", zap.String("query", req.Query), zap.Error(err))
		return nil, errors.ErrGeocodingFailed
	}

	results := resp.SearchResults()
	return &dto.GeocodeSearchResponse{
		Results: results,
		Total:   len(results),
	}, nil
}

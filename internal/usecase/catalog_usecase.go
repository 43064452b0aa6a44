package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/parquimetro-map/internal/domain"
	"github.com/parquimetro-map/internal/domain/repository"
	"github.com/parquimetro-map/internal/pkg/errors"
)

// CatalogUseCase - use case для справочника municipios/ciudades/parquímetros
type CatalogUseCase struct {
	catalogRepo repository.CatalogRepository
	logger      *zap.Logger
}

// NewCatalogUseCase - создание нового CatalogUseCase
func NewCatalogUseCase(catalogRepo repository.CatalogRepository, logger *zap.Logger) *CatalogUseCase {
	return &CatalogUseCase{
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

// ListMunicipios - все муниципалитеты
func (uc *CatalogUseCase) ListMunicipios(ctx context.Context) ([]domain.Municipio, error) {
	municipios, err := uc.catalogRepo.ListMunicipios(ctx)
	if err != nil {
		uc.logger.Error("Failed to list municipios", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return municipios, nil
}

// ListCiudades - ciudades выбранного муниципалитета. Для PlaceholderID список пуст.
func (uc *CatalogUseCase) ListCiudades(ctx context.Context, municipioID int64) ([]domain.Ciudad, error) {
	if municipioID == domain.PlaceholderID {
		return []domain.Ciudad{}, nil
	}

	ciudades, err := uc.catalogRepo.ListCiudades(ctx)
	if err != nil {
		uc.logger.Error("Failed to list ciudades",
			zap.Int64("municipio_id", municipioID),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return domain.FilterCiudades(ciudades, municipioID), nil
}

// ListParquimetros - все паркоматы
func (uc *CatalogUseCase) ListParquimetros(ctx context.Context) ([]domain.Parquimetro, error) {
	parquimetros, err := uc.catalogRepo.ListParquimetros(ctx)
	if err != nil {
		uc.logger.Error("Failed to list parquimetros", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return parquimetros, nil
}

package repository

import (
	"context"

	"github.com/parquimetro-map/internal/domain"
)

// CatalogRepository - источник статичного справочника municipios/ciudades/parquímetros
type CatalogRepository interface {
	// ListMunicipios возвращает все муниципалитеты
	ListMunicipios(ctx context.Context) ([]domain.Municipio, error)

	// ListCiudades возвращает все ciudades всех муниципалитетов
	ListCiudades(ctx context.Context) ([]domain.Ciudad, error)

	// ListParquimetros возвращает все паркоматы
	ListParquimetros(ctx context.Context) ([]domain.Parquimetro, error)

	// GetCiudad возвращает ciudad по id; nil, если не найдена
	GetCiudad(ctx context.Context, id int64) (*domain.Ciudad, error)
}

package memory

import (
	"context"

	"github.com/parquimetro-map/internal/domain"
	"github.com/parquimetro-map/internal/domain/repository"
)

type catalogRepository struct {
	municipios   []domain.Municipio
	ciudades     []domain.Ciudad
	parquimetros []domain.Parquimetro
}

// NewCatalogRepository - справочник из встроенного набора данных
func NewCatalogRepository() repository.CatalogRepository {
	m, c, p := Dataset()
	return NewCatalogRepositoryWithData(m, c, p)
}

// NewCatalogRepositoryWithData - справочник из произвольного набора (для тестов)
func NewCatalogRepositoryWithData(
	municipios []domain.Municipio,
	ciudades []domain.Ciudad,
	parquimetros []domain.Parquimetro,
) repository.CatalogRepository {
	return &catalogRepository{
		municipios:   municipios,
		ciudades:     ciudades,
		parquimetros: parquimetros,
	}
}

func (r *catalogRepository) ListMunicipios(ctx context.Context) ([]domain.Municipio, error) {
	return append([]domain.Municipio{}, r.municipios...), nil
}

func (r *catalogRepository) ListCiudades(ctx context.Context) ([]domain.Ciudad, error) {
	return append([]domain.Ciudad{}, r.ciudades...), nil
}

func (r *catalogRepository) ListParquimetros(ctx context.Context) ([]domain.Parquimetro, error) {
	return append([]domain.Parquimetro{}, r.parquimetros...), nil
}

func (r *catalogRepository) GetCiudad(ctx context.Context, id int64) (*domain.Ciudad, error) {
	c, ok := domain.FindCiudad(r.ciudades, id)
	if !ok {
		return nil, nil
	}
	return &c, nil
}

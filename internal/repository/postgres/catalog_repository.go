package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/parquimetro-map/internal/domain"
	"github.com/parquimetro-map/internal/domain/repository"
)

type ciudadRow struct {
	ID          int64   `db:"id"`
	MunicipioID int64   `db:"municipio_id"`
	Name        string  `db:"name"`
	Lon         float64 `db:"lon"`
	Lat         float64 `db:"lat"`
}

func toCiudadRow(c domain.Ciudad) ciudadRow {
	return ciudadRow{
		ID:          c.ID,
		MunicipioID: c.MunicipioID,
		Name:        c.Name,
		Lon:         c.Coordenada.Lon,
		Lat:         c.Coordenada.Lat,
	}
}

func (r ciudadRow) toDomain() domain.Ciudad {
	return domain.Ciudad{
		ID:          r.ID,
		MunicipioID: r.MunicipioID,
		Name:        r.Name,
		Coordenada:  domain.NewCoordinate(r.Lon, r.Lat),
	}
}

type parquimetroRow struct {
	ID          int64   `db:"id"`
	Description string  `db:"description"`
	Lon         float64 `db:"lon"`
	Lat         float64 `db:"lat"`
}

func toParquimetroRow(p domain.Parquimetro) parquimetroRow {
	return parquimetroRow{
		ID:          p.ID,
		Description: p.Description,
		Lon:         p.Coordenada.Lon,
		Lat:         p.Coordenada.Lat,
	}
}

func (r parquimetroRow) toDomain() domain.Parquimetro {
	return domain.Parquimetro{
		ID:          r.ID,
		Description: r.Description,
		Coordenada:  domain.NewCoordinate(r.Lon, r.Lat),
	}
}

type catalogRepository struct {
	db *DB
}

// NewCatalogRepository создает справочник поверх PostgreSQL
func NewCatalogRepository(db *DB) repository.CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) ListMunicipios(ctx context.Context) ([]domain.Municipio, error) {
	municipios := make([]domain.Municipio, 0)
	if err := r.db.SelectContext(ctx, &municipios, `SELECT id, name FROM municipios ORDER BY id`); err != nil {
		return nil, fmt.Errorf("select municipios: %w", err)
	}
	return municipios, nil
}

func (r *catalogRepository) ListCiudades(ctx context.Context) ([]domain.Ciudad, error) {
	var rows []ciudadRow
	query := `SELECT id, municipio_id, name, lon, lat FROM ciudades ORDER BY municipio_id, id`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("select ciudades: %w", err)
	}

	ciudades := make([]domain.Ciudad, 0, len(rows))
	for _, row := range rows {
		ciudades = append(ciudades, row.toDomain())
	}
	return ciudades, nil
}

func (r *catalogRepository) ListParquimetros(ctx context.Context) ([]domain.Parquimetro, error) {
	var rows []parquimetroRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT id, description, lon, lat FROM parquimetros ORDER BY id`); err != nil {
		return nil, fmt.Errorf("select parquimetros: %w", err)
	}

	parquimetros := make([]domain.Parquimetro, 0, len(rows))
	for _, row := range rows {
		parquimetros = append(parquimetros, row.toDomain())
	}
	return parquimetros, nil
}

func (r *catalogRepository) GetCiudad(ctx context.Context, id int64) (*domain.Ciudad, error) {
	var row ciudadRow
	query := `SELECT id, municipio_id, name, lon, lat FROM ciudades WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ciudad %d: %w", id, err)
	}

	c := row.toDomain()
	return &c, nil
}

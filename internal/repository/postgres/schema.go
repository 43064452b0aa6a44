package postgres

import (
	"context"
	"fmt"

	"github.com/parquimetro-map/internal/domain"
	"go.uber.org/zap"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS municipios (
	id   BIGINT PRIMARY KEY,
	name TEXT   NOT NULL
);

CREATE TABLE IF NOT EXISTS ciudades (
	id           BIGINT           PRIMARY KEY,
	municipio_id BIGINT           NOT NULL REFERENCES municipios(id),
	name         TEXT             NOT NULL,
	lon          DOUBLE PRECISION NOT NULL,
	lat          DOUBLE PRECISION NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_ciudades_municipio_id ON ciudades (municipio_id);

CREATE TABLE IF NOT EXISTS parquimetros (
	id          BIGINT           PRIMARY KEY,
	description TEXT             NOT NULL,
	lon         DOUBLE PRECISION NOT NULL,
	lat         DOUBLE PRECISION NOT NULL
);
`

// EnsureSchema создает таблицы справочника, если их нет
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create catalog schema: %w", err)
	}
	return nil
}

// SeedCatalog заполняет справочник, только если таблица municipios пуста.
// Возвращает true, если данные были вставлены.
func (db *DB) SeedCatalog(
	ctx context.Context,
	municipios []domain.Municipio,
	ciudades []domain.Ciudad,
	parquimetros []domain.Parquimetro,
) (bool, error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin seed tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var count int
	if err := tx.GetContext(ctx, &count, `SELECT COUNT(*) FROM municipios`); err != nil {
		return false, fmt.Errorf("count municipios: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	if len(municipios) > 0 {
		if _, err := tx.NamedExecContext(ctx,
			`INSERT INTO municipios (id, name) VALUES (:id, :name)`,
			municipios,
		); err != nil {
			return false, fmt.Errorf("insert municipios: %w", err)
		}
	}

	if len(ciudades) > 0 {
		rows := make([]ciudadRow, 0, len(ciudades))
		for _, c := range ciudades {
			rows = append(rows, toCiudadRow(c))
		}
		if _, err := tx.NamedExecContext(ctx,
			`INSERT INTO ciudades (id, municipio_id, name, lon, lat) VALUES (:id, :municipio_id, :name, :lon, :lat)`,
			rows,
		); err != nil {
			return false, fmt.Errorf("insert ciudades: %w", err)
		}
	}

	if len(parquimetros) > 0 {
		rows := make([]parquimetroRow, 0, len(parquimetros))
		for _, p := range parquimetros {
			rows = append(rows, toParquimetroRow(p))
		}
		if _, err := tx.NamedExecContext(ctx,
			`INSERT INTO parquimetros (id, description, lon, lat) VALUES (:id, :description, :lon, :lat)`,
			rows,
		); err != nil {
			return false, fmt.Errorf("insert parquimetros: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit seed tx: %w", err)
	}

	db.logger.Info("Catalog seeded",
		zap.Int("municipios", len(municipios)),
		zap.Int("ciudades", len(ciudades)),
		zap.Int("parquimetros", len(parquimetros)))

	return true, nil
}

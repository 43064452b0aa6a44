package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"github.com/parquimetro-map/internal/domain/repository"
	"github.com/parquimetro-map/internal/repository/postgres"
	"go.uber.org/zap"
)

// NewDBForTest creates a postgres.DB with test database and logger
func NewDBForTest(db *sqlx.DB, logger *zap.Logger) *postgres.DB {
	return postgres.NewDBForTest(db, logger)
}

// NewCatalogRepositoryForTest creates a catalog repository with test database and logger
func NewCatalogRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.CatalogRepository {
	return postgres.NewCatalogRepository(NewDBForTest(db, logger))
}

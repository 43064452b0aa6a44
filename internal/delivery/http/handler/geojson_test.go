package handler

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/parquimetro-map/internal/domain"
	"github.com/parquimetro-map/internal/repository/memory"
	"github.com/parquimetro-map/internal/usecase"
)

func TestMarkersFeatureCollection(t *testing.T) {
	markers := []domain.Marker{
		{ID: "user", Kind: domain.MarkerKindUser, Coordinate: domain.NewCoordinate(-100.3, 25.6), Icon: domain.UserMarkerIcon, IconSize: 50},
		{ID: "pin-2", Kind: domain.MarkerKindParquimetro, Coordinate: domain.NewCoordinate(-100.2, 25.5), Title: "Meter"},
	}

	fc := markersFeatureCollection(markers)
	require.Len(t, fc.Features, 2)

	data, err := json.Marshal(fc)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"FeatureCollection"`)
	assert.Contains(t, string(data), `[-100.3,25.6]`)
	assert.Equal(t, "Meter", fc.Features[1].Properties["title"])
	assert.Equal(t, "user", fc.Features[0].Properties["kind"])
}

func TestParquimetrosFeatureCollection(t *testing.T) {
	fc := parquimetrosFeatureCollection([]domain.Parquimetro{
		{ID: 7, Coordenada: domain.NewCoordinate(-100.31, 25.67), Description: "Calle Morelos"},
	})

	require.Len(t, fc.Features, 1)
	assert.Equal(t, "Calle Morelos", fc.Features[0].Properties["description"])
}

func TestCatalogHandler_ParquimetrosGeoJSON(t *testing.T) {
	h := NewCatalogHandler(usecase.NewCatalogUseCase(memory.NewCatalogRepository(), zap.NewNop()), zap.NewNop())
	app := fiber.New()
	app.Get("/parquimetros.geojson", h.ParquimetrosGeoJSON)

	resp, err := app.Test(httptest.NewRequest("GET", "/parquimetros.geojson", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/geo+json", resp.Header.Get(fiber.HeaderContentType))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var fc struct {
		Type     string            `json:"type"`
		Features []json.RawMessage `json:"features"`
	}
	require.NoError(t, json.Unmarshal(body, &fc))
	_, _, parquimetros := memory.Dataset()
	assert.Equal(t, "FeatureCollection", fc.Type)
	assert.Len(t, fc.Features, len(parquimetros))
}

package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parquimetro-map/internal/domain"
)

func TestCatalogRepository_Dataset(t *testing.T) {
	repo := NewCatalogRepository()
	ctx := context.Background()

	municipiosList, err := repo.ListMunicipios(ctx)
	require.NoError(t, err)
	ciudadesList, err := repo.ListCiudades(ctx)
	require.NoError(t, err)
	parquimetrosList, err := repo.ListParquimetros(ctx)
	require.NoError(t, err)

	assert.NotEmpty(t, municipiosList)
	assert.NotEmpty(t, parquimetrosList)

	known := make(map[int64]bool, len(municipiosList))
	for _, m := range municipiosList {
		known[m.ID] = true
		assert.NotEqual(t, domain.PlaceholderID, m.ID, "placeholder id must not be a real municipio")
	}

	seen := make(map[int64]bool, len(ciudadesList))
	for _, c := range ciudadesList {
		assert.True(t, known[c.MunicipioID], "ciudad %d references unknown municipio %d", c.ID, c.MunicipioID)
		assert.False(t, seen[c.ID], "duplicate ciudad id %d", c.ID)
		assert.True(t, c.Coordenada.IsValid())
		seen[c.ID] = true
	}

	for _, p := range parquimetrosList {
		assert.True(t, p.Coordenada.IsValid())
		assert.NotEmpty(t, p.Description)
	}
}

func TestCatalogRepository_GetCiudad(t *testing.T) {
	repo := NewCatalogRepositoryWithData(
		[]domain.Municipio{{ID: 1, Name: "Uno"}},
		[]domain.Ciudad{
			{ID: 10, MunicipioID: 1, Name: "Diez"},
			{ID: 11, MunicipioID: 1, Name: "Once"},
		},
		nil,
	)
	ctx := context.Background()

	c, err := repo.GetCiudad(ctx, 11)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "Once", c.Name)

	c, err = repo.GetCiudad(ctx, 12)
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestCatalogRepository_ReturnsCopies(t *testing.T) {
	repo := NewCatalogRepository()
	ctx := context.Background()

	first, _ := repo.ListCiudades(ctx)
	first[0].Name = "mutated"

	second, _ := repo.ListCiudades(ctx)
	assert.NotEqual(t, "mutated", second[0].Name)
}

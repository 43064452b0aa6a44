package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parquimetro-map/internal/domain"
)

func TestSessionRepository_SaveGetDelete(t *testing.T) {
	repo := NewSessionRepository(0)
	ctx := context.Background()

	session := domain.NewMapSession(time.Now())
	session.Selection.SelectMunicipio(1, []domain.Ciudad{{ID: 10, MunicipioID: 1}})
	prev := domain.NewCoordinate(-100.3, 25.6)
	session.Position.PreviousPosition = &prev

	require.NoError(t, repo.Save(ctx, session))

	loaded, err := repo.Get(ctx, session.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, session.ID, loaded.ID)
	require.NotNil(t, loaded.Selection.SelectedMunicipioID)
	assert.Equal(t, int64(1), *loaded.Selection.SelectedMunicipioID)
	require.NotNil(t, loaded.Position.PreviousPosition)
	assert.Equal(t, prev, *loaded.Position.PreviousPosition)

	// изменения загруженной копии не влияют на хранилище
	loaded.Selection.IsCiudadSelectDisabled = true
	again, _ := repo.Get(ctx, session.ID)
	assert.False(t, again.Selection.IsCiudadSelectDisabled)

	require.NoError(t, repo.Delete(ctx, session.ID))
	missing, err := repo.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSessionRepository_Unknown(t *testing.T) {
	repo := NewSessionRepository(time.Minute)

	s, err := repo.Get(context.Background(), uuid.New())

	assert.NoError(t, err)
	assert.Nil(t, s)
}

func TestSessionRepository_Expiry(t *testing.T) {
	repo := NewSessionRepository(time.Minute).(*sessionRepository)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }
	ctx := context.Background()

	session := domain.NewMapSession(now)
	require.NoError(t, repo.Save(ctx, session))

	now = now.Add(30 * time.Second)
	s, err := repo.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.NotNil(t, s)

	now = now.Add(time.Minute)
	s, err = repo.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Nil(t, s)
}

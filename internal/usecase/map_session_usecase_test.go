package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/parquimetro-map/internal/domain"
	"github.com/parquimetro-map/internal/domain/repository"
	"github.com/parquimetro-map/internal/infrastructure/mapview"
	apperrors "github.com/parquimetro-map/internal/pkg/errors"
	"github.com/parquimetro-map/internal/repository/memory"
	"github.com/parquimetro-map/internal/usecase"
	"github.com/parquimetro-map/internal/usecase/dto"
)

func canvasFactory(state *domain.MapState) usecase.MapSurface {
	return mapview.NewCanvas(state)
}

func newSessionUseCase(catalog repository.CatalogRepository) (*usecase.MapSessionUseCase, *MockCityLookupDispatcher) {
	dispatcher := &MockCityLookupDispatcher{}
	dispatcher.On("Dispatch", mock.Anything, mock.Anything, mock.Anything).Return()

	uc := usecase.NewMapSessionUseCase(
		memory.NewSessionRepository(0),
		catalog,
		dispatcher,
		canvasFactory,
		"",
		zap.NewNop(),
	)
	return uc, dispatcher
}

func geoPos(lon, lat float64) domain.GeoPosition {
	return domain.GeoPosition{Longitude: lon, Latitude: lat}
}

func countMarkers(markers []domain.Marker, kind domain.MarkerKind) int {
	n := 0
	for _, m := range markers {
		if m.Kind == kind {
			n++
		}
	}
	return n
}

func lastCommand(t *testing.T, resp *dto.CommandsResponse) domain.MapCommand {
	t.Helper()
	require.NotEmpty(t, resp.Commands)
	return resp.Commands[len(resp.Commands)-1]
}

func TestMapSessionUseCase_Create(t *testing.T) {
	uc, _ := newSessionUseCase(memory.NewCatalogRepository())
	ctx := context.Background()

	session, err := uc.Create(ctx)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, session.ID)
	assert.Nil(t, session.Selection.SelectedMunicipioID)
	assert.Empty(t, session.Selection.FilteredCiudades)
	assert.True(t, session.Selection.IsCiudadSelectDisabled)
	assert.False(t, session.View.Constructed)
	assert.Empty(t, session.Markers)
	assert.Equal(t, int64(0), session.LastSeq)
}

func TestMapSessionUseCase_SessionNotFound(t *testing.T) {
	uc, _ := newSessionUseCase(memory.NewCatalogRepository())
	ctx := context.Background()
	id := uuid.New()

	_, err := uc.Get(ctx, id)
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)

	_, err = uc.UpdatePosition(ctx, id, geoPos(-100.31, 25.67))
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)

	_, err = uc.Commands(ctx, id, 0)
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)

	err = uc.Delete(ctx, id)
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)

	err = uc.ReportGeolocationError(ctx, id, domain.GeolocationError{Code: domain.GeolocationPermissionDenied})
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}

func TestMapSessionUseCase_Delete(t *testing.T) {
	uc, _ := newSessionUseCase(memory.NewCatalogRepository())
	ctx := context.Background()

	session, err := uc.Create(ctx)
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, session.ID))

	_, err = uc.Get(ctx, session.ID)
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}

func TestMapSessionUseCase_UpdatePosition(t *testing.T) {
	ctx := context.Background()

	t.Run("first fix constructs map centered on user", func(t *testing.T) {
		uc, dispatcher := newSessionUseCase(memory.NewCatalogRepository())
		session, err := uc.Create(ctx)
		require.NoError(t, err)

		resp, err := uc.UpdatePosition(ctx, session.ID, geoPos(-100.3161, 25.6714))
		require.NoError(t, err)

		want := domain.NewCoordinate(-100.3161, 25.6714)
		assert.True(t, resp.View.Constructed)
		assert.Equal(t, want, resp.View.Center)
		assert.Equal(t, domain.InitialZoom, resp.View.Zoom)
		assert.Equal(t, domain.DefaultStyleURL, resp.View.Style)
		assert.True(t, resp.Position.HasFix)
		assert.Equal(t, want, resp.Position.CurrentPosition)
		require.NotNil(t, resp.Position.PreviousPosition)
		assert.Equal(t, want, *resp.Position.PreviousPosition)
		assert.Empty(t, resp.Markers)

		cmds, err := uc.Commands(ctx, session.ID, 0)
		require.NoError(t, err)
		require.Len(t, cmds.Commands, 1)
		assert.Equal(t, domain.CommandCreateMap, cmds.Commands[0].Type)

		dispatcher.AssertNumberOfCalls(t, "Dispatch", 1)
		dispatcher.AssertCalled(t, "Dispatch", mock.Anything, session.ID, want)
	})

	t.Run("repeated fixes never duplicate the user marker", func(t *testing.T) {
		uc, dispatcher := newSessionUseCase(memory.NewCatalogRepository())
		session, err := uc.Create(ctx)
		require.NoError(t, err)

		positions := []domain.GeoPosition{
			geoPos(-100.3161, 25.6714),
			geoPos(-100.3161, 25.6714),
			geoPos(-100.3170, 25.6720),
			geoPos(-100.3180, 25.6730),
		}

		var resp *dto.SessionResponse
		for _, p := range positions {
			resp, err = uc.UpdatePosition(ctx, session.ID, p)
			require.NoError(t, err)
		}

		assert.Equal(t, 1, countMarkers(resp.Markers, domain.MarkerKindUser))
		assert.Equal(t, domain.NewCoordinate(-100.3180, 25.6730), resp.Markers[0].Coordinate)
		assert.Equal(t, domain.UserMarkerIcon, resp.Markers[0].Icon)
		// первый фикс создает карту и не сдвигает камеру при следующих тиках
		assert.Equal(t, domain.NewCoordinate(-100.3161, 25.6714), resp.View.Center)

		// повтор той же координаты не запускает поиск города
		dispatcher.AssertNumberOfCalls(t, "Dispatch", 3)
	})

	t.Run("unchanged position does not dispatch lookup", func(t *testing.T) {
		uc, dispatcher := newSessionUseCase(memory.NewCatalogRepository())
		session, err := uc.Create(ctx)
		require.NoError(t, err)

		for i := 0; i < 5; i++ {
			_, err = uc.UpdatePosition(ctx, session.ID, geoPos(-100.3161, 25.6714))
			require.NoError(t, err)
		}

		dispatcher.AssertNumberOfCalls(t, "Dispatch", 1)
	})

	t.Run("invalid coordinate rejected", func(t *testing.T) {
		uc, dispatcher := newSessionUseCase(memory.NewCatalogRepository())
		session, err := uc.Create(ctx)
		require.NoError(t, err)

		_, err = uc.UpdatePosition(ctx, session.ID, geoPos(-200, 25))
		assert.ErrorIs(t, err, apperrors.ErrInvalidCoordinates)
		dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestMapSessionUseCase_MapLoaded(t *testing.T) {
	ctx := context.Background()
	_, _, parquimetros := memory.Dataset()

	t.Run("places user marker and one pin per parquimetro", func(t *testing.T) {
		uc, _ := newSessionUseCase(memory.NewCatalogRepository())
		session, err := uc.Create(ctx)
		require.NoError(t, err)

		_, err = uc.UpdatePosition(ctx, session.ID, geoPos(-100.3161, 25.6714))
		require.NoError(t, err)

		resp, err := uc.MapLoaded(ctx, session.ID)
		require.NoError(t, err)

		assert.True(t, resp.View.Loaded)
		assert.Equal(t, 1, countMarkers(resp.Markers, domain.MarkerKindUser))
		assert.Equal(t, len(parquimetros), countMarkers(resp.Markers, domain.MarkerKindParquimetro))

		titles := make([]string, 0, len(parquimetros))
		for _, m := range resp.Markers {
			if m.Kind == domain.MarkerKindParquimetro {
				titles = append(titles, m.Title)
			}
		}
		assert.Contains(t, titles, parquimetros[0].Description)
	})

	t.Run("second load signal is ignored", func(t *testing.T) {
		uc, _ := newSessionUseCase(memory.NewCatalogRepository())
		session, err := uc.Create(ctx)
		require.NoError(t, err)

		_, err = uc.UpdatePosition(ctx, session.ID, geoPos(-100.3161, 25.6714))
		require.NoError(t, err)
		first, err := uc.MapLoaded(ctx, session.ID)
		require.NoError(t, err)

		second, err := uc.MapLoaded(ctx, session.ID)
		require.NoError(t, err)

		assert.Len(t, second.Markers, len(first.Markers))
		assert.Equal(t, first.LastSeq, second.LastSeq)
	})

	t.Run("load before map exists is ignored", func(t *testing.T) {
		uc, _ := newSessionUseCase(memory.NewCatalogRepository())
		session, err := uc.Create(ctx)
		require.NoError(t, err)

		resp, err := uc.MapLoaded(ctx, session.ID)
		require.NoError(t, err)

		assert.False(t, resp.View.Loaded)
		assert.Empty(t, resp.Markers)
	})

	t.Run("user marker moves after load", func(t *testing.T) {
		uc, _ := newSessionUseCase(memory.NewCatalogRepository())
		session, err := uc.Create(ctx)
		require.NoError(t, err)

		_, err = uc.UpdatePosition(ctx, session.ID, geoPos(-100.3161, 25.6714))
		require.NoError(t, err)
		loaded, err := uc.MapLoaded(ctx, session.ID)
		require.NoError(t, err)

		resp, err := uc.UpdatePosition(ctx, session.ID, geoPos(-100.3200, 25.6800))
		require.NoError(t, err)
		assert.Len(t, resp.Markers, len(loaded.Markers))

		cmds, err := uc.Commands(ctx, session.ID, loaded.LastSeq)
		require.NoError(t, err)
		require.Len(t, cmds.Commands, 1)
		assert.Equal(t, domain.CommandMoveMarker, cmds.Commands[0].Type)
		assert.Equal(t, domain.UserMarkerID, cmds.Commands[0].Marker.ID)
	})

	t.Run("catalog failure", func(t *testing.T) {
		catalog := &MockCatalogRepository{}
		catalog.On("ListParquimetros", mock.Anything).Return(nil, errors.New("connection refused"))

		uc, _ := newSessionUseCase(catalog)
		session, err := uc.Create(ctx)
		require.NoError(t, err)
		_, err = uc.UpdatePosition(ctx, session.ID, geoPos(-100.3161, 25.6714))
		require.NoError(t, err)

		_, err = uc.MapLoaded(ctx, session.ID)
		assert.ErrorIs(t, err, apperrors.ErrDatabaseError)

		// состояние не сохранено - следующий сигнал load обрабатывается заново
		got, err := uc.Get(ctx, session.ID)
		require.NoError(t, err)
		assert.False(t, got.View.Loaded)
	})
}

func TestMapSessionUseCase_ChangeMunicipio(t *testing.T) {
	ctx := context.Background()
	uc, _ := newSessionUseCase(memory.NewCatalogRepository())
	session, err := uc.Create(ctx)
	require.NoError(t, err)

	resp, err := uc.ChangeMunicipio(ctx, session.ID, 1)
	require.NoError(t, err)
	require.NotNil(t, resp.Selection.SelectedMunicipioID)
	assert.Equal(t, int64(1), *resp.Selection.SelectedMunicipioID)
	assert.False(t, resp.Selection.IsCiudadSelectDisabled)
	require.Len(t, resp.Selection.FilteredCiudades, 3)
	for _, c := range resp.Selection.FilteredCiudades {
		assert.Equal(t, int64(1), c.MunicipioID)
	}

	resp, err = uc.ChangeMunicipio(ctx, session.ID, domain.PlaceholderID)
	require.NoError(t, err)
	assert.Nil(t, resp.Selection.SelectedMunicipioID)
	assert.Nil(t, resp.Selection.SelectedCiudadID)
	assert.Empty(t, resp.Selection.FilteredCiudades)
	assert.True(t, resp.Selection.IsCiudadSelectDisabled)

	// муниципалитет без ciudades - пустой, но разблокированный список
	resp, err = uc.ChangeMunicipio(ctx, session.ID, 99)
	require.NoError(t, err)
	assert.Empty(t, resp.Selection.FilteredCiudades)
	assert.False(t, resp.Selection.IsCiudadSelectDisabled)
}

func TestMapSessionUseCase_ChangeCiudad(t *testing.T) {
	ctx := context.Background()

	t.Run("flies to ciudad at zoom 11", func(t *testing.T) {
		uc, _ := newSessionUseCase(memory.NewCatalogRepository())
		session, err := uc.Create(ctx)
		require.NoError(t, err)
		_, err = uc.UpdatePosition(ctx, session.ID, geoPos(-100.3161, 25.6714))
		require.NoError(t, err)
		_, err = uc.ChangeMunicipio(ctx, session.ID, 2)
		require.NoError(t, err)

		resp, err := uc.ChangeCiudad(ctx, session.ID, 20)
		require.NoError(t, err)

		require.NotNil(t, resp.Selection.SelectedCiudadID)
		assert.Equal(t, int64(20), *resp.Selection.SelectedCiudadID)
		assert.Equal(t, domain.NewCoordinate(-100.3630, 25.6540), resp.View.Center)
		assert.Equal(t, domain.CiudadZoom, resp.View.Zoom)

		cmds, err := uc.Commands(ctx, session.ID, 0)
		require.NoError(t, err)
		cmd := lastCommand(t, cmds)
		assert.Equal(t, domain.CommandFlyTo, cmd.Type)
		assert.Equal(t, domain.CiudadZoom, cmd.Zoom)
	})

	t.Run("unknown ciudad is a no-op", func(t *testing.T) {
		uc, _ := newSessionUseCase(memory.NewCatalogRepository())
		session, err := uc.Create(ctx)
		require.NoError(t, err)
		_, err = uc.UpdatePosition(ctx, session.ID, geoPos(-100.3161, 25.6714))
		require.NoError(t, err)
		before, err := uc.ChangeCiudad(ctx, session.ID, 10)
		require.NoError(t, err)

		resp, err := uc.ChangeCiudad(ctx, session.ID, 999)
		require.NoError(t, err)

		require.NotNil(t, resp.Selection.SelectedCiudadID)
		assert.Equal(t, int64(10), *resp.Selection.SelectedCiudadID)
		assert.Equal(t, before.LastSeq, resp.LastSeq)
		assert.Equal(t, before.View, resp.View)
	})

	t.Run("selection recorded before map exists", func(t *testing.T) {
		uc, _ := newSessionUseCase(memory.NewCatalogRepository())
		session, err := uc.Create(ctx)
		require.NoError(t, err)

		resp, err := uc.ChangeCiudad(ctx, session.ID, 30)
		require.NoError(t, err)

		require.NotNil(t, resp.Selection.SelectedCiudadID)
		assert.Equal(t, int64(30), *resp.Selection.SelectedCiudadID)
		assert.False(t, resp.View.Constructed)
		assert.Equal(t, int64(0), resp.LastSeq)
	})

	t.Run("looks up only the requested ciudad", func(t *testing.T) {
		catalog := &MockCatalogRepository{}
		catalog.On("GetCiudad", mock.Anything, int64(77)).
			Return(&domain.Ciudad{ID: 77, MunicipioID: 7, Name: "Siete", Coordenada: domain.NewCoordinate(-100.1, 25.5)}, nil)
		catalog.On("GetCiudad", mock.Anything, int64(78)).Return(nil, nil)

		uc, _ := newSessionUseCase(catalog)
		session, err := uc.Create(ctx)
		require.NoError(t, err)

		resp, err := uc.ChangeCiudad(ctx, session.ID, 77)
		require.NoError(t, err)
		require.NotNil(t, resp.Selection.SelectedCiudadID)
		assert.Equal(t, int64(77), *resp.Selection.SelectedCiudadID)

		resp, err = uc.ChangeCiudad(ctx, session.ID, 78)
		require.NoError(t, err)
		assert.Equal(t, int64(77), *resp.Selection.SelectedCiudadID)

		catalog.AssertExpectations(t)
		catalog.AssertNotCalled(t, "ListCiudades", mock.Anything)
	})

	t.Run("catalog failure", func(t *testing.T) {
		catalog := &MockCatalogRepository{}
		catalog.On("GetCiudad", mock.Anything, int64(10)).Return(nil, errors.New("connection refused"))

		uc, _ := newSessionUseCase(catalog)
		session, err := uc.Create(ctx)
		require.NoError(t, err)

		_, err = uc.ChangeCiudad(ctx, session.ID, 10)
		assert.ErrorIs(t, err, apperrors.ErrDatabaseError)

		got, err := uc.Get(ctx, session.ID)
		require.NoError(t, err)
		assert.Nil(t, got.Selection.SelectedCiudadID)
	})
}

func TestMapSessionUseCase_BackToCurrentPosition(t *testing.T) {
	ctx := context.Background()
	uc, _ := newSessionUseCase(memory.NewCatalogRepository())
	session, err := uc.Create(ctx)
	require.NoError(t, err)

	// без позиции ничего не происходит
	resp, err := uc.BackToCurrentPosition(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.LastSeq)

	_, err = uc.UpdatePosition(ctx, session.ID, geoPos(-100.3161, 25.6714))
	require.NoError(t, err)
	_, err = uc.ChangeCiudad(ctx, session.ID, 40)
	require.NoError(t, err)
	_, err = uc.UpdatePosition(ctx, session.ID, geoPos(-100.3170, 25.6720))
	require.NoError(t, err)

	resp, err = uc.BackToCurrentPosition(ctx, session.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.NewCoordinate(-100.3170, 25.6720), resp.View.Center)
	assert.Equal(t, domain.CurrentPositionZoom, resp.View.Zoom)
}

func TestMapSessionUseCase_SearchResultSelected(t *testing.T) {
	ctx := context.Background()
	uc, _ := newSessionUseCase(memory.NewCatalogRepository())
	session, err := uc.Create(ctx)
	require.NoError(t, err)
	_, err = uc.UpdatePosition(ctx, session.ID, geoPos(-100.3161, 25.6714))
	require.NoError(t, err)

	target := domain.NewCoordinate(-100.2849, 25.6781)
	resp, err := uc.SearchResultSelected(ctx, session.ID, target)
	require.NoError(t, err)
	assert.Equal(t, target, resp.View.Center)
	assert.Equal(t, domain.SearchResultZoom, resp.View.Zoom)

	_, err = uc.SearchResultSelected(ctx, session.ID, domain.NewCoordinate(0, 95))
	assert.ErrorIs(t, err, apperrors.ErrInvalidCoordinates)
}

func TestMapSessionUseCase_ReportGeolocationError(t *testing.T) {
	ctx := context.Background()
	uc, dispatcher := newSessionUseCase(memory.NewCatalogRepository())
	session, err := uc.Create(ctx)
	require.NoError(t, err)

	err = uc.ReportGeolocationError(ctx, session.ID, domain.GeolocationError{
		Code:    domain.GeolocationPermissionDenied,
		Message: "User denied Geolocation",
	})
	require.NoError(t, err)

	got, err := uc.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.False(t, got.View.Constructed)
	assert.False(t, got.Position.HasFix)
	assert.Equal(t, int64(0), got.LastSeq)
	dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything, mock.Anything)
}

func TestMapSessionUseCase_CommandsIncremental(t *testing.T) {
	ctx := context.Background()
	uc, _ := newSessionUseCase(memory.NewCatalogRepository())
	session, err := uc.Create(ctx)
	require.NoError(t, err)

	_, err = uc.UpdatePosition(ctx, session.ID, geoPos(-100.3161, 25.6714))
	require.NoError(t, err)
	first, err := uc.Commands(ctx, session.ID, 0)
	require.NoError(t, err)
	require.Len(t, first.Commands, 1)

	_, err = uc.MapLoaded(ctx, session.ID)
	require.NoError(t, err)
	next, err := uc.Commands(ctx, session.ID, first.LastSeq)
	require.NoError(t, err)

	require.NotEmpty(t, next.Commands)
	assert.Equal(t, first.LastSeq+1, next.Commands[0].Seq)
	for i := 1; i < len(next.Commands); i++ {
		assert.Equal(t, next.Commands[i-1].Seq+1, next.Commands[i].Seq)
	}

	none, err := uc.Commands(ctx, session.ID, next.LastSeq)
	require.NoError(t, err)
	assert.Empty(t, none.Commands)
	assert.Equal(t, next.LastSeq, none.LastSeq)
}

func TestMapSessionUseCase_Markers(t *testing.T) {
	ctx := context.Background()
	uc, _ := newSessionUseCase(memory.NewCatalogRepository())
	session, err := uc.Create(ctx)
	require.NoError(t, err)

	markers, err := uc.Markers(ctx, session.ID)
	require.NoError(t, err)
	assert.Empty(t, markers)

	_, err = uc.UpdatePosition(ctx, session.ID, geoPos(-100.3161, 25.6714))
	require.NoError(t, err)
	_, err = uc.MapLoaded(ctx, session.ID)
	require.NoError(t, err)

	markers, err = uc.Markers(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, countMarkers(markers, domain.MarkerKindUser))
}

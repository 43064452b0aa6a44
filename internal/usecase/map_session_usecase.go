package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/parquimetro-map/internal/domain"
	"github.com/parquimetro-map/internal/domain/repository"
	"github.com/parquimetro-map/internal/pkg/errors"
	"github.com/parquimetro-map/internal/pkg/metrics"
	"github.com/parquimetro-map/internal/usecase/dto"
)

// MapSessionUseCase - движок карты паркоматов: одна сессия на вкладку браузера.
// Все изменения одной сессии выполняются последовательно.
type MapSessionUseCase struct {
	sessionRepo repository.SessionRepository
	catalogRepo repository.CatalogRepository
	dispatcher  CityLookupDispatcher
	newSurface  SurfaceFactory
	styleURL    string
	logger      *zap.Logger
	locks       *sessionLocks
	now         func() time.Time
}

// NewMapSessionUseCase - создание нового MapSessionUseCase
func NewMapSessionUseCase(
	sessionRepo repository.SessionRepository,
	catalogRepo repository.CatalogRepository,
	dispatcher CityLookupDispatcher,
	newSurface SurfaceFactory,
	styleURL string,
	logger *zap.Logger,
) *MapSessionUseCase {
	if styleURL == "" {
		styleURL = domain.DefaultStyleURL
	}
	return &MapSessionUseCase{
		sessionRepo: sessionRepo,
		catalogRepo: catalogRepo,
		dispatcher:  dispatcher,
		newSurface:  newSurface,
		styleURL:    styleURL,
		logger:      logger,
		locks:       newSessionLocks(),
		now:         time.Now,
	}
}

// Create - новая сессия: ничего не выбрано, карты нет
func (uc *MapSessionUseCase) Create(ctx context.Context) (*dto.SessionResponse, error) {
	session := domain.NewMapSession(uc.now().UTC())

	if err := uc.sessionRepo.Save(ctx, session); err != nil {
		uc.logger.Error("Failed to save session", zap.Error(err))
		return nil, errors.ErrSessionStoreError
	}

	uc.logger.Info("Map session created", zap.String("session_id", session.ID.String()))
	return dto.NewSessionResponse(session), nil
}

// Get - снимок состояния сессии
func (uc *MapSessionUseCase) Get(ctx context.Context, id uuid.UUID) (*dto.SessionResponse, error) {
	session, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewSessionResponse(session), nil
}

// Delete - удаление сессии (вкладка закрыта)
func (uc *MapSessionUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	unlock := uc.locks.lock(id)
	defer unlock()

	if _, err := uc.load(ctx, id); err != nil {
		return err
	}
	if err := uc.sessionRepo.Delete(ctx, id); err != nil {
		uc.logger.Error("Failed to delete session", zap.String("session_id", id.String()), zap.Error(err))
		return errors.ErrSessionStoreError
	}

	uc.logger.Info("Map session deleted", zap.String("session_id", id.String()))
	return nil
}

// Commands - команды рендеринга с Seq > after
func (uc *MapSessionUseCase) Commands(ctx context.Context, id uuid.UUID, after int64) (*dto.CommandsResponse, error) {
	session, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.CommandsResponse{
		Commands: session.Map.CommandsAfter(after),
		LastSeq:  session.Map.NextSeq - 1,
	}, nil
}

// Markers - маркеры, размещенные на карте сессии
func (uc *MapSessionUseCase) Markers(ctx context.Context, id uuid.UUID) ([]domain.Marker, error) {
	session, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.newSurface(&session.Map).Markers(), nil
}

// UpdatePosition обрабатывает тик геолокации. Первый тик создает карту с центром
// на пользователе, следующие перемещают маркер "user". При смене позиции
// запускается определение города.
func (uc *MapSessionUseCase) UpdatePosition(ctx context.Context, id uuid.UUID, pos domain.GeoPosition) (*dto.SessionResponse, error) {
	coord := pos.Coordinate()
	if !coord.IsValid() {
		return nil, errors.ErrInvalidCoordinates
	}

	return uc.mutate(ctx, id, func(session *domain.MapSession, surface MapSurface) error {
		metrics.PositionUpdatesTotal.Inc()

		session.Position.CurrentPosition = coord
		session.Position.HasFix = true

		if session.Position.ChangedFrom(coord) {
			uc.dispatcher.Dispatch(ctx, session.ID, coord)
			previous := coord
			session.Position.PreviousPosition = &previous
		}

		if !surface.View().Constructed {
			surface.Construct(uc.styleURL, coord, domain.InitialZoom)
			uc.logger.Info("Map constructed",
				zap.String("session_id", session.ID.String()),
				zap.Stringer("center", coord))
			return nil
		}

		surface.PlaceOrMove(domain.UserMarkerID, coord)
		return nil
	})
}

// ReportGeolocationError фиксирует отказ геолокации. Состояние не меняется:
// карта просто не создается.
func (uc *MapSessionUseCase) ReportGeolocationError(ctx context.Context, id uuid.UUID, geoErr domain.GeolocationError) error {
	if _, err := uc.load(ctx, id); err != nil {
		return err
	}

	metrics.GeolocationErrorsTotal.WithLabelValues(string(geoErr.Code)).Inc()
	uc.logger.Warn("Error al obtener la ubicación",
		zap.String("session_id", id.String()),
		zap.Error(&geoErr))
	return nil
}

// MapLoaded - сигнал "load" виджета: маркер пользователя и пины всех паркоматов.
// Повторный сигнал и сигнал до создания карты игнорируются.
func (uc *MapSessionUseCase) MapLoaded(ctx context.Context, id uuid.UUID) (*dto.SessionResponse, error) {
	return uc.mutate(ctx, id, func(session *domain.MapSession, surface MapSurface) error {
		if !surface.MarkLoaded() {
			uc.logger.Debug("Map load signal ignored",
				zap.String("session_id", session.ID.String()),
				zap.Bool("constructed", surface.View().Constructed))
			return nil
		}

		parquimetros, err := uc.catalogRepo.ListParquimetros(ctx)
		if err != nil {
			uc.logger.Error("Failed to list parquimetros", zap.Error(err))
			return errors.ErrDatabaseError
		}

		surface.PlaceOrMove(domain.UserMarkerID, session.Position.CurrentPosition)
		for _, p := range parquimetros {
			surface.PlaceOnce(p.Coordenada, p.Description)
		}

		uc.logger.Info("Map loaded",
			zap.String("session_id", session.ID.String()),
			zap.Int("parquimetros", len(parquimetros)))
		return nil
	})
}

// ChangeMunicipio - смена значения в select municipios
func (uc *MapSessionUseCase) ChangeMunicipio(ctx context.Context, id uuid.UUID, municipioID int64) (*dto.SessionResponse, error) {
	return uc.mutate(ctx, id, func(session *domain.MapSession, _ MapSurface) error {
		var ciudades []domain.Ciudad
		if municipioID != domain.PlaceholderID {
			var err error
			ciudades, err = uc.catalogRepo.ListCiudades(ctx)
			if err != nil {
				uc.logger.Error("Failed to list ciudades", zap.Error(err))
				return errors.ErrDatabaseError
			}
		}

		session.Selection.SelectMunicipio(municipioID, ciudades)
		return nil
	})
}

// ChangeCiudad - смена значения в select ciudades: камера летит к ciudad.
// Неизвестный id ничего не меняет.
func (uc *MapSessionUseCase) ChangeCiudad(ctx context.Context, id uuid.UUID, ciudadID int64) (*dto.SessionResponse, error) {
	return uc.mutate(ctx, id, func(session *domain.MapSession, surface MapSurface) error {
		found, err := uc.catalogRepo.GetCiudad(ctx, ciudadID)
		if err != nil {
			uc.logger.Error("Failed to get ciudad",
				zap.Int64("ciudad_id", ciudadID),
				zap.Error(err))
			return errors.ErrDatabaseError
		}
		if found == nil {
			uc.logger.Debug("Unknown ciudad ignored",
				zap.String("session_id", session.ID.String()),
				zap.Int64("ciudad_id", ciudadID))
			return nil
		}

		ciudad, _ := session.Selection.SelectCiudad(ciudadID, []domain.Ciudad{*found})
		surface.FlyTo(ciudad.Coordenada, domain.CiudadZoom)
		return nil
	})
}

// BackToCurrentPosition - вернуть камеру к пользователю
func (uc *MapSessionUseCase) BackToCurrentPosition(ctx context.Context, id uuid.UUID) (*dto.SessionResponse, error) {
	return uc.mutate(ctx, id, func(session *domain.MapSession, surface MapSurface) error {
		if !session.Position.HasFix {
			return nil
		}
		surface.FlyTo(session.Position.CurrentPosition, domain.CurrentPositionZoom)
		return nil
	})
}

// SearchResultSelected - пользователь выбрал результат в поле поиска
func (uc *MapSessionUseCase) SearchResultSelected(ctx context.Context, id uuid.UUID, center domain.Coordinate) (*dto.SessionResponse, error) {
	if !center.IsValid() {
		return nil, errors.ErrInvalidCoordinates
	}

	return uc.mutate(ctx, id, func(_ *domain.MapSession, surface MapSurface) error {
		surface.FlyTo(center, domain.SearchResultZoom)
		return nil
	})
}

// load читает сессию; отсутствие - ErrSessionNotFound
func (uc *MapSessionUseCase) load(ctx context.Context, id uuid.UUID) (*domain.MapSession, error) {
	session, err := uc.sessionRepo.Get(ctx, id)
	if err != nil {
		uc.logger.Error("Failed to load session", zap.String("session_id", id.String()), zap.Error(err))
		return nil, errors.ErrSessionStoreError
	}
	if session == nil {
		return nil, errors.ErrSessionNotFound
	}
	return session, nil
}

// mutate выполняет fn под мьютексом сессии и сохраняет результат
func (uc *MapSessionUseCase) mutate(
	ctx context.Context,
	id uuid.UUID,
	fn func(session *domain.MapSession, surface MapSurface) error,
) (*dto.SessionResponse, error) {
	unlock := uc.locks.lock(id)
	defer unlock()

	session, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := fn(session, uc.newSurface(&session.Map)); err != nil {
		return nil, err
	}

	session.UpdatedAt = uc.now().UTC()
	if err := uc.sessionRepo.Save(ctx, session); err != nil {
		uc.logger.Error("Failed to save session", zap.String("session_id", id.String()), zap.Error(err))
		return nil, errors.ErrSessionStoreError
	}

	return dto.NewSessionResponse(session), nil
}

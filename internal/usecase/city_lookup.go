package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/parquimetro-map/internal/domain"
	"github.com/parquimetro-map/internal/domain/repository"
	"github.com/parquimetro-map/internal/pkg/metrics"
)

// CityLookupDispatcher запускает определение города без ожидания результата.
// Ошибки не возвращаются вызывающему коду.
type CityLookupDispatcher interface {
	Dispatch(ctx context.Context, sessionID uuid.UUID, coord domain.Coordinate)
}

// CityAnnouncer определяет город и пишет его в лог
type CityAnnouncer interface {
	AnnounceCity(ctx context.Context, sessionID uuid.UUID, coord domain.Coordinate)
}

// InlineCityLookup выполняет определение города в отдельной горутине процесса API
type InlineCityLookup struct {
	announcer CityAnnouncer
	timeout   time.Duration
	logger    *zap.Logger
	wg        sync.WaitGroup
}

// NewInlineCityLookup - создание нового InlineCityLookup
func NewInlineCityLookup(announcer CityAnnouncer, timeout time.Duration, logger *zap.Logger) *InlineCityLookup {
	return &InlineCityLookup{
		announcer: announcer,
		timeout:   timeout,
		logger:    logger,
	}
}

// Dispatch запускает поиск со своим таймаутом; отмена ctx запроса на него не влияет
func (d *InlineCityLookup) Dispatch(ctx context.Context, sessionID uuid.UUID, coord domain.Coordinate) {
	metrics.CityLookupsDispatchedTotal.WithLabelValues("inline").Inc()

	lookupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
	d.logger.Debug("City lookup dispatched",
		zap.String("session_id", sessionID.String()),
		zap.Stringer("coordinate", coord))

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer cancel()
		d.announcer.AnnounceCity(lookupCtx, sessionID, coord)
	}()
}

// Wait ждет завершения запущенных поисков (graceful shutdown)
func (d *InlineCityLookup) Wait() {
	d.wg.Wait()
}

// StreamCityLookup публикует PositionChangedEvent; поиск выполняет cmd/worker
type StreamCityLookup struct {
	streamRepo repository.StreamRepository
	timeout    time.Duration
	logger     *zap.Logger
	now        func() time.Time
}

// NewStreamCityLookup - создание нового StreamCityLookup
func NewStreamCityLookup(streamRepo repository.StreamRepository, timeout time.Duration, logger *zap.Logger) *StreamCityLookup {
	return &StreamCityLookup{
		streamRepo: streamRepo,
		timeout:    timeout,
		logger:     logger,
		now:        time.Now,
	}
}

// Dispatch публикует событие; ошибка публикации только логируется
func (d *StreamCityLookup) Dispatch(ctx context.Context, sessionID uuid.UUID, coord domain.Coordinate) {
	metrics.CityLookupsDispatchedTotal.WithLabelValues("stream").Inc()

	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
	defer cancel()

	event := domain.PositionChangedEvent{
		SessionID:  sessionID,
		Coordinate: coord,
		ObservedAt: d.now().UTC(),
	}
	if err := d.streamRepo.PublishToStream(publishCtx, domain.StreamPositionChanged, event); err != nil {
		d.logger.Error("Failed to publish position changed event",
			zap.String("session_id", sessionID.String()),
			zap.Error(err))
	}
}

package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/parquimetro-map/internal/domain"
	"github.com/parquimetro-map/internal/domain/repository"
	"github.com/parquimetro-map/internal/usecase"
	"github.com/parquimetro-map/internal/worker"
)

const defaultBatchSize = 20

// CityLookupWorker читает stream:position:changed и определяет город для каждой позиции
type CityLookupWorker struct {
	*worker.BaseWorker
	streamRepo    repository.StreamRepository
	announcer     usecase.CityAnnouncer
	batchSize     int
	lookupTimeout time.Duration
}

// NewCityLookupWorker создает новый CityLookupWorker
func NewCityLookupWorker(
	streamRepo repository.StreamRepository,
	announcer usecase.CityAnnouncer,
	consumerGroup string,
	batchSize int,
	lookupTimeout time.Duration,
	logger *zap.Logger,
) *CityLookupWorker {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &CityLookupWorker{
		BaseWorker:    worker.NewBaseWorker("city-lookup", consumerGroup, logger),
		streamRepo:    streamRepo,
		announcer:     announcer,
		batchSize:     batchSize,
		lookupTimeout: lookupTimeout,
	}
}

// Start запускает воркер
func (w *CityLookupWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting CityLookupWorker",
		zap.String("stream", domain.StreamPositionChanged),
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.ConsumerName()),
		zap.Int("batch_size", w.batchSize))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamPositionChanged, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	return w.RunLoop(ctx, w.processBatch)
}

// processBatch читает и обрабатывает пачку событий.
// Возвращает количество прочитанных сообщений.
func (w *CityLookupWorker) processBatch(ctx context.Context) (int, error) {
	logger := w.Logger()

	messages, err := w.streamRepo.ConsumeBatch(
		ctx,
		domain.StreamPositionChanged,
		w.ConsumerGroup(),
		w.ConsumerName(),
		w.batchSize,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}
	if len(messages) == 0 {
		return 0, nil
	}

	logger.Debug("Processing batch", zap.Int("message_count", len(messages)))

	for _, msg := range messages {
		event, err := parseMessage(msg)
		if err != nil {
			// битое сообщение подтверждаем, чтобы не застревало в PEL
			logger.Warn("Failed to parse message, skipping",
				zap.String("message_id", msg.ID),
				zap.Error(err))
		} else {
			lookupCtx, cancel := context.WithTimeout(ctx, w.lookupTimeout)
			w.announcer.AnnounceCity(lookupCtx, event.SessionID, event.Coordinate)
			cancel()
		}

		if err := w.streamRepo.AckMessage(ctx, domain.StreamPositionChanged, w.ConsumerGroup(), msg.ID); err != nil {
			logger.Error("Failed to ack message",
				zap.String("message_id", msg.ID),
				zap.Error(err))
		}
	}

	return len(messages), nil
}

// parseMessage парсит сообщение из стрима в PositionChangedEvent
func parseMessage(msg domain.StreamMessage) (*domain.PositionChangedEvent, error) {
	if msg.Data == "" {
		return nil, fmt.Errorf("missing 'data' field")
	}

	var event domain.PositionChangedEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	if !event.Coordinate.IsValid() {
		return nil, fmt.Errorf("invalid coordinate: %s", event.Coordinate)
	}

	return &event, nil
}

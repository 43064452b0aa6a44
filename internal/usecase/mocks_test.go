package usecase_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/parquimetro-map/internal/domain"
)

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheRepository) GetCity(ctx context.Context, coord domain.Coordinate) (string, bool, error) {
	args := m.Called(ctx, coord)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockCacheRepository) SetCity(ctx context.Context, coord domain.Coordinate, city string, ttl time.Duration) error {
	args := m.Called(ctx, coord, city, ttl)
	return args.Error(0)
}

// MockMapboxRepository is a mock of MapboxRepository
type MockMapboxRepository struct {
	mock.Mock
}

func (m *MockMapboxRepository) ReverseGeocode(ctx context.Context, coord domain.Coordinate) (*domain.GeocodingResponse, error) {
	args := m.Called(ctx, coord)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeocodingResponse), args.Error(1)
}

func (m *MockMapboxRepository) Search(ctx context.Context, query string, proximity domain.Coordinate, limit int) (*domain.GeocodingResponse, error) {
	args := m.Called(ctx, query, proximity, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeocodingResponse), args.Error(1)
}

// MockCatalogRepository is a mock of CatalogRepository
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) ListMunicipios(ctx context.Context) ([]domain.Municipio, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Municipio), args.Error(1)
}

func (m *MockCatalogRepository) ListCiudades(ctx context.Context) ([]domain.Ciudad, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Ciudad), args.Error(1)
}

func (m *MockCatalogRepository) ListParquimetros(ctx context.Context) ([]domain.Parquimetro, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Parquimetro), args.Error(1)
}

func (m *MockCatalogRepository) GetCiudad(ctx context.Context, id int64) (*domain.Ciudad, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ciudad), args.Error(1)
}

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) ConsumeBatch(ctx context.Context, stream, group, consumer string, maxCount int) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, maxCount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}

// MockCityLookupDispatcher is a mock of CityLookupDispatcher
type MockCityLookupDispatcher struct {
	mock.Mock
}

func (m *MockCityLookupDispatcher) Dispatch(ctx context.Context, sessionID uuid.UUID, coord domain.Coordinate) {
	m.Called(ctx, sessionID, coord)
}

// MockCityAnnouncer is a mock of CityAnnouncer
type MockCityAnnouncer struct {
	mock.Mock
}

func (m *MockCityAnnouncer) AnnounceCity(ctx context.Context, sessionID uuid.UUID, coord domain.Coordinate) {
	m.Called(ctx, sessionID, coord)
}

func ptrFloat64(f float64) *float64 {
	return &f
}

package mapbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/parquimetro-map/internal/config"
	"github.com/parquimetro-map/internal/domain"
	"github.com/parquimetro-map/internal/domain/repository"
	"go.uber.org/zap"
)

const (
	geocodingPath    = "/geocoding/v5/mapbox.places/"
	accessTokenParam = "access_token"
)

type client struct {
	httpClient  *http.Client
	baseURL     string
	accessToken string
	logger      *zap.Logger
}

// NewMapboxClient создает новый клиент для Mapbox Geocoding API
func NewMapboxClient(cfg *config.MapboxConfig, logger *zap.Logger) repository.MapboxRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		baseURL:     cfg.BaseURL,
		accessToken: cfg.AccessToken,
		logger:      logger,
	}
}

// ReverseGeocode возвращает ответ обратного геокодирования для координаты
func (c *client) ReverseGeocode(ctx context.Context, coord domain.Coordinate) (*domain.GeocodingResponse, error) {
	if !coord.IsValid() {
		return nil, fmt.Errorf("invalid coordinate: %s", coord)
	}

	query := strconv.FormatFloat(coord.Lon, 'f', -1, 64) + "," + strconv.FormatFloat(coord.Lat, 'f', -1, 64)

	c.logger.Debug("Calling Mapbox reverse geocoding",
		zap.Float64("lon", coord.Lon),
		zap.Float64("lat", coord.Lat))

	return c.geocode(ctx, query, url.Values{})
}

// Search выполняет прямой поиск с приоритетом рядом с proximity
func (c *client) Search(ctx context.Context, query string, proximity domain.Coordinate, limit int) (*domain.GeocodingResponse, error) {
	if query == "" {
		return nil, fmt.Errorf("query cannot be empty")
	}

	params := url.Values{}
	params.Set("proximity", strconv.FormatFloat(proximity.Lon, 'f', -1, 64)+","+strconv.FormatFloat(proximity.Lat, 'f', -1, 64))
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	c.logger.Debug("Calling Mapbox forward geocoding",
		zap.String("query", query),
		zap.Int("limit", limit))

	return c.geocode(ctx, query, params)
}

func (c *client) geocode(ctx context.Context, query string, params url.Values) (*domain.GeocodingResponse, error) {
	params.Set(accessTokenParam, c.accessToken)
	endpoint := c.baseURL + geocodingPath + url.PathEscape(query) + ".json?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		err = redactToken(err)
		c.logger.Error("Failed to create request", zap.Error(err))
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = redactToken(err)
		c.logger.Error("Failed to execute request", zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error("Mapbox API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("mapbox API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var geoResp domain.GeocodingResponse
	if err := json.NewDecoder(resp.Body).Decode(&geoResp); err != nil {
		c.logger.Error("Failed to decode response", zap.Error(err))
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	c.logger.Debug("Mapbox geocoding call successful",
		zap.Int("features", len(geoResp.Features)))

	return &geoResp, nil
}

// redactToken убирает access_token из URL в *url.Error; причина ошибки сохраняется
func redactToken(err error) error {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return err
	}

	redacted := *urlErr
	redacted.URL = redactURL(urlErr.URL)
	return &redacted
}

func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "<unparsable url>"
	}
	q := u.Query()
	if q.Has(accessTokenParam) {
		q.Set(accessTokenParam, "REDACTED")
		u.RawQuery = q.Encode()
	}
	return u.String()
}

package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Coordinate - точка на карте в порядке Mapbox (долгота, широта).
// В JSON сериализуется как массив [lon, lat].
type Coordinate struct {
	Lon float64 `db:"lon"`
	Lat float64 `db:"lat"`
}

// NewCoordinate создает координату из долготы и широты
func NewCoordinate(lon, lat float64) Coordinate {
	return Coordinate{Lon: lon, Lat: lat}
}

// IsValid проверяет, что координата лежит в допустимых пределах WGS84
func (c Coordinate) IsValid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// Equal - точное сравнение, без допуска
func (c Coordinate) Equal(other Coordinate) bool {
	return c.Lon == other.Lon && c.Lat == other.Lat
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%f,%f", c.Lon, c.Lat)
}

func (c Coordinate) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{c.Lon, c.Lat})
}

func (c *Coordinate) UnmarshalJSON(data []byte) error {
	var pair []float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("coordinate must be [lon, lat]: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("coordinate must have exactly 2 elements, got %d", len(pair))
	}
	c.Lon, c.Lat = pair[0], pair[1]
	return nil
}

// GeoPosition - показание геолокации браузера (порядок широта/долгота как в Geolocation API)
type GeoPosition struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Accuracy  float64   `json:"accuracy,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Coordinate переводит показание в порядок карты (lon, lat)
func (p GeoPosition) Coordinate() Coordinate {
	return Coordinate{Lon: p.Longitude, Lat: p.Latitude}
}

// GeolocationErrorCode - причина, по которой браузер не отдал позицию
type GeolocationErrorCode string

const (
	GeolocationPermissionDenied    GeolocationErrorCode = "permission_denied"
	GeolocationPositionUnavailable GeolocationErrorCode = "position_unavailable"
	GeolocationTimeout             GeolocationErrorCode = "timeout"
	GeolocationUnsupported         GeolocationErrorCode = "unsupported"
)

// GeolocationError - ошибка подписки на геолокацию
type GeolocationError struct {
	Code    GeolocationErrorCode `json:"code"`
	Message string               `json:"message,omitempty"`
}

func (e *GeolocationError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("geolocation error: %s", e.Code)
	}
	return fmt.Sprintf("geolocation error: %s: %s", e.Code, e.Message)
}

// WatchOptions - параметры watchPosition, которые клиент должен использовать
type WatchOptions struct {
	EnableHighAccuracy bool `json:"enableHighAccuracy"`
	MaximumAge         int  `json:"maximumAge"`
	Timeout            int  `json:"timeout"`
}

// DefaultWatchOptions - высокая точность, без кеша позиции, таймаут 10 секунд
var DefaultWatchOptions = WatchOptions{
	EnableHighAccuracy: true,
	MaximumAge:         0,
	Timeout:            10000,
}

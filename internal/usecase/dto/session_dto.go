package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/parquimetro-map/internal/domain"
)

// PositionRequest - тик watchPosition из браузера
type PositionRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude *float64 `json:"longitude" validate:"required,min=-180,max=180"`
	Accuracy  float64  `json:"accuracy" validate:"omitempty,min=0"`
	Timestamp int64    `json:"timestamp" validate:"omitempty,min=0"` // unix ms
}

// ToGeoPosition конвертирует запрос в доменную позицию
func (r PositionRequest) ToGeoPosition() domain.GeoPosition {
	pos := domain.GeoPosition{
		Latitude:  *r.Latitude,
		Longitude: *r.Longitude,
		Accuracy:  r.Accuracy,
	}
	if r.Timestamp > 0 {
		pos.Timestamp = time.UnixMilli(r.Timestamp).UTC()
	}
	return pos
}

// GeolocationErrorRequest - ошибка геолокации в браузере
type GeolocationErrorRequest struct {
	Code    string `json:"code" validate:"required,oneof=permission_denied position_unavailable timeout unsupported"`
	Message string `json:"message" validate:"omitempty,max=500"`
}

// MunicipioRequest - смена значения в select municipios (0 - "Selecciona una opción")
type MunicipioRequest struct {
	MunicipioID int64 `json:"municipio_id" validate:"min=0"`
}

// CiudadRequest - смена значения в select ciudades
type CiudadRequest struct {
	CiudadID int64 `json:"ciudad_id" validate:"min=0"`
}

// SearchResultRequest - выбранный результат в поле поиска
type SearchResultRequest struct {
	Longitude *float64 `json:"longitude" validate:"required,min=-180,max=180"`
	Latitude  *float64 `json:"latitude" validate:"required,min=-90,max=90"`
}

// Coordinate возвращает центр выбранного результата
func (r SearchResultRequest) Coordinate() domain.Coordinate {
	return domain.NewCoordinate(*r.Longitude, *r.Latitude)
}

// CommandsRequest - инкрементальный опрос команд рендеринга
type CommandsRequest struct {
	After int64 `query:"after" validate:"min=0"`
}

// SessionResponse - снимок состояния сессии
type SessionResponse struct {
	ID        uuid.UUID             `json:"id"`
	Selection domain.SelectionState `json:"selection"`
	Position  domain.PositionState  `json:"position"`
	View      domain.MapView        `json:"view"`
	Markers   []domain.Marker       `json:"markers"`
	LastSeq   int64                 `json:"last_seq"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}

// NewSessionResponse строит ответ из доменной сессии
func NewSessionResponse(s *domain.MapSession) *SessionResponse {
	markers := s.Map.Markers
	if markers == nil {
		markers = []domain.Marker{}
	}
	return &SessionResponse{
		ID:        s.ID,
		Selection: s.Selection,
		Position:  s.Position,
		View:      s.Map.View,
		Markers:   markers,
		LastSeq:   s.Map.NextSeq - 1,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// CommandsResponse - команды рендеринга с Seq > after
type CommandsResponse struct {
	Commands []domain.MapCommand `json:"commands"`
	LastSeq  int64               `json:"last_seq"`
}

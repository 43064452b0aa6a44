package dto

import "github.com/parquimetro-map/internal/domain"

// ReverseGeocodeRequest - запрос на определение города по координате
type ReverseGeocodeRequest struct {
	Lat *float64 `query:"lat" validate:"required,min=-90,max=90"`
	Lon *float64 `query:"lon" validate:"required,min=-180,max=180"`
}

// Coordinate возвращает координату запроса
func (r ReverseGeocodeRequest) Coordinate() domain.Coordinate {
	return domain.NewCoordinate(*r.Lon, *r.Lat)
}

// ReverseGeocodeResponse - город для координаты; пустая строка, если не найден
type ReverseGeocodeResponse struct {
	City       string            `json:"city"`
	Coordinate domain.Coordinate `json:"coordinate"`
}

// GeocodeSearchRequest - прямой поиск для контрола поиска на карте
type GeocodeSearchRequest struct {
	Query string `query:"q" validate:"required,min=2,max=256"`
	Limit int    `query:"limit" validate:"omitempty,min=1,max=10"`
}

// GeocodeSearchResponse - результаты прямого поиска
type GeocodeSearchResponse struct {
	Results []domain.GeocodeResult `json:"results"`
	Total   int                    `json:"total"`
}

// ClientConfigResponse - все, что нужно браузеру для инициализации карты
type ClientConfigResponse struct {
	AccessToken         string              `json:"access_token"`
	StyleURL            string              `json:"style_url"`
	InitialZoom         float64             `json:"initial_zoom"`
	CiudadZoom          float64             `json:"ciudad_zoom"`
	CurrentPositionZoom float64             `json:"current_position_zoom"`
	SearchResultZoom    float64             `json:"search_result_zoom"`
	WatchOptions        domain.WatchOptions `json:"watch_options"`
	Search              SearchOptions       `json:"search"`
	UserMarker          UserMarkerOptions   `json:"user_marker"`
}

// SearchOptions - настройки контрола поиска
type SearchOptions struct {
	Placeholder string            `json:"placeholder"`
	Proximity   domain.Coordinate `json:"proximity"`
}

// UserMarkerOptions - иконка маркера пользователя
type UserMarkerOptions struct {
	Icon string `json:"icon"`
	Size int    `json:"size"`
}

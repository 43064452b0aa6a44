package domain

import "strings"

// placeContextPrefix - маркер уровня "город" в id элемента context у Mapbox (например "place.123")
const placeContextPrefix = "place"

// GeocodingContext - элемент иерархии адреса в ответе Mapbox Geocoding v5
type GeocodingContext struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// GeocodingFeature - элемент features в ответе Mapbox Geocoding v5
type GeocodingFeature struct {
	ID        string             `json:"id"`
	Text      string             `json:"text"`
	PlaceName string             `json:"place_name"`
	PlaceType []string           `json:"place_type"`
	Center    []float64          `json:"center"`
	Context   []GeocodingContext `json:"context"`
}

// GeocodingResponse - ответ Mapbox Geocoding v5 (mapbox.places)
type GeocodingResponse struct {
	Type     string             `json:"type"`
	Query    []interface{}      `json:"query"`
	Features []GeocodingFeature `json:"features"`
}

// CityName извлекает название города: первый feature, в его context - первый
// элемент, id которого содержит "place". Пустая строка, если ничего не найдено.
func (r *GeocodingResponse) CityName() string {
	if r == nil || len(r.Features) == 0 {
		return ""
	}
	for _, c := range r.Features[0].Context {
		if strings.Contains(c.ID, placeContextPrefix) {
			return c.Text
		}
	}
	return ""
}

// GeocodeResult - результат прямого поиска (контрол поиска на карте)
type GeocodeResult struct {
	Name      string     `json:"name"`
	Text      string     `json:"text"`
	Center    Coordinate `json:"center"`
	PlaceType []string   `json:"place_type,omitempty"`
}

// SearchResults конвертирует features в результаты поиска, пропуская записи без center
func (r *GeocodingResponse) SearchResults() []GeocodeResult {
	results := make([]GeocodeResult, 0, len(r.Features))
	for _, f := range r.Features {
		if len(f.Center) != 2 {
			continue
		}
		results = append(results, GeocodeResult{
			Name:      f.PlaceName,
			Text:      f.Text,
			Center:    Coordinate{Lon: f.Center[0], Lat: f.Center[1]},
			PlaceType: f.PlaceType,
		})
	}
	return results
}

// SearchProximity - точка, рядом с которой приоритизируется поиск
var SearchProximity = Coordinate{Lon: -74.5, Lat: 40}

// SearchPlaceholder - подсказка в поле поиска
const SearchPlaceholder = "Buscar una ubicación"

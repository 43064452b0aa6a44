package usecase

import "github.com/parquimetro-map/internal/domain"

// MarkerPlacer размещает маркеры на карте
type MarkerPlacer interface {
	// PlaceOnce создает новый пин с текстовым попапом, без дедупликации
	PlaceOnce(coord domain.Coordinate, label string) domain.Marker

	// PlaceOrMove создает маркер id при первом вызове и перемещает его при следующих
	PlaceOrMove(id string, coord domain.Coordinate) domain.Marker
}

// MapSurface - виджет карты одной сессии
type MapSurface interface {
	MarkerPlacer

	// Construct создает карту; false, если она уже создана
	Construct(style string, center domain.Coordinate, zoom float64) bool

	// MarkLoaded фиксирует сигнал "load"; false, если карта не создана или уже загружена
	MarkLoaded() bool

	// FlyTo перемещает камеру; false, если карта не создана
	FlyTo(center domain.Coordinate, zoom float64) bool

	View() domain.MapView
	Markers() []domain.Marker
}

// SurfaceFactory привязывает поверхность к состоянию карты сессии
type SurfaceFactory func(state *domain.MapState) MapSurface

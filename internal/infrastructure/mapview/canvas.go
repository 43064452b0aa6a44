package mapview

import (
	"fmt"

	"github.com/parquimetro-map/internal/domain"
	"github.com/parquimetro-map/internal/pkg/metrics"
)

// maxRetainedCommands - сколько последних команд хранится в состоянии сессии.
// Клиент, отставший сильнее, пересинхронизируется по View и Markers.
const maxRetainedCommands = 256

// Canvas - серверная поверхность рендеринга карты. Каждое действие меняет
// domain.MapState и записывает команду, которую браузер воспроизводит на
// своем виджете Mapbox GL.
type Canvas struct {
	state *domain.MapState
}

// NewCanvas оборачивает состояние карты сессии
func NewCanvas(state *domain.MapState) *Canvas {
	if state.NextSeq == 0 {
		state.NextSeq = 1
	}
	if state.Markers == nil {
		state.Markers = []domain.Marker{}
	}
	if state.Commands == nil {
		state.Commands = []domain.MapCommand{}
	}
	return &Canvas{state: state}
}

// Construct создает карту. Повторный вызов ничего не делает и возвращает false.
func (c *Canvas) Construct(style string, center domain.Coordinate, zoom float64) bool {
	if c.state.View.Constructed {
		return false
	}
	c.state.View = domain.MapView{
		Style:       style,
		Center:      center,
		Zoom:        zoom,
		Constructed: true,
	}
	view := c.state.View
	c.emit(domain.MapCommand{Type: domain.CommandCreateMap, View: &view})
	return true
}

// MarkLoaded фиксирует сигнал "load" виджета. Возвращает false, если карта
// не создана или уже загружена.
func (c *Canvas) MarkLoaded() bool {
	if !c.state.View.Constructed || c.state.View.Loaded {
		return false
	}
	c.state.View.Loaded = true
	return true
}

// FlyTo перемещает камеру. Без созданной карты перемещать нечего - возвращает false.
func (c *Canvas) FlyTo(center domain.Coordinate, zoom float64) bool {
	if !c.state.View.Constructed {
		return false
	}
	c.state.View.Center = center
	c.state.View.Zoom = zoom
	target := center
	c.emit(domain.MapCommand{Type: domain.CommandFlyTo, Center: &target, Zoom: zoom})
	return true
}

// View возвращает текущее состояние виджета
func (c *Canvas) View() domain.MapView {
	return c.state.View
}

// PlaceOnce всегда создает новый пин с текстовым попапом. Дедупликации нет:
// два вызова с одной координатой дают два пина.
func (c *Canvas) PlaceOnce(coord domain.Coordinate, label string) domain.Marker {
	marker := domain.Marker{
		ID:         fmt.Sprintf("pin-%d", c.state.NextSeq),
		Kind:       domain.MarkerKindParquimetro,
		Coordinate: coord,
		Title:      label,
	}
	c.state.Markers = append(c.state.Markers, marker)
	c.emit(domain.MapCommand{Type: domain.CommandAddMarker, Marker: &marker})
	metrics.MarkersCreatedTotal.WithLabelValues(string(marker.Kind)).Inc()
	return marker
}

// PlaceOrMove создает маркер с кастомной иконкой при первом вызове для id и
// только перемещает его при последующих.
func (c *Canvas) PlaceOrMove(id string, coord domain.Coordinate) domain.Marker {
	for i := range c.state.Markers {
		if c.state.Markers[i].ID == id {
			c.state.Markers[i].Coordinate = coord
			moved := c.state.Markers[i]
			c.emit(domain.MapCommand{Type: domain.CommandMoveMarker, Marker: &moved})
			metrics.MarkerMovesTotal.Inc()
			return moved
		}
	}

	marker := domain.Marker{
		ID:         id,
		Kind:       domain.MarkerKindUser,
		Coordinate: coord,
		Icon:       domain.UserMarkerIcon,
		IconSize:   domain.UserMarkerSize,
	}
	c.state.Markers = append(c.state.Markers, marker)
	c.emit(domain.MapCommand{Type: domain.CommandAddMarker, Marker: &marker})
	metrics.MarkersCreatedTotal.WithLabelValues(string(marker.Kind)).Inc()
	return marker
}

// Markers возвращает копию списка маркеров
func (c *Canvas) Markers() []domain.Marker {
	out := make([]domain.Marker, len(c.state.Markers))
	copy(out, c.state.Markers)
	return out
}

func (c *Canvas) emit(cmd domain.MapCommand) {
	cmd.Seq = c.state.NextSeq
	c.state.NextSeq++
	c.state.Commands = append(c.state.Commands, cmd)
	if extra := len(c.state.Commands) - maxRetainedCommands; extra > 0 {
		c.state.Commands = append([]domain.MapCommand(nil), c.state.Commands[extra:]...)
	}
}

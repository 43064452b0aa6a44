package domain

// Параметры карты, которые использует клиент Mapbox GL
const (
	DefaultStyleURL = "mapbox://styles/mapbox/streets-v11"

	InitialZoom         = 17.0
	CiudadZoom          = 11.0
	CurrentPositionZoom = 17.0
	SearchResultZoom    = 16.0

	UserMarkerID   = "user"
	UserMarkerIcon = "assets/custom_marker.svg"
	UserMarkerSize = 50
)

// MarkerKind - тип маркера на карте
type MarkerKind string

const (
	MarkerKindUser        MarkerKind = "user"
	MarkerKindParquimetro MarkerKind = "parquimetro"
)

// Marker - маркер, размещенный на карте
type Marker struct {
	ID         string     `json:"id"`
	Kind       MarkerKind `json:"kind"`
	Coordinate Coordinate `json:"coordinate"`
	Title      string     `json:"title,omitempty"`
	Icon       string     `json:"icon,omitempty"`
	IconSize   int        `json:"icon_size,omitempty"`
}

// MapView - состояние виджета карты
type MapView struct {
	Style       string     `json:"style"`
	Center      Coordinate `json:"center"`
	Zoom        float64    `json:"zoom"`
	Constructed bool       `json:"constructed"`
	Loaded      bool       `json:"loaded"`
}

// MapCommandType - инструкция рендеринга для клиентского виджета
type MapCommandType string

const (
	CommandCreateMap  MapCommandType = "create_map"
	CommandAddMarker  MapCommandType = "add_marker"
	CommandMoveMarker MapCommandType = "move_marker"
	CommandFlyTo      MapCommandType = "fly_to"
)

// MapCommand - одна инструкция, которую браузер воспроизводит на своем виджете.
// Seq монотонно растет внутри сессии.
type MapCommand struct {
	Seq    int64          `json:"seq"`
	Type   MapCommandType `json:"type"`
	View   *MapView       `json:"view,omitempty"`
	Marker *Marker        `json:"marker,omitempty"`
	Center *Coordinate    `json:"center,omitempty"`
	Zoom   float64        `json:"zoom,omitempty"`
}

// MapState - сериализуемое состояние поверхности рендеринга одной сессии
type MapState struct {
	View     MapView      `json:"view"`
	Markers  []Marker     `json:"markers"`
	Commands []MapCommand `json:"commands"`
	NextSeq  int64        `json:"next_seq"`
}

// NewMapState - карта еще не создана
func NewMapState() MapState {
	return MapState{
		Markers:  []Marker{},
		Commands: []MapCommand{},
		NextSeq:  1,
	}
}

// CommandsAfter возвращает команды с Seq > afterSeq
func (s *MapState) CommandsAfter(afterSeq int64) []MapCommand {
	result := make([]MapCommand, 0)
	for _, cmd := range s.Commands {
		if cmd.Seq > afterSeq {
			result = append(result, cmd)
		}
	}
	return result
}

// CountMarkers считает маркеры заданного типа
func (s *MapState) CountMarkers(kind MarkerKind) int {
	n := 0
	for _, m := range s.Markers {
		if m.Kind == kind {
			n++
		}
	}
	return n
}

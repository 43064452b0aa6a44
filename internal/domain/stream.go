package domain

import (
	"time"

	"github.com/google/uuid"
)

// Stream names
const (
	StreamPositionChanged = "stream:position:changed"
)

// PositionChangedEvent - позиция пользователя изменилась, нужно определить город
type PositionChangedEvent struct {
	SessionID  uuid.UUID  `json:"session_id"`
	Coordinate Coordinate `json:"coordinate"`
	ObservedAt time.Time  `json:"observed_at"`
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}

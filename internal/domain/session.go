package domain

import (
	"time"

	"github.com/google/uuid"
)

// PositionState - живая позиция пользователя
type PositionState struct {
	CurrentPosition  Coordinate  `json:"current_position"`
	PreviousPosition *Coordinate `json:"previous_position"`
	HasFix           bool        `json:"has_fix"`
}

// ChangedFrom сообщает, отличается ли новая позиция от предыдущей.
// Если предыдущей нет - считается изменением.
func (p *PositionState) ChangedFrom(next Coordinate) bool {
	return p.PreviousPosition == nil || !p.PreviousPosition.Equal(next)
}

// MapSession - владеемое состояние одного экземпляра карты (одна вкладка браузера)
type MapSession struct {
	ID        uuid.UUID      `json:"id"`
	Selection SelectionState `json:"selection"`
	Position  PositionState  `json:"position"`
	Map       MapState       `json:"map"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// NewMapSession создает пустую сессию
func NewMapSession(now time.Time) *MapSession {
	return &MapSession{
		ID:        uuid.New(),
		Selection: NewSelectionState(),
		Map:       NewMapState(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

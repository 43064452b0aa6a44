package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/parquimetro-map/internal/domain"
)

// SessionRepository хранит состояние сессий карты
type SessionRepository interface {
	// Get возвращает сессию; nil, если ее нет или она истекла
	Get(ctx context.Context, id uuid.UUID) (*domain.MapSession, error)

	// Save сохраняет сессию целиком
	Save(ctx context.Context, session *domain.MapSession) error

	// Delete удаляет сессию
	Delete(ctx context.Context, id uuid.UUID) error
}

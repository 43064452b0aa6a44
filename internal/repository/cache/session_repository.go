package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/parquimetro-map/internal/domain"
	"github.com/parquimetro-map/internal/domain/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type sessionRepository struct {
	client *redis.Client
	logger *zap.Logger
	ttl    time.Duration
}

// NewSessionRepository создает хранилище сессий в Redis; каждое сохранение продлевает TTL
func NewSessionRepository(redis *Redis, ttl time.Duration) repository.SessionRepository {
	return &sessionRepository{
		client: redis.Client(),
		logger: redis.logger,
		ttl:    ttl,
	}
}

func sessionKey(id uuid.UUID) string {
	return "session:" + id.String()
}

func (r *sessionRepository) Get(ctx context.Context, id uuid.UUID) (*domain.MapSession, error) {
	data, err := r.client.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to load session", zap.String("session_id", id.String()), zap.Error(err))
		return nil, fmt.Errorf("session get error: %w", err)
	}

	var session domain.MapSession
	if err := json.Unmarshal(data, &session); err != nil {
		r.logger.Error("Failed to unmarshal session", zap.String("session_id", id.String()), zap.Error(err))
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &session, nil
}

func (r *sessionRepository) Save(ctx context.Context, session *domain.MapSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := r.client.Set(ctx, sessionKey(session.ID), data, r.ttl).Err(); err != nil {
		r.logger.Error("Failed to save session", zap.String("session_id", session.ID.String()), zap.Error(err))
		return fmt.Errorf("session set error: %w", err)
	}
	return nil
}

func (r *sessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		r.logger.Error("Failed to delete session", zap.String("session_id", id.String()), zap.Error(err))
		return fmt.Errorf("session delete error: %w", err)
	}
	return nil
}

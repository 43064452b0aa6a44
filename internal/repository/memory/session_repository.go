package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/parquimetro-map/internal/domain"
	"github.com/parquimetro-map/internal/domain/repository"
)

type sessionEntry struct {
	data      []byte
	expiresAt time.Time
}

// sessionRepository хранит сессии в памяти процесса. Сессии хранятся
// сериализованными, чтобы вызывающий код не делил указатели с хранилищем.
type sessionRepository struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]sessionEntry
	ttl      time.Duration
	now      func() time.Time
}

// NewSessionRepository создает in-memory хранилище сессий с TTL (0 - без истечения)
func NewSessionRepository(ttl time.Duration) repository.SessionRepository {
	return &sessionRepository{
		sessions: make(map[uuid.UUID]sessionEntry),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (r *sessionRepository) Get(ctx context.Context, id uuid.UUID) (*domain.MapSession, error) {
	r.mu.RLock()
	entry, ok := r.sessions[id]
	r.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if !entry.expiresAt.IsZero() && r.now().After(entry.expiresAt) {
		r.mu.Lock()
		delete(r.sessions, id)
		r.mu.Unlock()
		return nil, nil
	}

	var session domain.MapSession
	if err := json.Unmarshal(entry.data, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &session, nil
}

func (r *sessionRepository) Save(ctx context.Context, session *domain.MapSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	entry := sessionEntry{data: data}
	if r.ttl > 0 {
		entry.expiresAt = r.now().Add(r.ttl)
	}

	r.mu.Lock()
	r.sessions[session.ID] = entry
	r.mu.Unlock()
	return nil
}

func (r *sessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
	return nil
}

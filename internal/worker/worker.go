package worker

import (
	"context"
)

// Worker интерфейс для всех воркеров
type Worker interface {
	// Start запускает воркер и блокирует до остановки
	Start(ctx context.Context) error

	// Stop сигнализирует воркеру завершиться
	Stop() error

	// Name возвращает имя воркера
	Name() string
}

// BatchFunc обрабатывает очередную пачку сообщений и возвращает их количество
type BatchFunc func(ctx context.Context) (int, error)

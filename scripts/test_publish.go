//go:build ignore

// Публикует PositionChangedEvent в stream:position:changed, имитируя движение
// пользователя по центру Monterrey. Запуск: go run scripts/test_publish.go -redis localhost:6379
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/parquimetro-map/internal/domain"
	redisRepo "github.com/parquimetro-map/internal/repository/redis"
)

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	steps := flag.Int("steps", 5, "Number of position ticks to publish")
	interval := flag.Duration("interval", time.Second, "Delay between ticks")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	streamRepo := redisRepo.NewStreamRepository(client, zap.NewNop())
	sessionID := uuid.New()
	start := domain.NewCoordinate(-100.3161, 25.6714)

	for i := 0; i < *steps; i++ {
		event := domain.PositionChangedEvent{
			SessionID:  sessionID,
			Coordinate: domain.NewCoordinate(start.Lon+float64(i)*0.001, start.Lat+float64(i)*0.0005),
			ObservedAt: time.Now().UTC(),
		}

		if err := streamRepo.PublishToStream(ctx, domain.StreamPositionChanged, event); err != nil {
			log.Fatalf("Failed to publish event: %v", err)
		}

		fmt.Printf("Published tick %d: session=%s coordinate=%s\n", i+1, sessionID, event.Coordinate)

		if i < *steps-1 {
			time.Sleep(*interval)
		}
	}

	length, err := client.XLen(ctx, domain.StreamPositionChanged).Result()
	if err != nil {
		log.Fatalf("Failed to read stream length: %v", err)
	}
	fmt.Printf("Stream %s now holds %d messages. Watch the worker log for \"Te encuentras en\".\n",
		domain.StreamPositionChanged, length)
}

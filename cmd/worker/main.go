package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/parquimetro-map/internal/config"
	domainRepo "github.com/parquimetro-map/internal/domain/repository"
	"github.com/parquimetro-map/internal/infrastructure/mapbox"
	"github.com/parquimetro-map/internal/pkg/logger"
	"github.com/parquimetro-map/internal/repository/cache"
	redisRepo "github.com/parquimetro-map/internal/repository/redis"
	"github.com/parquimetro-map/internal/usecase"
	"github.com/parquimetro-map/internal/worker"
	"github.com/parquimetro-map/internal/worker/geocode"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Check if worker is enabled
	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting City Lookup Worker")
	log.Info("Configuration loaded",
		zap.String("redis_addr", cfg.GetRedisAddr()),
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Int("batch_size", cfg.Worker.BatchSize),
		zap.Duration("lookup_timeout", cfg.Geocode.LookupTimeout),
		zap.Bool("geocode_cache", cfg.Geocode.CacheEnabled))

	if cfg.Geocode.Dispatch != config.GeocodeDispatchStream {
		log.Warn("GEOCODE_DISPATCH is not 'stream', the API resolves cities inline and this worker will stay idle")
	}

	// 3. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 4. Initialize repositories
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)
	mapboxClient := mapbox.NewMapboxClient(&cfg.Mapbox, log)

	var cacheRepo domainRepo.CacheRepository
	if cfg.Geocode.CacheEnabled {
		cacheRepo = cache.NewCacheRepository(redisClient)
	}

	// 5. Initialize use cases
	geocodeUC := usecase.NewGeocodeUseCase(
		mapboxClient,
		cacheRepo,
		log,
		cfg.Geocode.CacheTTL,
		cfg.Mapbox.SearchLimit,
	)

	// 6. Initialize workers
	cityWorker := geocode.NewCityLookupWorker(
		streamRepo,
		geocodeUC,
		cfg.Worker.ConsumerGroup,
		cfg.Worker.BatchSize,
		cfg.Geocode.LookupTimeout,
		log,
	)

	// 7. Create worker manager and register workers
	workerManager := worker.NewWorkerManager(log)
	workerManager.Register(cityWorker)

	// 8. Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	cancel()

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}

package main

// @title Parquimetro Map API
// @version 1.0.0
// @description Карта паркоматов. Браузер присылает тики геолокации и события UI, сервис ведет состояние карты сессии и отдает команды рендеринга для Mapbox GL.
// @description
// @description Основные возможности:
// @description - Сессия карты на вкладку: создание карты по первой позиции, маркер пользователя, пины паркоматов
// @description - Каскадный фильтр municipio -> ciudad с перелетом камеры
// @description - Обратное геокодирование через Mapbox и поиск мест

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/parquimetro-map/docs"
	"github.com/parquimetro-map/internal/config"
	httpDelivery "github.com/parquimetro-map/internal/delivery/http"
	"github.com/parquimetro-map/internal/delivery/http/handler"
	"github.com/parquimetro-map/internal/domain"
	domainRepo "github.com/parquimetro-map/internal/domain/repository"
	"github.com/parquimetro-map/internal/infrastructure/mapbox"
	"github.com/parquimetro-map/internal/infrastructure/mapview"
	"github.com/parquimetro-map/internal/pkg/logger"
	"github.com/parquimetro-map/internal/repository/cache"
	"github.com/parquimetro-map/internal/repository/memory"
	"github.com/parquimetro-map/internal/repository/postgres"
	redisRepo "github.com/parquimetro-map/internal/repository/redis"
	"github.com/parquimetro-map/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Parquimetro Map API")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("catalog_source", cfg.Catalog.Source),
		zap.String("session_store", cfg.Session.Store),
		zap.String("geocode_dispatch", cfg.Geocode.Dispatch),
		zap.Bool("geocode_cache", cfg.Geocode.CacheEnabled),
	)

	if cfg.Mapbox.AccessToken == "" {
		log.Warn("MAPBOX_ACCESS_TOKEN is empty, map and geocoding requests will be rejected by Mapbox")
	}

	healthHandler := handler.NewHealthHandler(log)

	// 3. Catalog: встроенный набор или PostgreSQL
	var catalogRepo domainRepo.CatalogRepository
	var db *postgres.DB
	switch cfg.Catalog.Source {
	case config.CatalogSourcePostgres:
		db, err = postgres.New(&cfg.Database, log)
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := db.EnsureSchema(ctx); err != nil {
			cancel()
			log.Fatal("Failed to ensure catalog schema", zap.Error(err))
		}
		municipios, ciudades, parquimetros := memory.Dataset()
		seeded, err := db.SeedCatalog(ctx, municipios, ciudades, parquimetros)
		cancel()
		if err != nil {
			log.Fatal("Failed to seed catalog", zap.Error(err))
		}
		log.Info("PostgreSQL catalog ready", zap.Bool("seeded", seeded))

		catalogRepo = postgres.NewCatalogRepository(db)
		healthHandler.Register("postgres", db)
	default:
		catalogRepo = memory.NewCatalogRepository()
		log.Info("Using built-in catalog")
	}

	// 4. Connect to Redis (только если он нужен)
	var redisClient *cache.Redis
	if cfg.NeedsRedis() {
		redisClient, err = cache.NewRedis(&cfg.Redis, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		healthHandler.Register("redis", redisClient)
	}

	// 5. Initialize Repositories
	var sessionRepo domainRepo.SessionRepository
	if cfg.Session.Store == config.SessionStoreRedis {
		sessionRepo = cache.NewSessionRepository(redisClient, cfg.Session.TTL)
	} else {
		sessionRepo = memory.NewSessionRepository(cfg.Session.TTL)
	}

	var cacheRepo domainRepo.CacheRepository
	if cfg.Geocode.CacheEnabled {
		cacheRepo = cache.NewCacheRepository(redisClient)
	}

	mapboxClient := mapbox.NewMapboxClient(&cfg.Mapbox, log)

	log.Info("Repositories initialized")

	// 6. Initialize Use Cases
	geocodeUC := usecase.NewGeocodeUseCase(
		mapboxClient,
		cacheRepo,
		log,
		cfg.Geocode.CacheTTL,
		cfg.Mapbox.SearchLimit,
	)

	var dispatcher usecase.CityLookupDispatcher
	var inline *usecase.InlineCityLookup
	if cfg.Geocode.Dispatch == config.GeocodeDispatchStream {
		streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)
		dispatcher = usecase.NewStreamCityLookup(streamRepo, cfg.Geocode.LookupTimeout, log)
		log.Info("City lookups are published to Redis stream", zap.String("stream", domain.StreamPositionChanged))
	} else {
		inline = usecase.NewInlineCityLookup(geocodeUC, cfg.Geocode.LookupTimeout, log)
		dispatcher = inline
	}

	sessionUC := usecase.NewMapSessionUseCase(
		sessionRepo,
		catalogRepo,
		dispatcher,
		func(state *domain.MapState) usecase.MapSurface { return mapview.NewCanvas(state) },
		cfg.Mapbox.StyleURL,
		log,
	)

	catalogUC := usecase.NewCatalogUseCase(catalogRepo, log)

	log.Info("Use cases initialized")

	// 7. Initialize HTTP Server
	server := httpDelivery.NewServer(cfg, log, httpDelivery.Handlers{
		Health:  healthHandler,
		Config:  handler.NewConfigHandler(&cfg.Mapbox),
		Catalog: handler.NewCatalogHandler(catalogUC, log),
		Session: handler.NewSessionHandler(sessionUC, log),
		Geocode: handler.NewGeocodeHandler(geocodeUC, log),
	})

	log.Info("HTTP server initialized")

	// 8. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 9. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	// дождаться определения города, запущенного последними тиками
	if inline != nil {
		inline.Wait()
	}

	if db != nil {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL", zap.Error(err))
		}
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis", zap.Error(err))
		}
	}

	log.Info("Server stopped successfully")
}

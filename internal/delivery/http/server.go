package http

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberutils "github.com/gofiber/fiber/v2/utils"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/parquimetro-map/internal/config"
	"github.com/parquimetro-map/internal/delivery/http/handler"
	"github.com/parquimetro-map/internal/delivery/http/middleware"
	"github.com/parquimetro-map/internal/pkg/errors"
	"github.com/parquimetro-map/internal/pkg/metrics"
	"github.com/parquimetro-map/internal/pkg/utils"
)

// Handlers - набор обработчиков HTTP API
type Handlers struct {
	Health  *handler.HealthHandler
	Config  *handler.ConfigHandler
	Catalog *handler.CatalogHandler
	Session *handler.SessionHandler
	Geocode *handler.GeocodeHandler
}

// Server - HTTP сервер на основе Fiber
type Server struct {
	app      *fiber.App
	config   *config.Config
	logger   *zap.Logger
	handlers Handlers
}

// NewServer - создание нового HTTP сервера
func NewServer(cfg *config.Config, logger *zap.Logger, handlers Handlers) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Parquimetro Map",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:      app,
		config:   cfg,
		logger:   logger,
		handlers: handlers,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// App - доступ к fiber.App (для тестов)
func (s *Server) App() *fiber.App {
	return s.app
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.Metrics())
	s.app.Use(middleware.CORS(s.config.Server.AllowOrigins))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)
	s.app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	api := s.app.Group("/api/v1")

	api.Get("/health", s.handlers.Health.Health)
	api.Get("/config/client", s.handlers.Config.ClientConfig)

	// Справочник
	api.Get("/municipios", s.handlers.Catalog.ListMunicipios)
	api.Get("/ciudades", s.handlers.Catalog.ListCiudades)
	api.Get("/parquimetros", s.handlers.Catalog.ListParquimetros)
	api.Get("/parquimetros.geojson", s.handlers.Catalog.ParquimetrosGeoJSON)

	// Сессии карты
	sessions := api.Group("/sessions")
	sessions.Post("/", s.handlers.Session.Create)
	sessions.Get("/:id", s.handlers.Session.Get)
	sessions.Delete("/:id", s.handlers.Session.Delete)
	sessions.Get("/:id/commands", s.handlers.Session.Commands)
	sessions.Get("/:id/markers.geojson", s.handlers.Session.MarkersGeoJSON)
	sessions.Post("/:id/position", s.handlers.Session.UpdatePosition)
	sessions.Post("/:id/geolocation-error", s.handlers.Session.ReportGeolocationError)
	sessions.Post("/:id/map-loaded", s.handlers.Session.MapLoaded)
	sessions.Put("/:id/municipio", s.handlers.Session.ChangeMunicipio)
	sessions.Put("/:id/ciudad", s.handlers.Session.ChangeCiudad)
	sessions.Post("/:id/back-to-position", s.handlers.Session.BackToCurrentPosition)
	sessions.Post("/:id/search-result", s.handlers.Session.SearchResultSelected)

	// Геокодирование
	api.Get("/geocode/reverse", s.handlers.Geocode.ReverseGeocode)
	api.Get("/geocode/search", s.handlers.Geocode.Search)
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - ошибки fiber (404 маршрута, 405, паника) в формате AppError
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if stderrors.As(err, &fe) {
			if fe.Code >= fiber.StatusInternalServerError {
				logger.Error("HTTP Error", zap.String("path", fiberutils.CopyString(c.Path())), zap.Int("status", fe.Code), zap.Error(err))
			}
			return c.Status(fe.Code).JSON(utils.ErrorResponse{
				Error: errors.New(codeForStatus(fe.Code), fe.Message, fe.Code),
			})
		}

		logger.Error("HTTP Error",
			zap.String("path", fiberutils.CopyString(c.Path())),
			zap.Int("status", fiber.StatusInternalServerError),
			zap.Error(err),
		)
		return utils.SendError(c, err)
	}
}

func codeForStatus(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusBadRequest:
		return "INVALID_REQUEST"
	default:
		if status >= fiber.StatusInternalServerError {
			return "INTERNAL_SERVER_ERROR"
		}
		return "HTTP_ERROR"
	}
}

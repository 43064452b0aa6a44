package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/parquimetro-map/internal/config"
	"github.com/parquimetro-map/internal/domain"
	"github.com/parquimetro-map/internal/pkg/utils"
	"github.com/parquimetro-map/internal/usecase/dto"
)

// ConfigHandler отдает браузеру параметры инициализации карты
type ConfigHandler struct {
	client dto.ClientConfigResponse
}

// NewConfigHandler - создание нового ConfigHandler
func NewConfigHandler(cfg *config.MapboxConfig) *ConfigHandler {
	styleURL := cfg.StyleURL
	if styleURL == "" {
		styleURL = domain.DefaultStyleURL
	}

	return &ConfigHandler{
		client: dto.ClientConfigResponse{
			AccessToken:         cfg.AccessToken,
			StyleURL:            styleURL,
			InitialZoom:         domain.InitialZoom,
			CiudadZoom:          domain.CiudadZoom,
			CurrentPositionZoom: domain.CurrentPositionZoom,
			SearchResultZoom:    domain.SearchResultZoom,
			WatchOptions:        domain.DefaultWatchOptions,
			Search: dto.SearchOptions{
				Placeholder: domain.SearchPlaceholder,
				Proximity:   domain.SearchProximity,
			},
			UserMarker: dto.UserMarkerOptions{
				Icon: domain.UserMarkerIcon,
				Size: domain.UserMarkerSize,
			},
		},
	}
}

// ClientConfig godoc
// @Summary Настройки клиента карты
// @Description Токен Mapbox, стиль, уровни zoom, параметры watchPosition и поиска
// @Tags Config
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.ClientConfigResponse}
// @Router /api/v1/config/client [get]
func (h *ConfigHandler) ClientConfig(c *fiber.Ctx) error {
	return utils.SendSuccess(c, h.client, nil)
}

package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/parquimetro-map/internal/pkg/utils"
	"github.com/parquimetro-map/internal/usecase"
	"github.com/parquimetro-map/internal/usecase/dto"
)

// GeocodeHandler - обработчик геокодирования
type GeocodeHandler struct {
	geocodeUC *usecase.GeocodeUseCase
	logger    *zap.Logger
}

// NewGeocodeHandler - создание нового GeocodeHandler
func NewGeocodeHandler(geocodeUC *usecase.GeocodeUseCase, logger *zap.Logger) *GeocodeHandler {
	return &GeocodeHandler{
		geocodeUC: geocodeUC,
		logger:    logger,
	}
}

// ReverseGeocode godoc
// @Summary Город по координате
// @Description Обратное геокодирование через Mapbox, город из context первого результата
// @Tags Geocode
// @Produce json
// @Param lat query number true "Широта"
// @Param lon query number true "Долгота"
// @Success 200 {object} utils.SuccessResponse{data=dto.ReverseGeocodeResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/geocode/reverse [get]
func (h *GeocodeHandler) ReverseGeocode(c *fiber.Ctx) error {
	var req dto.ReverseGeocodeRequest
	if err := bindQuery(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.geocodeUC.ReverseGeocode(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// Search godoc
// @Summary Поиск места
// @Description Прямое геокодирование для поля поиска на карте
// @Tags Geocode
// @Produce json
// @Param q query string true "Строка поиска"
// @Param limit query int false "Количество результатов" default(5)
// @Success 200 {object} utils.SuccessResponse{data=dto.GeocodeSearchResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/geocode/search [get]
func (h *GeocodeHandler) Search(c *fiber.Ctx) error {
	var req dto.GeocodeSearchRequest
	if err := bindQuery(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.geocodeUC.Search(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{Total: result.Total})
}

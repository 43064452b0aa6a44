package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/parquimetro-map/internal/domain"
	"github.com/parquimetro-map/internal/pkg/utils"
	"github.com/parquimetro-map/internal/usecase"
	"github.com/parquimetro-map/internal/usecase/dto"
)

// SessionHandler - обработчик событий карты одной вкладки браузера
type SessionHandler struct {
	sessionUC *usecase.MapSessionUseCase
	logger    *zap.Logger
}

// NewSessionHandler - создание нового SessionHandler
func NewSessionHandler(sessionUC *usecase.MapSessionUseCase, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		sessionUC: sessionUC,
		logger:    logger,
	}
}

// Create godoc
// @Summary Создать сессию карты
// @Description Новая сессия: ничего не выбрано, карта еще не создана
// @Tags Sessions
// @Produce json
// @Success 201 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/sessions [post]
func (h *SessionHandler) Create(c *fiber.Ctx) error {
	session, err := h.sessionUC.Create(c.UserContext())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendCreated(c, session)
}

// Get godoc
// @Summary Состояние сессии
// @Tags Sessions
// @Produce json
// @Param id path string true "ID сессии"
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id} [get]
func (h *SessionHandler) Get(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	session, err := h.sessionUC.Get(c.UserContext(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, session, nil)
}

// Delete godoc
// @Summary Удалить сессию
// @Tags Sessions
// @Param id path string true "ID сессии"
// @Success 204
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id} [delete]
func (h *SessionHandler) Delete(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	if err := h.sessionUC.Delete(c.UserContext(), id); err != nil {
		return utils.SendError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Commands godoc
// @Summary Команды рендеринга
// @Description Команды для виджета карты с seq больше after
// @Tags Sessions
// @Produce json
// @Param id path string true "ID сессии"
// @Param after query int false "Последний примененный seq"
// @Success 200 {object} utils.SuccessResponse{data=dto.CommandsResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/commands [get]
func (h *SessionHandler) Commands(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.CommandsRequest
	if err := bindQuery(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.sessionUC.Commands(c.UserContext(), id, req.After)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total:   len(result.Commands),
		LastSeq: result.LastSeq,
	})
}

// MarkersGeoJSON godoc
// @Summary Маркеры сессии в GeoJSON
// @Tags Sessions
// @Produce json
// @Param id path string true "ID сессии"
// @Success 200 {object} map[string]interface{} "GeoJSON FeatureCollection"
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/markers.geojson [get]
func (h *SessionHandler) MarkersGeoJSON(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	markers, err := h.sessionUC.Markers(c.UserContext(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return sendGeoJSON(c, markersFeatureCollection(markers))
}

// UpdatePosition godoc
// @Summary Тик геолокации
// @Description Первый тик создает карту, следующие перемещают маркер пользователя
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "ID сессии"
// @Param request body dto.PositionRequest true "Позиция"
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/position [post]
func (h *SessionHandler) UpdatePosition(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.PositionRequest
	if err := bindBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	session, err := h.sessionUC.UpdatePosition(c.UserContext(), id, req.ToGeoPosition())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, session, nil)
}

// ReportGeolocationError godoc
// @Summary Ошибка геолокации
// @Description Фиксирует отказ геолокации; состояние сессии не меняется
// @Tags Sessions
// @Accept json
// @Param id path string true "ID сессии"
// @Param request body dto.GeolocationErrorRequest true "Ошибка"
// @Success 204
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/geolocation-error [post]
func (h *SessionHandler) ReportGeolocationError(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.GeolocationErrorRequest
	if err := bindBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	geoErr := domain.GeolocationError{
		Code:    domain.GeolocationErrorCode(req.Code),
		Message: req.Message,
	}
	if err := h.sessionUC.ReportGeolocationError(c.UserContext(), id, geoErr); err != nil {
		return utils.SendError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// MapLoaded godoc
// @Summary Виджет карты загружен
// @Description Размещает маркер пользователя и пины паркоматов
// @Tags Sessions
// @Produce json
// @Param id path string true "ID сессии"
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/map-loaded [post]
func (h *SessionHandler) MapLoaded(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	session, err := h.sessionUC.MapLoaded(c.UserContext(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, session, nil)
}

// ChangeMunicipio godoc
// @Summary Выбор municipio
// @Description 0 сбрасывает выбор и блокирует список ciudades
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "ID сессии"
// @Param request body dto.MunicipioRequest true "Municipio"
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/municipio [put]
func (h *SessionHandler) ChangeMunicipio(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.MunicipioRequest
	if err := bindBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	session, err := h.sessionUC.ChangeMunicipio(c.UserContext(), id, req.MunicipioID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, session, nil)
}

// ChangeCiudad godoc
// @Summary Выбор ciudad
// @Description Камера летит к ciudad; неизвестный id ничего не меняет
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "ID сессии"
// @Param request body dto.CiudadRequest true "Ciudad"
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/ciudad [put]
func (h *SessionHandler) ChangeCiudad(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.CiudadRequest
	if err := bindBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	session, err := h.sessionUC.ChangeCiudad(c.UserContext(), id, req.CiudadID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, session, nil)
}

// BackToCurrentPosition godoc
// @Summary Вернуться к текущей позиции
// @Tags Sessions
// @Produce json
// @Param id path string true "ID сессии"
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/back-to-position [post]
func (h *SessionHandler) BackToCurrentPosition(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	session, err := h.sessionUC.BackToCurrentPosition(c.UserContext(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, session, nil)
}

// SearchResultSelected godoc
// @Summary Выбран результат поиска
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "ID сессии"
// @Param request body dto.SearchResultRequest true "Центр результата"
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/search-result [post]
func (h *SessionHandler) SearchResultSelected(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.SearchResultRequest
	if err := bindBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	session, err := h.sessionUC.SearchResultSelected(c.UserContext(), id, req.Coordinate())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, session, nil)
}

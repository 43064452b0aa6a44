package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/parquimetro-map/internal/pkg/utils"
	"github.com/parquimetro-map/internal/usecase"
	"github.com/parquimetro-map/internal/usecase/dto"
)

// CatalogHandler - обработчик справочника municipios/ciudades/parquímetros
type CatalogHandler struct {
	catalogUC *usecase.CatalogUseCase
	logger    *zap.Logger
}

// NewCatalogHandler - создание нового CatalogHandler
func NewCatalogHandler(catalogUC *usecase.CatalogUseCase, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogUC: catalogUC,
		logger:    logger,
	}
}

// ListMunicipios godoc
// @Summary Список муниципалитетов
// @Description Опции первого выпадающего списка
// @Tags Catalog
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Municipio}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/municipios [get]
func (h *CatalogHandler) ListMunicipios(c *fiber.Ctx) error {
	municipios, err := h.catalogUC.ListMunicipios(c.UserContext())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, municipios, &utils.Meta{Total: len(municipios)})
}

// ListCiudades godoc
// @Summary Ciudades муниципалитета
// @Description Каскадный фильтр: ciudades с заданным municipio_id. Без municipio_id (или 0) список пуст.
// @Tags Catalog
// @Produce json
// @Param municipio_id query int false "ID муниципалитета"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Ciudad}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/ciudades [get]
func (h *CatalogHandler) ListCiudades(c *fiber.Ctx) error {
	var req dto.CiudadesRequest
	if err := bindQuery(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	ciudades, err := h.catalogUC.ListCiudades(c.UserContext(), req.MunicipioID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, ciudades, &utils.Meta{Total: len(ciudades)})
}

// ListParquimetros godoc
// @Summary Список паркоматов
// @Tags Catalog
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Parquimetro}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/parquimetros [get]
func (h *CatalogHandler) ListParquimetros(c *fiber.Ctx) error {
	parquimetros, err := h.catalogUC.ListParquimetros(c.UserContext())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, parquimetros, &utils.Meta{Total: len(parquimetros)})
}

// ParquimetrosGeoJSON godoc
// @Summary Паркоматы в GeoJSON
// @Description FeatureCollection точек с description в properties
// @Tags Catalog
// @Produce json
// @Success 200 {object} map[string]interface{} "GeoJSON FeatureCollection"
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/parquimetros.geojson [get]
func (h *CatalogHandler) ParquimetrosGeoJSON(c *fiber.Ctx) error {
	parquimetros, err := h.catalogUC.ListParquimetros(c.UserContext())
	if err != nil {
		return utils.SendError(c, err)
	}

	return sendGeoJSON(c, parquimetrosFeatureCollection(parquimetros))
}

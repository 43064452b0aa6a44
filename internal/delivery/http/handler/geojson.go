package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/parquimetro-map/internal/domain"
	"github.com/parquimetro-map/internal/pkg/utils"
)

func sendGeoJSON(c *fiber.Ctx, fc *geojson.FeatureCollection) error {
	body, err := fc.MarshalJSON()
	if err != nil {
		return utils.SendError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/geo+json")
	return c.Send(body)
}

// markersFeatureCollection конвертирует маркеры в GeoJSON FeatureCollection
func markersFeatureCollection(markers []domain.Marker) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, m := range markers {
		f := geojson.NewFeature(orb.Point{m.Coordinate.Lon, m.Coordinate.Lat})
		f.ID = m.ID
		f.Properties["kind"] = string(m.Kind)
		if m.Title != "" {
			f.Properties["title"] = m.Title
		}
		if m.Icon != "" {
			f.Properties["icon"] = m.Icon
			f.Properties["icon_size"] = m.IconSize
		}
		fc.Append(f)
	}
	return fc
}

func parquimetrosFeatureCollection(parquimetros []domain.Parquimetro) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, p := range parquimetros {
		f := geojson.NewFeature(orb.Point{p.Coordenada.Lon, p.Coordenada.Lat})
		f.ID = p.ID
		f.Properties["description"] = p.Description
		fc.Append(f)
	}
	return fc
}

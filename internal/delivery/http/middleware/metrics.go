package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/parquimetro-map/internal/pkg/metrics"
)

// Metrics - длительность запросов по шаблону маршрута
func Metrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		metrics.HTTPRequestDurationMs.
			WithLabelValues(utils.CopyString(c.Method()), routeLabel(c), strconv.Itoa(status)).
			Observe(float64(time.Since(start).Microseconds()) / 1000)

		return err
	}
}

// routeLabel - шаблон маршрута, а не путь: uuid сессий не должны плодить серии.
// Если ни один обработчик не совпал, последним остается маршрут middleware.
func routeLabel(c *fiber.Ctx) string {
	route := c.Route()
	if route == nil || route.Method == methodUse || route.Path == "" {
		return unmatchedRoute
	}
	return route.Path
}

const (
	methodUse      = "USE"
	unmatchedRoute = "unmatched"
)

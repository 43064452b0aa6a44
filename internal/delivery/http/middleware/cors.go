package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CORS - middleware для браузерного клиента карты. allowOrigins - список через запятую;
// для "*" credentials отключаются (fiber не допускает такую комбинацию).
func CORS(allowOrigins string) fiber.Handler {
	wildcard := strings.TrimSpace(allowOrigins) == "*"

	return cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Content-Type,Accept,Accept-Language,Authorization",
		AllowCredentials: !wildcard,
	})
}

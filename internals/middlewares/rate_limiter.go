// file: internals/middlewares/rate_limiter.go
package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"academyku_backend/internals/configs"
)

// RateLimiterMiddleware: batasi request per IP (default 120 req/menit).
func RateLimiterMiddleware() fiber.Handler {
	max := configs.GetEnvInt("RATE_LIMIT_MAX", 120)

	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"message": "Terlalu banyak request, coba lagi nanti",
			})
		},
	})
}

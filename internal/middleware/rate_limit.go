package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// RateLimit throttles a route group per caller. Authenticated callers are
// keyed by their actor id; anonymous ones (guest-join probing a room link)
// fall back to the client IP.
func RateLimit(identifier string, max int, window time.Duration) fiber.Handler {
	if max <= 0 {
		max = 30
	}
	if window <= 0 {
		window = time.Minute
	}

	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			caller := ActorFromCtx(c).ID
			if caller == "" {
				caller = c.IP()
			}
			return identifier + ":" + caller
		},
	})
}

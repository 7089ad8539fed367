package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/example/tavola/internal/ratelimit"
)

// RateLimit rejects requests once the client IP exhausts its fixed window,
// answering 429 with a Retry-After hint.
func RateLimit(limiter *ratelimit.Limiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.IP()
		if !limiter.Allow(key) {
			retryAfter := time.Until(limiter.ResetAt(key))
			if retryAfter < 0 {
				retryAfter = 0
			}
			c.Set(fiber.HeaderRetryAfter, fmt.Sprintf("%d", int(retryAfter.Seconds())+1))
			return fiber.NewError(fiber.StatusTooManyRequests, "too many submissions, please try again later")
		}
		return c.Next()
	}
}

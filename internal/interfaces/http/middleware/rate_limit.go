// internal/interfaces/http/middleware/rate_limit.go
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	redisstore "github.com/your-org/ecart-storefront/internal/infrastructure/database/redis"
)

// RateLimit implements a fixed one-minute window per client IP in Redis.
// A nil client, a non-positive limit or a Redis outage lets requests through.
func RateLimit(limit int, client *redisstore.Client, logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil || limit <= 0 {
			c.Next()
			return
		}

		key := client.Key("rate_limit", c.ClientIP())

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		current, err := client.Redis.Get(ctx, key).Int()
		if err != nil && !errors.Is(err, redis.Nil) {
			logger.WithError(err).Warn("Rate limiter unavailable")
			c.Next()
			return
		}

		// Check if limit exceeded
		if current >= limit {
			c.Header("Retry-After", "60")
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Rate limit exceeded",
				"retry_after": 60,
			})
			c.Abort()
			return
		}

		// Increment counter; the window starts at the first request
		n, err := client.Redis.Incr(ctx, key).Result()
		if err != nil {
			logger.WithError(err).Warn("Rate limiter failed to count request")
		} else if n == 1 {
			client.Redis.Expire(ctx, key, time.Minute)
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(limit-current-1))

		c.Next()
	}
}

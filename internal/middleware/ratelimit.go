package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pouriamv/art-market-api/internal/service"
	"github.com/pouriamv/art-market-api/pkg/apperror"
	"github.com/pouriamv/art-market-api/pkg/response"
	"github.com/redis/go-redis/v9"
)

// RateLimit enforces one request per window per client IP for the given
// action. With a nil redis client it is a no-op.
func RateLimit(rdb *redis.Client, action string, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := service.CheckAndSetRateLimit(c.Request.Context(), rdb, c.ClientIP(), action, window)
		if err != nil {
			// Redis being down must not take the auth endpoints with it.
			log.Printf("rate limit check failed for %s: %v", action, err)
			c.Next()
			return
		}
		if !allowed {
			response.Error(c, apperror.ErrRateLimitExceeded)
			c.Abort()
			return
		}
		c.Next()
	}
}

package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/medbooksvc/domain"
)

// RateLimit creates per-client-IP throttling middleware backed by the given
// limiter. When Redis is unreachable the request is allowed through; the
// limiter must never take the API down with it.
func RateLimit(limiter domain.RateLimiter) gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		allowed, _, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			log.Printf("RATE_LIMIT_CHECK_FAILED: ip=%s error=%v", c.ClientIP(), err)
			c.Next()
			return
		}

		if !allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "Too many requests, please try again later",
			})
			c.Abort()
			return
		}

		c.Next()
	})
}

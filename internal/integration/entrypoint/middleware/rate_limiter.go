// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/backend/internal/application/adapter"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
)

// RateLimit returns a handler that counts requests per client IP under scope.
// Limiter failures let the request through.
func RateLimit(limiter adapter.RateLimiter, scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		if clientIP == "" {
			clientIP = c.Request.RemoteAddr
		}

		allowed, retryAfter, err := limiter.Allow(c.Request.Context(), scope+":"+clientIP)
		if err != nil {
			slog.Warn("Rate limiter unavailable", "scope", scope, "error", err)
			c.Next()
			return
		}

		if !allowed {
			seconds := int(math.Ceil(retryAfter.Seconds()))
			if seconds < 1 {
				seconds = 1
			}
			c.Header("Retry-After", strconv.Itoa(seconds))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many requests. Please try again later.",
				Code:  string(domainerror.ErrCodeRateLimited),
			})
			return
		}

		c.Next()
	}
}

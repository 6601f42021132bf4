package middleware

import (
	"context"
	"math"
	"strconv"
	"time"

	"gigup_backend/internal/logger"
	"gigup_backend/internal/metrics"
	"gigup_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type Limiter interface {
	Allow(ctx context.Context, key string) (bool, time.Duration, error)
}

// RateLimitMiddleware ограничивает запросы с одного IP на маршрут.
// Недоступный redis не блокирует трафик.
func RateLimitMiddleware(limiter Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		allowed, wait, err := limiter.Allow(c.Request.Context(), path+":"+c.ClientIP())
		if err != nil {
			logger.CtxWithError(c.Request.Context(), "Rate limiter unavailable", err)
			c.Next()
			return
		}
		if !allowed {
			metrics.RateLimitedTotal.WithLabelValues(path).Inc()
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
			apperrors.HandleError(c, apperrors.ErrRateLimited)
			return
		}
		c.Next()
	}
}

package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/socialpulse/socialpulse-go/internal/infrastructure/observability/logging"
	"github.com/socialpulse/socialpulse-go/pkg/config"
)

// SlowRequestMiddleware flags requests that exceed the configured threshold.
func SlowRequestMiddleware(logger *logging.ChanneledLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if elapsed := time.Since(start); elapsed > config.SlowRequestThreshold {
			logger.LogSlowRequest(c.Request.Method+" "+c.FullPath(), elapsed)
		}
	}
}

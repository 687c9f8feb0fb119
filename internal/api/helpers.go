package api

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/cinelake/cinelake/internal/middleware"
)

// maxPaginationLimit caps the maximum number of items per page.
const maxPaginationLimit = 500

// maxPaginationOffset caps the maximum offset for paginated queries.
const maxPaginationOffset = 1_000_000

func ginLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		fields := logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
			"client":   c.ClientIP(),
		}
		if rid, exists := c.Get(middleware.RequestIDKey); exists {
			fields["request_id"] = rid
		}
		log.WithFields(fields).Info("request")
	}
}

func parseInt(s string, fallback int) int {
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return fallback
	}

	if v > maxPaginationLimit {
		return maxPaginationLimit
	}

	return v
}

func parseOffset(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0
	}

	if v > maxPaginationOffset {
		return maxPaginationOffset
	}

	return v
}

package web

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cvvishnuu/portfolio/internal/store"
)

// requestLogger emits one structured record per request.
func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"htmx", c.GetHeader("HX-Request") == "true",
		)
	}
}

var untrackedPrefixes = []string{"/static/", "/admin/", "/favicon", "/privacy", "/healthz"}

// visitorTracking records page views with hashed client addresses. Static
// assets, admin pages, non-GET requests and requests carrying DNT: 1 are
// skipped.
func visitorTracking(st *store.Store, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, prefix := range untrackedPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}
		if c.Request.Method != http.MethodGet || c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		if err := st.RecordVisit(c.Request.Context(), c.ClientIP(), c.GetHeader("User-Agent"), path); err != nil {
			logger.Warn("error recording visitor", "error", err)
		}
		c.Next()
	}
}

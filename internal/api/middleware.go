package api

import (
	"strconv"
	"time"

	"schemesathi/internal/common/metrics"
	validatesession "schemesathi/internal/workers/session/validate-session"

	"github.com/gin-gonic/gin"
)

const userIDKey = "userId"

func (s *Server) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := s.handlers.Session.Execute(c.Request.Context(), &validatesession.Input{
			Authorization: c.GetHeader("Authorization"),
		})
		if err != nil {
			s.writeError(c, err)
			c.Abort()
			return
		}
		c.Set(userIDKey, out.UserID)
		c.Next()
	}
}

func currentUser(c *gin.Context) string {
	return c.GetString(userIDKey)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()

		fields := map[string]interface{}{
			"method":   c.Request.Method,
			"route":    route,
			"status":   status,
			"duration": time.Since(start).Milliseconds(),
		}
		if uid := currentUser(c); uid != "" {
			fields["userId"] = uid
		}
		if status >= 500 {
			s.logger.Error("request failed", fields)
			return
		}
		s.logger.Info("request served", fields)
	}
}

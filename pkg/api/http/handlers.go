package http

import (
	"net/http"
	"time"

	"github.com/aescanero/catalogo/internal/database"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// handleRoot serves the liveness greeting
func (s *Server) handleRoot(c *gin.Context) {
	c.String(http.StatusOK, Greeting)
}

// HealthResponse represents the latest database health check
type HealthResponse struct {
	Status    string     `json:"status"`
	Error     string     `json:"error,omitempty"`
	CheckedAt *time.Time `json:"checked_at,omitempty"`
}

// handleHealth reports the latest stored health check
func (s *Server) handleHealth(c *gin.Context) {
	if s.health == nil {
		c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
		return
	}

	status := s.health.GetStatus()
	if status.CheckedAt.IsZero() {
		c.JSON(http.StatusServiceUnavailable, HealthResponse{
			Status: "unavailable",
			Error:  "database health check has not run yet",
		})
		return
	}

	if !status.Healthy {
		c.JSON(http.StatusServiceUnavailable, HealthResponse{
			Status:    "unavailable",
			Error:     status.Error,
			CheckedAt: &status.CheckedAt,
		})
		return
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		CheckedAt: &status.CheckedAt,
	})
}

// queryHandler serves every row produced by the route's statement
func (s *Server) queryHandler(route QueryRoute) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		rows, err := s.querier.Query(c.Request.Context(), route.Statement)
		s.metrics.ObserveQueryDuration(route.Path, time.Since(start))

		if err != nil {
			kind := database.Kind(err)
			s.metrics.IncQueryErrors(route.Path, kind)
			s.logger.Error("query failed",
				zap.String("route", route.Path),
				zap.String("kind", kind),
				zap.Error(err))
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error: database.Describe(err),
			})
			return
		}

		c.JSON(http.StatusOK, rows)
	}
}

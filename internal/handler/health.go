package handler

import (
	"context"
	"net/http"
	"time"

	"physio-service/pkg/database"
	"physio-service/pkg/logger"
	"physio-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// HealthCheck reports liveness and whether the database answers.
func (h *Handler) HealthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	if err := database.Ping(ctx, h.db); err != nil {
		logger.FromEcho(c).Error("Database ping failed", zap.Error(err))
		return c.JSON(http.StatusServiceUnavailable, echo.Map{
			"status":   "unhealthy",
			"service":  "physio-service",
			"database": "unreachable",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":   "healthy",
		"service":  "physio-service",
		"database": "ok",
	})
}

// MetricsHandler serves the Prometheus exposition.
func MetricsHandler(c echo.Context) error {
	prometheus.GetPrometheusHandler().ServeHTTP(c.Response(), c.Request())
	return nil
}

package middleware

import (
	"physio-service/pkg/logger"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RequestIDKey is the header carrying the request id in both directions.
const RequestIDKey = "X-Request-ID"

// RequestIDMiddleware tags each request with an id, reusing the caller's one
// when present, and stores a logger carrying it for the handlers.
func RequestIDMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Request().Header.Get(RequestIDKey)
			if requestID == "" {
				requestID = uuid.New().String()
				c.Request().Header.Set(RequestIDKey, requestID)
			}
			c.Response().Header().Set(RequestIDKey, requestID)

			ctxLogger := logger.GetLogger().With(zap.String("request_id", requestID))
			c.Set(logger.EchoKey, ctxLogger)
			c.SetRequest(c.Request().WithContext(logger.WithContext(c.Request().Context(), ctxLogger)))

			return next(c)
		}
	}
}

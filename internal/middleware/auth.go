package middleware

import (
	"errors"
	"net/http"
	"strings"

	"physio-service/pkg/jwtutil"
	"physio-service/pkg/logger"
	"physio-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Keys under which the authenticated identity is stored on the echo.Context.
const (
	UserIDKey = "user_id"
	EmailKey  = "email"
	RoleKey   = "user_role"
)

// JWTAuthMiddleware validates the bearer token of the request and stores the
// caller's identity on the context. When the issuer runs with auth disabled
// the request passes through without an identity.
func JWTAuthMiddleware(jwtUtil *jwtutil.JWTUtil) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromEcho(c)

			if jwtUtil.Disabled() {
				return next(c)
			}

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				log.Warn("Missing authorization header")
				prometheus.RecordAuthError("missing_token")
				return unauthorized(c, "missing authorization token")
			}

			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				log.Warn("Invalid authorization header format")
				prometheus.RecordAuthError("invalid_auth_format")
				return unauthorized(c, "invalid authorization format, expected Bearer token")
			}

			claims, err := jwtUtil.ValidateToken(parts[1])
			if err != nil {
				if errors.Is(err, jwtutil.ErrExpiredToken) {
					prometheus.RecordAuthError("expired_token")
				} else {
					prometheus.RecordAuthError("invalid_token")
				}
				log.Warn("Invalid or expired token", zap.Error(err))
				return unauthorized(c, "invalid or expired token")
			}

			c.Set(UserIDKey, claims.UserID)
			c.Set(EmailKey, claims.Email)
			c.Set(RoleKey, claims.Role)
			log.Debug("JWT token validated",
				zap.Uint("user_id", claims.UserID),
				zap.String("email", claims.Email))

			return next(c)
		}
	}
}

// UserID returns the id of the authenticated caller, if any.
func UserID(c echo.Context) (uint, bool) {
	id, ok := c.Get(UserIDKey).(uint)
	return id, ok && id != 0
}

func unauthorized(c echo.Context, msg string) error {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	return c.JSON(http.StatusUnauthorized, echo.Map{"error": msg})
}

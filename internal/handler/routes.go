package handler

import (
	"physio-service/internal/middleware"
	"physio-service/pkg/logger"
	"physio-service/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

// NewServer builds the echo instance with the global middleware and all routes.
func NewServer(h *Handler, allowOrigins []string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// order matters
	e.Pre(echomiddleware.RemoveTrailingSlash())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     allowOrigins,
		AllowCredentials: true,
	}))
	e.Use(middleware.RequestIDMiddleware())
	e.Use(logger.Middleware())
	e.Use(prometheus.MetricsMiddleware())

	e.GET("/health", h.HealthCheck)
	e.GET("/metrics", MetricsHandler)

	e.POST("/users", h.Register)
	e.POST("/token", h.Token)
	e.POST("/login", h.Login)

	auth := middleware.JWTAuthMiddleware(h.tokens)

	users := e.Group("/users", auth)
	users.GET("", h.ListUsers)
	users.GET("/me", h.Me)
	users.GET("/:id", h.GetUser)
	users.GET("/:id/healthconditions", h.GetUserHealthConditions)
	users.POST("/:id/healthconditions", h.AddUserHealthCondition)

	exercices := e.Group("/exercices", auth)
	exercices.GET("", h.ListExercices)
	exercices.POST("", h.CreateExercice)
	exercices.GET("/:id", h.GetExercice)

	conditions := e.Group("/healthconditions", auth)
	conditions.GET("", h.ListHealthConditions)
	conditions.POST("", h.CreateHealthCondition)
	conditions.GET("/:id", h.GetHealthCondition)

	assignments := e.Group("/userexercice", auth)
	assignments.POST("", h.CreateUserExercice)
	assignments.GET("/:user_id", h.ListUserExercices)
	assignments.PATCH("/:id/checked", h.MarkUserExerciceChecked)

	e.GET("/user/:user_id/exercises", h.ExercisesForUser, auth)

	return e
}

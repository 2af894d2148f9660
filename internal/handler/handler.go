// Package handler exposes the physio services over HTTP with echo.
package handler

import (
	"physio-service/internal/repository"
	"physio-service/internal/service"
	"physio-service/pkg/jwtutil"

	"gorm.io/gorm"
)

// Handler bundles the services and repositories behind the HTTP routes.
type Handler struct {
	db               *gorm.DB
	tokens           *jwtutil.JWTUtil
	auth             *service.AuthService
	assignments      *service.AssignmentService
	conditions       *service.HealthConditionService
	users            *repository.UserRepository
	exercices        *repository.ExerciceRepository
	healthConditions *repository.HealthConditionRepository
}

// Option customizes a Handler.
type Option func(*Handler)

// WithHashCost sets the bcrypt cost used for new passwords.
func WithHashCost(cost int) Option {
	return func(h *Handler) {
		h.auth.WithHashCost(cost)
	}
}

// New wires the repositories and services on top of db.
func New(db *gorm.DB, tokens *jwtutil.JWTUtil, opts ...Option) *Handler {
	users := repository.NewUserRepository(db)
	exercices := repository.NewExerciceRepository(db)
	healthConditions := repository.NewHealthConditionRepository(db)
	assignments := repository.NewUserExerciceRepository(db)

	h := &Handler{
		db:               db,
		tokens:           tokens,
		auth:             service.NewAuthService(users, tokens),
		assignments:      service.NewAssignmentService(assignments, exercices, users),
		conditions:       service.NewHealthConditionService(healthConditions, users),
		users:            users,
		exercices:        exercices,
		healthConditions: healthConditions,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

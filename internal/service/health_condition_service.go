package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"physio-service/internal/model"
	"physio-service/internal/repository"
)

// HealthConditionStore persists health conditions.
type HealthConditionStore interface {
	Create(ctx context.Context, hc *model.HealthCondition) error
	GetByID(ctx context.Context, id uint) (*model.HealthCondition, error)
	GetByName(ctx context.Context, name string) (*model.HealthCondition, error)
}

// UserConditionLinker reads users and links them to a health condition.
type UserConditionLinker interface {
	GetByID(ctx context.Context, id uint) (*model.User, error)
	SetHealthCondition(ctx context.Context, userID, healthConditionID uint) error
}

// HealthConditionService manages the conditions attached to users.
// A condition is shared: many users may point to the same one.
type HealthConditionService struct {
	conditions HealthConditionStore
	users      UserConditionLinker
}

// NewHealthConditionService creates a new health condition service.
func NewHealthConditionService(conditions HealthConditionStore, users UserConditionLinker) *HealthConditionService {
	return &HealthConditionService{conditions: conditions, users: users}
}

// Create adds a condition to the catalogue. A taken name yields repository.ErrConflict.
func (s *HealthConditionService) Create(ctx context.Context, name, description string) (*model.HealthCondition, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	hc := &model.HealthCondition{Name: name, Description: description}
	if err := s.conditions.Create(ctx, hc); err != nil {
		return nil, err
	}
	return hc, nil
}

// ForUser returns the conditions of a user. It fails with repository.ErrNotFound
// when the user does not exist or has no condition.
func (s *HealthConditionService) ForUser(ctx context.Context, userID uint) ([]model.HealthCondition, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.HealthConditionID == nil {
		return nil, fmt.Errorf("user %d has no health condition: %w", userID, repository.ErrNotFound)
	}
	hc, err := s.conditions.GetByID(ctx, *user.HealthConditionID)
	if err != nil {
		return nil, err
	}
	return []model.HealthCondition{*hc}, nil
}

// AttachToUser links the user to the condition named name, creating the
// condition first if it is new. The description of an existing condition is
// left untouched.
func (s *HealthConditionService) AttachToUser(ctx context.Context, userID uint, name, description string) (*model.HealthCondition, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	hc, err := s.conditions.GetByName(ctx, name)
	if errors.Is(err, repository.ErrNotFound) {
		hc, err = s.Create(ctx, name, description)
		if errors.Is(err, repository.ErrConflict) {
			// created concurrently, use that one
			hc, err = s.conditions.GetByName(ctx, name)
		}
	}
	if err != nil {
		return nil, err
	}

	if err := s.users.SetHealthCondition(ctx, userID, hc.ID); err != nil {
		return nil, err
	}
	return hc, nil
}

package service

import (
	"context"
	"fmt"
	"time"

	"physio-service/internal/model"
	"physio-service/internal/repository"
	"physio-service/prometheus"
)

// AssignmentStore persists exercice assignments.
type AssignmentStore interface {
	Create(ctx context.Context, ue *model.UserExercice) error
	List(ctx context.Context, filter repository.UserExerciceFilter) ([]model.UserExercice, error)
	MarkChecked(ctx context.Context, id uint, checked bool) (*model.UserExercice, error)
}

// CatalogStore reads the exercise catalogue.
type CatalogStore interface {
	GetByID(ctx context.Context, id uint) (*model.Exercice, error)
	ListByIDs(ctx context.Context, ids []uint) ([]model.Exercice, error)
}

// UserLookup checks that a user exists.
type UserLookup interface {
	GetByID(ctx context.Context, id uint) (*model.User, error)
}

// AssignInput prescribes one exercice to one user on one day. Zero series or
// repetitions fall back to model.DefaultSeries and model.DefaultRepetitions.
type AssignInput struct {
	UserID      uint
	ExerciceID  uint
	Date        model.Date
	Optional    bool
	Checked     bool
	Series      int
	Repetitions int
}

// AssignmentService creates assignments and builds the per-day exercise view.
type AssignmentService struct {
	assignments AssignmentStore
	exercices   CatalogStore
	users       UserLookup
}

// NewAssignmentService creates a new assignment service.
func NewAssignmentService(assignments AssignmentStore, exercices CatalogStore, users UserLookup) *AssignmentService {
	return &AssignmentService{
		assignments: assignments,
		exercices:   exercices,
		users:       users,
	}
}

// Assign stores a new assignment after checking that both the user and the
// exercice exist.
func (s *AssignmentService) Assign(ctx context.Context, in AssignInput) (*model.UserExercice, error) {
	if in.UserID == 0 || in.ExerciceID == 0 || in.Date.IsZero() {
		return nil, fmt.Errorf("%w: user_id, exercice_id and date are required", ErrInvalidInput)
	}
	if in.Series < 0 || in.Repetitions < 0 {
		return nil, fmt.Errorf("%w: series and repetitions must not be negative", ErrInvalidInput)
	}
	if _, err := s.users.GetByID(ctx, in.UserID); err != nil {
		return nil, err
	}
	if _, err := s.exercices.GetByID(ctx, in.ExerciceID); err != nil {
		return nil, err
	}

	ue := &model.UserExercice{
		UserID:      in.UserID,
		ExerciceID:  in.ExerciceID,
		Date:        in.Date,
		Optional:    in.Optional,
		Checked:     in.Checked,
		Series:      in.Series,
		Repetitions: in.Repetitions,
	}
	if ue.Series == 0 {
		ue.Series = model.DefaultSeries
	}
	if ue.Repetitions == 0 {
		ue.Repetitions = model.DefaultRepetitions
	}

	if err := s.assignments.Create(ctx, ue); err != nil {
		return nil, err
	}
	prometheus.RecordAssignmentOperation("create")
	return ue, nil
}

// List returns a user's assignments, on one day when date is set.
func (s *AssignmentService) List(ctx context.Context, userID uint, date *model.Date) ([]model.UserExercice, error) {
	return s.assignments.List(ctx, repository.UserExerciceFilter{UserID: &userID, Date: date})
}

// MarkChecked flips the completion flag of an assignment.
func (s *AssignmentService) MarkChecked(ctx context.Context, id uint, checked bool) (*model.UserExercice, error) {
	ue, err := s.assignments.MarkChecked(ctx, id, checked)
	if err != nil {
		return nil, err
	}
	if checked {
		prometheus.RecordAssignmentOperation("check")
	} else {
		prometheus.RecordAssignmentOperation("uncheck")
	}
	return ue, nil
}

// ExercisesForUserOnDate joins the user's assignments of the day with the
// catalogue. Assignments whose exercice no longer exists are left out.
func (s *AssignmentService) ExercisesForUserOnDate(ctx context.Context, userID uint, date model.Date) ([]model.AssignmentView, error) {
	defer prometheus.TrackAggregation()(time.Now())

	assignments, err := s.assignments.List(ctx, repository.UserExerciceFilter{UserID: &userID, Date: &date})
	if err != nil {
		return nil, err
	}

	views := make([]model.AssignmentView, 0, len(assignments))
	if len(assignments) == 0 {
		return views, nil
	}

	seen := make(map[uint]struct{}, len(assignments))
	ids := make([]uint, 0, len(assignments))
	for _, a := range assignments {
		if _, ok := seen[a.ExerciceID]; ok {
			continue
		}
		seen[a.ExerciceID] = struct{}{}
		ids = append(ids, a.ExerciceID)
	}

	exercices, err := s.exercices.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]model.Exercice, len(exercices))
	for _, e := range exercices {
		byID[e.ID] = e
	}

	for _, a := range assignments {
		e, ok := byID[a.ExerciceID]
		if !ok {
			continue
		}
		views = append(views, model.NewAssignmentView(a, e))
	}
	return views, nil
}

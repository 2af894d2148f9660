package repository

import (
	"context"
	"time"

	"physio-service/internal/model"
	"physio-service/prometheus"

	"gorm.io/gorm"
)

// ExerciceRepository persists the exercise catalogue.
type ExerciceRepository struct {
	db *gorm.DB
}

// NewExerciceRepository creates a repository on db.
func NewExerciceRepository(db *gorm.DB) *ExerciceRepository {
	return &ExerciceRepository{db: db}
}

// Create inserts the exercice and fills its generated fields.
func (r *ExerciceRepository) Create(ctx context.Context, exercice *model.Exercice) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())
	return translate("create exercice", r.db.WithContext(ctx).Create(exercice).Error)
}

// GetByID returns ErrNotFound when no exercice has the id.
func (r *ExerciceRepository) GetByID(ctx context.Context, id uint) (*model.Exercice, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var exercice model.Exercice
	if err := r.db.WithContext(ctx).First(&exercice, id).Error; err != nil {
		return nil, translate("get exercice", err)
	}
	return &exercice, nil
}

// List returns the whole catalogue ordered by id.
func (r *ExerciceRepository) List(ctx context.Context) ([]model.Exercice, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	exercices := []model.Exercice{}
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&exercices).Error; err != nil {
		return nil, translate("list exercices", err)
	}
	return exercices, nil
}

// ListByIDs fetches the exercices with the given ids in a single query.
// Unknown ids are simply absent from the result.
func (r *ExerciceRepository) ListByIDs(ctx context.Context, ids []uint) ([]model.Exercice, error) {
	exercices := []model.Exercice{}
	if len(ids) == 0 {
		return exercices, nil
	}
	defer prometheus.TrackDBOperation("query")(time.Now())
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id ASC").Find(&exercices).Error; err != nil {
		return nil, translate("list exercices by id", err)
	}
	return exercices, nil
}

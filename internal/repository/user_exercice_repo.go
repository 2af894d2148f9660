package repository

import (
	"context"
	"time"

	"physio-service/internal/model"
	"physio-service/prometheus"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserExerciceFilter narrows List. Nil fields do not filter.
type UserExerciceFilter struct {
	UserID *uint
	Date   *model.Date
}

// UserExerciceRepository persists exercice assignments.
type UserExerciceRepository struct {
	db *gorm.DB
}

// NewUserExerciceRepository creates a repository on db.
func NewUserExerciceRepository(db *gorm.DB) *UserExerciceRepository {
	return &UserExerciceRepository{db: db}
}

// Create inserts the assignment and fills its generated fields.
func (r *UserExerciceRepository) Create(ctx context.Context, ue *model.UserExercice) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())
	return translate("create user exercice", r.db.WithContext(ctx).Create(ue).Error)
}

// GetByID returns ErrNotFound when no assignment has the id.
func (r *UserExerciceRepository) GetByID(ctx context.Context, id uint) (*model.UserExercice, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var ue model.UserExercice
	if err := r.db.WithContext(ctx).First(&ue, id).Error; err != nil {
		return nil, translate("get user exercice", err)
	}
	return &ue, nil
}

// List returns the assignments matching every set filter, ordered by id.
func (r *UserExerciceRepository) List(ctx context.Context, filter UserExerciceFilter) ([]model.UserExercice, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	query := r.db.WithContext(ctx).Order("id ASC")
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Date != nil {
		query = query.Where(clause.Eq{Column: clause.Column{Name: "date"}, Value: *filter.Date})
	}

	assignments := []model.UserExercice{}
	if err := query.Find(&assignments).Error; err != nil {
		return nil, translate("list user exercices", err)
	}
	return assignments, nil
}

// MarkChecked sets the completion flag of one assignment and returns it.
func (r *UserExerciceRepository) MarkChecked(ctx context.Context, id uint, checked bool) (*model.UserExercice, error) {
	defer prometheus.TrackDBOperation("update")(time.Now())
	result := r.db.WithContext(ctx).Model(&model.UserExercice{}).
		Where("id = ?", id).
		Update("checked", checked)
	if result.Error != nil {
		return nil, translate("mark user exercice checked", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, translate("mark user exercice checked", gorm.ErrRecordNotFound)
	}
	return r.GetByID(ctx, id)
}

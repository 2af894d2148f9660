package repository

import (
	"context"
	"time"

	"physio-service/internal/model"
	"physio-service/prometheus"

	"gorm.io/gorm"
)

// HealthConditionRepository persists health conditions.
type HealthConditionRepository struct {
	db *gorm.DB
}

// NewHealthConditionRepository creates a repository on db.
func NewHealthConditionRepository(db *gorm.DB) *HealthConditionRepository {
	return &HealthConditionRepository{db: db}
}

// Create inserts the condition. A taken name yields ErrConflict.
func (r *HealthConditionRepository) Create(ctx context.Context, hc *model.HealthCondition) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())
	return translate("create health condition", r.db.WithContext(ctx).Create(hc).Error)
}

// GetByID returns ErrNotFound when no condition has the id.
func (r *HealthConditionRepository) GetByID(ctx context.Context, id uint) (*model.HealthCondition, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var hc model.HealthCondition
	if err := r.db.WithContext(ctx).First(&hc, id).Error; err != nil {
		return nil, translate("get health condition", err)
	}
	return &hc, nil
}

// GetByName returns ErrNotFound when no condition has the name.
func (r *HealthConditionRepository) GetByName(ctx context.Context, name string) (*model.HealthCondition, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var hc model.HealthCondition
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&hc).Error; err != nil {
		return nil, translate("get health condition by name", err)
	}
	return &hc, nil
}

// List returns every condition ordered by id.
func (r *HealthConditionRepository) List(ctx context.Context) ([]model.HealthCondition, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	conditions := []model.HealthCondition{}
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&conditions).Error; err != nil {
		return nil, translate("list health conditions", err)
	}
	return conditions, nil
}

package repository

import (
	"context"
	"time"

	"physio-service/internal/model"
	"physio-service/prometheus"

	"gorm.io/gorm"
)

// UserFilter narrows List. Nil fields do not filter.
type UserFilter struct {
	KineID *uint
}

// UserRepository persists users.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a repository on db.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts the user and fills its generated fields.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())
	return translate("create user", r.db.WithContext(ctx).Create(user).Error)
}

// GetByID returns ErrNotFound when no user has the id.
func (r *UserRepository) GetByID(ctx context.Context, id uint) (*model.User, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate("get user", err)
	}
	return &user, nil
}

// GetByEmail returns ErrNotFound when no user has the email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate("get user by email", err)
	}
	return &user, nil
}

// List returns users ordered by id.
func (r *UserRepository) List(ctx context.Context, filter UserFilter) ([]model.User, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	query := r.db.WithContext(ctx).Order("id ASC")
	if filter.KineID != nil {
		query = query.Where("id_kine = ?", *filter.KineID)
	}

	users := []model.User{}
	if err := query.Find(&users).Error; err != nil {
		return nil, translate("list users", err)
	}
	return users, nil
}

// SetHealthCondition links the user to a health condition.
func (r *UserRepository) SetHealthCondition(ctx context.Context, userID, healthConditionID uint) error {
	defer prometheus.TrackDBOperation("update")(time.Now())
	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Update("health_condition_id", healthConditionID)
	if result.Error != nil {
		return translate("set health condition", result.Error)
	}
	if result.RowsAffected == 0 {
		return translate("set health condition", gorm.ErrRecordNotFound)
	}
	return nil
}

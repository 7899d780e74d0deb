package repository

import (
	"context"

	"arunika.id/aksipoin/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActivityRepository interface {
	WithTx(tx *gorm.DB) ActivityRepository
	Create(ctx context.Context, activity *model.Activity) error
	Save(ctx context.Context, activity *model.Activity) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Activity, error)
	ListByStatus(ctx context.Context, status string) ([]model.Activity, error)
	// Delete removes the activity row only; submission cleanup is owned by
	// the caller's transaction.
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

type activityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) WithTx(tx *gorm.DB) ActivityRepository {
	return &activityRepository{db: tx}
}

func (r *activityRepository) Create(ctx context.Context, activity *model.Activity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *activityRepository) Save(ctx context.Context, activity *model.Activity) error {
	return r.db.WithContext(ctx).Save(activity).Error
}

func (r *activityRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Activity, error) {
	var activity model.Activity
	if err := r.db.WithContext(ctx).First(&activity, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &activity, nil
}

func (r *activityRepository) ListByStatus(ctx context.Context, status string) ([]model.Activity, error) {
	var activities []model.Activity
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&activities).Error
	return activities, err
}

func (r *activityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Activity{}, "id = ?", id).Error
}

func (r *activityRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Activity{}).Count(&count).Error
	return count, err
}

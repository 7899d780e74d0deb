package repository

import (
	"context"

	"arunika.id/aksipoin/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	WithTx(tx *gorm.DB) UserRepository
	Create(ctx context.Context, user *model.User) error
	Save(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByLineID(ctx context.Context, lineUserID string) (*model.User, error)
	// AddScore bumps total_score atomically in the store.
	AddScore(ctx context.Context, userID uuid.UUID, delta int) error
	TopByScore(ctx context.Context, limit int) ([]model.User, error)
	Count(ctx context.Context) (int64, error)
	IsAdmin(ctx context.Context, lineUserID string) (bool, error)
	SeedAdmins(ctx context.Context, lineUserIDs []string) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) WithTx(tx *gorm.DB) UserRepository {
	return &userRepository{db: tx}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) Save(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByLineID(ctx context.Context, lineUserID string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, "line_user_id = ?", lineUserID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) AddScore(ctx context.Context, userID uuid.UUID, delta int) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", userID).
		UpdateColumn("total_score", gorm.Expr("total_score + ?", delta)).Error
}

func (r *userRepository) TopByScore(ctx context.Context, limit int) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Order("total_score DESC, created_at ASC").
		Limit(limit).
		Find(&users).Error
	return users, err
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Count(&count).Error
	return count, err
}

func (r *userRepository) IsAdmin(ctx context.Context, lineUserID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.AdminUser{}).
		Where("line_user_id = ?", lineUserID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepository) SeedAdmins(ctx context.Context, lineUserIDs []string) error {
	for _, lineID := range lineUserIDs {
		admin := model.AdminUser{LineUserID: lineID}
		err := r.db.WithContext(ctx).
			Where("line_user_id = ?", lineID).
			FirstOrCreate(&admin).Error
		if err != nil {
			return err
		}
	}
	return nil
}

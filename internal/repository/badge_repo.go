package repository

import (
	"context"

	"arunika.id/aksipoin/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BadgeRepository interface {
	WithTx(tx *gorm.DB) BadgeRepository
	Create(ctx context.Context, badge *model.Badge) error
	List(ctx context.Context) ([]model.Badge, error)
	FindByCode(ctx context.Context, code string) (*model.Badge, error)
	// Award grants the badge to the user. Awarding twice is a no-op.
	Award(ctx context.Context, userID, badgeID uuid.UUID) error
	ListForUser(ctx context.Context, userID uuid.UUID) ([]model.UserBadge, error)
}

type badgeRepository struct {
	db *gorm.DB
}

func NewBadgeRepository(db *gorm.DB) BadgeRepository {
	return &badgeRepository{db: db}
}

func (r *badgeRepository) WithTx(tx *gorm.DB) BadgeRepository {
	return &badgeRepository{db: tx}
}

func (r *badgeRepository) Create(ctx context.Context, badge *model.Badge) error {
	return r.db.WithContext(ctx).Create(badge).Error
}

func (r *badgeRepository) List(ctx context.Context) ([]model.Badge, error) {
	var badges []model.Badge
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&badges).Error
	return badges, err
}

func (r *badgeRepository) FindByCode(ctx context.Context, code string) (*model.Badge, error) {
	var badge model.Badge
	if err := r.db.WithContext(ctx).First(&badge, "code = ?", code).Error; err != nil {
		return nil, err
	}
	return &badge, nil
}

func (r *badgeRepository) Award(ctx context.Context, userID, badgeID uuid.UUID) error {
	// Conflict-guarded so an already-earned badge is a clean no-op even
	// inside a caller's transaction.
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.UserBadge{
			UserID:  userID,
			BadgeID: badgeID,
		}).Error
}

func (r *badgeRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]model.UserBadge, error) {
	var earned []model.UserBadge
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Badge").
		Order("awarded_at ASC").
		Find(&earned).Error
	return earned, err
}

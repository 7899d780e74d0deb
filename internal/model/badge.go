package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BadgeCodeFirstApproval is granted automatically on a user's first approved
// submission.
const BadgeCodeFirstApproval = "first-approval"

type Badge struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Code        string    `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	IconURL     string    `gorm:"type:text" json:"icon_url"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (b *Badge) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// UserBadge records an earned badge. The unique index makes a second award
// a no-op.
type UserBadge struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_badge,priority:1" json:"user_id"`
	BadgeID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_badge,priority:2" json:"badge_id"`
	Badge     *Badge    `gorm:"foreignKey:BadgeID" json:"badge,omitempty"`
	AwardedAt time.Time `gorm:"autoCreateTime" json:"awarded_at"`
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	NotificationLike     = "like"
	NotificationComment  = "comment"
	NotificationApproved = "approved"
	NotificationRejected = "rejected"
)

type Notification struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"` // recipient
	// TriggeredBy is the user whose action produced the notification.
	TriggeredBy   uuid.UUID `gorm:"type:uuid;not null" json:"triggered_by"`
	Actor         *User     `gorm:"foreignKey:TriggeredBy" json:"actor,omitempty"`
	RelatedItemID uuid.UUID `gorm:"type:uuid" json:"related_item_id"` // submission
	Type          string    `gorm:"size:20;not null" json:"type"`
	Message       string    `gorm:"type:text" json:"message"`
	IsRead        bool      `gorm:"default:false" json:"is_read"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

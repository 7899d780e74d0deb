package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ActivityStatusActive   = "active"
	ActivityStatusInactive = "inactive"
)

type Activity struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string       `gorm:"size:255;not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	ImageURL    string       `gorm:"type:text" json:"image_url"`
	Status      string       `gorm:"size:20;not null;default:active" json:"status"`
	Submissions []Submission `gorm:"foreignKey:ActivityID" json:"submissions,omitempty"`
	CreatedAt   time.Time    `gorm:"autoCreateTime" json:"created_at"`
}

func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

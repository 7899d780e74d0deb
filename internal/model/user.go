package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	LineUserID  string    `gorm:"size:64;uniqueIndex;not null" json:"line_user_id"`
	DisplayName string    `gorm:"size:100;not null" json:"display_name"`
	PictureURL  *string   `gorm:"type:text" json:"picture_url,omitempty"`
	FullName    string    `gorm:"size:100" json:"full_name"`
	EmployeeID  string    `gorm:"size:50;uniqueIndex" json:"employee_id"`
	// TotalScore is monotonic non-negative and mutated only by scoring
	// events (engagement awards and moderation approvals).
	TotalScore int       `gorm:"not null;default:0" json:"total_score"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// AdminUser is the admin set: presence of a row grants moderation rights.
type AdminUser struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	LineUserID string    `gorm:"size:64;uniqueIndex;not null" json:"line_user_id"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

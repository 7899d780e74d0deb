package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubmissionStatus is the moderation state of a report. Transitions only go
// forward: pending -> approved, pending -> rejected. Terminal states never
// move again.
type SubmissionStatus string

const (
	SubmissionPending  SubmissionStatus = "pending"
	SubmissionApproved SubmissionStatus = "approved"
	SubmissionRejected SubmissionStatus = "rejected"
)

func (s SubmissionStatus) Valid() bool {
	switch s {
	case SubmissionPending, SubmissionApproved, SubmissionRejected:
		return true
	}
	return false
}

func (s SubmissionStatus) CanTransitionTo(next SubmissionStatus) bool {
	if s != SubmissionPending {
		return false
	}
	return next == SubmissionApproved || next == SubmissionRejected
}

// Active reports whether the status counts against the one-active-submission
// invariant per (activity, user).
func (s SubmissionStatus) Active() bool {
	return s == SubmissionPending || s == SubmissionApproved
}

type Submission struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	ActivityID  uuid.UUID        `gorm:"type:uuid;index;not null" json:"activity_id"`
	UserID      uuid.UUID        `gorm:"type:uuid;index;not null" json:"user_id"`
	User        *User            `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Description string           `gorm:"type:text;not null" json:"description"`
	ImageURL    string           `gorm:"type:text" json:"image_url"`
	Status      SubmissionStatus `gorm:"size:20;not null;default:pending;index" json:"status"`
	// Points stays nil until the submission is approved.
	Points    *int      `json:"points"`
	Comments  []Comment `gorm:"foreignKey:SubmissionID" json:"comments,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (s *Submission) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

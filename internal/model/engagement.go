package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Like is a toggle, not a counter: unique per (submission, user).
type Like struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SubmissionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_like_submission_user,priority:1" json:"submission_id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_like_submission_user,priority:2" json:"user_id"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (l *Like) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// Comment is append-only, ordered by creation time.
type Comment struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SubmissionID uuid.UUID `gorm:"type:uuid;index;not null" json:"submission_id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	User         *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Text         string    `gorm:"type:text;not null" json:"text"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

const (
	AwardKindLike    = "like"
	AwardKindComment = "comment"
)

// PointAward is the idempotency ledger for engagement scoring. The unique
// index makes "at most once per (actor, submission, kind)" a store-level
// guarantee: the insert is conflict-guarded and writes nothing when the row
// already exists, so the caller skips the score change. Rows are never
// deleted, so a like-unlike-like cycle cannot pay twice.
type PointAward struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_award_user_submission_kind,priority:1" json:"user_id"`
	SubmissionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_award_user_submission_kind,priority:2" json:"submission_id"`
	Kind         string    `gorm:"size:20;not null;uniqueIndex:idx_award_user_submission_kind,priority:3" json:"kind"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

package repository

import (
	"context"

	"arunika.id/aksipoin/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubmissionRepository interface {
	WithTx(tx *gorm.DB) SubmissionRepository
	Create(ctx context.Context, submission *model.Submission) error
	Save(ctx context.Context, submission *model.Submission) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Submission, error)
	// ListForActivity returns submissions in the given statuses, newest
	// first, with submitter and ordered comments preloaded.
	ListForActivity(ctx context.Context, activityID uuid.UUID, statuses []model.SubmissionStatus) ([]model.Submission, error)
	ListByStatus(ctx context.Context, status model.SubmissionStatus) ([]model.Submission, error)
	// RecentDescriptions returns the latest description texts for an
	// activity regardless of status, for the similarity scan.
	RecentDescriptions(ctx context.Context, activityID uuid.UUID, limit int) ([]string, error)
	HasActiveForUser(ctx context.Context, activityID, userID uuid.UUID) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByActivity(ctx context.Context, activityID uuid.UUID) error
	CountByStatus(ctx context.Context, status model.SubmissionStatus) (int64, error)
}

type submissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) WithTx(tx *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: tx}
}

func (r *submissionRepository) Create(ctx context.Context, submission *model.Submission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}

func (r *submissionRepository) Save(ctx context.Context, submission *model.Submission) error {
	return r.db.WithContext(ctx).Save(submission).Error
}

func (r *submissionRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Submission, error) {
	var submission model.Submission
	if err := r.db.WithContext(ctx).First(&submission, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *submissionRepository) ListForActivity(ctx context.Context, activityID uuid.UUID, statuses []model.SubmissionStatus) ([]model.Submission, error) {
	var submissions []model.Submission
	err := r.db.WithContext(ctx).
		Where("activity_id = ? AND status IN ?", activityID, statuses).
		Preload("User").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at ASC")
		}).
		Preload("Comments.User").
		Order("created_at DESC").
		Find(&submissions).Error
	return submissions, err
}

func (r *submissionRepository) ListByStatus(ctx context.Context, status model.SubmissionStatus) ([]model.Submission, error) {
	var submissions []model.Submission
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Preload("User").
		Order("created_at ASC").
		Find(&submissions).Error
	return submissions, err
}

func (r *submissionRepository) RecentDescriptions(ctx context.Context, activityID uuid.UUID, limit int) ([]string, error) {
	var descriptions []string
	err := r.db.WithContext(ctx).
		Model(&model.Submission{}).
		Where("activity_id = ?", activityID).
		Order("created_at DESC").
		Limit(limit).
		Pluck("description", &descriptions).Error
	return descriptions, err
}

func (r *submissionRepository) HasActiveForUser(ctx context.Context, activityID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Submission{}).
		Where("activity_id = ? AND user_id = ? AND status IN ?",
			activityID, userID, []model.SubmissionStatus{model.SubmissionPending, model.SubmissionApproved}).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *submissionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Submission{}, "id = ?", id).Error
}

func (r *submissionRepository) DeleteByActivity(ctx context.Context, activityID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Submission{}, "activity_id = ?", activityID).Error
}

func (r *submissionRepository) CountByStatus(ctx context.Context, status model.SubmissionStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Submission{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

package repository

import (
	"context"

	"arunika.id/aksipoin/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EngagementRepository interface {
	WithTx(tx *gorm.DB) EngagementRepository
	FindLike(ctx context.Context, submissionID, userID uuid.UUID) (*model.Like, error)
	CreateLike(ctx context.Context, like *model.Like) error
	DeleteLike(ctx context.Context, submissionID, userID uuid.UUID) error
	CountLikes(ctx context.Context, submissionID uuid.UUID) (int64, error)
	// LikeCounts returns like totals per submission for list enrichment.
	LikeCounts(ctx context.Context, submissionIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	// LikedByUser returns the set of submissions the user has liked.
	LikedByUser(ctx context.Context, submissionIDs []uuid.UUID, userID uuid.UUID) (map[uuid.UUID]bool, error)
	CreateComment(ctx context.Context, comment *model.Comment) error
	// CreatePointAward inserts into the idempotency ledger and reports
	// whether a row was written. The insert carries ON CONFLICT DO NOTHING
	// so an existing (user, submission, kind) row is not a statement error;
	// false means the award was already paid. A plain insert would abort
	// the surrounding Postgres transaction on the unique violation.
	CreatePointAward(ctx context.Context, award *model.PointAward) (bool, error)
}

type engagementRepository struct {
	db *gorm.DB
}

func NewEngagementRepository(db *gorm.DB) EngagementRepository {
	return &engagementRepository{db: db}
}

func (r *engagementRepository) WithTx(tx *gorm.DB) EngagementRepository {
	return &engagementRepository{db: tx}
}

func (r *engagementRepository) FindLike(ctx context.Context, submissionID, userID uuid.UUID) (*model.Like, error) {
	var like model.Like
	err := r.db.WithContext(ctx).
		First(&like, "submission_id = ? AND user_id = ?", submissionID, userID).Error
	if err != nil {
		return nil, err
	}
	return &like, nil
}

func (r *engagementRepository) CreateLike(ctx context.Context, like *model.Like) error {
	return r.db.WithContext(ctx).Create(like).Error
}

func (r *engagementRepository) DeleteLike(ctx context.Context, submissionID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("submission_id = ? AND user_id = ?", submissionID, userID).
		Delete(&model.Like{}).Error
}

func (r *engagementRepository) CountLikes(ctx context.Context, submissionID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Like{}).
		Where("submission_id = ?", submissionID).
		Count(&count).Error
	return count, err
}

func (r *engagementRepository) LikeCounts(ctx context.Context, submissionIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(submissionIDs))
	if len(submissionIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		SubmissionID uuid.UUID
		Total        int64
	}
	err := r.db.WithContext(ctx).
		Model(&model.Like{}).
		Select("submission_id, COUNT(*) AS total").
		Where("submission_id IN ?", submissionIDs).
		Group("submission_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.SubmissionID] = row.Total
	}
	return counts, nil
}

func (r *engagementRepository) LikedByUser(ctx context.Context, submissionIDs []uuid.UUID, userID uuid.UUID) (map[uuid.UUID]bool, error) {
	liked := make(map[uuid.UUID]bool, len(submissionIDs))
	if len(submissionIDs) == 0 {
		return liked, nil
	}

	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&model.Like{}).
		Where("submission_id IN ? AND user_id = ?", submissionIDs, userID).
		Pluck("submission_id", &ids).Error
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}

func (r *engagementRepository) CreateComment(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *engagementRepository) CreatePointAward(ctx context.Context, award *model.PointAward) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(award)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

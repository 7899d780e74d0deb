package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"arunika.id/aksipoin/internal/model"
	"arunika.id/aksipoin/internal/repository"
	"arunika.id/aksipoin/pkg/apperror"
	"arunika.id/aksipoin/pkg/storage"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ModerationService is the admin-only gateway over submission state. The
// caller authorizes the actor through AdminGate first; every state change
// here runs in a single transaction so score, status, and notification can
// never diverge.
type ModerationService interface {
	Approve(ctx context.Context, submissionID uuid.UUID, score int, admin *model.User) error
	Reject(ctx context.Context, submissionID uuid.UUID, admin *model.User) error
	DeleteSubmission(ctx context.Context, submissionID uuid.UUID) error
	// DeleteActivity removes the activity and its submissions. Likes,
	// comments, and notifications referencing them are left in place.
	DeleteActivity(ctx context.Context, activityID uuid.UUID) error
	ListSubmissions(ctx context.Context, status model.SubmissionStatus) ([]model.Submission, error)
}

type moderationService struct {
	db             *gorm.DB
	userRepo       repository.UserRepository
	activityRepo   repository.ActivityRepository
	submissionRepo repository.SubmissionRepository
	notifRepo      repository.NotificationRepository
	badgeRepo      repository.BadgeRepository
	notifier       NotificationService
	search         SearchService
	images         storage.ImageStorage
}

func NewModerationService(
	db *gorm.DB,
	userRepo repository.UserRepository,
	activityRepo repository.ActivityRepository,
	submissionRepo repository.SubmissionRepository,
	notifRepo repository.NotificationRepository,
	badgeRepo repository.BadgeRepository,
	notifier NotificationService,
	search SearchService,
	images storage.ImageStorage,
) ModerationService {
	return &moderationService{
		db:             db,
		userRepo:       userRepo,
		activityRepo:   activityRepo,
		submissionRepo: submissionRepo,
		notifRepo:      notifRepo,
		badgeRepo:      badgeRepo,
		notifier:       notifier,
		search:         search,
		images:         images,
	}
}

func (s *moderationService) Approve(ctx context.Context, submissionID uuid.UUID, score int, admin *model.User) error {
	var (
		approved     *model.Submission
		notification *model.Notification
	)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		sr := s.submissionRepo.WithTx(tx)

		submission, err := sr.FindByID(ctx, submissionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("submission not found")
			}
			return err
		}
		if !submission.Status.CanTransitionTo(model.SubmissionApproved) {
			return apperror.Conflict(fmt.Sprintf("submission is already %s", submission.Status))
		}

		submission.Status = model.SubmissionApproved
		submission.Points = &score
		if err := sr.Save(ctx, submission); err != nil {
			return err
		}

		if err := s.userRepo.WithTx(tx).AddScore(ctx, submission.UserID, score); err != nil {
			return err
		}

		notification = &model.Notification{
			UserID:        submission.UserID,
			TriggeredBy:   admin.ID,
			RelatedItemID: submission.ID,
			Type:          model.NotificationApproved,
			Message:       fmt.Sprintf("your report was approved: +%d points", score),
		}
		if err := s.notifRepo.WithTx(tx).Create(ctx, notification); err != nil {
			return err
		}

		if err := s.grantFirstApprovalBadge(ctx, tx, submission.UserID); err != nil {
			return err
		}

		approved = submission
		return nil
	})
	if err != nil {
		return err
	}

	s.notifier.Publish(ctx, notification)

	if s.search != nil && approved != nil {
		if err := s.search.IndexSubmission(ctx, approved); err != nil {
			log.Printf("failed to index approved submission %s: %v", approved.ID, err)
		}
	}
	return nil
}

func (s *moderationService) Reject(ctx context.Context, submissionID uuid.UUID, admin *model.User) error {
	var notification *model.Notification

	err := s.db.Transaction(func(tx *gorm.DB) error {
		sr := s.submissionRepo.WithTx(tx)

		submission, err := sr.FindByID(ctx, submissionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("submission not found")
			}
			return err
		}
		if !submission.Status.CanTransitionTo(model.SubmissionRejected) {
			return apperror.Conflict(fmt.Sprintf("submission is already %s", submission.Status))
		}

		// Points stay nil on rejection.
		submission.Status = model.SubmissionRejected
		if err := sr.Save(ctx, submission); err != nil {
			return err
		}

		notification = &model.Notification{
			UserID:        submission.UserID,
			TriggeredBy:   admin.ID,
			RelatedItemID: submission.ID,
			Type:          model.NotificationRejected,
			Message:       "your report was rejected",
		}
		return s.notifRepo.WithTx(tx).Create(ctx, notification)
	})
	if err != nil {
		return err
	}

	s.notifier.Publish(ctx, notification)
	return nil
}

func (s *moderationService) DeleteSubmission(ctx context.Context, submissionID uuid.UUID) error {
	submission, err := s.submissionRepo.FindByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("submission not found")
		}
		return err
	}
	if err := s.submissionRepo.Delete(ctx, submissionID); err != nil {
		return err
	}

	// Best-effort image cleanup; the row is already gone.
	if s.images != nil && submission.ImageURL != "" {
		if err := s.images.DeleteImage(ctx, submission.ImageURL); err != nil {
			log.Printf("failed to delete image for submission %s: %v", submissionID, err)
		}
	}
	return nil
}

func (s *moderationService) DeleteActivity(ctx context.Context, activityID uuid.UUID) error {
	if _, err := s.activityRepo.FindByID(ctx, activityID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("activity not found")
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.submissionRepo.WithTx(tx).DeleteByActivity(ctx, activityID); err != nil {
			return err
		}
		return s.activityRepo.WithTx(tx).Delete(ctx, activityID)
	})
}

func (s *moderationService) ListSubmissions(ctx context.Context, status model.SubmissionStatus) ([]model.Submission, error) {
	if !status.Valid() {
		return nil, apperror.Validation("invalid submission status")
	}
	return s.submissionRepo.ListByStatus(ctx, status)
}

// grantFirstApprovalBadge is best-effort inside the approve transaction:
// the badge award is idempotent and a missing catalog entry is not an error.
func (s *moderationService) grantFirstApprovalBadge(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	br := s.badgeRepo.WithTx(tx)

	badge, err := br.FindByCode(ctx, model.BadgeCodeFirstApproval)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	return br.Award(ctx, userID, badge.ID)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"arunika.id/aksipoin/internal/model"
	"arunika.id/aksipoin/internal/repository"
	"arunika.id/aksipoin/pkg/apperror"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

const (
	pointsLikeReceived    = 1
	pointsCommentReceived = 1

	likeStatusLiked   = "liked"
	likeStatusUnliked = "unliked"
)

type LikeResult struct {
	Status    string `json:"status"`
	LikeCount int64  `json:"like_count"`
}

// EngagementService owns likes, comments, and the exactly-once point awards
// they trigger. Every mutation runs in a single transaction spanning the
// engagement write, the award ledger insert, the score update, and the
// notification row.
type EngagementService interface {
	ToggleLike(ctx context.Context, submissionID uuid.UUID, actorLineID string) (*LikeResult, error)
	AddComment(ctx context.Context, submissionID uuid.UUID, actorLineID, text string) (*model.Comment, error)
}

type engagementService struct {
	db             *gorm.DB
	userRepo       repository.UserRepository
	submissionRepo repository.SubmissionRepository
	engagementRepo repository.EngagementRepository
	notifRepo      repository.NotificationRepository
	notifier       NotificationService
	sanitizer      *bluemonday.Policy
}

func NewEngagementService(
	db *gorm.DB,
	userRepo repository.UserRepository,
	submissionRepo repository.SubmissionRepository,
	engagementRepo repository.EngagementRepository,
	notifRepo repository.NotificationRepository,
	notifier NotificationService,
) EngagementService {
	return &engagementService{
		db:             db,
		userRepo:       userRepo,
		submissionRepo: submissionRepo,
		engagementRepo: engagementRepo,
		notifRepo:      notifRepo,
		notifier:       notifier,
		sanitizer:      bluemonday.StrictPolicy(),
	}
}

func (s *engagementService) ToggleLike(ctx context.Context, submissionID uuid.UUID, actorLineID string) (*LikeResult, error) {
	actor, err := s.userRepo.FindByLineID(ctx, actorLineID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, err
	}

	var (
		result       LikeResult
		notification *model.Notification
	)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		er := s.engagementRepo.WithTx(tx)

		submission, err := s.submissionRepo.WithTx(tx).FindByID(ctx, submissionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("submission not found")
			}
			return err
		}

		_, err = er.FindLike(ctx, submission.ID, actor.ID)
		switch {
		case err == nil:
			if err := er.DeleteLike(ctx, submission.ID, actor.ID); err != nil {
				return err
			}
			result.Status = likeStatusUnliked
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := er.CreateLike(ctx, &model.Like{SubmissionID: submission.ID, UserID: actor.ID}); err != nil {
				return err
			}
			result.Status = likeStatusLiked

			if actor.ID != submission.UserID {
				notification, err = s.awardOnce(ctx, tx, actor, submission, model.AwardKindLike)
				if err != nil {
					return err
				}
			}
		default:
			return err
		}

		count, err := er.CountLikes(ctx, submission.ID)
		if err != nil {
			return err
		}
		result.LikeCount = count
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Publish(ctx, notification)
	return &result, nil
}

func (s *engagementService) AddComment(ctx context.Context, submissionID uuid.UUID, actorLineID, text string) (*model.Comment, error) {
	text = strings.TrimSpace(s.sanitizer.Sanitize(text))
	if text == "" {
		return nil, apperror.Validation("comment text is required")
	}

	actor, err := s.userRepo.FindByLineID(ctx, actorLineID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, err
	}

	var (
		comment      *model.Comment
		notification *model.Notification
	)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		er := s.engagementRepo.WithTx(tx)

		submission, err := s.submissionRepo.WithTx(tx).FindByID(ctx, submissionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("submission not found")
			}
			return err
		}

		comment = &model.Comment{
			SubmissionID: submission.ID,
			UserID:       actor.ID,
			Text:         text,
		}
		if err := er.CreateComment(ctx, comment); err != nil {
			return err
		}

		if actor.ID != submission.UserID {
			notification, err = s.awardOnce(ctx, tx, actor, submission, model.AwardKindComment)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Publish(ctx, notification)
	comment.User = actor
	return comment, nil
}

// awardOnce pays the submission owner for the actor's first engagement of
// the given kind. The point_awards unique index is the idempotency check:
// the ledger insert is conflict-guarded, and an untouched ledger means this
// (actor, submission, kind) was already paid, possibly by an engagement row
// that has since been deleted. The score stays as is and the transaction
// continues. Awards are permanent; nothing ever decrements.
func (s *engagementService) awardOnce(ctx context.Context, tx *gorm.DB, actor *model.User, submission *model.Submission, kind string) (*model.Notification, error) {
	created, err := s.engagementRepo.WithTx(tx).CreatePointAward(ctx, &model.PointAward{
		UserID:       actor.ID,
		SubmissionID: submission.ID,
		Kind:         kind,
	})
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, nil
	}

	points := pointsLikeReceived
	notifType := model.NotificationLike
	message := fmt.Sprintf("%s liked your report", actor.DisplayName)
	if kind == model.AwardKindComment {
		points = pointsCommentReceived
		notifType = model.NotificationComment
		message = fmt.Sprintf("%s commented on your report", actor.DisplayName)
	}

	if err := s.userRepo.WithTx(tx).AddScore(ctx, submission.UserID, points); err != nil {
		return nil, err
	}

	notification := &model.Notification{
		UserID:        submission.UserID,
		TriggeredBy:   actor.ID,
		RelatedItemID: submission.ID,
		Type:          notifType,
		Message:       message,
	}
	if err := s.notifRepo.WithTx(tx).Create(ctx, notification); err != nil {
		return nil, err
	}

	return notification, nil
}

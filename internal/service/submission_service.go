package service

import (
	"context"
	"errors"
	"strings"

	"arunika.id/aksipoin/internal/model"
	"arunika.id/aksipoin/internal/repository"
	"arunika.id/aksipoin/pkg/apperror"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

type CreateSubmissionInput struct {
	ActivityID  uuid.UUID
	LineUserID  string
	Description string
	ImageURL    string
}

// SubmissionView is a submission enriched for the activity feed.
type SubmissionView struct {
	model.Submission
	LikeCount     int64 `json:"like_count"`
	LikedByViewer bool  `json:"liked_by_viewer"`
}

type SubmissionService interface {
	Create(ctx context.Context, input CreateSubmissionInput) (*model.Submission, error)
	// ListForActivity returns pending and approved submissions, newest
	// first; rejected reports are never shown to end users.
	ListForActivity(ctx context.Context, activityID uuid.UUID, viewerLineID string) ([]SubmissionView, error)
}

type submissionService struct {
	userRepo       repository.UserRepository
	activityRepo   repository.ActivityRepository
	submissionRepo repository.SubmissionRepository
	engagementRepo repository.EngagementRepository
	similarity     *SimilarityChecker
	sanitizer      *bluemonday.Policy
}

func NewSubmissionService(
	userRepo repository.UserRepository,
	activityRepo repository.ActivityRepository,
	submissionRepo repository.SubmissionRepository,
	engagementRepo repository.EngagementRepository,
	similarity *SimilarityChecker,
) SubmissionService {
	return &submissionService{
		userRepo:       userRepo,
		activityRepo:   activityRepo,
		submissionRepo: submissionRepo,
		engagementRepo: engagementRepo,
		similarity:     similarity,
		sanitizer:      bluemonday.StrictPolicy(),
	}
}

func (s *submissionService) Create(ctx context.Context, input CreateSubmissionInput) (*model.Submission, error) {
	description := strings.TrimSpace(s.sanitizer.Sanitize(input.Description))
	if description == "" {
		return nil, apperror.Validation("description is required")
	}

	user, err := s.userRepo.FindByLineID(ctx, input.LineUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, err
	}

	activity, err := s.activityRepo.FindByID(ctx, input.ActivityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("activity not found")
		}
		return nil, err
	}
	if activity.Status != model.ActivityStatusActive {
		return nil, apperror.Conflict("activity is no longer accepting reports")
	}

	if err := s.similarity.Check(ctx, activity.ID, description); err != nil {
		return nil, err
	}

	// Check-then-insert: not atomic against a concurrent double-submit
	// from the same user. Accepted race; a partial unique index over
	// (activity_id, user_id) WHERE status IN ('pending','approved') would
	// close it.
	hasActive, err := s.submissionRepo.HasActiveForUser(ctx, activity.ID, user.ID)
	if err != nil {
		return nil, err
	}
	if hasActive {
		return nil, apperror.Conflict("you already have an active report for this activity")
	}

	submission := &model.Submission{
		ActivityID:  activity.ID,
		UserID:      user.ID,
		Description: description,
		ImageURL:    input.ImageURL,
		Status:      model.SubmissionPending,
	}
	if err := s.submissionRepo.Create(ctx, submission); err != nil {
		return nil, err
	}

	submission.User = user
	return submission, nil
}

func (s *submissionService) ListForActivity(ctx context.Context, activityID uuid.UUID, viewerLineID string) ([]SubmissionView, error) {
	submissions, err := s.submissionRepo.ListForActivity(ctx, activityID,
		[]model.SubmissionStatus{model.SubmissionApproved, model.SubmissionPending})
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(submissions))
	for i, sub := range submissions {
		ids[i] = sub.ID
	}

	likeCounts, err := s.engagementRepo.LikeCounts(ctx, ids)
	if err != nil {
		return nil, err
	}

	likedByViewer := map[uuid.UUID]bool{}
	if viewerLineID != "" {
		viewer, err := s.userRepo.FindByLineID(ctx, viewerLineID)
		if err == nil {
			likedByViewer, err = s.engagementRepo.LikedByUser(ctx, ids, viewer.ID)
			if err != nil {
				return nil, err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	views := make([]SubmissionView, len(submissions))
	for i, sub := range submissions {
		views[i] = SubmissionView{
			Submission:    sub,
			LikeCount:     likeCounts[sub.ID],
			LikedByViewer: likedByViewer[sub.ID],
		}
	}
	return views, nil
}

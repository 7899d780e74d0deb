package service

import (
	"context"
	"errors"
	"strings"

	"arunika.id/aksipoin/internal/model"
	"arunika.id/aksipoin/internal/repository"
	"arunika.id/aksipoin/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateActivityInput struct {
	Title       string
	Description string
	ImageURL    string
}

type UpdateActivityInput struct {
	Title       *string
	Description *string
	ImageURL    *string
	Status      *string
}

type ActivityService interface {
	ListActive(ctx context.Context) ([]model.Activity, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Activity, error)
	Create(ctx context.Context, input CreateActivityInput) (*model.Activity, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateActivityInput) (*model.Activity, error)
}

type activityService struct {
	activityRepo repository.ActivityRepository
}

func NewActivityService(activityRepo repository.ActivityRepository) ActivityService {
	return &activityService{activityRepo: activityRepo}
}

func (s *activityService) ListActive(ctx context.Context) ([]model.Activity, error) {
	return s.activityRepo.ListByStatus(ctx, model.ActivityStatusActive)
}

func (s *activityService) Get(ctx context.Context, id uuid.UUID) (*model.Activity, error) {
	activity, err := s.activityRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("activity not found")
		}
		return nil, err
	}
	return activity, nil
}

func (s *activityService) Create(ctx context.Context, input CreateActivityInput) (*model.Activity, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperror.Validation("activity title is required")
	}

	activity := &model.Activity{
		Title:       title,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		Status:      model.ActivityStatusActive,
	}
	if err := s.activityRepo.Create(ctx, activity); err != nil {
		return nil, err
	}
	return activity, nil
}

func (s *activityService) Update(ctx context.Context, id uuid.UUID, input UpdateActivityInput) (*model.Activity, error) {
	activity, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, apperror.Validation("activity title cannot be empty")
		}
		activity.Title = title
	}
	if input.Description != nil {
		activity.Description = *input.Description
	}
	if input.ImageURL != nil {
		activity.ImageURL = *input.ImageURL
	}
	if input.Status != nil {
		if *input.Status != model.ActivityStatusActive && *input.Status != model.ActivityStatusInactive {
			return nil, apperror.Validation("activity status must be active or inactive")
		}
		activity.Status = *input.Status
	}

	if err := s.activityRepo.Save(ctx, activity); err != nil {
		return nil, err
	}
	return activity, nil
}

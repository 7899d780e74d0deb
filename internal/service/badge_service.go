package service

import (
	"context"
	"errors"
	"strings"

	"arunika.id/aksipoin/internal/model"
	"arunika.id/aksipoin/internal/repository"
	"arunika.id/aksipoin/pkg/apperror"
	"gorm.io/gorm"
)

type CreateBadgeInput struct {
	Code        string
	Name        string
	Description string
	IconURL     string
}

type BadgeService interface {
	List(ctx context.Context) ([]model.Badge, error)
	Create(ctx context.Context, input CreateBadgeInput) (*model.Badge, error)
	// Award grants a badge by code; awarding an already-earned badge is a
	// no-op.
	Award(ctx context.Context, badgeCode, lineUserID string) error
	ListForUser(ctx context.Context, lineUserID string) ([]model.UserBadge, error)
}

type badgeService struct {
	badgeRepo repository.BadgeRepository
	userRepo  repository.UserRepository
}

func NewBadgeService(badgeRepo repository.BadgeRepository, userRepo repository.UserRepository) BadgeService {
	return &badgeService{badgeRepo: badgeRepo, userRepo: userRepo}
}

func (s *badgeService) List(ctx context.Context) ([]model.Badge, error) {
	return s.badgeRepo.List(ctx)
}

func (s *badgeService) Create(ctx context.Context, input CreateBadgeInput) (*model.Badge, error) {
	code := strings.TrimSpace(input.Code)
	name := strings.TrimSpace(input.Name)
	if code == "" || name == "" {
		return nil, apperror.Validation("badge code and name are required")
	}

	badge := &model.Badge{
		Code:        code,
		Name:        name,
		Description: input.Description,
		IconURL:     input.IconURL,
	}
	if err := s.badgeRepo.Create(ctx, badge); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("a badge with this code already exists")
		}
		return nil, err
	}
	return badge, nil
}

func (s *badgeService) Award(ctx context.Context, badgeCode, lineUserID string) error {
	badge, err := s.badgeRepo.FindByCode(ctx, badgeCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("badge not found")
		}
		return err
	}

	user, err := s.userRepo.FindByLineID(ctx, lineUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("user not found")
		}
		return err
	}

	return s.badgeRepo.Award(ctx, user.ID, badge.ID)
}

func (s *badgeService) ListForUser(ctx context.Context, lineUserID string) ([]model.UserBadge, error) {
	user, err := s.userRepo.FindByLineID(ctx, lineUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, err
	}
	return s.badgeRepo.ListForUser(ctx, user.ID)
}

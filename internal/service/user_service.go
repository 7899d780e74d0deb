package service

import (
	"context"
	"errors"
	"strings"

	"arunika.id/aksipoin/internal/model"
	"arunika.id/aksipoin/internal/repository"
	"arunika.id/aksipoin/pkg/apperror"
	"arunika.id/aksipoin/pkg/lineauth"
	"gorm.io/gorm"
)

type RegisterInput struct {
	LineUserID  string
	DisplayName string
	PictureURL  string
	FullName    string
	EmployeeID  string
	// IDToken is the LINE ID token from LIFF, verified when the channel
	// secret is configured.
	IDToken string
}

type Profile struct {
	User    *model.User       `json:"user"`
	IsAdmin bool              `json:"is_admin"`
	Badges  []model.UserBadge `json:"badges"`
}

type UserService interface {
	Register(ctx context.Context, input RegisterInput) (*model.User, error)
	GetProfile(ctx context.Context, lineUserID string) (*Profile, error)
}

type userService struct {
	userRepo  repository.UserRepository
	badgeRepo repository.BadgeRepository
	verifier  *lineauth.Verifier
}

func NewUserService(userRepo repository.UserRepository, badgeRepo repository.BadgeRepository, verifier *lineauth.Verifier) UserService {
	return &userService{userRepo: userRepo, badgeRepo: badgeRepo, verifier: verifier}
}

// Register upserts the user keyed by LINE user ID: a returning user gets
// display name and picture refreshed, everything else stays.
func (s *userService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	lineUserID := strings.TrimSpace(input.LineUserID)
	if lineUserID == "" {
		return nil, apperror.Validation("lineUserId is required")
	}

	if s.verifier.Enabled() && input.IDToken != "" {
		subject, err := s.verifier.VerifyIDToken(input.IDToken)
		if err != nil || subject != lineUserID {
			return nil, apperror.ErrUnauthorized
		}
	}

	existing, err := s.userRepo.FindByLineID(ctx, lineUserID)
	switch {
	case err == nil:
		existing.DisplayName = input.DisplayName
		if input.PictureURL != "" {
			existing.PictureURL = &input.PictureURL
		}
		if err := s.userRepo.Save(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		if strings.TrimSpace(input.DisplayName) == "" {
			return nil, apperror.Validation("displayName is required")
		}
		user := &model.User{
			LineUserID:  lineUserID,
			DisplayName: input.DisplayName,
			FullName:    input.FullName,
			EmployeeID:  input.EmployeeID,
		}
		if input.PictureURL != "" {
			user.PictureURL = &input.PictureURL
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, apperror.Conflict("employee ID is already registered")
			}
			return nil, err
		}
		return user, nil
	default:
		return nil, err
	}
}

func (s *userService) GetProfile(ctx context.Context, lineUserID string) (*Profile, error) {
	user, err := s.userRepo.FindByLineID(ctx, lineUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, err
	}

	isAdmin, err := s.userRepo.IsAdmin(ctx, lineUserID)
	if err != nil {
		return nil, err
	}

	badges, err := s.badgeRepo.ListForUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &Profile{User: user, IsAdmin: isAdmin, Badges: badges}, nil
}

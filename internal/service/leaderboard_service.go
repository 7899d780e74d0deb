package service

import (
	"context"

	"arunika.id/aksipoin/internal/repository"
)

const defaultLeaderboardSize = 10

type LeaderboardEntry struct {
	Rank        int     `json:"rank"`
	LineUserID  string  `json:"line_user_id"`
	DisplayName string  `json:"display_name"`
	PictureURL  *string `json:"picture_url,omitempty"`
	TotalScore  int     `json:"total_score"`
}

type LeaderboardService interface {
	GetLeaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error)
}

type leaderboardService struct {
	userRepo repository.UserRepository
}

func NewLeaderboardService(userRepo repository.UserRepository) LeaderboardService {
	return &leaderboardService{userRepo: userRepo}
}

func (s *leaderboardService) GetLeaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = defaultLeaderboardSize
	}

	users, err := s.userRepo.TopByScore(ctx, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(users))
	for i, user := range users {
		entries = append(entries, LeaderboardEntry{
			Rank:        i + 1,
			LineUserID:  user.LineUserID,
			DisplayName: user.DisplayName,
			PictureURL:  user.PictureURL,
			TotalScore:  user.TotalScore,
		})
	}
	return entries, nil
}

package service

import (
	"context"

	"arunika.id/aksipoin/internal/model"
	"arunika.id/aksipoin/internal/repository"
)

type StatsOverview struct {
	TotalUsers          int64 `json:"total_users"`
	TotalActivities     int64 `json:"total_activities"`
	PendingSubmissions  int64 `json:"pending_submissions"`
	ApprovedSubmissions int64 `json:"approved_submissions"`
	RejectedSubmissions int64 `json:"rejected_submissions"`
}

type StatService interface {
	Overview(ctx context.Context) (*StatsOverview, error)
}

type statService struct {
	userRepo       repository.UserRepository
	activityRepo   repository.ActivityRepository
	submissionRepo repository.SubmissionRepository
}

func NewStatService(userRepo repository.UserRepository, activityRepo repository.ActivityRepository, submissionRepo repository.SubmissionRepository) StatService {
	return &statService{
		userRepo:       userRepo,
		activityRepo:   activityRepo,
		submissionRepo: submissionRepo,
	}
}

func (s *statService) Overview(ctx context.Context) (*StatsOverview, error) {
	overview := &StatsOverview{}

	var err error
	if overview.TotalUsers, err = s.userRepo.Count(ctx); err != nil {
		return nil, err
	}
	if overview.TotalActivities, err = s.activityRepo.Count(ctx); err != nil {
		return nil, err
	}
	if overview.PendingSubmissions, err = s.submissionRepo.CountByStatus(ctx, model.SubmissionPending); err != nil {
		return nil, err
	}
	if overview.ApprovedSubmissions, err = s.submissionRepo.CountByStatus(ctx, model.SubmissionApproved); err != nil {
		return nil, err
	}
	if overview.RejectedSubmissions, err = s.submissionRepo.CountByStatus(ctx, model.SubmissionRejected); err != nil {
		return nil, err
	}

	return overview, nil
}

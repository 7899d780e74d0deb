package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"arunika.id/aksipoin/internal/model"
	"arunika.id/aksipoin/internal/repository"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type NotificationService interface {
	// Create persists and then publishes. Transactional workflows insert
	// through the repository inside their own tx and call Publish after
	// commit instead.
	Create(ctx context.Context, notification *model.Notification) error
	Publish(ctx context.Context, notification *model.Notification)
	List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Notification, error)
	MarkAsRead(ctx context.Context, id uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
}

type notificationService struct {
	repo        repository.NotificationRepository
	redisClient *redis.Client
}

func NewNotificationService(repo repository.NotificationRepository, redisClient *redis.Client) NotificationService {
	return &notificationService{repo: repo, redisClient: redisClient}
}

func (s *notificationService) Create(ctx context.Context, notification *model.Notification) error {
	if err := s.repo.Create(ctx, notification); err != nil {
		return err
	}
	s.Publish(ctx, notification)
	return nil
}

// Publish pushes the notification to the recipient's Redis channel for
// websocket delivery. Redis is optional; without it notifications are
// poll-only.
func (s *notificationService) Publish(ctx context.Context, notification *model.Notification) {
	if s.redisClient == nil || notification == nil {
		return
	}

	payload, err := json.Marshal(notification)
	if err != nil {
		log.Printf("failed to marshal notification %s: %v", notification.ID, err)
		return
	}

	channel := fmt.Sprintf("user_notifications:%s", notification.UserID)
	if err := s.redisClient.Publish(ctx, channel, payload).Err(); err != nil {
		log.Printf("failed to publish notification %s: %v", notification.ID, err)
	}
}

func (s *notificationService) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Notification, error) {
	return s.repo.ListByUser(ctx, userID, limit, offset)
}

func (s *notificationService) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	return s.repo.MarkAsRead(ctx, id)
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

func (s *notificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

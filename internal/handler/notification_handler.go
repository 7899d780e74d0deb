package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"arunika.id/aksipoin/internal/repository"
	"arunika.id/aksipoin/internal/service"
	"arunika.id/aksipoin/pkg/apperror"
	"arunika.id/aksipoin/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type NotificationHandler struct {
	notifications service.NotificationService
	userRepo      repository.UserRepository
	redisClient   *redis.Client
	upgrader      websocket.Upgrader
}

func NewNotificationHandler(notifications service.NotificationService, userRepo repository.UserRepository, redisClient *redis.Client) *NotificationHandler {
	return &NotificationHandler{
		notifications: notifications,
		userRepo:      userRepo,
		redisClient:   redisClient,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// resolveUser maps the lineUserId query parameter to the stored user.
func (h *NotificationHandler) resolveUser(c *gin.Context) (uuid.UUID, error) {
	lineUserID := c.Query("lineUserId")
	if lineUserID == "" {
		return uuid.Nil, apperror.Validation("lineUserId is required")
	}

	user, err := h.userRepo.FindByLineID(c.Request.Context(), lineUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, apperror.NotFound("user not found")
		}
		return uuid.Nil, err
	}
	return user.ID, nil
}

func (h *NotificationHandler) List(c *gin.Context) {
	userID, err := h.resolveUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	notifications, err := h.notifications.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, notifications)
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID, err := h.resolveUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	count, err := h.notifications.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"count": count})
}

func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid notification id")
		return
	}

	if err := h.notifications.MarkAsRead(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "marked as read"})
}

func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	userID, err := h.resolveUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.notifications.MarkAllAsRead(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "all notifications marked as read"})
}

// Stream upgrades to a websocket and forwards the user's Redis channel.
// Messages already arrive as JSON payloads, so they are written through
// verbatim.
func (h *NotificationHandler) Stream(c *gin.Context) {
	userID, err := h.resolveUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("failed to upgrade websocket: %v", err)
		return
	}
	defer conn.Close()

	if h.redisClient == nil {
		log.Println("redis client is nil, cannot stream notifications")
		return
	}

	channel := fmt.Sprintf("user_notifications:%s", userID)
	pubsub := h.redisClient.Subscribe(c.Request.Context(), channel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(c.Request.Context()); err != nil {
		log.Printf("failed to subscribe to redis channel: %v", err)
		return
	}

	ch := pubsub.Channel()

	clientClosed := make(chan struct{})
	go func() {
		defer close(clientClosed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case msg := <-ch:
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				log.Printf("failed to write message to websocket: %v", err)
				return
			}
		case <-clientClosed:
			return
		case <-c.Request.Context().Done():
			return
		}
	}
}

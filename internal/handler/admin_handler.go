package handler

import (
	"arunika.id/aksipoin/internal/model"
	"arunika.id/aksipoin/internal/service"
	"arunika.id/aksipoin/pkg/response"
	"arunika.id/aksipoin/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AdminHandler fronts every moderation route. Each handler authorizes the
// requester through the gate before touching a service; the requester
// identity travels in the request body for writes and in the requesterId
// query parameter for reads and deletes.
type AdminHandler struct {
	gate       *service.AdminGate
	moderation service.ModerationService
	activities service.ActivityService
	badges     service.BadgeService
	stats      service.StatService
}

func NewAdminHandler(
	gate *service.AdminGate,
	moderation service.ModerationService,
	activities service.ActivityService,
	badges service.BadgeService,
	stats service.StatService,
) *AdminHandler {
	return &AdminHandler{
		gate:       gate,
		moderation: moderation,
		activities: activities,
		badges:     badges,
		stats:      stats,
	}
}

type approveRequest struct {
	RequesterID  string `json:"requesterId" binding:"required"`
	SubmissionID string `json:"submissionId" binding:"required,uuid"`
	Score        int    `json:"score" binding:"required,min=1"`
}

func (h *AdminHandler) ApproveSubmission(c *gin.Context) {
	var req approveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, validator.FormatValidationError(err))
		return
	}

	admin, err := h.gate.Authorize(c.Request.Context(), req.RequesterID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.moderation.Approve(c.Request.Context(), uuid.MustParse(req.SubmissionID), req.Score, admin); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "submission approved"})
}

type rejectRequest struct {
	RequesterID  string `json:"requesterId" binding:"required"`
	SubmissionID string `json:"submissionId" binding:"required,uuid"`
}

func (h *AdminHandler) RejectSubmission(c *gin.Context) {
	var req rejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, validator.FormatValidationError(err))
		return
	}

	admin, err := h.gate.Authorize(c.Request.Context(), req.RequesterID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.moderation.Reject(c.Request.Context(), uuid.MustParse(req.SubmissionID), admin); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "submission rejected"})
}

func (h *AdminHandler) DeleteSubmission(c *gin.Context) {
	if _, err := h.gate.Authorize(c.Request.Context(), c.Query("requesterId")); err != nil {
		response.Error(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid submission id")
		return
	}

	if err := h.moderation.DeleteSubmission(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "submission deleted"})
}

func (h *AdminHandler) ListSubmissions(c *gin.Context) {
	if _, err := h.gate.Authorize(c.Request.Context(), c.Query("requesterId")); err != nil {
		response.Error(c, err)
		return
	}

	status := model.SubmissionStatus(c.DefaultQuery("status", string(model.SubmissionPending)))
	submissions, err := h.moderation.ListSubmissions(c.Request.Context(), status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, submissions)
}

type createActivityRequest struct {
	RequesterID string `json:"requesterId" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

func (h *AdminHandler) CreateActivity(c *gin.Context) {
	var req createActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, validator.FormatValidationError(err))
		return
	}

	if _, err := h.gate.Authorize(c.Request.Context(), req.RequesterID); err != nil {
		response.Error(c, err)
		return
	}

	activity, err := h.activities.Create(c.Request.Context(), service.CreateActivityInput{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, activity)
}

type updateActivityRequest struct {
	RequesterID string  `json:"requesterId" binding:"required"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl"`
	Status      *string `json:"status"`
}

func (h *AdminHandler) UpdateActivity(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid activity id")
		return
	}

	var req updateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, validator.FormatValidationError(err))
		return
	}

	if _, err := h.gate.Authorize(c.Request.Context(), req.RequesterID); err != nil {
		response.Error(c, err)
		return
	}

	activity, err := h.activities.Update(c.Request.Context(), id, service.UpdateActivityInput{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Status:      req.Status,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, activity)
}

func (h *AdminHandler) DeleteActivity(c *gin.Context) {
	if _, err := h.gate.Authorize(c.Request.Context(), c.Query("requesterId")); err != nil {
		response.Error(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid activity id")
		return
	}

	if err := h.moderation.DeleteActivity(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "activity deleted"})
}

type createBadgeRequest struct {
	RequesterID string `json:"requesterId" binding:"required"`
	Code        string `json:"code" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	IconURL     string `json:"iconUrl"`
}

func (h *AdminHandler) CreateBadge(c *gin.Context) {
	var req createBadgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, validator.FormatValidationError(err))
		return
	}

	if _, err := h.gate.Authorize(c.Request.Context(), req.RequesterID); err != nil {
		response.Error(c, err)
		return
	}

	badge, err := h.badges.Create(c.Request.Context(), service.CreateBadgeInput{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		IconURL:     req.IconURL,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, badge)
}

type awardBadgeRequest struct {
	RequesterID string `json:"requesterId" binding:"required"`
	BadgeCode   string `json:"badgeCode" binding:"required"`
	LineUserID  string `json:"lineUserId" binding:"required"`
}

func (h *AdminHandler) AwardBadge(c *gin.Context) {
	var req awardBadgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, validator.FormatValidationError(err))
		return
	}

	if _, err := h.gate.Authorize(c.Request.Context(), req.RequesterID); err != nil {
		response.Error(c, err)
		return
	}

	if err := h.badges.Award(c.Request.Context(), req.BadgeCode, req.LineUserID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "badge awarded"})
}

func (h *AdminHandler) Stats(c *gin.Context) {
	if _, err := h.gate.Authorize(c.Request.Context(), c.Query("requesterId")); err != nil {
		response.Error(c, err)
		return
	}

	overview, err := h.stats.Overview(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, overview)
}

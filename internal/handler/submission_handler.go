package handler

import (
	"arunika.id/aksipoin/internal/service"
	"arunika.id/aksipoin/pkg/response"
	"arunika.id/aksipoin/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SubmissionHandler struct {
	submissions service.SubmissionService
	engagement  service.EngagementService
}

func NewSubmissionHandler(submissions service.SubmissionService, engagement service.EngagementService) *SubmissionHandler {
	return &SubmissionHandler{submissions: submissions, engagement: engagement}
}

type createSubmissionRequest struct {
	ActivityID  string `json:"activityId" binding:"required,uuid"`
	LineUserID  string `json:"lineUserId" binding:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

func (h *SubmissionHandler) Create(c *gin.Context) {
	var req createSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, validator.FormatValidationError(err))
		return
	}

	submission, err := h.submissions.Create(c.Request.Context(), service.CreateSubmissionInput{
		ActivityID:  uuid.MustParse(req.ActivityID),
		LineUserID:  req.LineUserID,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, submission)
}

func (h *SubmissionHandler) ListForActivity(c *gin.Context) {
	activityID, err := uuid.Parse(c.Query("activityId"))
	if err != nil {
		response.BadRequest(c, "invalid activityId")
		return
	}

	views, err := h.submissions.ListForActivity(c.Request.Context(), activityID, c.Query("lineUserId"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, views)
}

type likeRequest struct {
	SubmissionID string `json:"submissionId" binding:"required,uuid"`
	LineUserID   string `json:"lineUserId" binding:"required"`
}

func (h *SubmissionHandler) ToggleLike(c *gin.Context) {
	var req likeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, validator.FormatValidationError(err))
		return
	}

	result, err := h.engagement.ToggleLike(c.Request.Context(), uuid.MustParse(req.SubmissionID), req.LineUserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

type commentRequest struct {
	SubmissionID string `json:"submissionId" binding:"required,uuid"`
	LineUserID   string `json:"lineUserId" binding:"required"`
	CommentText  string `json:"commentText"`
}

func (h *SubmissionHandler) AddComment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, validator.FormatValidationError(err))
		return
	}

	comment, err := h.engagement.AddComment(c.Request.Context(), uuid.MustParse(req.SubmissionID), req.LineUserID, req.CommentText)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, comment)
}

package handler

import (
	"arunika.id/aksipoin/internal/service"
	"arunika.id/aksipoin/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ActivityHandler struct {
	activities service.ActivityService
}

func NewActivityHandler(activities service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activities: activities}
}

func (h *ActivityHandler) List(c *gin.Context) {
	activities, err := h.activities.ListActive(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, activities)
}

func (h *ActivityHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid activity id")
		return
	}

	activity, err := h.activities.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, activity)
}

package handler

import (
	"arunika.id/aksipoin/internal/service"
	"arunika.id/aksipoin/pkg/response"
	"github.com/gin-gonic/gin"
)

type BadgeHandler struct {
	badges service.BadgeService
}

func NewBadgeHandler(badges service.BadgeService) *BadgeHandler {
	return &BadgeHandler{badges: badges}
}

func (h *BadgeHandler) List(c *gin.Context) {
	if lineUserID := c.Query("lineUserId"); lineUserID != "" {
		earned, err := h.badges.ListForUser(c.Request.Context(), lineUserID)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, earned)
		return
	}

	badges, err := h.badges.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, badges)
}

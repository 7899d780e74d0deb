package handler

import (
	"strconv"

	"arunika.id/aksipoin/internal/service"
	"arunika.id/aksipoin/pkg/response"
	"github.com/gin-gonic/gin"
)

type LeaderboardHandler struct {
	leaderboard service.LeaderboardService
}

func NewLeaderboardHandler(leaderboard service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboard: leaderboard}
}

func (h *LeaderboardHandler) Get(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	entries, err := h.leaderboard.GetLeaderboard(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, entries)
}

package handler

import (
	"strconv"

	"arunika.id/aksipoin/internal/service"
	"arunika.id/aksipoin/pkg/response"
	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	search service.SearchService
}

func NewSearchHandler(search service.SearchService) *SearchHandler {
	return &SearchHandler{search: search}
}

func (h *SearchHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		response.BadRequest(c, "q is required")
		return
	}
	if h.search == nil {
		response.Success(c, []service.SubmissionDocument{})
		return
	}

	limit, _ := strconv.ParseInt(c.Query("limit"), 10, 64)
	docs, err := h.search.Search(c.Request.Context(), query, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, docs)
}

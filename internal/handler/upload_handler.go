package handler

import (
	"arunika.id/aksipoin/pkg/response"
	"arunika.id/aksipoin/pkg/storage"
	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	storage storage.ImageStorage
}

func NewUploadHandler(storage storage.ImageStorage) *UploadHandler {
	return &UploadHandler{storage: storage}
}

func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		response.BadRequest(c, "image file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "failed to read image file")
		return
	}
	defer file.Close()

	url, err := h.storage.UploadImage(c.Request.Context(), file, fileHeader.Filename)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"url": url})
}

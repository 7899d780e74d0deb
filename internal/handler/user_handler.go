package handler

import (
	"arunika.id/aksipoin/internal/service"
	"arunika.id/aksipoin/pkg/response"
	"arunika.id/aksipoin/pkg/validator"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	users service.UserService
}

func NewUserHandler(users service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type registerRequest struct {
	LineUserID  string `json:"lineUserId" binding:"required"`
	DisplayName string `json:"displayName"`
	PictureURL  string `json:"pictureUrl"`
	FullName    string `json:"fullName"`
	EmployeeID  string `json:"employeeId"`
	IDToken     string `json:"idToken"`
}

func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, validator.FormatValidationError(err))
		return
	}

	user, err := h.users.Register(c.Request.Context(), service.RegisterInput{
		LineUserID:  req.LineUserID,
		DisplayName: req.DisplayName,
		PictureURL:  req.PictureURL,
		FullName:    req.FullName,
		EmployeeID:  req.EmployeeID,
		IDToken:     req.IDToken,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, user)
}

func (h *UserHandler) Profile(c *gin.Context) {
	profile, err := h.users.GetProfile(c.Request.Context(), c.Param("lineUserId"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, profile)
}

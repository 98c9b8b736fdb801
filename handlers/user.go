package handlers

import (
	"net/http"

	"handyhub/middleware"
	"handyhub/services/user"
	"handyhub/utils"

	"github.com/gin-gonic/gin"
)

// UserHandler exposes the self-service account endpoints.
type UserHandler struct {
	Users user.UserService
}

type updateUserRequest struct {
	Name   *string `json:"name"`
	Phone  *string `json:"phone"`
	Avatar *string `json:"avatar"`
}

// Me handles GET /users/me.
func (h *UserHandler) Me(c *gin.Context) {
	usr, err := h.Users.GetUserByID(c.GetString(middleware.CtxUserID))
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONOK(c, http.StatusOK, usr)
}

// UpdateMe handles PUT /users/me.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, utils.FormatBindingError(err))
		return
	}
	usr, err := h.Users.UpdateProfile(c.GetString(middleware.CtxUserID), user.UpdateProfileInput{
		Name:   req.Name,
		Phone:  req.Phone,
		Avatar: req.Avatar,
	})
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONOK(c, http.StatusOK, usr)
}

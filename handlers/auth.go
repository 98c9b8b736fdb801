package handlers

import (
	"net/http"

	"handyhub/services/admin"
	"handyhub/services/provider"
	"handyhub/services/user"
	"handyhub/utils"

	"github.com/gin-gonic/gin"
)

// authCookieMaxAge matches the user token lifetime.
const authCookieMaxAge = 72 * 60 * 60

// AuthHandler exposes the signup and signin endpoints for all three
// audiences.
type AuthHandler struct {
	Users     user.UserService
	Providers provider.ProviderService
	Admins    admin.AdminService
}

type registerUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type registerProviderRequest struct {
	BusinessName string `json:"businessName" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Phone        string `json:"phone"`
	Password     string `json:"password" binding:"required,min=8"`
}

// RegisterUser handles POST /auth/users/register.
func (h *AuthHandler) RegisterUser(c *gin.Context) {
	var req registerUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, utils.FormatBindingError(err))
		return
	}
	result, err := h.Users.Register(user.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	setAuthCookie(c, result.Token)
	utils.JSONOK(c, http.StatusCreated, result)
}

// LoginUser handles POST /auth/users/login. The token is returned in the
// body and mirrored into an HTTP-only cookie for browser clients.
func (h *AuthHandler) LoginUser(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, utils.FormatBindingError(err))
		return
	}
	result, err := h.Users.Authenticate(req.Email, req.Password)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	setAuthCookie(c, result.Token)
	utils.JSONOK(c, http.StatusOK, result)
}

// RegisterProvider handles POST /auth/providers/register.
func (h *AuthHandler) RegisterProvider(c *gin.Context) {
	var req registerProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, utils.FormatBindingError(err))
		return
	}
	result, err := h.Providers.Register(provider.RegisterInput{
		BusinessName: req.BusinessName,
		Email:        req.Email,
		Phone:        req.Phone,
		Password:     req.Password,
	})
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONOK(c, http.StatusCreated, result)
}

// LoginProvider handles POST /auth/providers/login.
func (h *AuthHandler) LoginProvider(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, utils.FormatBindingError(err))
		return
	}
	result, err := h.Providers.Authenticate(req.Email, req.Password)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONOK(c, http.StatusOK, result)
}

// LoginAdmin handles POST /auth/admins/login.
func (h *AuthHandler) LoginAdmin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, utils.FormatBindingError(err))
		return
	}
	result, err := h.Admins.Authenticate(req.Email, req.Password)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONOK(c, http.StatusOK, result)
}

func setAuthCookie(c *gin.Context, token string) {
	c.SetCookie("token", token, authCookieMaxAge, "/", "", false, true)
}

package handlers

import (
	"net/http"

	"handyhub/services/admin"
	"handyhub/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler exposes the moderation dashboard endpoints.
type AdminHandler struct {
	Admins admin.AdminService
}

type verificationRequest struct {
	Status   string `json:"status" binding:"required"`
	Document string `json:"document"`
	Note     string `json:"note"`
}

// ListUsers handles GET /admin/users.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page := utils.ParsePageParams(c)
	users, total, err := h.Admins.ListUsers(c.Query("status"), page)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONPage(c, users, utils.BuildPagination(page, total))
}

// ListProviders handles GET /admin/providers.
func (h *AdminHandler) ListProviders(c *gin.Context) {
	page := utils.ParsePageParams(c)
	providers, total, err := h.Admins.ListProviders(c.Query("status"), page)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONPage(c, providers, utils.BuildPagination(page, total))
}

// SetVerification handles PUT /admin/providers/:id/verification.
func (h *AdminHandler) SetVerification(c *gin.Context) {
	var req verificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, utils.FormatBindingError(err))
		return
	}
	prov, err := h.Admins.SetProviderVerification(c.Param("id"), admin.VerificationInput{
		Status:   req.Status,
		Document: req.Document,
		Note:     req.Note,
	})
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONOK(c, http.StatusOK, prov)
}

// Stats handles GET /admin/stats.
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.Admins.Stats()
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONOK(c, http.StatusOK, stats)
}

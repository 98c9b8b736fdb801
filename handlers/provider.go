package handlers

import (
	"net/http"

	"handyhub/models"
	"handyhub/services/provider"
	"handyhub/utils"

	"github.com/gin-gonic/gin"
)

// ProviderHandler exposes the provider profile endpoints.
type ProviderHandler struct {
	Providers provider.ProviderService
}

type updateProviderRequest struct {
	BusinessName *string `json:"businessName"`
	Phone        *string `json:"phone"`
	Bio          *string `json:"bio"`
	Avatar       *string `json:"avatar"`
	Address      *string `json:"address"`
	ServiceArea  *string `json:"serviceArea"`
}

// publicProviderView strips contact details for anonymous callers.
type publicProviderView struct {
	ID           string         `json:"id"`
	BusinessName string         `json:"businessName"`
	Bio          string         `json:"bio,omitempty"`
	Avatar       string         `json:"avatar,omitempty"`
	ServiceArea  string         `json:"serviceArea,omitempty"`
	Ratings      models.Ratings `json:"ratings"`
	Verification string         `json:"verificationStatus"`
}

// Get handles GET /providers/:id. Anonymous callers see the public
// profile; authenticated callers also get contact details.
func (h *ProviderHandler) Get(c *gin.Context) {
	prov, err := h.Providers.GetProviderByID(c.Param("id"))
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	actor := actorFromContext(c)
	if actor.ID == "" {
		utils.JSONOK(c, http.StatusOK, publicProviderView{
			ID:           prov.ID,
			BusinessName: prov.Profile.BusinessName,
			Bio:          prov.Profile.Bio,
			Avatar:       prov.Profile.Avatar,
			ServiceArea:  prov.Profile.ServiceArea,
			Ratings:      prov.Ratings,
			Verification: prov.Verification.Status,
		})
		return
	}
	utils.JSONOK(c, http.StatusOK, prov)
}

// Update handles PUT /providers/:id. Only the provider itself or an admin
// may edit the profile.
func (h *ProviderHandler) Update(c *gin.Context) {
	id := c.Param("id")
	actor := actorFromContext(c)
	if actor.Role != utils.AudienceAdmin && !(actor.Role == utils.AudienceProvider && actor.ID == id) {
		utils.JSONError(c, utils.NewAppError(utils.CodeForbidden, "you may only edit your own profile"))
		return
	}
	var req updateProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, utils.FormatBindingError(err))
		return
	}
	prov, err := h.Providers.UpdateProfile(id, provider.UpdateProfileInput{
		BusinessName: req.BusinessName,
		Phone:        req.Phone,
		Bio:          req.Bio,
		Avatar:       req.Avatar,
		Address:      req.Address,
		ServiceArea:  req.ServiceArea,
	})
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONOK(c, http.StatusOK, prov)
}

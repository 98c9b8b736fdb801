package handlers

import (
	"net/http"

	"handyhub/middleware"
	"handyhub/models"
	"handyhub/services/review"
	"handyhub/utils"

	"github.com/gin-gonic/gin"
)

// ReviewHandler exposes the review endpoints.
type ReviewHandler struct {
	Reviews review.ReviewService
}

type createReviewRequest struct {
	BookingID   string   `json:"bookingId" binding:"required"`
	Comment     string   `json:"comment"`
	Quality     float64  `json:"quality" binding:"required,gte=1,lte=5"`
	Punctuality float64  `json:"punctuality" binding:"required,gte=1,lte=5"`
	Behavior    float64  `json:"behavior" binding:"required,gte=1,lte=5"`
	Pricing     float64  `json:"pricing" binding:"required,gte=1,lte=5"`
	Cleanliness *float64 `json:"cleanliness" binding:"omitempty,gte=1,lte=5"`
}

type moderateRequest struct {
	Status string `json:"status" binding:"required"`
}

// Create handles POST /reviews. The overall rating is derived from the
// breakdown server-side.
func (h *ReviewHandler) Create(c *gin.Context) {
	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, utils.FormatBindingError(err))
		return
	}
	rev, err := h.Reviews.CreateReview(c.GetString(middleware.CtxUserID), review.CreateReviewInput{
		BookingID: req.BookingID,
		Comment:   req.Comment,
		Breakdown: models.RatingBreakdown{
			Quality:     req.Quality,
			Punctuality: req.Punctuality,
			Behavior:    req.Behavior,
			Pricing:     req.Pricing,
			Cleanliness: req.Cleanliness,
		},
	})
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONOK(c, http.StatusCreated, rev)
}

// List handles GET /reviews. Non-admin callers only see reviews in the
// publicly visible statuses.
func (h *ReviewHandler) List(c *gin.Context) {
	page := utils.ParsePageParams(c)
	actor := actorFromContext(c)
	filter := review.ListFilter{
		ServiceID:        c.Query("serviceId"),
		ProviderID:       c.Query("providerId"),
		IncludeModerated: actor.Role == utils.AudienceAdmin,
	}
	reviews, total, err := h.Reviews.ListReviews(filter, page)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONPage(c, reviews, utils.BuildPagination(page, total))
}

// ToggleHelpful handles PUT /reviews/:id/helpful. Repeated calls flip the
// caller's vote; each direction is idempotent at the persistence layer.
func (h *ReviewHandler) ToggleHelpful(c *gin.Context) {
	rev, err := h.Reviews.ToggleHelpful(c.Param("id"), c.GetString(middleware.CtxUserID))
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONOK(c, http.StatusOK, rev)
}

// Moderate handles PUT /reviews/:id/moderate.
func (h *ReviewHandler) Moderate(c *gin.Context) {
	var req moderateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, utils.FormatBindingError(err))
		return
	}
	rev, err := h.Reviews.Moderate(c.Param("id"), req.Status)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONOK(c, http.StatusOK, rev)
}

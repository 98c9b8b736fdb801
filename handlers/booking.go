package handlers

import (
	"net/http"
	"time"

	"handyhub/middleware"
	"handyhub/services/booking"
	"handyhub/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler exposes the booking endpoints.
type BookingHandler struct {
	Bookings booking.BookingService
}

type createBookingRequest struct {
	ServiceID     string    `json:"serviceId" binding:"required"`
	ScheduledDate time.Time `json:"scheduledDate" binding:"required"`
	Address       string    `json:"address"`
	Notes         string    `json:"notes"`
}

type updateBookingRequest struct {
	ScheduledDate *time.Time `json:"scheduledDate"`
	Address       *string    `json:"address"`
	Notes         *string    `json:"notes"`
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason"`
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

type messageRequest struct {
	Body string `json:"body" binding:"required"`
}

// Create handles POST /bookings.
func (h *BookingHandler) Create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, utils.FormatBindingError(err))
		return
	}
	bk, err := h.Bookings.CreateBooking(c.GetString(middleware.CtxUserID), booking.CreateBookingInput{
		ServiceID:     req.ServiceID,
		ScheduledDate: req.ScheduledDate,
		Address:       req.Address,
		Notes:         req.Notes,
	})
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONOK(c, http.StatusCreated, bk)
}

// Get handles GET /bookings/:id.
func (h *BookingHandler) Get(c *gin.Context) {
	bk, err := h.Bookings.GetBooking(c.Param("id"), actorFromContext(c))
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONOK(c, http.StatusOK, bk)
}

// List handles GET /bookings. The listing is scoped to the caller's role.
func (h *BookingHandler) List(c *gin.Context) {
	page := utils.ParsePageParams(c)
	filter := booking.ListFilter{Status: c.Query("status")}
	if raw := c.Query("dateFrom"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			filter.DateFrom = t
		}
	}
	if raw := c.Query("dateTo"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			filter.DateTo = t
		}
	}
	bookings, total, err := h.Bookings.ListBookings(actorFromContext(c), filter, page)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONPage(c, bookings, utils.BuildPagination(page, total))
}

// Update handles PUT /bookings/:id (non-status fields only).
func (h *BookingHandler) Update(c *gin.Context) {
	var req updateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, utils.FormatBindingError(err))
		return
	}
	bk, err := h.Bookings.UpdateBooking(c.Param("id"), actorFromContext(c), booking.UpdateBookingInput{
		ScheduledDate: req.ScheduledDate,
		Address:       req.Address,
		Notes:         req.Notes,
	})
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONOK(c, http.StatusOK, bk)
}

// UpdateStatus handles PUT /bookings/:id/status.
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, utils.FormatBindingError(err))
		return
	}
	bk, err := h.Bookings.UpdateStatus(c.Param("id"), actorFromContext(c), req.Status, req.Reason)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONOK(c, http.StatusOK, bk)
}

// Cancel handles PUT /bookings/:id/cancel.
func (h *BookingHandler) Cancel(c *gin.Context) {
	var req cancelRequest
	// the reason body is optional
	_ = c.ShouldBindJSON(&req)
	bk, err := h.Bookings.Cancel(c.Param("id"), actorFromContext(c), req.Reason)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONOK(c, http.StatusOK, bk)
}

// AddMessage handles POST /bookings/:id/messages.
func (h *BookingHandler) AddMessage(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, utils.FormatBindingError(err))
		return
	}
	bk, err := h.Bookings.AddMessage(c.Param("id"), actorFromContext(c), req.Body)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONOK(c, http.StatusOK, bk)
}

package handlers

import (
	"net/http"
	"strconv"

	serviceRepo "handyhub/database/repository/service"
	"handyhub/middleware"
	"handyhub/models"
	"handyhub/services/catalog"
	"handyhub/utils"

	"github.com/gin-gonic/gin"
)

const maxImageSize = 8 << 20 // 8 MiB

// ServiceHandler exposes the catalog endpoints.
type ServiceHandler struct {
	Catalog catalog.CatalogService
}

type createServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Category    string  `json:"category" binding:"required"`
	Description string  `json:"description"`
	PriceAmount float64 `json:"priceAmount" binding:"required,gt=0"`
	PriceUnit   string  `json:"priceUnit" binding:"required"`
}

type updateServiceRequest struct {
	Name        *string  `json:"name"`
	Category    *string  `json:"category"`
	Description *string  `json:"description"`
	PriceAmount *float64 `json:"priceAmount"`
	PriceUnit   *string  `json:"priceUnit"`
}

// Create handles POST /services.
func (h *ServiceHandler) Create(c *gin.Context) {
	var req createServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, utils.FormatBindingError(err))
		return
	}
	svc, err := h.Catalog.CreateService(c.GetString(middleware.CtxProviderID), catalog.CreateServiceInput{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		PriceAmount: req.PriceAmount,
		PriceUnit:   req.PriceUnit,
	})
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONOK(c, http.StatusCreated, svc)
}

// Get handles GET /services/:id.
func (h *ServiceHandler) Get(c *gin.Context) {
	svc, err := h.Catalog.GetService(c.Param("id"))
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONOK(c, http.StatusOK, svc)
}

// Search handles GET /services. The public listing only surfaces active
// services.
func (h *ServiceHandler) Search(c *gin.Context) {
	page := utils.ParsePageParams(c)
	criteria := serviceRepo.ServiceSearchCriteria{
		Category:   c.Query("category"),
		ProviderID: c.Query("providerId"),
		Query:      c.Query("q"),
		SortBy:     c.Query("sort"),
		Status:     models.ServiceActive,
	}
	criteria.MinPrice, _ = strconv.ParseFloat(c.Query("minPrice"), 64)
	criteria.MaxPrice, _ = strconv.ParseFloat(c.Query("maxPrice"), 64)
	criteria.MinRating, _ = strconv.ParseFloat(c.Query("minRating"), 64)

	services, total, err := h.Catalog.Search(criteria, page)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONPage(c, services, utils.BuildPagination(page, total))
}

// Update handles PUT /services/:id.
func (h *ServiceHandler) Update(c *gin.Context) {
	var req updateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, utils.FormatBindingError(err))
		return
	}
	svc, err := h.Catalog.UpdateService(c.Param("id"), actorFromContext(c), catalog.UpdateServiceInput{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		PriceAmount: req.PriceAmount,
		PriceUnit:   req.PriceUnit,
	})
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONOK(c, http.StatusOK, svc)
}

// Delete handles DELETE /services/:id. The service is retired, not
// removed; active bookings block the operation.
func (h *ServiceHandler) Delete(c *gin.Context) {
	if err := h.Catalog.DeleteService(c.Param("id"), actorFromContext(c)); err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "service deleted")
}

// UploadImage handles POST /services/:id/images (multipart field "image").
func (h *ServiceHandler) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		utils.JSONError(c, utils.NewValidationError([]utils.FieldError{{
			Field: "image", Message: "multipart image file is required",
		}}))
		return
	}
	if fileHeader.Size > maxImageSize {
		utils.JSONError(c, utils.NewValidationError([]utils.FieldError{{
			Field: "image", Message: "must be at most 8 MiB",
		}}))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	defer file.Close()

	url, err := h.Catalog.AddImage(c.Param("id"), actorFromContext(c), file)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONOK(c, http.StatusCreated, gin.H{"url": url})
}

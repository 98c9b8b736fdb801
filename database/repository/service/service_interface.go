package serviceRepo

import (
	"handyhub/models"
	"handyhub/utils"

	"go.mongodb.org/mongo-driver/bson"
)

// ServiceSearchCriteria are the supported listing filters.
type ServiceSearchCriteria struct {
	Category   string
	ProviderID string
	Query      string
	MinPrice   float64
	MaxPrice   float64
	MinRating  float64
	Status     string
	SortBy     string // "price", "rating" or "" for newest-first
}

// ServiceRepository defines persistence operations for catalog services.
type ServiceRepository interface {
	Create(service *models.Service) error
	GetByID(id string) (*models.Service, error)
	UpdateFields(id string, fields bson.M) error
	AddImage(id string, imageURL string) error
	UpdateRatings(id string, ratings models.Ratings) error
	Search(criteria ServiceSearchCriteria, page utils.PageParams) ([]models.Service, int64, error)
	EnsureIndexes() error
}

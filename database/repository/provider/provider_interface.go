package providerRepo

import (
	"handyhub/models"
	"handyhub/utils"

	"go.mongodb.org/mongo-driver/bson"
)

// ProviderRepository defines persistence operations for provider accounts.
type ProviderRepository interface {
	Create(provider *models.Provider) error
	GetByID(id string) (*models.Provider, error)
	GetByEmail(email string) (*models.Provider, error)
	GetByIDWithProjection(id string, proj bson.M) (*models.Provider, error)
	UpdateFields(id string, fields bson.M) error
	TouchLastActive(id string) error
	SetVerification(id string, v models.ProviderVerification) error
	UpdateRatings(id string, ratings models.Ratings) error
	List(filter bson.M, page utils.PageParams) ([]models.Provider, int64, error)
	EnsureIndexes() error
}

package adminRepo

import (
	"handyhub/models"

	"go.mongodb.org/mongo-driver/bson"
)

// AdminRepository defines persistence operations for admin accounts.
type AdminRepository interface {
	Create(admin *models.Admin) error
	GetByID(id string) (*models.Admin, error)
	GetByEmail(email string) (*models.Admin, error)
	GetByIDWithProjection(id string, proj bson.M) (*models.Admin, error)
	TouchLastActive(id string) error
	EnsureIndexes() error
}

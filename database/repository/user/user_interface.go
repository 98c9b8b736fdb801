package userRepo

import (
	"handyhub/models"
	"handyhub/utils"

	"go.mongodb.org/mongo-driver/bson"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByIDWithProjection(id string, proj bson.M) (*models.User, error)
	UpdateFields(id string, fields bson.M) error
	TouchLastActive(id string) error
	List(filter bson.M, page utils.PageParams) ([]models.User, int64, error)
	EnsureIndexes() error
}

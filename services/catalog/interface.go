package catalog

import (
	"io"

	serviceRepo "handyhub/database/repository/service"
	"handyhub/models"
	"handyhub/utils"
)

// CreateServiceInput is the allow-listed payload for publishing a service.
type CreateServiceInput struct {
	Name        string
	Category    string
	Description string
	PriceAmount float64
	PriceUnit   string
}

// UpdateServiceInput carries the fields an update may touch. Nil pointers
// leave the field unchanged.
type UpdateServiceInput struct {
	Name        *string
	Category    *string
	Description *string
	PriceAmount *float64
	PriceUnit   *string
}

// CatalogService governs the service catalog: publishing, search, updates,
// image uploads, and the soft-delete guarded by active bookings.
type CatalogService interface {
	CreateService(providerID string, in CreateServiceInput) (*models.Service, error)
	GetService(id string) (*models.Service, error)
	Search(criteria serviceRepo.ServiceSearchCriteria, page utils.PageParams) ([]models.Service, int64, error)
	UpdateService(id string, actor models.Actor, in UpdateServiceInput) (*models.Service, error)
	DeleteService(id string, actor models.Actor) error
	AddImage(id string, actor models.Actor, file io.Reader) (string, error)
}

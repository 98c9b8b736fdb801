package catalog

import (
	"errors"
	"io"
	"time"

	bookingRepo "handyhub/database/repository/booking"
	serviceRepo "handyhub/database/repository/service"
	"handyhub/models"
	"handyhub/services/storage"
	"handyhub/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// DefaultCatalogService is the production CatalogService.
type DefaultCatalogService struct {
	Repo        serviceRepo.ServiceRepository
	BookingRepo bookingRepo.BookingRepository
	Storage     storage.StorageService
}

// CreateService publishes a new active service for the provider.
func (s *DefaultCatalogService) CreateService(providerID string, in CreateServiceInput) (*models.Service, error) {
	var fields []utils.FieldError
	if in.Name == "" {
		fields = append(fields, utils.FieldError{Field: "name", Message: "is required"})
	}
	if in.Category == "" {
		fields = append(fields, utils.FieldError{Field: "category", Message: "is required"})
	}
	if in.PriceAmount <= 0 {
		fields = append(fields, utils.FieldError{Field: "price.amount", Message: "must be greater than 0", Value: in.PriceAmount})
	}
	if in.PriceUnit == "" {
		fields = append(fields, utils.FieldError{Field: "price.unit", Message: "is required"})
	}
	if len(fields) > 0 {
		return nil, utils.NewValidationError(fields)
	}

	now := time.Now().UTC()
	svc := &models.Service{
		ID:          uuid.NewString(),
		ProviderID:  providerID,
		Name:        in.Name,
		Category:    in.Category,
		Description: in.Description,
		Price:       models.ServicePrice{Amount: in.PriceAmount, Unit: in.PriceUnit},
		Status:      models.ServiceActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Repo.Create(svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *DefaultCatalogService) GetService(id string) (*models.Service, error) {
	svc, err := s.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NewAppError(utils.CodeNotFound, "service not found")
		}
		return nil, err
	}
	return svc, nil
}

func (s *DefaultCatalogService) Search(criteria serviceRepo.ServiceSearchCriteria, page utils.PageParams) ([]models.Service, int64, error) {
	return s.Repo.Search(criteria, page)
}

// requireOwnership lets the owning provider or an admin through.
func (s *DefaultCatalogService) requireOwnership(svc *models.Service, actor models.Actor) error {
	if actor.Role == utils.AudienceAdmin {
		return nil
	}
	if actor.Role == utils.AudienceProvider && svc.ProviderID == actor.ID {
		return nil
	}
	return utils.NewAppError(utils.CodeForbidden, "you do not own this service")
}

// UpdateService applies the allow-listed fields; everything else in the
// request body is ignored before it reaches persistence.
func (s *DefaultCatalogService) UpdateService(id string, actor models.Actor, in UpdateServiceInput) (*models.Service, error) {
	svc, err := s.GetService(id)
	if err != nil {
		return nil, err
	}
	if err := s.requireOwnership(svc, actor); err != nil {
		return nil, err
	}

	fields := bson.M{}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, utils.NewValidationError([]utils.FieldError{{Field: "name", Message: "must not be empty"}})
		}
		fields["name"] = *in.Name
	}
	if in.Category != nil {
		fields["category"] = *in.Category
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.PriceAmount != nil {
		if *in.PriceAmount <= 0 {
			return nil, utils.NewValidationError([]utils.FieldError{{Field: "price.amount", Message: "must be greater than 0", Value: *in.PriceAmount}})
		}
		fields["price.amount"] = *in.PriceAmount
	}
	if in.PriceUnit != nil {
		fields["price.unit"] = *in.PriceUnit
	}
	if len(fields) == 0 {
		return svc, nil
	}
	if err := s.Repo.UpdateFields(id, fields); err != nil {
		return nil, err
	}
	return s.Repo.GetByID(id)
}

// DeleteService retires a service (status -> inactive). It is a
// precondition check, not a foreign-key constraint: any booking still in a
// non-terminal status blocks the deletion with HasActiveBookings.
func (s *DefaultCatalogService) DeleteService(id string, actor models.Actor) error {
	svc, err := s.GetService(id)
	if err != nil {
		return err
	}
	if err := s.requireOwnership(svc, actor); err != nil {
		return err
	}
	active, err := s.BookingRepo.CountActiveByService(id)
	if err != nil {
		return err
	}
	if active > 0 {
		return utils.NewAppError(utils.CodeHasActiveBookings, "service has active bookings and cannot be deleted")
	}
	return s.Repo.UpdateFields(id, bson.M{"status": models.ServiceInactive})
}

// AddImage uploads a service photo to the image store and records its URL.
func (s *DefaultCatalogService) AddImage(id string, actor models.Actor, file io.Reader) (string, error) {
	svc, err := s.GetService(id)
	if err != nil {
		return "", err
	}
	if err := s.requireOwnership(svc, actor); err != nil {
		return "", err
	}
	if s.Storage == nil {
		return "", utils.NewAppError(utils.CodeUploadFailed, "image storage is not configured")
	}
	url, err := s.Storage.UploadImage(file, "services/"+id)
	if err != nil {
		return "", utils.NewAppError(utils.CodeUploadFailed, "image upload failed")
	}
	if err := s.Repo.AddImage(id, url); err != nil {
		return "", err
	}
	return url, nil
}

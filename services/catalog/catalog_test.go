package catalog

import (
	"errors"
	"io"
	"strings"
	"testing"

	bookingRepo "handyhub/database/repository/booking"
	serviceRepo "handyhub/database/repository/service"
	"handyhub/models"
	"handyhub/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type mockServiceRepo struct{ mock.Mock }

func (m *mockServiceRepo) Create(service *models.Service) error {
	return m.Called(service).Error(0)
}

func (m *mockServiceRepo) GetByID(id string) (*models.Service, error) {
	args := m.Called(id)
	s, _ := args.Get(0).(*models.Service)
	return s, args.Error(1)
}

func (m *mockServiceRepo) UpdateFields(id string, fields bson.M) error {
	return m.Called(id, fields).Error(0)
}

func (m *mockServiceRepo) AddImage(id string, imageURL string) error {
	return m.Called(id, imageURL).Error(0)
}

func (m *mockServiceRepo) UpdateRatings(id string, ratings models.Ratings) error {
	return m.Called(id, ratings).Error(0)
}

func (m *mockServiceRepo) Search(criteria serviceRepo.ServiceSearchCriteria, page utils.PageParams) ([]models.Service, int64, error) {
	args := m.Called(criteria, page)
	svcs, _ := args.Get(0).([]models.Service)
	return svcs, args.Get(1).(int64), args.Error(2)
}

func (m *mockServiceRepo) EnsureIndexes() error { return m.Called().Error(0) }

type mockBookingRepo struct{ mock.Mock }

func (m *mockBookingRepo) Create(booking *models.Booking) error {
	return m.Called(booking).Error(0)
}

func (m *mockBookingRepo) GetByID(id string) (*models.Booking, error) {
	args := m.Called(id)
	b, _ := args.Get(0).(*models.Booking)
	return b, args.Error(1)
}

func (m *mockBookingRepo) UpdateFields(id string, fields bson.M) error {
	return m.Called(id, fields).Error(0)
}

func (m *mockBookingRepo) UpdateStatus(id string, change models.StatusChange) error {
	return m.Called(id, change).Error(0)
}

func (m *mockBookingRepo) AppendMessage(id string, msg models.BookingMessage) error {
	return m.Called(id, msg).Error(0)
}

func (m *mockBookingRepo) List(filter bson.M, page utils.PageParams) ([]models.Booking, int64, error) {
	args := m.Called(filter, page)
	bks, _ := args.Get(0).([]models.Booking)
	return bks, args.Get(1).(int64), args.Error(2)
}

func (m *mockBookingRepo) CountActiveByService(serviceID string) (int64, error) {
	args := m.Called(serviceID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockBookingRepo) Stats() (*bookingRepo.BookingStats, error) {
	args := m.Called()
	s, _ := args.Get(0).(*bookingRepo.BookingStats)
	return s, args.Error(1)
}

func (m *mockBookingRepo) EnsureIndexes() error { return m.Called().Error(0) }

type stubStorage struct {
	url string
	err error
}

func (s *stubStorage) UploadImage(file io.Reader, folder string) (string, error) {
	return s.url, s.err
}

func (s *stubStorage) DeleteImage(publicID string) error { return nil }

func newTestService(storage *stubStorage) (*DefaultCatalogService, *mockServiceRepo, *mockBookingRepo) {
	repo := &mockServiceRepo{}
	bookings := &mockBookingRepo{}
	svc := &DefaultCatalogService{Repo: repo, BookingRepo: bookings, Storage: storage}
	return svc, repo, bookings
}

func ownedService() *models.Service {
	return &models.Service{
		ID:         "svc-1",
		ProviderID: "prov-1",
		Name:       "Pipe repair",
		Category:   "plumbing",
		Price:      models.ServicePrice{Amount: 80, Unit: "hour"},
		Status:     models.ServiceActive,
	}
}

var (
	asOwner    = models.Actor{ID: "prov-1", Role: utils.AudienceProvider}
	asStranger = models.Actor{ID: "prov-2", Role: utils.AudienceProvider}
	asAdmin    = models.Actor{ID: "adm-1", Role: utils.AudienceAdmin}
)

func TestCreateService(t *testing.T) {
	t.Run("publishes an active service", func(t *testing.T) {
		svc, repo, _ := newTestService(nil)
		repo.On("Create", mock.AnythingOfType("*models.Service")).Return(nil)

		created, err := svc.CreateService("prov-1", CreateServiceInput{
			Name: "Pipe repair", Category: "plumbing", PriceAmount: 80, PriceUnit: "hour",
		})
		assert.NoError(t, err)
		assert.Equal(t, models.ServiceActive, created.Status)
		assert.Equal(t, "prov-1", created.ProviderID)
	})

	t.Run("collects every missing field", func(t *testing.T) {
		svc, _, _ := newTestService(nil)
		_, err := svc.CreateService("prov-1", CreateServiceInput{})
		appErr, _ := utils.AsAppError(err)
		assert.Equal(t, utils.CodeValidationFailed, appErr.Code)
		assert.Len(t, appErr.Fields, 4)
	})
}

func TestDeleteService(t *testing.T) {
	t.Run("active bookings block deletion", func(t *testing.T) {
		svc, repo, bookings := newTestService(nil)
		repo.On("GetByID", "svc-1").Return(ownedService(), nil)
		bookings.On("CountActiveByService", "svc-1").Return(int64(2), nil)

		err := svc.DeleteService("svc-1", asOwner)
		appErr, _ := utils.AsAppError(err)
		assert.Equal(t, utils.CodeHasActiveBookings, appErr.Code)
		repo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything)
	})

	t.Run("deletion is a soft status flip", func(t *testing.T) {
		svc, repo, bookings := newTestService(nil)
		repo.On("GetByID", "svc-1").Return(ownedService(), nil)
		bookings.On("CountActiveByService", "svc-1").Return(int64(0), nil)
		repo.On("UpdateFields", "svc-1", bson.M{"status": models.ServiceInactive}).Return(nil)

		assert.NoError(t, svc.DeleteService("svc-1", asOwner))
		repo.AssertExpectations(t)
	})

	t.Run("admin may delete on the provider's behalf", func(t *testing.T) {
		svc, repo, bookings := newTestService(nil)
		repo.On("GetByID", "svc-1").Return(ownedService(), nil)
		bookings.On("CountActiveByService", "svc-1").Return(int64(0), nil)
		repo.On("UpdateFields", "svc-1", bson.M{"status": models.ServiceInactive}).Return(nil)

		assert.NoError(t, svc.DeleteService("svc-1", asAdmin))
	})

	t.Run("another provider is rejected", func(t *testing.T) {
		svc, repo, _ := newTestService(nil)
		repo.On("GetByID", "svc-1").Return(ownedService(), nil)

		err := svc.DeleteService("svc-1", asStranger)
		appErr, _ := utils.AsAppError(err)
		assert.Equal(t, utils.CodeForbidden, appErr.Code)
	})

	t.Run("unknown service yields not found", func(t *testing.T) {
		svc, repo, _ := newTestService(nil)
		repo.On("GetByID", "missing").Return(nil, mongo.ErrNoDocuments)

		err := svc.DeleteService("missing", asOwner)
		appErr, _ := utils.AsAppError(err)
		assert.Equal(t, utils.CodeNotFound, appErr.Code)
	})
}

func TestUpdateService(t *testing.T) {
	t.Run("only the owner or an admin may edit", func(t *testing.T) {
		svc, repo, _ := newTestService(nil)
		repo.On("GetByID", "svc-1").Return(ownedService(), nil)

		name := "New name"
		_, err := svc.UpdateService("svc-1", asStranger, UpdateServiceInput{Name: &name})
		appErr, _ := utils.AsAppError(err)
		assert.Equal(t, utils.CodeForbidden, appErr.Code)
	})

	t.Run("nonpositive price is rejected", func(t *testing.T) {
		svc, repo, _ := newTestService(nil)
		repo.On("GetByID", "svc-1").Return(ownedService(), nil)

		price := -5.0
		_, err := svc.UpdateService("svc-1", asOwner, UpdateServiceInput{PriceAmount: &price})
		appErr, _ := utils.AsAppError(err)
		assert.Equal(t, utils.CodeValidationFailed, appErr.Code)
	})

	t.Run("applies the allow-listed fields", func(t *testing.T) {
		svc, repo, _ := newTestService(nil)
		repo.On("GetByID", "svc-1").Return(ownedService(), nil)
		price := 95.0
		repo.On("UpdateFields", "svc-1", bson.M{"price.amount": price}).Return(nil)

		_, err := svc.UpdateService("svc-1", asOwner, UpdateServiceInput{PriceAmount: &price})
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestAddImage(t *testing.T) {
	t.Run("records the uploaded URL", func(t *testing.T) {
		svc, repo, _ := newTestService(&stubStorage{url: "https://cdn.example/svc-1.jpg"})
		repo.On("GetByID", "svc-1").Return(ownedService(), nil)
		repo.On("AddImage", "svc-1", "https://cdn.example/svc-1.jpg").Return(nil)

		url, err := svc.AddImage("svc-1", asOwner, strings.NewReader("fake-bytes"))
		assert.NoError(t, err)
		assert.Equal(t, "https://cdn.example/svc-1.jpg", url)
	})

	t.Run("a storage failure surfaces as upload failed", func(t *testing.T) {
		svc, repo, _ := newTestService(&stubStorage{err: errors.New("cloud down")})
		repo.On("GetByID", "svc-1").Return(ownedService(), nil)

		_, err := svc.AddImage("svc-1", asOwner, strings.NewReader("fake-bytes"))
		appErr, _ := utils.AsAppError(err)
		assert.Equal(t, utils.CodeUploadFailed, appErr.Code)
		repo.AssertNotCalled(t, "AddImage", mock.Anything, mock.Anything)
	})
}

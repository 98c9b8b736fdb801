package review

import (
	bookingRepo "handyhub/database/repository/booking"
	serviceRepo "handyhub/database/repository/service"
	"handyhub/models"
	"handyhub/utils"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
)

type mockReviewRepo struct{ mock.Mock }

func (m *mockReviewRepo) Create(review *models.Review) error {
	return m.Called(review).Error(0)
}

func (m *mockReviewRepo) GetByID(id string) (*models.Review, error) {
	args := m.Called(id)
	rev, _ := args.Get(0).(*models.Review)
	return rev, args.Error(1)
}

func (m *mockReviewRepo) FindByBookingAndUser(bookingID, userID string) (*models.Review, error) {
	args := m.Called(bookingID, userID)
	rev, _ := args.Get(0).(*models.Review)
	return rev, args.Error(1)
}

func (m *mockReviewRepo) List(filter bson.M, page utils.PageParams) ([]models.Review, int64, error) {
	args := m.Called(filter, page)
	revs, _ := args.Get(0).([]models.Review)
	return revs, args.Get(1).(int64), args.Error(2)
}

func (m *mockReviewRepo) SetStatus(id, status string) error {
	return m.Called(id, status).Error(0)
}

func (m *mockReviewRepo) MarkHelpful(id, userID string) (bool, error) {
	args := m.Called(id, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockReviewRepo) UnmarkHelpful(id, userID string) (bool, error) {
	args := m.Called(id, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockReviewRepo) AggregateForService(serviceID string) (models.Ratings, error) {
	args := m.Called(serviceID)
	return args.Get(0).(models.Ratings), args.Error(1)
}

func (m *mockReviewRepo) AggregateForProvider(providerID string) (models.Ratings, error) {
	args := m.Called(providerID)
	return args.Get(0).(models.Ratings), args.Error(1)
}

func (m *mockReviewRepo) EnsureIndexes() error { return m.Called().Error(0) }

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

type mockProviderRepo struct{ mock.Mock }

func (m *mockProviderRepo) Create(provider *models.Provider) error {
	return m.Called(provider).Error(0)
}

func (m *mockProviderRepo) GetByID(id string) (*models.Provider, error) {
	args := m.Called(id)
	p, _ := args.Get(0).(*models.Provider)
	return p, args.Error(1)
}

func (m *mockProviderRepo) GetByEmail(email string) (*models.Provider, error) {
	args := m.Called(email)
	p, _ := args.Get(0).(*models.Provider)
	return p, args.Error(1)
}

func (m *mockProviderRepo) GetByIDWithProjection(id string, proj bson.M) (*models.Provider, error) {
	args := m.Called(id, proj)
	p, _ := args.Get(0).(*models.Provider)
	return p, args.Error(1)
}

func (m *mockProviderRepo) UpdateFields(id string, fields bson.M) error {
	return m.Called(id, fields).Error(0)
}

func (m *mockProviderRepo) TouchLastActive(id string) error {
	return m.Called(id).Error(0)
}

func (m *mockProviderRepo) SetVerification(id string, v models.ProviderVerification) error {
	return m.Called(id, v).Error(0)
}

func (m *mockProviderRepo) UpdateRatings(id string, ratings models.Ratings) error {
	return m.Called(id, ratings).Error(0)
}

func (m *mockProviderRepo) List(filter bson.M, page utils.PageParams) ([]models.Provider, int64, error) {
	args := m.Called(filter, page)
	ps, _ := args.Get(0).([]models.Provider)
	return ps, args.Get(1).(int64), args.Error(2)
}

func (m *mockProviderRepo) EnsureIndexes() error { return m.Called().Error(0) }

// recordingEnqueuer captures recompute requests synchronously so tests
// never race against the inline-goroutine fallback.
type recordingEnqueuer struct {
	calls [][2]string
}

func (e *recordingEnqueuer) EnqueueRecompute(serviceID, providerID string) error {
	e.calls = append(e.calls, [2]string{serviceID, providerID})
	return nil
}

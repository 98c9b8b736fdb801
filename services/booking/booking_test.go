package booking

import (
	"testing"
	"time"

	bookingRepo "handyhub/database/repository/booking"
	serviceRepo "handyhub/database/repository/service"
	"handyhub/models"
	"handyhub/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

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

type recordingReminders struct {
	calls []string
}

func (r *recordingReminders) EnqueueReminder(bookingID string, at time.Time) error {
	r.calls = append(r.calls, bookingID)
	return nil
}

func newTestService() (*DefaultBookingService, *mockBookingRepo, *mockServiceRepo, *recordingReminders) {
	repo := &mockBookingRepo{}
	services := &mockServiceRepo{}
	reminders := &recordingReminders{}
	svc := &DefaultBookingService{
		Repo:        repo,
		ServiceRepo: services,
		Reminders:   reminders,
		Logger:      zap.NewNop(),
	}
	return svc, repo, services, reminders
}

func pendingBooking() *models.Booking {
	return &models.Booking{
		ID:            "bk-1",
		UserID:        "user-1",
		ProviderID:    "prov-1",
		ServiceID:     "svc-1",
		Status:        models.BookingPending,
		ScheduledDate: time.Now().Add(96 * time.Hour),
	}
}

var (
	asProvider = models.Actor{ID: "prov-1", Role: utils.AudienceProvider}
	asUser     = models.Actor{ID: "user-1", Role: utils.AudienceUser}
	asAdmin    = models.Actor{ID: "adm-1", Role: utils.AudienceAdmin}
)

func TestCreateBooking(t *testing.T) {
	t.Run("derives provider and pricing from the service", func(t *testing.T) {
		svc, repo, services, _ := newTestService()
		services.On("GetByID", "svc-1").Return(&models.Service{
			ID:         "svc-1",
			ProviderID: "prov-1",
			Status:     models.ServiceActive,
			Price:      models.ServicePrice{Amount: 120, Unit: "visit"},
		}, nil)
		repo.On("Create", mock.AnythingOfType("*models.Booking")).Return(nil)

		bk, err := svc.CreateBooking("user-1", CreateBookingInput{
			ServiceID:     "svc-1",
			ScheduledDate: time.Now().Add(48 * time.Hour),
		})
		assert.NoError(t, err)
		assert.Equal(t, models.BookingPending, bk.Status)
		assert.Equal(t, "prov-1", bk.ProviderID)
		assert.Equal(t, 120.0, bk.Pricing.TotalAmount)
		assert.Len(t, bk.StatusHistory, 1)
	})

	t.Run("rejects past dates", func(t *testing.T) {
		svc, _, _, _ := newTestService()
		_, err := svc.CreateBooking("user-1", CreateBookingInput{
			ServiceID:     "svc-1",
			ScheduledDate: time.Now().Add(-time.Hour),
		})
		appErr, _ := utils.AsAppError(err)
		assert.Equal(t, utils.CodeValidationFailed, appErr.Code)
	})

	t.Run("rejects inactive services", func(t *testing.T) {
		svc, _, services, _ := newTestService()
		services.On("GetByID", "svc-1").Return(&models.Service{
			ID: "svc-1", Status: models.ServiceInactive,
		}, nil)

		_, err := svc.CreateBooking("user-1", CreateBookingInput{
			ServiceID:     "svc-1",
			ScheduledDate: time.Now().Add(48 * time.Hour),
		})
		appErr, _ := utils.AsAppError(err)
		assert.Equal(t, utils.CodeValidationFailed, appErr.Code)
	})

	t.Run("unknown service yields not found", func(t *testing.T) {
		svc, _, services, _ := newTestService()
		services.On("GetByID", "missing").Return(nil, mongo.ErrNoDocuments)

		_, err := svc.CreateBooking("user-1", CreateBookingInput{
			ServiceID:     "missing",
			ScheduledDate: time.Now().Add(48 * time.Hour),
		})
		appErr, _ := utils.AsAppError(err)
		assert.Equal(t, utils.CodeNotFound, appErr.Code)
	})
}

func TestGetBooking(t *testing.T) {
	svc, repo, _, _ := newTestService()
	repo.On("GetByID", "bk-1").Return(pendingBooking(), nil)

	t.Run("customer, provider and admin can read", func(t *testing.T) {
		for _, actor := range []models.Actor{asUser, asProvider, asAdmin} {
			_, err := svc.GetBooking("bk-1", actor)
			assert.NoError(t, err, actor.Role)
		}
	})

	t.Run("strangers are rejected", func(t *testing.T) {
		_, err := svc.GetBooking("bk-1", models.Actor{ID: "other", Role: utils.AudienceUser})
		appErr, _ := utils.AsAppError(err)
		assert.Equal(t, utils.CodeForbidden, appErr.Code)
	})
}

func TestUpdateStatus(t *testing.T) {
	t.Run("users may not drive the status machine", func(t *testing.T) {
		svc, _, _, _ := newTestService()
		_, err := svc.UpdateStatus("bk-1", asUser, models.BookingConfirmed, "")
		appErr, _ := utils.AsAppError(err)
		assert.Equal(t, utils.CodeForbidden, appErr.Code)
	})

	t.Run("provider confirms a pending booking and a reminder is scheduled", func(t *testing.T) {
		svc, repo, _, reminders := newTestService()
		repo.On("GetByID", "bk-1").Return(pendingBooking(), nil)
		repo.On("UpdateStatus", "bk-1", mock.MatchedBy(func(c models.StatusChange) bool {
			return c.Status == models.BookingConfirmed && c.By == utils.AudienceProvider
		})).Return(nil)

		_, err := svc.UpdateStatus("bk-1", asProvider, models.BookingConfirmed, "")
		assert.NoError(t, err)
		assert.Equal(t, []string{"bk-1"}, reminders.calls)
	})

	t.Run("undefined edges are rejected", func(t *testing.T) {
		svc, repo, _, _ := newTestService()
		repo.On("GetByID", "bk-1").Return(pendingBooking(), nil)

		_, err := svc.UpdateStatus("bk-1", asProvider, models.BookingCompleted, "")
		appErr, _ := utils.AsAppError(err)
		assert.Equal(t, utils.CodeValidationFailed, appErr.Code)
		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
	})

	t.Run("unknown target status is rejected before any lookup", func(t *testing.T) {
		svc, repo, _, _ := newTestService()
		_, err := svc.UpdateStatus("bk-1", asProvider, "archived", "")
		appErr, _ := utils.AsAppError(err)
		assert.Equal(t, utils.CodeValidationFailed, appErr.Code)
		repo.AssertNotCalled(t, "GetByID", mock.Anything)
	})

	t.Run("another provider cannot touch the booking", func(t *testing.T) {
		svc, repo, _, _ := newTestService()
		repo.On("GetByID", "bk-1").Return(pendingBooking(), nil)

		_, err := svc.UpdateStatus("bk-1", models.Actor{ID: "prov-2", Role: utils.AudienceProvider}, models.BookingConfirmed, "")
		appErr, _ := utils.AsAppError(err)
		assert.Equal(t, utils.CodeForbidden, appErr.Code)
	})
}

func TestCancel(t *testing.T) {
	t.Run("providers may not cancel", func(t *testing.T) {
		svc, _, _, _ := newTestService()
		_, err := svc.Cancel("bk-1", asProvider, "")
		appErr, _ := utils.AsAppError(err)
		assert.Equal(t, utils.CodeForbidden, appErr.Code)
	})

	t.Run("customer cancels a pending booking", func(t *testing.T) {
		svc, repo, _, _ := newTestService()
		repo.On("GetByID", "bk-1").Return(pendingBooking(), nil)
		repo.On("UpdateStatus", "bk-1", mock.MatchedBy(func(c models.StatusChange) bool {
			return c.Status == models.BookingCancelled && c.By == utils.AudienceUser
		})).Return(nil)

		_, err := svc.Cancel("bk-1", asUser, "plans changed")
		assert.NoError(t, err)
	})

	t.Run("completed bookings cannot be cancelled", func(t *testing.T) {
		svc, repo, _, _ := newTestService()
		bk := pendingBooking()
		bk.Status = models.BookingCompleted
		repo.On("GetByID", "bk-1").Return(bk, nil)

		_, err := svc.Cancel("bk-1", asUser, "")
		appErr, _ := utils.AsAppError(err)
		assert.Equal(t, utils.CodeValidationFailed, appErr.Code)
	})

	t.Run("overlong reason is rejected", func(t *testing.T) {
		svc, _, _, _ := newTestService()
		long := make([]byte, maxReasonLength+1)
		for i := range long {
			long[i] = 'x'
		}
		_, err := svc.Cancel("bk-1", asUser, string(long))
		appErr, _ := utils.AsAppError(err)
		assert.Equal(t, utils.CodeValidationFailed, appErr.Code)
	})
}

func TestUpdateBooking(t *testing.T) {
	t.Run("closed bookings cannot be edited", func(t *testing.T) {
		svc, repo, _, _ := newTestService()
		bk := pendingBooking()
		bk.Status = models.BookingCancelled
		repo.On("GetByID", "bk-1").Return(bk, nil)

		notes := "updated"
		_, err := svc.UpdateBooking("bk-1", asUser, UpdateBookingInput{Notes: &notes})
		appErr, _ := utils.AsAppError(err)
		assert.Equal(t, utils.CodeValidationFailed, appErr.Code)
	})

	t.Run("only allow-listed fields reach persistence", func(t *testing.T) {
		svc, repo, _, _ := newTestService()
		repo.On("GetByID", "bk-1").Return(pendingBooking(), nil)
		notes := "bring a ladder"
		repo.On("UpdateFields", "bk-1", bson.M{"notes": notes}).Return(nil)

		_, err := svc.UpdateBooking("bk-1", asUser, UpdateBookingInput{Notes: &notes})
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestAddMessage(t *testing.T) {
	t.Run("admin is not part of the thread", func(t *testing.T) {
		svc, _, _, _ := newTestService()
		_, err := svc.AddMessage("bk-1", asAdmin, "hello")
		appErr, _ := utils.AsAppError(err)
		assert.Equal(t, utils.CodeForbidden, appErr.Code)
	})

	t.Run("provider appends to the thread", func(t *testing.T) {
		svc, repo, _, _ := newTestService()
		repo.On("GetByID", "bk-1").Return(pendingBooking(), nil)
		repo.On("AppendMessage", "bk-1", mock.MatchedBy(func(m models.BookingMessage) bool {
			return m.From == utils.AudienceProvider && m.Body == "on my way"
		})).Return(nil)

		_, err := svc.AddMessage("bk-1", asProvider, "on my way")
		assert.NoError(t, err)
	})

	t.Run("empty body is rejected", func(t *testing.T) {
		svc, _, _, _ := newTestService()
		_, err := svc.AddMessage("bk-1", asUser, "")
		appErr, _ := utils.AsAppError(err)
		assert.Equal(t, utils.CodeValidationFailed, appErr.Code)
	})
}

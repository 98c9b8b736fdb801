package review

import (
	"testing"

	"handyhub/models"
	"handyhub/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestService() (*DefaultReviewService, *mockReviewRepo, *mockBookingRepo, *mockServiceRepo, *mockProviderRepo, *recordingEnqueuer) {
	repo := &mockReviewRepo{}
	bookings := &mockBookingRepo{}
	services := &mockServiceRepo{}
	providers := &mockProviderRepo{}
	enq := &recordingEnqueuer{}
	svc := &DefaultReviewService{
		Repo:         repo,
		BookingRepo:  bookings,
		ServiceRepo:  services,
		ProviderRepo: providers,
		Enqueuer:     enq,
		Logger:       zap.NewNop(),
	}
	return svc, repo, bookings, services, providers, enq
}

func completedBooking() *models.Booking {
	return &models.Booking{
		ID:         "bk-1",
		UserID:     "user-1",
		ProviderID: "prov-1",
		ServiceID:  "svc-1",
		Status:     models.BookingCompleted,
	}
}

func validBreakdown() models.RatingBreakdown {
	return models.RatingBreakdown{Quality: 5, Punctuality: 4, Behavior: 5, Pricing: 4}
}

func TestCreateReview(t *testing.T) {
	t.Run("persists a pending review with the derived rating", func(t *testing.T) {
		svc, repo, bookings, _, _, enq := newTestService()
		bookings.On("GetByID", "bk-1").Return(completedBooking(), nil)
		repo.On("FindByBookingAndUser", "bk-1", "user-1").Return(nil, mongo.ErrNoDocuments)
		repo.On("Create", mock.AnythingOfType("*models.Review")).Return(nil)

		rev, err := svc.CreateReview("user-1", CreateReviewInput{
			BookingID: "bk-1",
			Comment:   "great work",
			Breakdown: validBreakdown(),
		})

		assert.NoError(t, err)
		assert.Equal(t, models.ReviewPending, rev.Status)
		assert.Equal(t, 4.5, rev.Rating)
		assert.Equal(t, "prov-1", rev.ProviderID)
		assert.Equal(t, "svc-1", rev.ServiceID)
		assert.Equal(t, [][2]string{{"svc-1", "prov-1"}}, enq.calls)
		repo.AssertExpectations(t)
	})

	t.Run("rejects an out-of-range breakdown with the full field list", func(t *testing.T) {
		svc, _, _, _, _, _ := newTestService()
		_, err := svc.CreateReview("user-1", CreateReviewInput{
			BookingID: "bk-1",
			Breakdown: models.RatingBreakdown{Quality: 0, Punctuality: 6, Behavior: 3, Pricing: 3},
		})
		appErr, ok := utils.AsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, utils.CodeValidationFailed, appErr.Code)
		assert.Len(t, appErr.Fields, 2)
	})

	t.Run("unknown booking yields not found", func(t *testing.T) {
		svc, _, bookings, _, _, _ := newTestService()
		bookings.On("GetByID", "missing").Return(nil, mongo.ErrNoDocuments)

		_, err := svc.CreateReview("user-1", CreateReviewInput{BookingID: "missing", Breakdown: validBreakdown()})
		appErr, _ := utils.AsAppError(err)
		assert.Equal(t, utils.CodeNotFound, appErr.Code)
	})

	t.Run("only the booking's customer may review", func(t *testing.T) {
		svc, _, bookings, _, _, _ := newTestService()
		bookings.On("GetByID", "bk-1").Return(completedBooking(), nil)

		_, err := svc.CreateReview("someone-else", CreateReviewInput{BookingID: "bk-1", Breakdown: validBreakdown()})
		appErr, _ := utils.AsAppError(err)
		assert.Equal(t, utils.CodeForbidden, appErr.Code)
	})

	t.Run("non-completed booking cannot be reviewed", func(t *testing.T) {
		svc, _, bookings, _, _, _ := newTestService()
		bk := completedBooking()
		bk.Status = models.BookingConfirmed
		bookings.On("GetByID", "bk-1").Return(bk, nil)

		_, err := svc.CreateReview("user-1", CreateReviewInput{BookingID: "bk-1", Breakdown: validBreakdown()})
		appErr, _ := utils.AsAppError(err)
		assert.Equal(t, utils.CodeValidationFailed, appErr.Code)
	})

	t.Run("pre-check catches an existing review", func(t *testing.T) {
		svc, repo, bookings, _, _, enq := newTestService()
		bookings.On("GetByID", "bk-1").Return(completedBooking(), nil)
		repo.On("FindByBookingAndUser", "bk-1", "user-1").Return(&models.Review{ID: "rev-1"}, nil)

		_, err := svc.CreateReview("user-1", CreateReviewInput{BookingID: "bk-1", Breakdown: validBreakdown()})
		appErr, _ := utils.AsAppError(err)
		assert.Equal(t, utils.CodeDuplicateReview, appErr.Code)
		assert.Empty(t, enq.calls)
		repo.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("unique index decides the race the pre-check missed", func(t *testing.T) {
		svc, repo, bookings, _, _, _ := newTestService()
		bookings.On("GetByID", "bk-1").Return(completedBooking(), nil)
		repo.On("FindByBookingAndUser", "bk-1", "user-1").Return(nil, mongo.ErrNoDocuments)
		dup := mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000}}}
		repo.On("Create", mock.AnythingOfType("*models.Review")).Return(dup)

		_, err := svc.CreateReview("user-1", CreateReviewInput{BookingID: "bk-1", Breakdown: validBreakdown()})
		appErr, _ := utils.AsAppError(err)
		assert.Equal(t, utils.CodeDuplicateReview, appErr.Code)
	})
}

func TestToggleHelpful(t *testing.T) {
	t.Run("marks when the caller has not voted", func(t *testing.T) {
		svc, repo, _, _, _, _ := newTestService()
		repo.On("GetByID", "rev-1").Return(&models.Review{ID: "rev-1"}, nil)
		repo.On("MarkHelpful", "rev-1", "user-1").Return(true, nil)

		_, err := svc.ToggleHelpful("rev-1", "user-1")
		assert.NoError(t, err)
		repo.AssertCalled(t, "MarkHelpful", "rev-1", "user-1")
		repo.AssertNotCalled(t, "UnmarkHelpful", mock.Anything, mock.Anything)
	})

	t.Run("unmarks when the caller already voted", func(t *testing.T) {
		svc, repo, _, _, _, _ := newTestService()
		rev := &models.Review{ID: "rev-1", Helpful: models.HelpfulVotes{Count: 1, Users: []string{"user-1"}}}
		repo.On("GetByID", "rev-1").Return(rev, nil)
		repo.On("UnmarkHelpful", "rev-1", "user-1").Return(true, nil)

		_, err := svc.ToggleHelpful("rev-1", "user-1")
		assert.NoError(t, err)
		repo.AssertCalled(t, "UnmarkHelpful", "rev-1", "user-1")
		repo.AssertNotCalled(t, "MarkHelpful", mock.Anything, mock.Anything)
	})

	t.Run("missing review yields not found", func(t *testing.T) {
		svc, repo, _, _, _, _ := newTestService()
		repo.On("GetByID", "gone").Return(nil, mongo.ErrNoDocuments)

		_, err := svc.ToggleHelpful("gone", "user-1")
		appErr, _ := utils.AsAppError(err)
		assert.Equal(t, utils.CodeNotFound, appErr.Code)
	})
}

func TestModerate(t *testing.T) {
	t.Run("rejects unknown statuses", func(t *testing.T) {
		svc, _, _, _, _, _ := newTestService()
		_, err := svc.Moderate("rev-1", "promoted")
		appErr, _ := utils.AsAppError(err)
		assert.Equal(t, utils.CodeValidationFailed, appErr.Code)
	})

	t.Run("sets the status and re-triggers aggregation", func(t *testing.T) {
		svc, repo, _, _, _, enq := newTestService()
		rev := &models.Review{ID: "rev-1", ServiceID: "svc-1", ProviderID: "prov-1", Status: models.ReviewPending}
		repo.On("GetByID", "rev-1").Return(rev, nil)
		repo.On("SetStatus", "rev-1", models.ReviewHidden).Return(nil)

		_, err := svc.Moderate("rev-1", models.ReviewHidden)
		assert.NoError(t, err)
		assert.Equal(t, [][2]string{{"svc-1", "prov-1"}}, enq.calls)
	})
}

func TestRecomputeAggregates(t *testing.T) {
	t.Run("rewrites both aggregates from the current review set", func(t *testing.T) {
		svc, repo, _, services, providers, _ := newTestService()
		svcRatings := models.Ratings{AverageRating: 4.5, TotalReviews: 12}
		provRatings := models.Ratings{AverageRating: 4.2, TotalReviews: 40}
		repo.On("AggregateForService", "svc-1").Return(svcRatings, nil)
		repo.On("AggregateForProvider", "prov-1").Return(provRatings, nil)
		services.On("UpdateRatings", "svc-1", svcRatings).Return(nil)
		providers.On("UpdateRatings", "prov-1", provRatings).Return(nil)

		assert.NoError(t, svc.RecomputeAggregates("svc-1", "prov-1"))
		services.AssertExpectations(t)
		providers.AssertExpectations(t)
	})

	t.Run("zero reviews resets the aggregate", func(t *testing.T) {
		svc, repo, _, services, providers, _ := newTestService()
		repo.On("AggregateForService", "svc-1").Return(models.Ratings{}, nil)
		repo.On("AggregateForProvider", "prov-1").Return(models.Ratings{}, nil)
		services.On("UpdateRatings", "svc-1", models.Ratings{}).Return(nil)
		providers.On("UpdateRatings", "prov-1", models.Ratings{}).Return(nil)

		assert.NoError(t, svc.RecomputeAggregates("svc-1", "prov-1"))
	})

	t.Run("a failed derivation leaves the aggregate untouched", func(t *testing.T) {
		svc, repo, _, services, _, _ := newTestService()
		repo.On("AggregateForService", "svc-1").Return(models.Ratings{}, assert.AnError)

		err := svc.RecomputeAggregates("svc-1", "prov-1")
		assert.Error(t, err)
		services.AssertNotCalled(t, "UpdateRatings", mock.Anything, mock.Anything)
	})

	t.Run("is idempotent across repeated runs", func(t *testing.T) {
		svc, repo, _, services, providers, _ := newTestService()
		ratings := models.Ratings{AverageRating: 3.9, TotalReviews: 7}
		repo.On("AggregateForService", "svc-1").Return(ratings, nil)
		repo.On("AggregateForProvider", "prov-1").Return(ratings, nil)
		services.On("UpdateRatings", "svc-1", ratings).Return(nil)
		providers.On("UpdateRatings", "prov-1", ratings).Return(nil)

		assert.NoError(t, svc.RecomputeAggregates("svc-1", "prov-1"))
		assert.NoError(t, svc.RecomputeAggregates("svc-1", "prov-1"))
		services.AssertNumberOfCalls(t, "UpdateRatings", 2)
	})
}

package review

import (
	"errors"
	"fmt"
	"time"

	bookingRepo "handyhub/database/repository/booking"
	providerRepo "handyhub/database/repository/provider"
	reviewRepo "handyhub/database/repository/review"
	serviceRepo "handyhub/database/repository/service"
	"handyhub/models"
	"handyhub/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const maxCommentLength = 2000

// DefaultReviewService is the production ReviewService.
type DefaultReviewService struct {
	Repo         reviewRepo.ReviewRepository
	BookingRepo  bookingRepo.BookingRepository
	ServiceRepo  serviceRepo.ServiceRepository
	ProviderRepo providerRepo.ProviderRepository
	Enqueuer     AggregateEnqueuer
	Logger       *zap.Logger
}

func (s *DefaultReviewService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return utils.GetLogger()
}

// CreateReview validates and persists a review for a completed booking,
// then schedules the aggregate recomputation for the affected service and
// provider. The duplicate pre-check produces a clear domain error; the
// unique (bookingId, userId) index remains the actual invariant enforcer
// under concurrent submissions.
func (s *DefaultReviewService) CreateReview(userID string, in CreateReviewInput) (*models.Review, error) {
	var fields []utils.FieldError
	if in.BookingID == "" {
		fields = append(fields, utils.FieldError{Field: "bookingId", Message: "is required"})
	}
	if len(in.Comment) > maxCommentLength {
		fields = append(fields, utils.FieldError{Field: "comment", Message: fmt.Sprintf("must be at most %d characters", maxCommentLength)})
	}
	fields = append(fields, validateBreakdown(in.Breakdown)...)
	if len(fields) > 0 {
		return nil, utils.NewValidationError(fields)
	}

	booking, err := s.BookingRepo.GetByID(in.BookingID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NewAppError(utils.CodeNotFound, "booking not found")
		}
		return nil, err
	}
	if booking.UserID != userID {
		return nil, utils.NewAppError(utils.CodeForbidden, "only the booking's customer may review it")
	}
	if booking.Status != models.BookingCompleted {
		return nil, utils.NewValidationError([]utils.FieldError{{
			Field:   "bookingId",
			Message: "only completed bookings can be reviewed",
			Value:   booking.Status,
		}})
	}

	if _, err := s.Repo.FindByBookingAndUser(in.BookingID, userID); err == nil {
		return nil, utils.NewAppError(utils.CodeDuplicateReview, "you already reviewed this booking")
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	now := time.Now().UTC()
	rev := &models.Review{
		ID:         uuid.NewString(),
		BookingID:  booking.ID,
		UserID:     userID,
		ProviderID: booking.ProviderID,
		ServiceID:  booking.ServiceID,
		Rating:     DeriveRating(in.Breakdown),
		Breakdown:  in.Breakdown,
		Comment:    in.Comment,
		Helpful:    models.HelpfulVotes{},
		Status:     models.ReviewPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.Repo.Create(rev); err != nil {
		// Two concurrent submissions can both pass the pre-check; the
		// unique index decides the winner.
		if mongo.IsDuplicateKeyError(err) {
			return nil, utils.NewAppError(utils.CodeDuplicateReview, "you already reviewed this booking")
		}
		return nil, err
	}

	s.scheduleRecompute(rev.ServiceID, rev.ProviderID)
	return rev, nil
}

func (s *DefaultReviewService) GetReview(id string) (*models.Review, error) {
	rev, err := s.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NewAppError(utils.CodeNotFound, "review not found")
		}
		return nil, err
	}
	return rev, nil
}

func (s *DefaultReviewService) ListReviews(filter ListFilter, page utils.PageParams) ([]models.Review, int64, error) {
	f := bson.M{}
	if filter.ServiceID != "" {
		f["serviceId"] = filter.ServiceID
	}
	if filter.ProviderID != "" {
		f["providerId"] = filter.ProviderID
	}
	if !filter.IncludeModerated {
		f["status"] = bson.M{"$in": []string{models.ReviewPending, models.ReviewApproved}}
	}
	return s.Repo.List(f, page)
}

// MarkHelpful records userID's helpful vote. Repeating the call leaves the
// count and the vote set unchanged.
func (s *DefaultReviewService) MarkHelpful(reviewID, userID string) (*models.Review, error) {
	if _, err := s.GetReview(reviewID); err != nil {
		return nil, err
	}
	if _, err := s.Repo.MarkHelpful(reviewID, userID); err != nil {
		return nil, err
	}
	return s.GetReview(reviewID)
}

// UnmarkHelpful removes userID's helpful vote, a no-op when absent.
func (s *DefaultReviewService) UnmarkHelpful(reviewID, userID string) (*models.Review, error) {
	if _, err := s.GetReview(reviewID); err != nil {
		return nil, err
	}
	if _, err := s.Repo.UnmarkHelpful(reviewID, userID); err != nil {
		return nil, err
	}
	return s.GetReview(reviewID)
}

// ToggleHelpful flips userID's helpful vote on the review.
func (s *DefaultReviewService) ToggleHelpful(reviewID, userID string) (*models.Review, error) {
	rev, err := s.GetReview(reviewID)
	if err != nil {
		return nil, err
	}
	voted := false
	for _, u := range rev.Helpful.Users {
		if u == userID {
			voted = true
			break
		}
	}
	if voted {
		return s.UnmarkHelpful(reviewID, userID)
	}
	return s.MarkHelpful(reviewID, userID)
}

// Moderate changes a review's moderation status and re-triggers the
// aggregate recomputation, since hiding or rejecting a review changes what
// the aggregates are derived from.
func (s *DefaultReviewService) Moderate(reviewID, status string) (*models.Review, error) {
	switch status {
	case models.ReviewPending, models.ReviewApproved, models.ReviewRejected, models.ReviewHidden:
	default:
		return nil, utils.NewValidationError([]utils.FieldError{{
			Field:   "status",
			Message: "must be one of: pending approved rejected hidden",
			Value:   status,
		}})
	}
	rev, err := s.GetReview(reviewID)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.SetStatus(reviewID, status); err != nil {
		return nil, err
	}
	s.scheduleRecompute(rev.ServiceID, rev.ProviderID)
	return s.GetReview(reviewID)
}

// scheduleRecompute hands the aggregate recomputation to the background
// queue, falling back to an inline goroutine when the queue is not
// available. A failed recomputation is logged, never surfaced: a stale
// aggregate beats failing the review submission.
func (s *DefaultReviewService) scheduleRecompute(serviceID, providerID string) {
	if s.Enqueuer != nil {
		if err := s.Enqueuer.EnqueueRecompute(serviceID, providerID); err == nil {
			return
		} else {
			s.logger().Warn("failed to enqueue aggregate recompute, running inline",
				zap.String("serviceID", serviceID), zap.Error(err))
		}
	}
	go func() {
		if err := s.RecomputeAggregates(serviceID, providerID); err != nil {
			s.logger().Error("aggregate recompute failed",
				zap.String("serviceID", serviceID),
				zap.String("providerID", providerID),
				zap.Error(err))
		}
	}()
}

package reviewRepo

import (
	"handyhub/models"
	"handyhub/utils"

	"go.mongodb.org/mongo-driver/bson"
)

// ReviewRepository defines persistence operations for reviews. The unique
// (bookingId, userId) index is the source of truth for the one-review-per-
// booking invariant; callers treat the pre-insert lookup as a UX check only.
type ReviewRepository interface {
	Create(review *models.Review) error
	GetByID(id string) (*models.Review, error)
	FindByBookingAndUser(bookingID, userID string) (*models.Review, error)
	List(filter bson.M, page utils.PageParams) ([]models.Review, int64, error)
	SetStatus(id, status string) error
	MarkHelpful(id, userID string) (bool, error)
	UnmarkHelpful(id, userID string) (bool, error)
	AggregateForService(serviceID string) (models.Ratings, error)
	AggregateForProvider(providerID string) (models.Ratings, error)
	EnsureIndexes() error
}

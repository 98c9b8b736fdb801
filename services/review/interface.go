package review

import (
	"handyhub/models"
	"handyhub/utils"
)

// CreateReviewInput is the allow-listed payload for submitting a review.
// The overall rating is always derived from the breakdown; a client-
// supplied rating is ignored.
type CreateReviewInput struct {
	BookingID string
	Comment   string
	Breakdown models.RatingBreakdown
}

// ListFilter narrows a review listing.
type ListFilter struct {
	ServiceID  string
	ProviderID string
	// IncludeModerated exposes rejected/hidden reviews (admin only).
	IncludeModerated bool
}

// AggregateEnqueuer schedules a background aggregate recomputation for a
// service/provider pair.
type AggregateEnqueuer interface {
	EnqueueRecompute(serviceID, providerID string) error
}

// ReviewService governs the review lifecycle: derived ratings, the
// one-review-per-booking invariant, helpful votes, moderation, and the
// denormalized rating aggregates on services and providers.
type ReviewService interface {
	CreateReview(userID string, in CreateReviewInput) (*models.Review, error)
	GetReview(id string) (*models.Review, error)
	ListReviews(filter ListFilter, page utils.PageParams) ([]models.Review, int64, error)
	MarkHelpful(reviewID, userID string) (*models.Review, error)
	UnmarkHelpful(reviewID, userID string) (*models.Review, error)
	ToggleHelpful(reviewID, userID string) (*models.Review, error)
	Moderate(reviewID, status string) (*models.Review, error)
	RecomputeAggregates(serviceID, providerID string) error
}
